package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Sprint/internal/app"
	"github.com/dkeye/Sprint/internal/app/orch"
	"github.com/dkeye/Sprint/internal/config"
	"github.com/dkeye/Sprint/internal/core"
	"github.com/dkeye/Sprint/internal/domain"
)

func testRouterSetup(t *testing.T) (*orch.Orchestrator, http.Handler) {
	t.Helper()
	cfg := &config.Config{
		Mode:          "release",
		Port:          0,
		StaticPath:    t.TempDir(),
		Secret:        "test-secret",
		SprintSeconds: 300,
	}
	o := &orch.Orchestrator{
		Sessions: app.NewRegistry(),
		Rooms:    core.NewRegistry(clockwork.NewFakeClock(), cfg.SprintSeconds),
	}
	return o, SetupRouter(context.Background(), cfg, o)
}

func TestCreateRedirectsHostIntoFreshRoom(t *testing.T) {
	o, r := testRouterSetup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/", loc.Path)
	assert.Equal(t, "1", loc.Query().Get("host"))

	code := domain.RoomCode(loc.Query().Get("room"))
	require.NotEmpty(t, code)
	room, ok := o.Rooms.Get(code)
	require.True(t, ok, "redirect target must already be registered")
	assert.Equal(t, domain.SprintIdle, room.State())
}

func TestCreateHandsOutDistinctRooms(t *testing.T) {
	_, r := testRouterSetup(t)

	codes := make(map[string]bool)
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/create", nil))
		require.Equal(t, http.StatusFound, w.Code)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		codes[loc.Query().Get("room")] = true
	}
	assert.Len(t, codes, 20)
}

func TestRoomsEndpointListsCreatedRooms(t *testing.T) {
	o, r := testRouterSetup(t)
	room := o.Rooms.CreateRoom()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var infos []core.RoomInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, room.Code(), infos[0].Code)
	assert.Equal(t, domain.SprintIdle, infos[0].State)
}

func TestClientTokenCookieIsSet(t *testing.T) {
	_, r := testRouterSetup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "ct" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "middleware must issue a client token cookie")
}
