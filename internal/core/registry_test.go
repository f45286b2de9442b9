package core

import (
	"regexp"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Sprint/internal/domain"
)

var codePattern = regexp.MustCompile(`^[a-z]+-[a-z]+-[a-z]+$`)

func TestCreateRoomGeneratesReadableUniqueCodes(t *testing.T) {
	reg := NewRegistry(clockwork.NewFakeClock(), 300)

	seen := make(map[domain.RoomCode]bool)
	for i := 0; i < 200; i++ {
		room := reg.CreateRoom()
		code := room.Code()
		assert.Regexp(t, codePattern, string(code))
		assert.False(t, seen[code], "registry must never hand out a duplicate code")
		seen[code] = true

		got, ok := reg.Get(code)
		require.True(t, ok)
		assert.Equal(t, room, got)
		assert.Equal(t, domain.SprintIdle, got.State())
		assert.Equal(t, 300, got.Config().DurationSeconds)
		assert.Equal(t, 0, got.MemberCount())
	}
}

func TestGetUnknownRoom(t *testing.T) {
	reg := NewRegistry(clockwork.NewFakeClock(), 300)
	_, ok := reg.Get("no-such-room")
	assert.False(t, ok)
}

func TestRegistryDefaultsInvalidDuration(t *testing.T) {
	reg := NewRegistry(clockwork.NewFakeClock(), 0)
	room := reg.CreateRoom()
	assert.Equal(t, domain.DefaultDurationSeconds, room.Config().DurationSeconds)
}

func TestListReflectsRooms(t *testing.T) {
	reg := NewRegistry(clockwork.NewFakeClock(), 300)
	assert.Empty(t, reg.List())

	a := reg.CreateRoom()
	b := reg.CreateRoom()
	joinMember(a, "h", "Ada", true, 0, domain.UnitWords)

	infos := reg.List()
	require.Len(t, infos, 2)
	byCode := make(map[domain.RoomCode]RoomInfo)
	for _, info := range infos {
		byCode[info.Code] = info
	}
	assert.Equal(t, 1, byCode[a.Code()].MemberCount)
	assert.Equal(t, 0, byCode[b.Code()].MemberCount)
	assert.Equal(t, domain.SprintIdle, byCode[a.Code()].State)
}
