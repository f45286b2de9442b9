package core

import (
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Sprint/internal/domain"
)

// Registry owns the code → room mapping. Insertion-only: rooms live for
// the rest of the process (idle-room eviction is a deliberate non-feature,
// see DESIGN.md).
type Registry struct {
	mu         sync.RWMutex
	rooms      map[domain.RoomCode]RoomService
	rng        *rand.Rand
	clock      clockwork.Clock
	defaultCfg domain.RoomConfig
}

func NewRegistry(clock clockwork.Clock, defaultDurationSeconds int) *Registry {
	if defaultDurationSeconds <= 0 {
		defaultDurationSeconds = domain.DefaultDurationSeconds
	}
	return &Registry{
		rooms:      make(map[domain.RoomCode]RoomService),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		clock:      clock,
		defaultCfg: domain.RoomConfig{DurationSeconds: defaultDurationSeconds},
	}
}

// CreateRoom generates a fresh registry-unique code and registers an idle
// room under it. The code space is large relative to concurrent rooms, so
// the collision retry practically terminates.
func (r *Registry) CreateRoom() RoomService {
	r.mu.Lock()
	defer r.mu.Unlock()

	var code domain.RoomCode
	for {
		code = generateCode(r.rng)
		if _, taken := r.rooms[code]; !taken {
			break
		}
	}
	room := NewRoomService(code, r.defaultCfg, r.clock)
	r.rooms[code] = room
	log.Info().Str("module", "core.registry").Str("room", string(code)).Msg("room created")
	return room
}

func (r *Registry) Get(code domain.RoomCode) (RoomService, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[code]
	return room, ok
}

func (r *Registry) List() []RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RoomInfo, 0, len(r.rooms))
	for code, room := range r.rooms {
		out = append(out, RoomInfo{Code: code, MemberCount: room.MemberCount(), State: room.State()})
	}
	return out
}
