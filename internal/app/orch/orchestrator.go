package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Sprint/internal/app"
	"github.com/dkeye/Sprint/internal/core"
	"github.com/dkeye/Sprint/internal/domain"
)

// Orchestrator ties connection sessions to sprint rooms. It carries no
// state of its own; rooms and session bindings own theirs.
type Orchestrator struct {
	Sessions *app.Registry
	Rooms    *core.Registry
}

// Join moves a connection into a room, leaving any previous room first.
// Returns false when the room does not exist; the caller notifies the
// joining connection alone.
func (o *Orchestrator) Join(sid core.SessionID, code domain.RoomCode, name string, isHost bool, goalValue int, goalUnit domain.GoalUnit) bool {
	room, ok := o.Rooms.Get(code)
	if !ok {
		return false
	}
	conn, ok := o.Sessions.Conn(sid)
	if !ok {
		return false
	}

	if prev, ok := o.Sessions.RoomOf(sid); ok && prev != code {
		o.leaveRoom(sid, prev)
	}

	meta := domain.NewMember(name, isHost, goalValue, goalUnit)
	room.Join(sid, core.NewMemberSession(meta, conn))
	o.Sessions.UpdateRoom(sid, code)
	return true
}

// Disconnect removes the connection from its room and forgets the session.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	if code, ok := o.Sessions.RoomOf(sid); ok {
		o.leaveRoom(sid, code)
	}
	o.Sessions.Unbind(sid)
}

func (o *Orchestrator) leaveRoom(sid core.SessionID, code domain.RoomCode) {
	room, ok := o.Rooms.Get(code)
	if !ok {
		return
	}
	room.Leave(sid)
	o.Sessions.ClearRoom(sid)
	log.Info().Str("module", "app.orch").Str("sid", string(sid)).Str("room", string(code)).Msg("left room")
}
