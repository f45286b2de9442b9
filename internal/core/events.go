package core

import (
	"encoding/json"

	"github.com/dkeye/Sprint/internal/domain"
	"github.com/rs/zerolog/log"
)

// Server → client event types. Room multicast unless a handler sends
// them over a single connection.
const (
	EventRoomNotFound    = "roomNotFound"
	EventRoomState       = "roomState"
	EventRoomConfigured  = "roomConfigured"
	EventDurationUpdated = "durationUpdated"
	EventUserList        = "userList"
	EventSprintStarted   = "sprintStarted"
	EventProgressUpdate  = "progressUpdate"
	EventSprintEnded     = "sprintEnded"
	EventHostLeft        = "hostLeft"
)

type roomStateEvent struct {
	Type        string             `json:"type"`
	Config      domain.RoomConfig  `json:"config"`
	Users       []SummaryEntry     `json:"users"`
	Timer       *TimerInfo         `json:"timer"`
	SprintState domain.SprintState `json:"sprintState"`
}

type roomConfiguredEvent struct {
	Type   string            `json:"type"`
	Config domain.RoomConfig `json:"config"`
}

type durationUpdatedEvent struct {
	Type            string `json:"type"`
	DurationSeconds int    `json:"durationSeconds"`
}

type userListEvent struct {
	Type  string         `json:"type"`
	Users []SummaryEntry `json:"users"`
}

type sprintStartedEvent struct {
	Type  string `json:"type"`
	EndAt int64  `json:"endAt"`
}

type progressUpdateEvent struct {
	Type  string         `json:"type"`
	Users []SummaryEntry `json:"users"`
}

type sprintEndedEvent struct {
	Type      string     `json:"type"`
	Snapshots []Snapshot `json:"snapshots"`
	EndedAt   int64      `json:"endedAt"`
}

type bareEvent struct {
	Type string `json:"type"`
}

// Encode marshals a wire event; a marshal failure is a programming error
// and yields a nil frame that TrySend paths must tolerate.
func Encode(v any) Frame {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "core.events").Msg("event marshal")
		return nil
	}
	return b
}
