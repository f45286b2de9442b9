// Package domain contains entity without logic, just meta-data
package domain

type RoomCode string

// SprintState is the lifecycle of the single sprint a room hosts.
// ended is terminal; a new sprint needs a new room.
type SprintState string

const (
	SprintIdle    SprintState = "idle"
	SprintRunning SprintState = "running"
	SprintEnded   SprintState = "ended"
)

const DefaultDurationSeconds = 300

type RoomConfig struct {
	DurationSeconds int `json:"durationSeconds"`
}

func DefaultRoomConfig() RoomConfig {
	return RoomConfig{DurationSeconds: DefaultDurationSeconds}
}
