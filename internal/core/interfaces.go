package core

import (
	"time"

	"github.com/dkeye/Sprint/internal/domain"
)

// Frame is a marshaled wire event.
type Frame []byte

// SessionID identifies one client connection.
type SessionID string

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberSession binds domain.Member and its transport endpoint.
// This is what a room stores and fans out to.
type MemberSession interface {
	Meta() *domain.Member
	Signal() SignalConnection
}

// RoomService is the core-facing API of a room. It owns membership,
// sprint lifecycle and the deadline timer, but never touches transport
// resources beyond TrySend.
type RoomService interface {
	Code() domain.RoomCode
	Config() domain.RoomConfig
	State() domain.SprintState
	MemberCount() int
	HostID() (SessionID, bool)

	Join(sid SessionID, ms MemberSession)
	Leave(sid SessionID)

	Configure(sid SessionID, durationSeconds int)
	SetDuration(sid SessionID, durationSeconds int)

	Start(sid SessionID)
	ReportProgress(sid SessionID, text string, wordCount int, goalValue int, goalUnit domain.GoalUnit)
	ReportFinal(sid SessionID, text string, wordCount int, goalValue int, goalUnit domain.GoalUnit)
}

// RoomInfo is a read-only view for APIs (no transport fields).
type RoomInfo struct {
	Code        domain.RoomCode    `json:"code"`
	MemberCount int                `json:"memberCount"`
	State       domain.SprintState `json:"sprintState"`
}

// TimerInfo is the wire view of a scheduled sprint deadline.
type TimerInfo struct {
	EndAt int64 `json:"endAt"`
}

func timerInfo(endAt time.Time) *TimerInfo {
	return &TimerInfo{EndAt: endAt.UnixMilli()}
}
