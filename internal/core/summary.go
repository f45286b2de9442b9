package core

import (
	"math"

	"github.com/dkeye/Sprint/internal/domain"
)

// SummaryEntry is the broadcast-ready view of one member's progress.
// Clients recognise themselves by comparing ID against their own session;
// the server never computes a per-recipient "self" flag inside a multicast.
type SummaryEntry struct {
	ID                SessionID       `json:"id"`
	Name              string          `json:"name"`
	IsHost            bool            `json:"isHost"`
	LastWordCount     int             `json:"lastWordCount"`
	PersonalGoalWords int             `json:"personalGoalWords"`
	DisplayUnit       domain.GoalUnit `json:"displayUnit"`
	PercentOfPersonal int             `json:"percentOfPersonal"`
}

// Snapshot is one member's final result, produced once at sprint end.
type Snapshot struct {
	ID                SessionID       `json:"id"`
	Name              string          `json:"name"`
	IsHost            bool            `json:"isHost"`
	FinalWordCount    int             `json:"finalWordCount"`
	PercentOfPersonal int             `json:"percentOfPersonal"`
	DisplayUnit       domain.GoalUnit `json:"displayUnit"`
	Text              string          `json:"text"`
}

// PercentOfGoal is 0 for a zero goal, otherwise round(100*count/goal)
// clamped to [0,100].
func PercentOfGoal(wordCount, goalWords int) int {
	if goalWords <= 0 {
		return 0
	}
	if wordCount < 0 {
		wordCount = 0
	}
	p := int(math.Round(float64(wordCount) / float64(goalWords) * 100))
	if p > 100 {
		return 100
	}
	return p
}

func summaryOf(sid SessionID, m *domain.Member) SummaryEntry {
	return SummaryEntry{
		ID:                sid,
		Name:              m.Name,
		IsHost:            m.IsHost,
		LastWordCount:     m.LastWordCount,
		PersonalGoalWords: m.PersonalGoalWords,
		DisplayUnit:       m.DisplayUnit,
		PercentOfPersonal: PercentOfGoal(m.LastWordCount, m.PersonalGoalWords),
	}
}

func snapshotOf(sid SessionID, m *domain.Member) Snapshot {
	return Snapshot{
		ID:                sid,
		Name:              m.Name,
		IsHost:            m.IsHost,
		FinalWordCount:    m.LastWordCount,
		PercentOfPersonal: PercentOfGoal(m.LastWordCount, m.PersonalGoalWords),
		DisplayUnit:       m.DisplayUnit,
		Text:              m.LastText,
	}
}
