package domain

const (
	MaxMemberNameLen = 36
	AnonymousName    = "Anonymous"
)

// GoalUnit is how a member wants their progress displayed.
type GoalUnit string

const (
	UnitWords   GoalUnit = "words"
	UnitPercent GoalUnit = "percent"
)

// Member represents user's participation meta for a room.
// No transport or lifecycle logic here.
type Member struct {
	Name              string
	IsHost            bool
	LastText          string
	LastWordCount     int
	PersonalGoalWords int
	DisplayUnit       GoalUnit
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
// Percent goals have no word equivalent, so the goal is kept at zero and the
// percent display stays at zero until real percent semantics exist.
func NewMember(name string, isHost bool, goalValue int, unit GoalUnit) *Member {
	if name == "" {
		name = AnonymousName
	}
	if len(name) > MaxMemberNameLen {
		name = name[:MaxMemberNameLen]
	}
	if unit == "" {
		unit = UnitWords
	}
	goal := goalValue
	if unit == UnitPercent || goal < 0 {
		goal = 0
	}
	return &Member{
		Name:              name,
		IsHost:            isHost,
		PersonalGoalWords: goal,
		DisplayUnit:       unit,
	}
}

// SetGoal applies an in-sprint goal change from a progress update.
func (m *Member) SetGoal(goalValue int, unit GoalUnit) {
	if unit == "" {
		return
	}
	if goalValue < 0 {
		goalValue = 0
	}
	m.PersonalGoalWords = goalValue
	m.DisplayUnit = unit
}
