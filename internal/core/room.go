package core

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Sprint/internal/domain"
)

// roomImpl is a threadsafe in-memory sprint room. All mutations happen
// under one mutex, including the deadline callback, so no two operations
// on the same room ever interleave. It never closes adapter-owned
// connections.
type roomImpl struct {
	code  domain.RoomCode
	clock clockwork.Clock

	mu         sync.Mutex
	config     domain.RoomConfig
	state      domain.SprintState
	hostID     SessionID
	bySID      map[SessionID]MemberSession
	order      []SessionID
	finalizing map[SessionID]struct{}
	timer      clockwork.Timer
	endAt      time.Time
}

func NewRoomService(code domain.RoomCode, cfg domain.RoomConfig, clock clockwork.Clock) RoomService {
	return &roomImpl{
		code:       code,
		clock:      clock,
		config:     cfg,
		state:      domain.SprintIdle,
		bySID:      make(map[SessionID]MemberSession),
		finalizing: make(map[SessionID]struct{}),
	}
}

func (r *roomImpl) Code() domain.RoomCode { return r.code }

func (r *roomImpl) Config() domain.RoomConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config
}

func (r *roomImpl) State() domain.SprintState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *roomImpl) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bySID)
}

func (r *roomImpl) HostID() (SessionID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID, r.hostID != ""
}

// Join registers a member, hands the joining connection the current room
// state and announces the refreshed member list to everyone. The last
// host-flagged joiner wins the host role.
func (r *roomImpl) Join(sid SessionID, ms MemberSession) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySID[sid]; !ok {
		r.order = append(r.order, sid)
	}
	r.bySID[sid] = ms
	if ms.Meta().IsHost {
		r.hostID = sid
	}

	var ti *TimerInfo
	if r.timer != nil {
		ti = timerInfo(r.endAt)
	}
	r.sendLocked(ms, Encode(roomStateEvent{
		Type:        EventRoomState,
		Config:      r.config,
		Users:       r.summariesLocked(),
		Timer:       ti,
		SprintState: r.state,
	}))
	r.broadcastUserListLocked()
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("sid", string(sid)).Str("name", ms.Meta().Name).Msg("member joined")
}

// Leave removes a member. A departing host vacates the role for the whole
// room; during a running sprint the convergence check re-runs so a missing
// member never blocks sprint end.
func (r *roomImpl) Leave(sid SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ms, ok := r.bySID[sid]
	if !ok {
		return
	}
	delete(r.bySID, sid)
	delete(r.finalizing, sid)
	for i, id := range r.order {
		if id == sid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("sid", string(sid)).Str("name", ms.Meta().Name).Msg("member left")

	r.broadcastUserListLocked()
	if r.hostID == sid {
		r.hostID = ""
		r.broadcastLocked(Encode(bareEvent{Type: EventHostLeft}))
	}
	if r.state == domain.SprintRunning {
		r.checkConvergenceLocked()
	}
}

// Configure replaces the sprint duration. Host only; an invalid duration
// falls back to the default.
func (r *roomImpl) Configure(sid SessionID, durationSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sid != r.hostID {
		return
	}
	if durationSeconds <= 0 {
		durationSeconds = domain.DefaultDurationSeconds
	}
	r.config.DurationSeconds = durationSeconds
	r.broadcastLocked(Encode(roomConfiguredEvent{Type: EventRoomConfigured, Config: r.config}))
	r.broadcastUserListLocked()
}

// SetDuration is the narrow duration-only update. It carries the same
// host check as Configure; an invalid duration keeps the prior value.
func (r *roomImpl) SetDuration(sid SessionID, durationSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sid != r.hostID || durationSeconds <= 0 {
		return
	}
	r.config.DurationSeconds = durationSeconds
	r.broadcastLocked(Encode(durationUpdatedEvent{Type: EventDurationUpdated, DurationSeconds: durationSeconds}))
}

// Start transitions idle → running, schedules the one-shot deadline and
// announces the sprint. Only the host may start, and only from idle:
// ended is terminal, so a room hosts exactly one sprint.
func (r *roomImpl) Start(sid SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sid != r.hostID || r.state != domain.SprintIdle {
		return
	}
	r.state = domain.SprintRunning
	r.finalizing = make(map[SessionID]struct{})

	d := time.Duration(r.config.DurationSeconds) * time.Second
	r.endAt = r.clock.Now().Add(d)
	r.timer = r.clock.AfterFunc(d, r.forceFinalize)

	r.broadcastLocked(Encode(sprintStartedEvent{Type: EventSprintStarted, EndAt: r.endAt.UnixMilli()}))
	r.broadcastUserListLocked()
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Int("duration_s", r.config.DurationSeconds).Msg("sprint started")
}

// ReportProgress records a live progress update and multicasts the
// refreshed summary list. Every update is broadcast; a dropped frame is
// superseded by the next keystroke.
func (r *roomImpl) ReportProgress(sid SessionID, text string, wordCount int, goalValue int, goalUnit domain.GoalUnit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != domain.SprintRunning {
		return
	}
	ms, ok := r.bySID[sid]
	if !ok {
		return
	}
	m := ms.Meta()
	m.LastText = text
	if wordCount < 0 {
		wordCount = 0
	}
	m.LastWordCount = wordCount
	m.SetGoal(goalValue, goalUnit)

	r.broadcastLocked(Encode(progressUpdateEvent{Type: EventProgressUpdate, Users: r.summariesLocked()}))
}

// ReportFinal overwrites the member's progress with their final values,
// marks them finalized and re-runs the convergence check.
func (r *roomImpl) ReportFinal(sid SessionID, text string, wordCount int, goalValue int, goalUnit domain.GoalUnit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != domain.SprintRunning {
		return
	}
	ms, ok := r.bySID[sid]
	if !ok {
		return
	}
	m := ms.Meta()
	m.LastText = text
	if wordCount < 0 {
		wordCount = 0
	}
	m.LastWordCount = wordCount
	m.SetGoal(goalValue, goalUnit)

	r.finalizing[sid] = struct{}{}
	r.checkConvergenceLocked()
}

// forceFinalize fires at the deadline: every member still missing from the
// finalizing set is marked final with their last-known progress. Nothing
// further is awaited from clients, which bounds the sprint to its duration.
func (r *roomImpl) forceFinalize() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != domain.SprintRunning {
		return
	}
	for sid := range r.bySID {
		r.finalizing[sid] = struct{}{}
	}
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Msg("deadline reached, forcing finalization")
	r.checkConvergenceLocked()
}

// checkConvergenceLocked ends the sprint once every current member has
// finalized. Snapshots preserve join order.
func (r *roomImpl) checkConvergenceLocked() {
	if r.state != domain.SprintRunning {
		return
	}
	for sid := range r.bySID {
		if _, ok := r.finalizing[sid]; !ok {
			return
		}
	}

	r.state = domain.SprintEnded
	r.finalizing = make(map[SessionID]struct{})
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}

	snapshots := make([]Snapshot, 0, len(r.order))
	for _, sid := range r.order {
		snapshots = append(snapshots, snapshotOf(sid, r.bySID[sid].Meta()))
	}
	r.broadcastLocked(Encode(sprintEndedEvent{
		Type:      EventSprintEnded,
		Snapshots: snapshots,
		EndedAt:   r.clock.Now().UnixMilli(),
	}))
	r.broadcastUserListLocked()
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Int("snapshots", len(snapshots)).Msg("sprint ended")
}

func (r *roomImpl) summariesLocked() []SummaryEntry {
	out := make([]SummaryEntry, 0, len(r.order))
	for _, sid := range r.order {
		out = append(out, summaryOf(sid, r.bySID[sid].Meta()))
	}
	return out
}

func (r *roomImpl) broadcastUserListLocked() {
	r.broadcastLocked(Encode(userListEvent{Type: EventUserList, Users: r.summariesLocked()}))
}

func (r *roomImpl) broadcastLocked(f Frame) {
	if f == nil {
		return
	}
	for sid, ms := range r.bySID {
		if err := ms.Signal().TrySend(f); err != nil {
			log.Warn().Err(err).Str("module", "core.room").Str("room", string(r.code)).Str("sid", string(sid)).Msg("broadcast drop")
		}
	}
}

func (r *roomImpl) sendLocked(ms MemberSession, f Frame) {
	if f == nil {
		return
	}
	if err := ms.Signal().TrySend(f); err != nil {
		log.Warn().Err(err).Str("module", "core.room").Str("room", string(r.code)).Msg("unicast drop")
	}
}
