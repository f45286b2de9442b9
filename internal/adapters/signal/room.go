package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Sprint/internal/core"
	"github.com/dkeye/Sprint/internal/domain"
)

func (ctl *SignalWSController) handleJoin(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		Type              string          `json:"type"`
		RoomID            string          `json:"roomId"`
		Name              string          `json:"name,omitempty"`
		IsHost            bool            `json:"isHost"`
		PersonalGoalValue int             `json:"personalGoalValue"`
		PersonalGoalUnit  domain.GoalUnit `json:"personalGoalUnit"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, "bad_payload")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Bool("host", p.IsHost).Msg("joinRoom")
	if !ctl.Orch.Join(sid, domain.RoomCode(p.RoomID), p.Name, p.IsHost, p.PersonalGoalValue, p.PersonalGoalUnit) {
		ctl.sendJSON(conn, map[string]any{"type": core.EventRoomNotFound})
	}
}

func (ctl *SignalWSController) handleConfigure(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type configurePayload struct {
		Type            string `json:"type"`
		RoomID          string `json:"roomId"`
		DurationSeconds int    `json:"durationSeconds"`
	}
	var p configurePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad configure payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	room, ok := ctl.Orch.Rooms.Get(domain.RoomCode(p.RoomID))
	if !ok {
		return
	}
	room.Configure(sid, p.DurationSeconds)
}

func (ctl *SignalWSController) handleUpdateDuration(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type durationPayload struct {
		Type            string `json:"type"`
		RoomID          string `json:"roomId"`
		DurationSeconds int    `json:"durationSeconds"`
	}
	var p durationPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad duration payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	room, ok := ctl.Orch.Rooms.Get(domain.RoomCode(p.RoomID))
	if !ok {
		return
	}
	room.SetDuration(sid, p.DurationSeconds)
}

func (ctl *SignalWSController) handleStartSprint(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type startPayload struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
	}
	var p startPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad start payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	room, ok := ctl.Orch.Rooms.Get(domain.RoomCode(p.RoomID))
	if !ok {
		return
	}
	room.Start(sid)
}
