package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Sprint/internal/core"
	"github.com/dkeye/Sprint/internal/domain"
)

type progressPayload struct {
	Type              string          `json:"type"`
	RoomID            string          `json:"roomId"`
	Text              string          `json:"text"`
	WordCount         int             `json:"wordCount"`
	PersonalGoalValue int             `json:"personalGoalValue"`
	PersonalGoalUnit  domain.GoalUnit `json:"personalGoalUnit"`
}

func (ctl *SignalWSController) handleProgress(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p progressPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad progress payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	room, ok := ctl.Orch.Rooms.Get(domain.RoomCode(p.RoomID))
	if !ok {
		return
	}
	room.ReportProgress(sid, p.Text, p.WordCount, p.PersonalGoalValue, p.PersonalGoalUnit)
}

func (ctl *SignalWSController) handleFinalProgress(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p progressPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad final progress payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	room, ok := ctl.Orch.Rooms.Get(domain.RoomCode(p.RoomID))
	if !ok {
		return
	}
	room.ReportFinal(sid, p.Text, p.WordCount, p.PersonalGoalValue, p.PersonalGoalUnit)
}
