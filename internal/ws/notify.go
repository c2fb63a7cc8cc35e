package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type BatchProgressEvent struct {
	Type           string `json:"type"`
	SolicitationID string `json:"solicitation_id"`
	Current        int    `json:"current"`
	Total          int    `json:"total"`
	Timestamp      string `json:"timestamp"`
}

// ProgressBroadcaster adapts the hub to the matching usecase's notifier
// contract.
type ProgressBroadcaster struct {
	hub *Hub
}

func NewProgressBroadcaster(hub *Hub) *ProgressBroadcaster {
	return &ProgressBroadcaster{hub: hub}
}

func (b *ProgressBroadcaster) BatchProgress(solicitationID uuid.UUID, current, total int) {
	if b == nil || b.hub == nil {
		return
	}

	evt := BatchProgressEvent{
		Type:           "match_batch_progress",
		SolicitationID: solicitationID.String(),
		Current:        current,
		Total:          total,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		return
	}
	b.hub.Broadcast(msg)
}
