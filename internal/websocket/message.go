package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
)

// Client to server
const (
	MessageTypePing domain.EventType = "PING"
)

// Server to client, besides the domain change events
const (
	MessageTypePong  domain.EventType = "PONG"
	MessageTypeError domain.EventType = "ERROR"
)

type Message struct {
	Type      domain.EventType `json:"type"`
	TeamID    uuid.UUID        `json:"teamId"`
	Payload   json.RawMessage  `json:"payload,omitempty"`
	Timestamp int64            `json:"timestamp"`
}

func NewMessage(msgType domain.EventType, teamID uuid.UUID, payload interface{}) (*Message, error) {
	msg := &Message{
		Type:      msgType,
		TeamID:    teamID,
		Timestamp: time.Now().UnixMilli(),
	}
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = payloadBytes
	}
	return msg, nil
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
