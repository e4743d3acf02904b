package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

// Client is one websocket connection watching a single team
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	teamID uuid.UUID
}

func NewClient(hub *Hub, conn *websocket.Conn, teamID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		teamID: teamID,
	}
}

// TeamID returns the team the client is subscribed to
func (c *Client) TeamID() uuid.UUID {
	return c.teamID
}

// ReadPump keeps the connection alive and answers pings until it closes
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).WithField("team_id", c.teamID).Warn("[websocket.ReadPump] unexpected close")
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(MessageTypeError, ErrorPayload{Code: "INVALID_MESSAGE", Message: "Invalid message"})
			continue
		}

		switch msg.Type {
		case MessageTypePing:
			c.reply(MessageTypePong, nil)
		default:
			c.reply(MessageTypeError, ErrorPayload{Code: "UNKNOWN_TYPE", Message: "Notifications are read-only"})
		}
	}
}

// WritePump drains the send buffer and pings the peer
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reply goes through the hub so the send channel is only ever closed there
func (c *Client) reply(msgType domain.EventType, payload interface{}) {
	msg, err := NewMessage(msgType, c.teamID, payload)
	if err != nil {
		c.hub.log.WithError(err).Error("[websocket.reply] failed to build message")
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		c.hub.log.WithError(err).Error("[websocket.reply] failed to marshal message")
		return
	}
	c.hub.sendTo(c, data)
}
