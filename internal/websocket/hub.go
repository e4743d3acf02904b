package websocket

import (
	"encoding/json"
	"sync"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const broadcastBuffer = 256

type envelope struct {
	teamID uuid.UUID
	client *Client // nil fans out to every client of the team
	data   []byte
}

// Hub fans team change events out to the websocket clients watching that team.
// Client send channels are only closed from the Run goroutine.
type Hub struct {
	teams      map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopOnce   sync.Once
	mu         sync.RWMutex
	log        *logrus.Entry
}

func NewHub(logger *logrus.Logger) *Hub {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Hub{
		teams:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, broadcastBuffer),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		log:        logger.WithField("component", "hub"),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			for _, clients := range h.teams {
				for client := range clients {
					close(client.send)
				}
			}
			h.teams = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			clients, ok := h.teams[client.teamID]
			if !ok {
				clients = make(map[*Client]bool)
				h.teams[client.teamID] = clients
			}
			clients[client] = true
			h.mu.Unlock()
			h.log.WithField("team_id", client.teamID).Debug("[websocket.Run] client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case env := <-h.broadcast:
			h.mu.Lock()
			if env.client != nil {
				if h.teams[env.teamID][env.client] {
					h.deliver(env.client, env.data)
				}
			} else {
				for client := range h.teams[env.teamID] {
					h.deliver(client, env.data)
				}
			}
			h.mu.Unlock()
		}
	}
}

// deliver drops clients whose buffer is full. Caller holds mu.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.log.WithField("team_id", client.teamID).Warn("[websocket.deliver] dropping slow client")
		h.remove(client)
	}
}

// remove closes the client's send channel. Caller holds mu.
func (h *Hub) remove(client *Client) {
	clients, ok := h.teams[client.teamID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.teams, client.teamID)
	}
}

// Stop shuts the hub down and blocks until Run has returned.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish notifies every client watching teamID. It never blocks on slow clients.
func (h *Hub) Publish(teamID uuid.UUID, eventType domain.EventType, payload interface{}) {
	msg, err := NewMessage(eventType, teamID, payload)
	if err != nil {
		h.log.WithError(err).WithField("type", eventType).Error("[websocket.Publish] failed to build message")
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.WithError(err).WithField("type", eventType).Error("[websocket.Publish] failed to marshal message")
		return
	}

	select {
	case h.broadcast <- envelope{teamID: teamID, data: data}:
	case <-h.done:
	}
}

func (h *Hub) sendTo(client *Client, data []byte) {
	select {
	case h.broadcast <- envelope{teamID: client.teamID, client: client, data: data}:
	case <-h.done:
	}
}

// ClientCount returns how many clients are watching teamID
func (h *Hub) ClientCount(teamID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.teams[teamID])
}
