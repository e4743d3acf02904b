package handlers

import (
	"net/http"

	"github.com/dom/scrim-team-builder/internal/api/middleware"
	"github.com/dom/scrim-team-builder/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the REST routes only
	},
}

type EventsHandler struct {
	hub *websocket.Hub
	log *logrus.Logger
}

func NewEventsHandler(hub *websocket.Hub, logger *logrus.Logger) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		log: logger,
	}
}

// Subscribe upgrades the request and streams the team's change notifications
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).WithField("team_id", teamID).Warn("[EventsHandler.Subscribe] upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn, teamID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
