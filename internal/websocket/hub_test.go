package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	hub := NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

// serveTeam upgrades every request into a client watching teamID
func serveTeam(t *testing.T, hub *Hub, teamID uuid.UUID) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, teamID)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_PublishReachesTeamClients(t *testing.T) {
	hub := newTestHub(t)
	teamID := uuid.New()
	server := serveTeam(t, hub, teamID)

	first := dial(t, server)
	second := dial(t, server)
	require.Eventually(t, func() bool { return hub.ClientCount(teamID) == 2 }, 2*time.Second, 10*time.Millisecond)

	memberID := uuid.New()
	hub.Publish(teamID, domain.EventMemberCreated, map[string]string{"id": memberID.String()})

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		assert.Equal(t, domain.EventMemberCreated, msg.Type)
		assert.Equal(t, teamID, msg.TeamID)
		assert.Contains(t, string(msg.Payload), memberID.String())
		assert.NotZero(t, msg.Timestamp)
	}
}

func TestHub_PublishIsScopedToTeam(t *testing.T) {
	hub := newTestHub(t)
	teamA, teamB := uuid.New(), uuid.New()
	connA := dial(t, serveTeam(t, hub, teamA))
	connB := dial(t, serveTeam(t, hub, teamB))
	require.Eventually(t, func() bool {
		return hub.ClientCount(teamA) == 1 && hub.ClientCount(teamB) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Publish(teamB, domain.EventDraftUpdated, nil)
	msg := readMessage(t, connB)
	assert.Equal(t, domain.EventDraftUpdated, msg.Type)

	require.NoError(t, connA.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := connA.ReadMessage()
	assert.Error(t, err, "team A must not see team B's events")
}

func TestHub_PingPong(t *testing.T) {
	hub := newTestHub(t)
	teamID := uuid.New()
	conn := dial(t, serveTeam(t, hub, teamID))
	require.Eventually(t, func() bool { return hub.ClientCount(teamID) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Message{Type: MessageTypePing}))
	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypePong, msg.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	msg = readMessage(t, conn)
	assert.Equal(t, MessageTypeError, msg.Type)

	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "INVALID_MESSAGE", payload.Code)
}

func TestHub_UnregisterOnDisconnect(t *testing.T) {
	hub := newTestHub(t)
	teamID := uuid.New()
	conn := dial(t, serveTeam(t, hub, teamID))
	require.Eventually(t, func() bool { return hub.ClientCount(teamID) == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(teamID) == 0 }, 2*time.Second, 10*time.Millisecond)

	// publishing to a team nobody watches is a no-op
	hub.Publish(teamID, domain.EventGameRecorded, nil)
}

func TestHub_StopClosesClients(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	hub := NewHub(logger)
	go hub.Run()

	teamID := uuid.New()
	conn := dial(t, serveTeam(t, hub, teamID))
	require.Eventually(t, func() bool { return hub.ClientCount(teamID) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Stop()
	hub.Stop()
	assert.Equal(t, 0, hub.ClientCount(teamID))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	// calls after shutdown return instead of blocking
	hub.Publish(teamID, domain.EventGameDeleted, nil)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := newTestHub(t)
	teamID := uuid.New()
	client := &Client{hub: hub, send: make(chan []byte, 1), teamID: teamID}
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount(teamID) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(teamID, domain.EventMemberUpdated, nil)
	hub.Publish(teamID, domain.EventMemberUpdated, nil)

	require.Eventually(t, func() bool { return hub.ClientCount(teamID) == 0 }, 2*time.Second, 10*time.Millisecond)
	_, open := <-client.send
	assert.True(t, open, "buffered message is still readable")
	_, open = <-client.send
	assert.False(t, open, "send channel closed after drop")
}
