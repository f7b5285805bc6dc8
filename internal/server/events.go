package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"puzzletrack/pkg/achievement"
)

const (
	writeWait      = 10 * time.Second
	clientBacklog  = 16
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI layer is the only consumer; origin checks belong to the
	// deployment's reverse proxy.
	CheckOrigin: func(*http.Request) bool { return true },
}

// EventHub broadcasts achievement unlock events to connected UI clients.
// It implements the tracker's unlock hook.
type EventHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan []byte
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[*websocket.Conn]chan []byte)}
}

// BroadcastUnlock sends one unlock event to every connected client.
// Slow clients are skipped rather than blocking the ingestion path.
func (h *EventHub) BroadcastUnlock(u achievement.Unlock) {
	data, err := json.Marshal(u)
	if err != nil {
		logrus.Errorf("failed to marshal unlock event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, send := range h.clients {
		select {
		case send <- data:
		default:
			logrus.Warnf("dropping unlock event for slow client %s", conn.RemoteAddr())
		}
	}
}

// HandleWebsocket upgrades the connection and streams unlock events to it.
func (h *EventHub) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade failed: %v", err)
		return
	}

	send := make(chan []byte, clientBacklog)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()
	logrus.Infof("event client connected: %s", conn.RemoteAddr())

	go h.writeLoop(conn, send)
	h.readLoop(conn)
}

// writeLoop drains the send channel. A failed write detaches the client
// immediately rather than waiting for readLoop to notice the dead peer.
func (h *EventHub) writeLoop(conn *websocket.Conn, send chan []byte) {
	for data := range send {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logrus.Debugf("websocket write failed: %v", err)
			h.detach(conn)
			return
		}
	}
}

// readLoop drains control frames until the client goes away, then detaches it.
func (h *EventHub) readLoop(conn *websocket.Conn) {
	defer h.detach(conn)

	conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *EventHub) detach(conn *websocket.Conn) {
	h.mu.Lock()
	if send, ok := h.clients[conn]; ok {
		close(send)
		delete(h.clients, conn)
	}
	h.mu.Unlock()

	conn.Close()
	logrus.Infof("event client disconnected: %s", conn.RemoteAddr())
}

// Close disconnects all clients.
func (h *EventHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		close(send)
		conn.Close()
		delete(h.clients, conn)
	}
}
