// Package telemetry streams simulation step frames to websocket clients.
package telemetry

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/hullwater/internal/logger"
)

// Hub keeps the connected clients and fans frames out to them. Every client
// has its own write lock so a slow client only blocks its own writes.
type Hub struct {
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	log          *zap.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	closed  bool
}

// NewHub returns an empty hub. Writes that take longer than writeTimeout drop
// the client; zero means no deadline.
func NewHub(writeTimeout time.Duration) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // viewers are local tools
			},
		},
		writeTimeout: writeTimeout,
		log:          logger.Named("telemetry"),
		clients:      make(map[*websocket.Conn]*sync.Mutex),
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until the
// client goes away. Incoming messages are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.clients[conn] = &sync.Mutex{}
	count := len(h.clients)
	h.mu.Unlock()
	h.log.Info("client connected", zap.String("remote", r.RemoteAddr), zap.Int("clients", count))

	defer h.remove(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debug("client read ended", zap.String("remote", r.RemoteAddr), zap.Error(err))
			return
		}
	}
}

// Broadcast sends v as JSON to every client and returns how many received it.
// Clients that fail are closed and dropped.
func (h *Hub) Broadcast(v any) int {
	var failed []*websocket.Conn
	sent := 0

	h.mu.RLock()
	for conn, lock := range h.clients {
		lock.Lock()
		if h.writeTimeout > 0 {
			conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		}
		err := conn.WriteJSON(v)
		lock.Unlock()
		if err != nil {
			h.log.Warn("websocket write failed", zap.String("remote", conn.RemoteAddr().String()), zap.Error(err))
			failed = append(failed, conn)
			continue
		}
		sent++
	}
	h.mu.RUnlock()

	for _, conn := range failed {
		conn.Close()
		h.remove(conn)
	}
	return sent
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn, lock := range h.clients {
		lock.Lock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "simulation finished"),
			time.Now().Add(time.Second))
		lock.Unlock()
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}
