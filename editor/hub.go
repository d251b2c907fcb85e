package editor

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event is pushed to every subscriber of /api/events.
type Event struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

const (
	subscriberBuffer = 16
	writeWait        = 5 * time.Second
)

// Hub fans editor events out to websocket subscribers. A subscriber that
// falls behind loses events rather than stalling the broadcaster.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	subs   map[uuid.UUID]chan []byte
	closed bool
}

// NewHub creates a hub. With no allowed origins every origin is accepted.
func NewHub(logger *slog.Logger, allowedOrigins []string) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		subs:   make(map[uuid.UUID]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// Len returns the number of connected subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast sends ev to every subscriber.
func (h *Hub) Broadcast(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("encode event", "type", ev.Type, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, out := range h.subs {
		select {
		case out <- msg:
		default:
			h.logger.Warn("subscriber lagging, event dropped", "subscriber", id, "type", ev.Type)
		}
	}
}

func (h *Hub) subscribe() (uuid.UUID, chan []byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return uuid.Nil, nil, false
	}
	id := uuid.New()
	out := make(chan []byte, subscriberBuffer)
	h.subs[id] = out
	return id, out, true
}

func (h *Hub) unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if out, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(out)
	}
}

// Close disconnects every subscriber and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, out := range h.subs {
		delete(h.subs, id)
		close(out)
	}
}

// ServeHTTP upgrades the request and streams events until either side
// closes. Anything the client sends is discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	id, out, ok := h.subscribe()
	if !ok {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(time.Second))
		return
	}
	h.logger.Debug("subscriber connected", "subscriber", id, "remote", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range out {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unsubscribe(id)
	<-done
	h.logger.Debug("subscriber disconnected", "subscriber", id)
}
