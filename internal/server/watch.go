package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// spectator is one attached watcher. All writes to the connection go through
// send and are drained by a single writePump goroutine, keeping to the
// websocket package's one-concurrent-writer contract.
type spectator struct {
	conn *websocket.Conn
	send chan any
}

// Hub fans game events out to WebSocket spectators. Connections only
// receive; anything a client writes is read and discarded to keep the
// connection's control frames flowing.
type Hub struct {
	upgrader    websocket.Upgrader
	connections map[*spectator]bool
	register    chan *spectator
	unregister  chan *spectator
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewHub creates a spectator hub. Run must be called before clients attach.
func NewHub(logger *log.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*spectator]bool),
		register:    make(chan *spectator),
		unregister:  make(chan *spectator),
		logger:      logger.WithPrefix("watch"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run handles connection lifecycle until Stop is called
func (h *Hub) Run() {
	for {
		select {
		case s := <-h.register:
			h.mu.Lock()
			h.connections[s] = true
			total := len(h.connections)
			h.mu.Unlock()
			go h.writePump(s)
			h.logger.Info("Spectator connected", "total", total)

		case s := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.connections[s]; ok {
				delete(h.connections, s)
				close(s.send)
				_ = s.conn.Close() // Ignore close errors during unregistration
			}
			total := len(h.connections)
			h.mu.Unlock()
			h.logger.Info("Spectator disconnected", "total", total)

		case <-h.ctx.Done():
			return
		}
	}
}

// Stop closes all spectator connections and ends the Run loop
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	for s := range h.connections {
		close(s.send)
		_ = s.conn.Close() // Ignore close errors during shutdown
	}
	h.connections = make(map[*spectator]bool)
	h.mu.Unlock()
}

// Count returns the number of attached spectators
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast queues v for every connected spectator. A spectator whose send
// buffer is full is dropped rather than blocking the caller.
func (h *Hub) Broadcast(v any) {
	h.mu.RLock()
	var slow []*spectator
	for s := range h.connections {
		select {
		case s.send <- v:
		default:
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range slow {
		h.logger.Warn("Dropping slow spectator")
		h.drop(s)
	}
}

// writePump drains the spectator's send channel onto the connection. It is
// the only goroutine that writes to conn.
func (h *Hub) writePump(s *spectator) {
	for v := range s.send {
		if err := s.conn.WriteJSON(v); err != nil {
			h.logger.Warn("Dropping spectator", "error", err)
			h.drop(s)
			return
		}
	}
}

func (h *Hub) drop(s *spectator) {
	select {
	case h.unregister <- s:
	case <-h.ctx.Done():
	}
}

// Watch upgrades the request and attaches the spectator to the hub
func (h *Handler) Watch(c echo.Context) error {
	conn, err := h.hub.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return nil
	}

	s := &spectator{conn: conn, send: make(chan any, 16)}

	select {
	case h.hub.register <- s:
	case <-h.hub.ctx.Done():
		_ = conn.Close()
		return nil
	}

	go func() {
		defer h.hub.drop(s)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}
