package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	domainleagues "github.com/preston-bernstein/league-stats-service/internal/domain/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/logging"
)

const (
	sendBuffer     = 16
	broadcastQueue = 64
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 512
)

// BroadcastRecorder receives fan-out counts.
type BroadcastRecorder interface {
	RecordBroadcast(delivered, dropped int)
}

// Hub fans league events out to connected websocket clients. Clients that cannot
// keep up with their send buffer are disconnected.
type Hub struct {
	logger   *slog.Logger
	recorder BroadcastRecorder
	upgrader websocket.Upgrader
	// pingPeriod must stay below pongWait.
	pingPeriod time.Duration

	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	mu      sync.RWMutex
	clients map[*client]struct{}

	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub builds a hub. allowedOrigin mirrors the CORS setting: "*" or empty accepts any origin.
func NewHub(logger *slog.Logger, recorder BroadcastRecorder, allowedOrigin string) *Hub {
	h := &Hub{
		logger:     logger,
		recorder:   recorder,
		pingPeriod: (pongWait * 9) / 10,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastQueue),
		clients:    make(map[*client]struct{}),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigin),
	}
	return h
}

func originChecker(allowed string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if allowed == "" || allowed == "*" {
			return true
		}
		origin := r.Header.Get("Origin")
		return origin == "" || origin == allowed
	}
}

// Start runs the hub loop until ctx is cancelled or Stop is called.
func (h *Hub) Start(ctx context.Context) {
	h.startMu.Lock()
	if h.started {
		h.startMu.Unlock()
		return
	}
	h.started = true
	h.startMu.Unlock()

	go h.run(ctx)
}

// Stop closes every client connection and halts the loop.
func (h *Hub) Stop(ctx context.Context) error {
	_ = ctx
	h.stopOnce.Do(func() {
		close(h.done)
	})
	return nil
}

func (h *Hub) run(ctx context.Context) {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
		case c := <-h.unregister:
			h.remove(c)
		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

func (h *Hub) fanOut(msg []byte) {
	delivered, dropped := 0, 0
	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- msg:
			delivered++
		default:
			delete(h.clients, c)
			close(c.send)
			dropped++
		}
	}
	h.mu.Unlock()

	if dropped > 0 {
		logging.Warn(h.logger, "dropped slow websocket clients", logging.FieldCount, dropped)
	}
	if h.recorder != nil {
		h.recorder.RecordBroadcast(delivered, dropped)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Publish queues a league event for every client. It never blocks; events are
// discarded when the queue is full or the hub has stopped.
func (h *Hub) Publish(evt domainleagues.Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		logging.Error(h.logger, "marshal league event failed", err)
		return
	}
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.broadcast <- payload:
	default:
		logging.Warn(h.logger, "broadcast queue full, event discarded", logging.FieldLeague, evt.LeagueID)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams events to the new client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		logging.Warn(logging.FromContext(r.Context(), h.logger), "websocket upgrade failed", "error", err)
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump only handles control frames; client messages are ignored.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
