// Package ws pushes panel transitions to dashboard clients over
// WebSocket. Every settle or loading transition is broadcast as one
// JSON-encoded update; clients reconcile against the snapshot sent on
// connect.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"SpacWatch/internal/domain/models"
	"SpacWatch/internal/usecase"
	xlogger "SpacWatch/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const writeWait = 5 * time.Second

// client wraps one connection. Panel settles broadcast from their own
// fetch goroutines, so the write mutex keeps a single writer per
// connection as gorilla/websocket requires.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub fans panel updates out to connected WebSocket clients.
type Hub struct {
	logger   *xlogger.Logger
	orch     *usecase.Orchestrator
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]*client
}

func NewHub(logger *xlogger.Logger, orch *usecase.Orchestrator) *Hub {
	h := &Hub{
		logger: logger,
		orch:   orch,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*client),
	}
	orch.Subscribe(h.Broadcast)
	return h
}

func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.Serve)
}

// Serve upgrades the connection, replays the current panel snapshot and
// keeps the client registered until it disconnects.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	cl := &client{conn: conn}

	for _, u := range h.orch.Snapshot() {
		if err := h.send(cl, u); err != nil {
			_ = conn.Close()
			return nil
		}
	}

	h.mu.Lock()
	h.clients[conn] = cl
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("ws client connected", xlogger.Int("clients", n))

	// Reads are discarded; the socket is push-only. The read loop exists
	// to detect disconnects.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

// Broadcast sends one update to every connected client. Clients whose
// write fails are dropped.
func (h *Hub) Broadcast(u models.PanelUpdate) {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	for _, cl := range clients {
		if err := h.send(cl, u); err != nil {
			h.logger.Debug("ws write failed", xlogger.Error(err))
			h.drop(cl.conn)
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	for conn := range h.clients {
		_ = conn.Close()
	}
	h.clients = make(map[*websocket.Conn]*client)
	h.mu.Unlock()
}

func (h *Hub) send(cl *client, u models.PanelUpdate) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return cl.write(payload)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
	h.mu.Unlock()
}
