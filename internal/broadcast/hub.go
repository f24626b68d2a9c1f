// Package broadcast fans routed events out to frontend WebSocket clients.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	httperr "github.com/hostbus/eventroute/internal/core/errors"
)

// Frame is what a subscriber receives.
type Frame struct {
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload"`
}

type client struct {
	id       string
	conn     *websocket.Conn
	channels map[string]bool
	send     chan []byte
}

// Hub tracks connected clients and their channel subscriptions. Broadcast
// never blocks on a client: a full send buffer drops the frame for that
// client only.
type Hub struct {
	upgrader     websocket.Upgrader
	sendBuffer   int
	writeTimeout time.Duration

	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub(sendBuffer int, writeTimeout time.Duration) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sendBuffer:   sendBuffer,
		writeTimeout: writeTimeout,
		clients:      make(map[*client]struct{}),
	}
}

// RegisterRoutes registers the subscription endpoint: GET /v1/ws?channel=a&channel=b
func (h *Hub) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/ws", h.HandleSubscribe)
}

// Broadcast implements dispatch.Broadcaster.
func (h *Hub) Broadcast(_ context.Context, channel string, payload json.RawMessage) error {
	data, err := json.Marshal(Frame{Channel: channel, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered, dropped := 0, 0
	for c := range h.clients {
		if !c.channels[channel] {
			continue
		}
		select {
		case c.send <- data:
			delivered++
		default:
			dropped++
		}
	}

	if dropped > 0 {
		slog.Warn("[Broadcast] Slow subscribers skipped", "channel", channel, "dropped", dropped)
	}
	slog.Debug("[Broadcast] Frame sent", "channel", channel, "subscribers", delivered)
	return nil
}

// Subscribers counts clients listening on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for c := range h.clients {
		if c.channels[channel] {
			n++
		}
	}
	return n
}

func (h *Hub) HandleSubscribe(c *gin.Context) {
	channels := c.QueryArray("channel")
	if len(channels) == 0 {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpChannelRequiredError,
			Message:   "at least one channel query parameter is required",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("[Broadcast] WebSocket upgrade failed", "error", err)
		return
	}

	cl := &client{
		id:       uuid.NewString(),
		conn:     conn,
		channels: make(map[string]bool, len(channels)),
		send:     make(chan []byte, h.sendBuffer),
	}
	for _, ch := range channels {
		cl.channels[ch] = true
	}

	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	slog.Info("[Broadcast] Client connected", "client_id", cl.id, "channels", channels)

	go h.writeLoop(conn, cl)
	h.readLoop(conn, cl)
}

// readLoop only watches for the client going away; inbound frames are ignored.
func (h *Hub) readLoop(conn *websocket.Conn, cl *client) {
	defer func() {
		h.mu.Lock()
		delete(h.clients, cl)
		close(cl.send)
		h.mu.Unlock()
		conn.Close()
		slog.Info("[Broadcast] Client disconnected", "client_id", cl.id)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("[Broadcast] Read error", "client_id", cl.id, "error", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, cl *client) {
	for data := range cl.send {
		conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Warn("[Broadcast] Write failed", "client_id", cl.id, "error", err)
			conn.Close()
			return
		}
	}
}

// Close asks every client to disconnect. Their read loops clean up.
func (h *Hub) Close() {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	deadline := time.Now().Add(h.writeTimeout)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients {
		if err := cl.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
			slog.Debug("[Broadcast] Close frame not sent", "client_id", cl.id, "error", err)
		}
	}
}
