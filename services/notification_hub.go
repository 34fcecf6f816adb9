package services

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/techagentng/cleancity/models"
)

const hubWriteWait = 10 * time.Second

// wsConn is the part of *websocket.Conn the hub writes through.
type wsConn interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
	Close() error
}

type hubClient struct {
	mu   sync.Mutex
	conn wsConn
}

func (c *hubClient) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(hubWriteWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

// Hub fans notifications out to users' open websocket connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*hubClient]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*hubClient]struct{})}
}

// Register attaches conn to userID and returns the function that detaches it.
func (h *Hub) Register(userID uint, conn wsConn) func() {
	client := &hubClient{conn: conn}
	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*hubClient]struct{})
	}
	h.clients[userID][client] = struct{}{}
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.clients[userID], client)
		if len(h.clients[userID]) == 0 {
			delete(h.clients, userID)
		}
		h.mu.Unlock()
		_ = conn.Close()
	}
}

// Connected reports how many live connections userID has.
func (h *Hub) Connected(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) Name() string { return "websocket" }

func (h *Hub) Deliver(_ context.Context, user *models.User, n *models.Notification) error {
	h.mu.RLock()
	targets := make([]*hubClient, 0, len(h.clients[user.ID]))
	for c := range h.clients[user.ID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	var firstErr error
	for _, c := range targets {
		if err := c.write(n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ wsConn = (*websocket.Conn)(nil)
