package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

const (
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
	EventSaleCreated    = "sale_created"
	EventSaleUpdated    = "sale_updated"
	EventSaleDeleted    = "sale_deleted"
)

// Event is the payload pushed to an owner's open sockets after a mutation commits
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Conn is the part of *websocket.Conn the hub needs
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Subscription struct {
	OwnerID string
	Conn    Conn
}

type Message struct {
	OwnerID string
	Payload []byte
}

// Hub fans events out to the sockets of a single owner. Clients is only
// touched by the Run goroutine and under mutex.
type Hub struct {
	Clients    map[string]map[Conn]bool
	Register   chan Subscription
	Unregister chan Subscription
	Broadcast  chan Message
	mutex      sync.Mutex
	done       chan struct{}
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		Clients:    make(map[string]map[Conn]bool),
		Register:   make(chan Subscription),
		Unregister: make(chan Subscription),
		Broadcast:  make(chan Message, 256),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for _, conns := range h.Clients {
				for conn := range conns {
					conn.Close()
				}
			}
			h.Clients = make(map[string]map[Conn]bool)
			h.mutex.Unlock()
			return

		case sub := <-h.Register:
			h.mutex.Lock()
			if h.Clients[sub.OwnerID] == nil {
				h.Clients[sub.OwnerID] = make(map[Conn]bool)
			}
			h.Clients[sub.OwnerID][sub.Conn] = true
			h.mutex.Unlock()
			h.log.Debug("websocket client connected", zap.String("owner_id", sub.OwnerID))

		case sub := <-h.Unregister:
			h.mutex.Lock()
			h.remove(sub.OwnerID, sub.Conn)
			h.mutex.Unlock()

		case msg := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients[msg.OwnerID] {
				if err := conn.WriteMessage(websocket.TextMessage, msg.Payload); err != nil {
					h.remove(msg.OwnerID, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// remove must be called with the mutex held
func (h *Hub) remove(ownerID string, conn Conn) {
	conns, ok := h.Clients[ownerID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; ok {
		delete(conns, conn)
		conn.Close()
	}
	if len(conns) == 0 {
		delete(h.Clients, ownerID)
	}
}

// Subscribe adds a socket to its owner's fan-out. It returns false once the
// hub has stopped.
func (h *Hub) Subscribe(sub Subscription) bool {
	select {
	case h.Register <- sub:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unsubscribe(sub Subscription) {
	select {
	case h.Unregister <- sub:
	case <-h.done:
	}
}

// Publish queues an event for the owner's sockets. It never blocks the caller:
// when the queue is full the event is dropped, clients resync on next fetch.
func (h *Hub) Publish(ownerID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to encode websocket event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	select {
	case h.Broadcast <- Message{OwnerID: ownerID, Payload: payload}:
	case <-h.done:
	default:
		h.log.Warn("websocket broadcast queue full, dropping event", zap.String("type", event.Type))
	}
}

// ClientCount reports how many sockets an owner has open
func (h *Hub) ClientCount(ownerID string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients[ownerID])
}
