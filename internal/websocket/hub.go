package websocket

import (
	"encoding/json"
	"sync"

	"github.com/asif-dev/machbazar-storefront/pkg/logger"
)

// Cart event types pushed to subscribed storefront tabs.
const (
	EventCartUpdated   = "cart_updated"
	EventCartCleared   = "cart_cleared"
	EventQuoteUpdated  = "quote_updated"
	EventOrderProgress = "order_progress"
)

// CartEvent is the message pushed to every tab watching a cart key.
type CartEvent struct {
	Type    string      `json:"type"`
	CartKey string      `json:"cart_key"`
	Payload interface{} `json:"payload,omitempty"`
}

// Client is one websocket session watching a single cart key.
type Client struct {
	Hub     *Hub
	Conn    *Conn
	CartKey string
	Send    chan []byte
}

// Hub fans cart events out to every open tab of the same cart.
type Hub struct {
	// CartKey -> open sessions (same cart can be open in several tabs)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *outbound

	mu sync.RWMutex
}

type outbound struct {
	cartKey string
	message []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *outbound, 1024),
	}
}

// Run processes registration and fan-out. Call once from main in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.CartKey] = append(h.clients[client.CartKey], client)
			sessions := len(h.clients[client.CartKey])
			h.mu.Unlock()
			logger.Info("cart watcher registered", map[string]interface{}{
				"cart_key": client.CartKey,
				"sessions": sessions,
			})

		case client := <-h.unregister:
			// a session can be unregistered twice: once by the fan-out
			// loop dropping a slow client and once by its own read pump
			// teardown. Only the removal that finds it still registered
			// may close Send.
			h.mu.Lock()
			found := false
			if list, ok := h.clients[client.CartKey]; ok {
				newList := make([]*Client, 0, len(list))
				for _, c := range list {
					if c == client {
						found = true
						continue
					}
					newList = append(newList, c)
				}
				if found {
					if len(newList) == 0 {
						delete(h.clients, client.CartKey)
					} else {
						h.clients[client.CartKey] = newList
					}
					close(client.Send)
				}
			}
			h.mu.Unlock()
			if found {
				logger.Debug("cart watcher unregistered", map[string]interface{}{
					"cart_key": client.CartKey,
				})
			}

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[msg.cartKey] {
				select {
				case client.Send <- msg.message:
				default:
					// send buffer full, drop the session asynchronously
					go h.Unregister(client)
					logger.Warn("cart watcher send buffer full, disconnecting", map[string]interface{}{
						"cart_key": msg.cartKey,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish sends a cart event to every session watching the cart key.
// Delivery is best effort; a full broadcast queue drops the event.
func (h *Hub) Publish(cartKey string, event CartEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal cart event", err, nil)
		return
	}

	select {
	case h.broadcast <- &outbound{cartKey: cartKey, message: data}:
	default:
		logger.Warn("cart event queue full, event dropped", map[string]interface{}{
			"cart_key": cartKey,
			"type":     event.Type,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Watchers reports how many sessions currently watch a cart key.
func (h *Hub) Watchers(cartKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[cartKey])
}
