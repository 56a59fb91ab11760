package subscribe

import (
	"sync"
)

// Client is one websocket subscriber pinned to a single room.
type Client struct {
	Send chan []byte
	Room string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

// Hub fans snapshot payloads out to every subscriber of a room. Rooms are
// named after what they watch: "categories", "products:<categoryId>",
// "cart:<cartId>" and "settings".
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Broadcast queues a payload for every subscriber of the room.
func (h *Hub) Broadcast(room string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{Room: room, Data: data}:
	case <-h.done:
	}
}

// Register attaches a client to its room. Returns false when the hub has
// already stopped, so callers never block against a dead run loop.
func (h *Hub) Register(c *Client) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister detaches a client; safe after Stop.
func (h *Hub) Unregister(c *Client) {
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// SendTo delivers a payload to one client if it is still attached. The
// registration check and the send happen under the hub lock, the same
// lock that guards closing the client's channel, so a disconnect racing
// the send can never panic.
func (h *Hub) SendTo(c *Client, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns := h.rooms[c.Room]; conns[c] {
		select {
		case c.Send <- data:
		default:
		}
	}
}

// Stop shuts the run loop down and disconnects every client.
func (h *Hub) Stop() {
	close(h.done)
}
