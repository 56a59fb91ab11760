package subscribe

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// SnapshotFunc produces the current payload for a room so a freshly
// connected client starts from live state instead of waiting for the next
// mutation.
type SnapshotFunc func(ctx context.Context, room string) ([]byte, error)

func validRoom(room string) bool {
	switch {
	case room == "categories", room == "settings":
		return true
	case strings.HasPrefix(room, "products:") && len(room) > len("products:"):
		return true
	case strings.HasPrefix(room, "cart:") && len(room) > len("cart:"):
		return true
	}
	return false
}

// WebSocketHandler upgrades the connection, sends the room's current
// snapshot and then streams every broadcast until the client goes away.
func WebSocketHandler(hub *Hub, snap SnapshotFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("room")
		if !validRoom(room) {
			http.Error(w, "unknown room", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Send: make(chan []byte, 256),
			Room: room,
		}
		if !hub.Register(client) {
			conn.Close()
			return
		}
		go writePump(client, conn)
		go readPump(client, conn, hub)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			data, err := snap(ctx, room)
			if err != nil {
				log.Println("snapshot:", err)
				return
			}
			if data != nil {
				hub.SendTo(client, data)
			}
		}()
	}
}

func writePump(c *Client, conn *websocket.Conn) {
	defer conn.Close()
	for msg := range c.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump discards inbound frames; the stream is one-way. Reading is
// still required to notice disconnects and answer control frames.
func readPump(c *Client, conn *websocket.Conn, hub *Hub) {
	defer func() {
		hub.Unregister(c)
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
