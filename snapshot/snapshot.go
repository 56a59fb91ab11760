// Package snapshot turns change events and room names into the JSON
// payloads pushed over the subscription hub. It is the one place that
// knows which collection each room mirrors.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cakepoint/cart"
	"cakepoint/catalogue"
	"cakepoint/models"
	"cakepoint/settings"
)

type Resolver struct {
	Cart *cart.Store
}

// RoomFor names the room a change event belongs to.
func RoomFor(ev models.ChangeEvent) string {
	switch ev.Entity {
	case "categories":
		return "categories"
	case "products":
		return "products:" + ev.CategoryID
	case "cart":
		return "cart:" + ev.CartID
	case "settings":
		return "settings"
	}
	return ""
}

// Resolve re-reads the collection a change event touched and returns the
// room plus its fresh snapshot. Wired into the change worker.
func (r *Resolver) Resolve(ctx context.Context, ev models.ChangeEvent) (string, []byte, error) {
	room := RoomFor(ev)
	if room == "" {
		return "", nil, fmt.Errorf("snapshot: unknown entity %q", ev.Entity)
	}
	data, err := r.Snapshot(ctx, room)
	return room, data, err
}

// Snapshot builds the current payload for a room. Also used to seed new
// websocket subscribers.
func (r *Resolver) Snapshot(ctx context.Context, room string) ([]byte, error) {
	switch {
	case room == "categories":
		cats, err := catalogue.FetchCategories(ctx)
		if err != nil {
			return nil, err
		}
		return marshalSnapshot(room, cats)

	case strings.HasPrefix(room, "products:"):
		catID := strings.TrimPrefix(room, "products:")
		prods, err := catalogue.FetchProducts(ctx, catID, catalogue.SortByName)
		if err != nil {
			return nil, err
		}
		return marshalSnapshot(room, prods)

	case strings.HasPrefix(room, "cart:"):
		cartID := strings.TrimPrefix(room, "cart:")
		lines := r.Cart.Lines(ctx, cartID)
		if lines == nil {
			lines = []models.CartLine{}
		}
		return marshalSnapshot(room, lines)

	case room == "settings":
		return marshalSnapshot(room, settings.Fetch(ctx))
	}
	return nil, fmt.Errorf("snapshot: unknown room %q", room)
}

func marshalSnapshot(room string, payload interface{}) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"room":    room,
		"payload": payload,
	})
}
