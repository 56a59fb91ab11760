package snapshot

import (
	"testing"

	"cakepoint/models"
)

func TestRoomFor(t *testing.T) {
	cases := []struct {
		ev   models.ChangeEvent
		want string
	}{
		{models.ChangeEvent{Entity: "categories", Method: "POST"}, "categories"},
		{models.ChangeEvent{Entity: "products", CategoryID: "c1"}, "products:c1"},
		{models.ChangeEvent{Entity: "cart", CartID: "abc"}, "cart:abc"},
		{models.ChangeEvent{Entity: "settings"}, "settings"},
		{models.ChangeEvent{Entity: "bogus"}, ""},
	}
	for _, c := range cases {
		if got := RoomFor(c.ev); got != c.want {
			t.Errorf("RoomFor(%+v) = %q, want %q", c.ev, got, c.want)
		}
	}
}
