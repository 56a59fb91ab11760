package subscribe

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "categories",
	}
	if !hub.Register(client) {
		t.Fatal("register refused on a running hub")
	}

	data := []byte(`{"room":"categories","payload":[]}`)
	hub.Broadcast("categories", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.Unregister(client)
}

func TestHubRoomsAreIsolated(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	cartClient := &Client{Send: make(chan []byte, 10), Room: "cart:abc"}
	catClient := &Client{Send: make(chan []byte, 10), Room: "categories"}
	hub.Register(cartClient)
	hub.Register(catClient)

	hub.Broadcast("cart:abc", []byte("cart update"))

	select {
	case got := <-cartClient.Send:
		if string(got) != "cart update" {
			t.Fatalf("cart client got %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for cart update")
	}

	select {
	case got := <-catClient.Send:
		t.Fatalf("categories client leaked message: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubStopUnblocksRegister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	client := &Client{Send: make(chan []byte, 1), Room: "categories"}
	done := make(chan bool, 1)
	go func() { done <- hub.Register(client) }()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("register succeeded on a stopped hub")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("register blocked on a stopped hub")
	}

	// unregister must not block either
	go func() { hub.Unregister(client); done <- true }()
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("unregister blocked on a stopped hub")
	}
}

func TestSendToDetachedClientIsSafe(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 1), Room: "categories"}

	// never registered: dropped, no panic
	hub.SendTo(client, []byte("early snapshot"))
	select {
	case got := <-client.Send:
		t.Fatalf("unregistered client received %s", got)
	default:
	}

	hub.Register(client)
	hub.Unregister(client)
	// the hub closed Send on unregister; a late snapshot must be a no-op
	hub.SendTo(client, []byte("late snapshot"))
}

func TestSendToRegisteredClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 1), Room: "settings"}
	hub.Register(client)

	// give the run loop a moment to process the registration
	deadline := time.After(1 * time.Second)
	for {
		hub.SendTo(client, []byte("snapshot"))
		select {
		case got := <-client.Send:
			if string(got) != "snapshot" {
				t.Fatalf("got %s", got)
			}
			return
		default:
		}
		select {
		case <-deadline:
			t.Fatal("snapshot never delivered")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestValidRoom(t *testing.T) {
	for room, want := range map[string]bool{
		"categories":  true,
		"settings":    true,
		"products:c1": true,
		"cart:abc":    true,
		"products:":   false,
		"cart:":       false,
		"orders":      false,
		"":            false,
	} {
		if got := validRoom(room); got != want {
			t.Errorf("validRoom(%q) = %v, want %v", room, got, want)
		}
	}
}
