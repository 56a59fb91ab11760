package mq

import (
	"context"
	"encoding/json"
	"log"

	"cakepoint/models"
	"cakepoint/rdx"
)

const changeChannel = "catalogue-events"

// Emit publishes a change event to Redis. Handlers call this
// fire-and-forget (usually via `go mq.Emit(...)`) after a successful
// write; the change worker turns it into a snapshot broadcast.
func Emit(ctx context.Context, eventName string, ev models.ChangeEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] failed to marshal %s event: %v", eventName, err)
		return
	}
	if err := publish(ctx, data); err != nil {
		log.Printf("[Emit] failed to publish %s event: %v", eventName, err)
	}
}

// publish detaches from the caller's context before hitting Redis. The
// emitting handler responds and returns without waiting, which cancels
// its request context; the publish must not die with it.
func publish(ctx context.Context, data []byte) error {
	return rdx.Conn.Publish(context.WithoutCancel(ctx), changeChannel, data).Err()
}

// Broadcaster is the part of the subscription hub the worker needs.
type Broadcaster interface {
	Broadcast(room string, data []byte)
}

// ResolveFunc maps a change event to the room it affects and a fresh
// snapshot of that room's collection.
type ResolveFunc func(ctx context.Context, ev models.ChangeEvent) (room string, snapshot []byte, err error)

// StartChangeWorker listens for change events and pushes re-read
// snapshots to subscribed clients. Runs until ctx is cancelled.
func StartChangeWorker(ctx context.Context, hub Broadcaster, resolve ResolveFunc) {
	sub := rdx.Conn.Subscribe(ctx, changeChannel)
	defer sub.Close()
	ch := sub.Channel()

	log.Println("[ChangeWorker] listening for catalogue events")

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev models.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[ChangeWorker] bad event payload: %v", err)
				continue
			}
			room, snapshot, err := resolve(ctx, ev)
			if err != nil {
				log.Printf("[ChangeWorker] snapshot for %+v failed: %v", ev, err)
				continue
			}
			hub.Broadcast(room, snapshot)
		}
	}
}
