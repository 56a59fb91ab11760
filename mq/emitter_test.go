package mq

import (
	"context"
	"errors"
	"testing"

	"cakepoint/rdx"

	"github.com/redis/go-redis/v9"
)

// A handler fires its emit in a goroutine and returns, cancelling the
// request context. The publish must not be aborted by that cancellation:
// against an unreachable server the failure has to be a transport error,
// never context.Canceled.
func TestPublishOutlivesCallerContext(t *testing.T) {
	old := rdx.Conn
	rdx.Conn = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer func() { rdx.Conn = old }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publish(ctx, []byte(`{"entity":"categories","method":"POST"}`))
	if err == nil {
		t.Fatal("publish to unreachable redis succeeded")
	}
	if errors.Is(err, context.Canceled) {
		t.Fatalf("publish died with the caller's context: %v", err)
	}
}
