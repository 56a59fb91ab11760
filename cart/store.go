package cart

import (
	"context"
	"encoding/json"

	"cakepoint/models"
	"cakepoint/mq"
	"cakepoint/rdx"

	"github.com/redis/go-redis/v9"
)

// Store persists carts in Redis, one JSON list per cart id. Views never
// touch the key directly; every mutation goes through the store, which
// notifies subscribers so other open views re-read.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}

// Lines returns the cart's current lines. A missing key is an empty
// cart; a corrupted payload is discarded.
func (s *Store) Lines(ctx context.Context, cartID string) []models.CartLine {
	data, err := rdx.Conn.Get(ctx, cartKey(cartID)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return nil
	}
	return decodeLines(data)
}

// save writes the lines back. An empty cart removes the key entirely
// rather than storing an empty list.
func (s *Store) save(ctx context.Context, cartID string, lines []models.CartLine) error {
	if len(lines) == 0 {
		return rdx.Conn.Del(ctx, cartKey(cartID)).Err()
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return rdx.Conn.Set(ctx, cartKey(cartID), data, 0).Err()
}

// notify broadcasts a cart change so every other view of the same cart
// re-reads. Fire-and-forget.
func (s *Store) notify(ctx context.Context, cartID string) {
	go mq.Emit(ctx, "cart-updated", models.ChangeEvent{Entity: "cart", Method: "PUT", CartID: cartID})
}

// AddLine merges a line into the cart and persists.
func (s *Store) AddLine(ctx context.Context, cartID string, line models.CartLine) ([]models.CartLine, error) {
	lines := MergeLine(s.Lines(ctx, cartID), line)
	if err := s.save(ctx, cartID, lines); err != nil {
		return nil, err
	}
	s.notify(ctx, cartID)
	return lines, nil
}

// Adjust applies a stepper delta to one line and persists.
func (s *Store) Adjust(ctx context.Context, cartID string, index, delta int) ([]models.CartLine, error) {
	lines := AdjustCount(s.Lines(ctx, cartID), index, delta)
	if err := s.save(ctx, cartID, lines); err != nil {
		return nil, err
	}
	s.notify(ctx, cartID)
	return lines, nil
}

// Remove drops one line and persists.
func (s *Store) Remove(ctx context.Context, cartID string, index int) ([]models.CartLine, error) {
	lines := RemoveLine(s.Lines(ctx, cartID), index)
	if err := s.save(ctx, cartID, lines); err != nil {
		return nil, err
	}
	s.notify(ctx, cartID)
	return lines, nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	if err := s.save(ctx, cartID, nil); err != nil {
		return err
	}
	s.notify(ctx, cartID)
	return nil
}
