package utils

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

func GetUUID() string {
	return uuid.New().String()
}

// FindAndDecode runs a Find with the given filter and decodes every
// document into a slice of T.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter any) ([]T, error) {
	cur, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
