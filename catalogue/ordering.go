package catalogue

import (
	"context"
	"sort"

	"cakepoint/db"
	"cakepoint/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SortCategories orders by the persisted order key ascending; equal keys
// fall back to creation time, newest first, so freshly created categories
// surface before other never-reordered ones.
func SortCategories(list []models.Category) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// Reorder removes the category with movedID and reinserts it immediately
// before the current position of targetID. No-op when the ids are equal
// or either is absent. Pure: the input slice is not modified.
func Reorder(list []models.Category, movedID, targetID string) []models.Category {
	if movedID == targetID {
		return list
	}
	movedIdx, targetIdx := -1, -1
	for i, c := range list {
		switch c.ID {
		case movedID:
			movedIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if movedIdx == -1 || targetIdx == -1 {
		return list
	}

	out := make([]models.Category, 0, len(list))
	out = append(out, list[:movedIdx]...)
	out = append(out, list[movedIdx+1:]...)

	// Insert at the target's pre-removal index, which lands the moved
	// category in the slot the drop happened on.
	out = append(out[:targetIdx], append([]models.Category{list[movedIdx]}, out[targetIdx:]...)...)
	return out
}

// orderWrites builds one update per category assigning its display index
// as the persisted order key, so a full pass always leaves a dense
// 0..N-1 sequence.
func orderWrites(ordered []models.Category) []mongo.WriteModel {
	writes := make([]mongo.WriteModel, 0, len(ordered))
	for i, c := range ordered {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"catid": c.ID}).
			SetUpdate(bson.M{"$set": bson.M{"order": i}}))
	}
	return writes
}

// PersistOrder writes order = index for every category in display order as
// one ordered bulk write. The caller does not wait for the subscription
// echo; local state is refreshed by the snapshot broadcast.
func PersistOrder(ctx context.Context, ordered []models.Category) error {
	if len(ordered) == 0 {
		return nil
	}
	_, err := db.CategoriesCollection.BulkWrite(ctx, orderWrites(ordered))
	return err
}
