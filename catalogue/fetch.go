package catalogue

import (
	"context"
	"sort"

	"cakepoint/db"
	"cakepoint/models"
	"cakepoint/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// FetchCategories reads every category, reconciles and sorts for display.
func FetchCategories(ctx context.Context) ([]models.Category, error) {
	raws, err := utils.FindAndDecode[models.RawCategory](ctx, db.CategoriesCollection, bson.M{})
	if err != nil {
		return nil, err
	}
	cats := make([]models.Category, 0, len(raws))
	for _, raw := range raws {
		cats = append(cats, ReconcileCategory(raw))
	}
	SortCategories(cats)
	return cats, nil
}

// Product list orderings. The customer grid is alphabetical; the admin
// table shows newest first.
const (
	SortByName   = "name"
	SortByNewest = "newest"
)

// FetchProducts reads one category's products, reconciled.
func FetchProducts(ctx context.Context, categoryID, sortMode string) ([]models.Product, error) {
	raws, err := utils.FindAndDecode[models.RawProduct](ctx, db.ProductsCollection, bson.M{"categoryId": categoryID})
	if err != nil {
		return nil, err
	}
	prods := make([]models.Product, 0, len(raws))
	for _, raw := range raws {
		prods = append(prods, ReconcileProduct(raw))
	}
	switch sortMode {
	case SortByNewest:
		sort.SliceStable(prods, func(i, j int) bool {
			return prods[i].CreatedAt.After(prods[j].CreatedAt)
		})
	default:
		sort.SliceStable(prods, func(i, j int) bool {
			return prods[i].Name < prods[j].Name
		})
	}
	return prods, nil
}
