package search

import (
	"cakepoint/models"
	"cakepoint/utils"
)

// Diet filter values accepted on the catalogue search endpoint.
const (
	DietAll    = "all"
	DietVeg    = "veg"
	DietNonVeg = "nonveg"
)

// CatalogueEntry is one product flattened out of its category, carrying
// the category name so results can be grouped client-side.
type CatalogueEntry struct {
	models.Product
	CategoryName string `json:"categoryName"`
	CategoryID   string `json:"categoryId"`
}

// Flatten pairs each product with its owning category. Products whose
// category is unknown are skipped.
func Flatten(categories []models.Category, productsByCat map[string][]models.Product) []CatalogueEntry {
	var out []CatalogueEntry
	for _, cat := range categories {
		for _, p := range productsByCat[cat.ID] {
			out = append(out, CatalogueEntry{
				Product:      p,
				CategoryName: cat.Name,
				CategoryID:   cat.ID,
			})
		}
	}
	return out
}

// FilterBySearch keeps entries whose name or description contains the
// query, case-insensitively. A blank query keeps everything.
func FilterBySearch(entries []CatalogueEntry, query string) []CatalogueEntry {
	if query == "" {
		return entries
	}
	var out []CatalogueEntry
	for _, e := range entries {
		if matches(e, query) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e CatalogueEntry, query string) bool {
	return utils.ContainsIgnoreCase(e.Name, query) ||
		utils.ContainsIgnoreCase(e.Description, query)
}

// FilterByDiet keeps veg or non-veg entries. Unknown filter values behave
// like "all" so a stale client never sees an empty menu.
func FilterByDiet(entries []CatalogueEntry, diet string) []CatalogueEntry {
	if diet != DietVeg && diet != DietNonVeg {
		return entries
	}
	wantVeg := diet == DietVeg
	var out []CatalogueEntry
	for _, e := range entries {
		if e.IsVeg == wantVeg {
			out = append(out, e)
		}
	}
	return out
}
