package search

import (
	"testing"

	"cakepoint/models"
)

func fixtureEntries() []CatalogueEntry {
	cats := []models.Category{
		{ID: "c1", Name: "Cakes"},
		{ID: "c2", Name: "Pastries"},
	}
	byCat := map[string][]models.Product{
		"c1": {
			{ID: "p1", Name: "Choco Truffle", Description: "dark chocolate", IsVeg: true},
			{ID: "p2", Name: "Chicken Quiche", IsVeg: false},
		},
		"c2": {
			{ID: "p3", Name: "Veg Puff", IsVeg: true},
		},
	}
	return Flatten(cats, byCat)
}

func TestFlatten(t *testing.T) {
	entries := fixtureEntries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].CategoryName != "Cakes" || entries[2].CategoryName != "Pastries" {
		t.Errorf("category names not carried: %+v", entries)
	}

	// products of an unknown category are dropped
	orphaned := map[string][]models.Product{"ghost": {{ID: "px"}}}
	if got := Flatten([]models.Category{{ID: "c1"}}, orphaned); len(got) != 0 {
		t.Errorf("orphaned products surfaced: %+v", got)
	}
}

func TestFilterBySearch(t *testing.T) {
	entries := fixtureEntries()

	if got := FilterBySearch(entries, ""); len(got) != 3 {
		t.Errorf("blank query dropped entries: %d", len(got))
	}

	// case-insensitive, matches name
	got := FilterBySearch(entries, "CHOCO")
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("name match = %+v", got)
	}

	// matches description
	got = FilterBySearch(entries, "dark")
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("description match = %+v", got)
	}

	// the category name is grouping metadata, not a search field
	if got = FilterBySearch(entries, "pastr"); len(got) != 0 {
		t.Errorf("category name matched: %+v", got)
	}

	if got = FilterBySearch(entries, "sushi"); len(got) != 0 {
		t.Errorf("bogus query matched: %+v", got)
	}
}

func TestFilterByDiet(t *testing.T) {
	entries := fixtureEntries()

	veg := FilterByDiet(entries, DietVeg)
	if len(veg) != 2 {
		t.Errorf("veg filter = %d entries, want 2", len(veg))
	}

	nonveg := FilterByDiet(entries, DietNonVeg)
	if len(nonveg) != 1 || nonveg[0].ID != "p2" {
		t.Errorf("nonveg filter = %+v", nonveg)
	}

	// "all" and anything unrecognized keep the full menu
	if got := FilterByDiet(entries, DietAll); len(got) != 3 {
		t.Errorf("all filter dropped entries: %d", len(got))
	}
	if got := FilterByDiet(entries, "keto"); len(got) != 3 {
		t.Errorf("unknown filter dropped entries: %d", len(got))
	}
}
