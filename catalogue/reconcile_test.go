package catalogue

import (
	"testing"

	"cakepoint/models"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func TestFormatName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"chocolate cakes", "Chocolate Cakes"},
		{"  DRY   CAKES  ", "Dry Cakes"},
		{"pastries", "Pastries"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := FormatName(c.in); got != c.want {
			t.Errorf("FormatName(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	// running it twice must not change anything
	once := FormatName("birthday specials")
	if twice := FormatName(once); twice != once {
		t.Errorf("FormatName not idempotent: %q -> %q", once, twice)
	}
}

func TestReconcileCategoryDefaults(t *testing.T) {
	cat := ReconcileCategory(models.RawCategory{ID: "c1", Name: "  "})
	if cat.Name != "Unnamed" {
		t.Errorf("blank name = %q, want Unnamed", cat.Name)
	}
	if cat.Order != 9999 {
		t.Errorf("missing order = %d, want 9999", cat.Order)
	}

	zero := 0
	cat = ReconcileCategory(models.RawCategory{ID: "c2", Name: "cakes", Order: &zero})
	if cat.Order != 0 {
		t.Errorf("explicit zero order = %d, want 0", cat.Order)
	}
}

func TestReconcileProductModernWins(t *testing.T) {
	raw := models.RawProduct{
		ID:   "p1",
		Name: "Choco Truffle",
		Quantities: []models.QuantityPrice{
			{Quantity: "500g", CakePrice: 450},
			{Quantity: "1kg", CakePrice: 850, BirthdayPackPrice: fptr(150)},
		},
		// stale legacy fields must be ignored
		Price:    fptr(999),
		Quantity: sptr("old"),
	}
	p := ReconcileProduct(raw)
	if len(p.Quantities) != 2 {
		t.Fatalf("got %d tiers, want 2", len(p.Quantities))
	}
	if p.IsLegacy {
		t.Error("product with quantities marked legacy")
	}
	if !p.Orderable {
		t.Error("product with priced tiers not orderable")
	}
}

func TestReconcileProductLegacySynthesis(t *testing.T) {
	raw := models.RawProduct{
		ID:        "p2",
		Name:      "Plum Cake",
		Price:     fptr(700),
		HalfPrice: fptr(150),
		Quantity:  sptr("1kg"),
	}
	p := ReconcileProduct(raw)
	if len(p.Quantities) != 1 {
		t.Fatalf("got %d tiers, want 1", len(p.Quantities))
	}
	tier := p.Quantities[0]
	if tier.Quantity != "1kg" || tier.CakePrice != 700 {
		t.Errorf("synthesized tier = %+v", tier)
	}
	if tier.BirthdayPackPrice == nil || *tier.BirthdayPackPrice != 150 {
		t.Errorf("add-on price not carried over: %+v", tier)
	}
	if !p.IsLegacy {
		t.Error("legacy product not flagged")
	}
}

func TestReconcileProductLegacyWithoutQuantityLabel(t *testing.T) {
	p := ReconcileProduct(models.RawProduct{ID: "p3", Name: "Brownie", Price: fptr(120)})
	if p.Quantities[0].Quantity != "Standard" {
		t.Errorf("tier label = %q, want Standard", p.Quantities[0].Quantity)
	}
}

func TestReconcileProductPlaceholder(t *testing.T) {
	// no quantities, no legacy price
	p := ReconcileProduct(models.RawProduct{ID: "p4", Name: "Coming Soon"})
	if len(p.Quantities) != 1 {
		t.Fatalf("got %d tiers, want 1 placeholder", len(p.Quantities))
	}
	if p.Quantities[0].Quantity != "1 Portion" || p.Quantities[0].CakePrice != 0 {
		t.Errorf("placeholder tier = %+v", p.Quantities[0])
	}
	if p.Orderable {
		t.Error("placeholder-only product marked orderable")
	}
	if p.IsLegacy {
		t.Error("placeholder-only product marked legacy")
	}
}

func TestReconcileProductDropsUnpricedTiers(t *testing.T) {
	raw := models.RawProduct{
		ID:   "p5",
		Name: "Cupcake",
		Quantities: []models.QuantityPrice{
			{Quantity: "6pcs", CakePrice: 0},
			{Quantity: "12pcs", CakePrice: 300},
		},
	}
	p := ReconcileProduct(raw)
	if len(p.Quantities) != 1 || p.Quantities[0].Quantity != "12pcs" {
		t.Fatalf("unpriced tier survived: %+v", p.Quantities)
	}

	// all tiers unpriced collapses to the placeholder
	raw.Quantities = []models.QuantityPrice{{Quantity: "6pcs", CakePrice: 0}}
	p = ReconcileProduct(raw)
	if p.Quantities[0].Quantity != "1 Portion" || p.Orderable {
		t.Errorf("all-unpriced product = %+v", p.Quantities)
	}
}

func TestReconcileProductImages(t *testing.T) {
	p := ReconcileProduct(models.RawProduct{
		ID:        "p6",
		Name:      "Red Velvet",
		ImageURLs: []string{"", "a.jpg", "b.jpg"},
	})
	if len(p.ImageURLs) != 2 || p.ImageURL != "a.jpg" {
		t.Errorf("images = %v, primary = %q", p.ImageURLs, p.ImageURL)
	}

	// legacy single image is the fallback when the array is empty
	p = ReconcileProduct(models.RawProduct{
		ID:       "p7",
		Name:     "Pineapple",
		ImageURL: sptr("legacy.jpg"),
	})
	if len(p.ImageURLs) != 1 || p.ImageURL != "legacy.jpg" {
		t.Errorf("legacy image fallback = %v, %q", p.ImageURLs, p.ImageURL)
	}
}

func TestReconcileProductVegDefault(t *testing.T) {
	p := ReconcileProduct(models.RawProduct{ID: "p8", Name: "Vanilla"})
	if !p.IsVeg {
		t.Error("missing isVeg should default to veg")
	}
	no := false
	p = ReconcileProduct(models.RawProduct{ID: "p9", Name: "Chicken Puff", IsVeg: &no})
	if p.IsVeg {
		t.Error("explicit non-veg ignored")
	}
}
