package pricing

import "cakepoint/models"

// Selection tracks one open product-detail session: which tier is
// chosen, whether the add-on is taken, and how many items. Fresh state is
// always tier 0, no add-on, count 1.
type Selection struct {
	product   models.Product
	TierIndex int
	WithAddOn bool
	Count     int
}

func NewSelection(p models.Product) *Selection {
	return &Selection{product: p, Count: 1}
}

// SelectTier switches tiers and always clears the add-on choice, since
// add-on availability and price are tier-specific. Out-of-range indexes
// are ignored.
func (s *Selection) SelectTier(i int) {
	if i < 0 || i >= len(s.product.Quantities) {
		return
	}
	s.TierIndex = i
	s.WithAddOn = false
}

// ToggleAddOn sets the add-on choice; a no-op when the current tier has
// no add-on price.
func (s *Selection) ToggleAddOn(on bool) {
	if !HasAddOn(s.Tier()) {
		return
	}
	s.WithAddOn = on
}

// SetCount clamps to a minimum of one item.
func (s *Selection) SetCount(n int) {
	if n < 1 {
		n = 1
	}
	s.Count = n
}

// Tier is the currently selected quantity tier.
func (s *Selection) Tier() models.QuantityPrice {
	return s.product.Quantities[s.TierIndex]
}

func (s *Selection) UnitPrice() float64 {
	return EffectiveUnitPrice(s.Tier(), s.WithAddOn)
}

func (s *Selection) TotalPrice() float64 {
	return LineTotal(s.UnitPrice(), s.Count)
}

// CartLine materializes the selection as a cart line ready for merging.
func (s *Selection) CartLine() models.CartLine {
	tier := s.Tier()
	line := models.CartLine{
		ProductID:     s.product.ID,
		Name:          s.product.Name,
		UnitPrice:     s.UnitPrice(),
		CakePrice:     tier.CakePrice,
		QuantityCount: s.Count,
		TierLabel:     tier.Quantity,
		WithAddOn:     s.WithAddOn && HasAddOn(tier),
		IsVeg:         s.product.IsVeg,
		ImageURL:      s.product.ImageURL,
	}
	if HasAddOn(tier) {
		line.BirthdayPackPrice = tier.BirthdayPackPrice
	}
	return line
}
