// Package pricing computes effective prices for tiered products. All
// functions are pure; handlers feed them already-reconciled records.
package pricing

import "cakepoint/models"

// HasAddOn reports whether a tier unlocks the birthday-pack add-on: the
// price must be present and positive.
func HasAddOn(tier models.QuantityPrice) bool {
	return tier.BirthdayPackPrice != nil && *tier.BirthdayPackPrice > 0
}

// EffectiveUnitPrice is the per-item price for a tier choice. Requesting
// the add-on on a tier that has none is a no-op on price.
func EffectiveUnitPrice(tier models.QuantityPrice, withAddOn bool) float64 {
	price := tier.CakePrice
	if withAddOn && HasAddOn(tier) {
		price += *tier.BirthdayPackPrice
	}
	return price
}

// LineTotal is the price of count items at the given unit price.
func LineTotal(unitPrice float64, count int) float64 {
	return unitPrice * float64(count)
}

// CardDisplayPrice is the "starting price" on the customer catalogue
// card: the first tier in declaration order plus its add-on price when
// one exists. Not necessarily the cheapest tier.
func CardDisplayPrice(p models.Product) float64 {
	if len(p.Quantities) == 0 {
		return 0
	}
	first := p.Quantities[0]
	price := first.CakePrice
	if first.BirthdayPackPrice != nil {
		price += *first.BirthdayPackPrice
	}
	return price
}

// AdminDisplayTier is the tier shown in the admin table row: the cheapest
// by cake price, stable over declaration order for ties. The divergence
// from CardDisplayPrice is deliberate; the two surfaces have always
// disagreed and both behaviors are kept.
func AdminDisplayTier(p models.Product) models.QuantityPrice {
	if len(p.Quantities) == 0 {
		return models.QuantityPrice{}
	}
	cheapest := p.Quantities[0]
	for _, q := range p.Quantities[1:] {
		if q.CakePrice < cheapest.CakePrice {
			cheapest = q
		}
	}
	return cheapest
}
