package catalogue

import (
	"strings"
	"unicode"

	"cakepoint/models"
)

// Fallbacks used when a record carries no usable value.
const (
	unnamedCategory  = "Unnamed"
	unnamedProduct   = "Unnamed Item"
	standardTier     = "Standard"
	placeholderTier  = "1 Portion"
	unorderedSortKey = 9999
)

// FormatName title-cases a display name: leading/trailing whitespace
// trimmed, internal runs collapsed to single spaces, each word first-rune
// upper and the rest lower. Idempotent.
func FormatName(raw string) string {
	words := strings.Fields(raw)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ReconcileCategory normalizes a raw category document. Missing order
// sorts after every explicitly ordered category.
func ReconcileCategory(raw models.RawCategory) models.Category {
	name := FormatName(raw.Name)
	if name == "" {
		name = unnamedCategory
	}
	order := unorderedSortKey
	if raw.Order != nil {
		order = *raw.Order
	}
	return models.Category{
		ID:        raw.ID,
		Name:      name,
		ImageURL:  raw.ImageURL,
		Order:     order,
		CreatedAt: raw.CreatedAt,
	}
}

// ReconcileProduct normalizes a raw product document to the canonical
// multi-tier shape. This is the only place where the legacy single-price
// schema is resolved:
//
//  1. a non-empty quantities array is authoritative;
//  2. otherwise a legacy price synthesizes a single tier from the scalar
//     fields;
//  3. otherwise a zero-price placeholder keeps the record displayable.
//
// Tiers without a positive price are dropped before the placeholder rule,
// so a product is Orderable only when a real tier survived.
func ReconcileProduct(raw models.RawProduct) models.Product {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = unnamedProduct
	}

	var tiers []models.QuantityPrice
	if len(raw.Quantities) > 0 {
		for _, q := range raw.Quantities {
			label := strings.TrimSpace(q.Quantity)
			if label == "" {
				label = standardTier
			}
			tiers = append(tiers, models.QuantityPrice{
				Quantity:          label,
				CakePrice:         q.CakePrice,
				BirthdayPackPrice: q.BirthdayPackPrice,
			})
		}
	} else if raw.Price != nil {
		label := standardTier
		if raw.Quantity != nil && strings.TrimSpace(*raw.Quantity) != "" {
			label = strings.TrimSpace(*raw.Quantity)
		}
		tiers = append(tiers, models.QuantityPrice{
			Quantity:          label,
			CakePrice:         *raw.Price,
			BirthdayPackPrice: raw.HalfPrice,
		})
	}

	orderable := tiers[:0:0]
	for _, t := range tiers {
		if t.CakePrice > 0 {
			orderable = append(orderable, t)
		}
	}
	tiers = orderable
	if len(tiers) == 0 {
		tiers = []models.QuantityPrice{{Quantity: placeholderTier, CakePrice: 0}}
	}

	images := raw.ImageURLs[:0:0]
	for _, u := range raw.ImageURLs {
		if u != "" {
			images = append(images, u)
		}
	}
	if len(images) == 0 && raw.ImageURL != nil && *raw.ImageURL != "" {
		images = []string{*raw.ImageURL}
	}
	best := ""
	if len(images) > 0 {
		best = images[0]
	}
	if len(images) == 0 {
		images = nil
	}

	p := models.Product{
		ID:         raw.ID,
		CategoryID: raw.CategoryID,
		Name:       name,
		Quantities: tiers,
		ImageURLs:  images,
		ImageURL:   best,
		IsVeg:      true,
		IsLegacy:   len(raw.Quantities) == 0 && raw.Price != nil,
		Orderable:  tiers[0].CakePrice > 0,
		CreatedAt:  raw.CreatedAt,
		UpdatedAt:  raw.UpdatedAt,
	}
	if raw.Description != nil {
		p.Description = strings.TrimSpace(*raw.Description)
	}
	if raw.IsVeg != nil {
		p.IsVeg = *raw.IsVeg
	}
	return p
}
