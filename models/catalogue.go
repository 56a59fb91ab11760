package models

import "time"

// QuantityPrice is one quantity tier on a product: a label like "1kg" or
// "6pcs", the base cake price and an optional birthday-pack add-on price.
type QuantityPrice struct {
	Quantity          string   `json:"quantity" bson:"quantity"`
	CakePrice         float64  `json:"cakePrice" bson:"cakePrice"`
	BirthdayPackPrice *float64 `json:"birthdayPackPrice,omitempty" bson:"birthdayPackPrice,omitempty"`
}

// RawCategory mirrors a category document as stored, before any
// normalization. Order is a pointer so an absent field is distinguishable
// from 0.
type RawCategory struct {
	ID        string    `bson:"catid"`
	Name      string    `bson:"name"`
	ImageURL  string    `bson:"imageUrl"`
	Order     *int      `bson:"order"`
	CreatedAt time.Time `bson:"createdAt"`
}

// Category is the canonical shape served to clients.
type Category struct {
	ID        string    `json:"id" bson:"catid"`
	Name      string    `json:"name" bson:"name"`
	ImageURL  string    `json:"imageUrl" bson:"imageUrl"`
	Order     int       `json:"order" bson:"order"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// RawProduct mirrors a product document as stored. Records created before
// the multi-tier schema carry the legacy scalar fields instead of
// Quantities.
type RawProduct struct {
	ID          string          `bson:"productid"`
	CategoryID  string          `bson:"categoryId"`
	Name        string          `bson:"name"`
	Description *string         `bson:"description"`
	Quantities  []QuantityPrice `bson:"quantities"`
	Price       *float64        `bson:"price"`
	HalfPrice   *float64        `bson:"halfPrice"`
	Quantity    *string         `bson:"quantity"`
	ImageURLs   []string        `bson:"imageUrls"`
	ImageURL    *string         `bson:"imageUrl"`
	IsVeg       *bool           `bson:"isVeg"`
	CreatedAt   time.Time       `bson:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt"`
}

// Product is the canonical shape served to clients. Quantities is always
// non-empty after reconciliation; Orderable reports whether any tier has a
// positive price (a placeholder-only product is display-only).
type Product struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"categoryId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantities  []QuantityPrice `json:"quantities"`
	ImageURLs   []string        `json:"imageUrls,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	IsVeg       bool            `json:"isVeg"`
	IsLegacy    bool            `json:"isLegacy,omitempty"`
	Orderable   bool            `json:"orderable"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty"`
}

// ChangeEvent is emitted after every storage mutation so subscribers can
// re-read the affected snapshot.
type ChangeEvent struct {
	Entity     string `json:"entity"` // "categories", "products", "cart", "settings"
	Method     string `json:"method"`
	CategoryID string `json:"categoryId,omitempty"`
	CartID     string `json:"cartId,omitempty"`
}
