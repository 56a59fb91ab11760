package models

// CartLine is a single selected item in a cart. Two additions merge into
// one line when ProductID, TierLabel and WithAddOn all match.
type CartLine struct {
	ProductID         string   `json:"productId"`
	Name              string   `json:"name"`
	UnitPrice         float64  `json:"unitPrice"` // cakePrice + add-on when selected
	CakePrice         float64  `json:"cakePrice"`
	BirthdayPackPrice *float64 `json:"birthdayPackPrice,omitempty"`
	QuantityCount     int      `json:"quantityCount"`
	TierLabel         string   `json:"tierLabel"`
	WithAddOn         bool     `json:"withAddOn"`
	IsVeg             bool     `json:"isVeg"`
	ImageURL          string   `json:"imageUrl,omitempty"`
}

// Order modes.
const (
	ModeDelivery = "delivery"
	ModeTakeaway = "takeaway"
)

// CartTotals is the derived price summary for a cart.
type CartTotals struct {
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
	Delivery  float64 `json:"delivery"` // 0 for takeaway
	Total     float64 `json:"total"`
}

// DraftOrderRequest carries the customer details for composing a draft
// order. Mode is "delivery" or "takeaway".
type DraftOrderRequest struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes,omitempty"`
	Address      string `json:"address,omitempty"`
	Mode         string `json:"mode"`
}
