package models

// StoreSettings is the single store-wide settings document.
type StoreSettings struct {
	ID             string  `json:"-" bson:"settingsid"`
	DeliveryCharge float64 `json:"deliveryCharge" bson:"deliveryCharge"`
	WhatsAppNumber string  `json:"whatsAppNumber" bson:"whatsAppNumber"`
}
