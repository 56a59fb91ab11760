package settings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"cakepoint/db"
	"cakepoint/models"
	"cakepoint/mq"
	"cakepoint/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	settingsID            = "store"
	defaultDeliveryCharge = 50
)

// Defaults returns the settings used before anything has been saved. The
// WhatsApp number comes from the environment so a fresh deployment can
// receive orders without touching the admin panel first.
func Defaults() models.StoreSettings {
	return models.StoreSettings{
		ID:             settingsID,
		DeliveryCharge: defaultDeliveryCharge,
		WhatsAppNumber: os.Getenv("WHATSAPP_NUMBER"),
	}
}

// Fetch loads the store settings, falling back to defaults when the
// document is missing or the read fails. Callers never see an error here;
// the storefront must keep working on defaults.
func Fetch(ctx context.Context) models.StoreSettings {
	var cfg models.StoreSettings
	err := db.SettingsCollection.FindOne(ctx, bson.M{"settingsid": settingsID}).Decode(&cfg)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Println("settings fetch error:", err)
		}
		return Defaults()
	}
	if cfg.WhatsAppNumber == "" {
		cfg.WhatsAppNumber = os.Getenv("WHATSAPP_NUMBER")
	}
	return cfg
}

// GetSettings serves the effective settings to the storefront.
func GetSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, Fetch(r.Context()))
}

// UpdateSettings upserts the singleton settings document.
func UpdateSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		DeliveryCharge *float64 `json:"deliveryCharge"`
		WhatsAppNumber *string  `json:"whatsAppNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	fields := bson.M{}
	if body.DeliveryCharge != nil {
		if *body.DeliveryCharge < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "deliveryCharge cannot be negative")
			return
		}
		fields["deliveryCharge"] = *body.DeliveryCharge
	}
	if body.WhatsAppNumber != nil {
		fields["whatsAppNumber"] = *body.WhatsAppNumber
	}
	if len(fields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	_, err := db.SettingsCollection.UpdateOne(ctx,
		bson.M{"settingsid": settingsID},
		bson.M{"$set": fields, "$setOnInsert": bson.M{"settingsid": settingsID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Println("settings update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	mq.Emit(ctx, "settings-updated", models.ChangeEvent{Entity: "settings", Method: "PATCH"})
	utils.RespondWithJSON(w, http.StatusOK, Fetch(ctx))
}
