package catalogue

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"cakepoint/db"
	"cakepoint/models"
	"cakepoint/mq"
	"cakepoint/rdx"
	"cakepoint/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func productsCacheKey(catID string) string {
	return "catalogue:products:" + catID
}

// productBody is the admin dialog payload for create and edit.
type productBody struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Quantities  []models.QuantityPrice `json:"quantities"`
	ImageURLs   []string               `json:"imageUrls"`
	IsVeg       *bool                  `json:"isVeg"`
}

// validate enforces the admin dialog rules: a name, and at least one tier
// with a non-blank label and a positive cake price.
func (b *productBody) validate() string {
	if strings.TrimSpace(b.Name) == "" {
		return "Name is required"
	}
	if len(b.Quantities) == 0 {
		return "At least one quantity is required"
	}
	for _, q := range b.Quantities {
		if strings.TrimSpace(q.Quantity) == "" || q.CakePrice <= 0 {
			return "All quantities must have a label and valid cake price"
		}
	}
	return ""
}

// fields builds the document fields shared by create and edit. Tier
// labels are trimmed and a zero or negative add-on price is stored as
// null, matching what the dialogs save.
func (b *productBody) fields() bson.M {
	quantities := make([]models.QuantityPrice, 0, len(b.Quantities))
	for _, q := range b.Quantities {
		tier := models.QuantityPrice{
			Quantity:  strings.TrimSpace(q.Quantity),
			CakePrice: q.CakePrice,
		}
		if q.BirthdayPackPrice != nil && *q.BirthdayPackPrice > 0 {
			tier.BirthdayPackPrice = q.BirthdayPackPrice
		}
		quantities = append(quantities, tier)
	}

	images := b.ImageURLs[:0:0]
	for _, u := range b.ImageURLs {
		if u != "" {
			images = append(images, u)
		}
	}
	first := ""
	if len(images) > 0 {
		first = images[0]
	}

	isVeg := true
	if b.IsVeg != nil {
		isVeg = *b.IsVeg
	}

	fields := bson.M{
		"name":       strings.TrimSpace(b.Name),
		"quantities": quantities,
		"imageUrl":   first,
		"isVeg":      isVeg,
	}
	if desc := strings.TrimSpace(b.Description); desc != "" {
		fields["description"] = desc
	} else {
		fields["description"] = nil
	}
	if len(images) > 0 {
		fields["imageUrls"] = images
	} else {
		fields["imageUrls"] = nil
	}
	return fields
}

// GetProducts serves one category's reconciled products. ?sort=newest
// gives the admin table ordering; the default is alphabetical.
func GetProducts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	catID := ps.ByName("catid")
	sortMode := r.URL.Query().Get("sort")

	if sortMode == "" {
		if cached, err := rdx.RdxGet(productsCacheKey(catID)); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	prods, err := FetchProducts(r.Context(), catID, sortMode)
	if err != nil {
		log.Println("GetProducts fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	if sortMode == "" {
		if data, err := json.Marshal(prods); err == nil {
			rdx.RdxSet(productsCacheKey(catID), string(data))
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, prods)
}

// CreateProduct adds a product to a category. New records are always
// written in the modern multi-tier shape.
func CreateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	catID := ps.ByName("catid")

	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := body.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	if n, err := db.CategoriesCollection.CountDocuments(ctx, bson.M{"catid": catID}); err != nil || n == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	doc := body.fields()
	doc["productid"] = utils.GetUUID()
	doc["categoryId"] = catID
	doc["createdAt"] = time.Now()

	if _, err := db.ProductsCollection.InsertOne(ctx, doc); err != nil {
		log.Println("CreateProduct insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add product")
		return
	}

	rdx.RdxDel(productsCacheKey(catID))
	go mq.Emit(ctx, "product-created", models.ChangeEvent{Entity: "products", Method: "POST", CategoryID: catID})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "id": doc["productid"]})
}

// UpdateProduct saves an edit. Every save writes the modern quantities
// array and explicitly nulls the legacy scalar fields, migrating old
// records the first time they are touched.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	catID := ps.ByName("catid")
	productID := ps.ByName("productid")

	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := body.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	fields := body.fields()
	fields["price"] = nil
	fields["halfPrice"] = nil
	fields["quantity"] = nil
	fields["updatedAt"] = time.Now()

	res, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productid": productID, "categoryId": catID},
		bson.M{"$set": fields})
	if err != nil {
		log.Println("UpdateProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	rdx.RdxDel(productsCacheKey(catID))
	go mq.Emit(ctx, "product-edited", models.ChangeEvent{Entity: "products", Method: "PUT", CategoryID: catID})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// DeleteProduct removes a single product document.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	catID := ps.ByName("catid")
	productID := ps.ByName("productid")

	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productid": productID, "categoryId": catID})
	if err != nil {
		log.Println("DeleteProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	rdx.RdxDel(productsCacheKey(catID))
	go mq.Emit(ctx, "product-deleted", models.ChangeEvent{Entity: "products", Method: "DELETE", CategoryID: catID})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
