package catalogue

import (
	"context"
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

const categoriesCacheKey = "catalogue:categories"

// GetCategories serves the sorted, reconciled category list.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(categoriesCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cats, err := FetchCategories(ctx)
	if err != nil {
		log.Println("GetCategories fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	if data, err := json.Marshal(cats); err == nil {
		rdx.RdxSet(categoriesCacheKey, string(data))
	}
	utils.RespondWithJSON(w, http.StatusOK, cats)
}

// CreateCategory adds a category. Name and image are required; the name
// is title-cased before it is stored.
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var body struct {
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category name is required")
		return
	}
	if body.ImageURL == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category image is required")
		return
	}

	doc := bson.M{
		"catid":     utils.GetUUID(),
		"name":      FormatName(body.Name),
		"imageUrl":  body.ImageURL,
		"createdAt": time.Now(),
		// order is intentionally absent: unordered categories sort last
		// until the admin reorders them.
	}
	if _, err := db.CategoriesCollection.InsertOne(ctx, doc); err != nil {
		log.Println("CreateCategory insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add category")
		return
	}

	rdx.RdxDel(categoriesCacheKey)
	go mq.Emit(ctx, "category-created", models.ChangeEvent{Entity: "categories", Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "id": doc["catid"]})
}

// UpdateCategory edits a category's name and, when provided, its image.
func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	catID := ps.ByName("catid")

	var body struct {
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	fields := bson.M{"name": FormatName(body.Name)}
	if body.ImageURL != "" {
		fields["imageUrl"] = body.ImageURL
	}

	res, err := db.CategoriesCollection.UpdateOne(ctx, bson.M{"catid": catID}, bson.M{"$set": fields})
	if err != nil {
		log.Println("UpdateCategory error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	rdx.RdxDel(categoriesCacheKey)
	go mq.Emit(ctx, "category-edited", models.ChangeEvent{Entity: "categories", Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// DeleteCategory removes a category and cascades to all of its products.
func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	catID := ps.ByName("catid")

	res, err := db.CategoriesCollection.DeleteOne(ctx, bson.M{"catid": catID})
	if err != nil {
		log.Println("DeleteCategory error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	if _, err := db.ProductsCollection.DeleteMany(ctx, bson.M{"categoryId": catID}); err != nil {
		// The category itself is gone; orphaned products are only
		// reachable through it, so log and move on.
		log.Println("DeleteCategory cascade error:", err)
	}

	rdx.RdxDel(categoriesCacheKey)
	rdx.RdxDel(productsCacheKey(catID))
	go mq.Emit(ctx, "category-deleted", models.ChangeEvent{Entity: "categories", Method: "DELETE"})
	go mq.Emit(ctx, "products-cleared", models.ChangeEvent{Entity: "products", Method: "DELETE", CategoryID: catID})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// ReorderCategories applies one drag-and-drop move and persists the
// resulting permutation as dense order indexes. A failed write is logged
// and left for the next reorder or subscription refresh; the admin is not
// blocked on it.
func ReorderCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var body struct {
		MovedID  string `json:"movedId"`
		TargetID string `json:"targetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.MovedID == "" || body.TargetID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "movedId and targetId are required")
		return
	}

	cats, err := FetchCategories(ctx)
	if err != nil {
		log.Println("ReorderCategories fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	reordered := Reorder(cats, body.MovedID, body.TargetID)
	if err := PersistOrder(ctx, reordered); err != nil {
		log.Println("Failed to save category order:", err)
	} else {
		rdx.RdxDel(categoriesCacheKey)
		go mq.Emit(ctx, "categories-reordered", models.ChangeEvent{Entity: "categories", Method: "PUT"})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
