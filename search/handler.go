package search

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"cakepoint/catalogue"
	"cakepoint/models"
	"cakepoint/utils"

	"github.com/julienschmidt/httprouter"
)

// SearchCatalogue serves a flattened, filtered projection of the whole
// catalogue. Query parameters: q (substring match) and diet (all, veg,
// nonveg).
func SearchCatalogue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categories, err := catalogue.FetchCategories(ctx)
	if err != nil {
		log.Println("search categories error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load catalogue")
		return
	}

	productsByCat := make(map[string][]models.Product, len(categories))
	for _, cat := range categories {
		prods, err := catalogue.FetchProducts(ctx, cat.ID, catalogue.SortByName)
		if err != nil {
			log.Println("search products error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load catalogue")
			return
		}
		productsByCat[cat.ID] = prods
	}

	entries := Flatten(categories, productsByCat)
	entries = FilterBySearch(entries, strings.TrimSpace(r.URL.Query().Get("q")))
	entries = FilterByDiet(entries, r.URL.Query().Get("diet"))
	if entries == nil {
		entries = []CatalogueEntry{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"count":   len(entries),
		"results": entries,
	})
}
