package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"cakepoint/catalogue"
	"cakepoint/models"
	"cakepoint/pricing"
	"cakepoint/settings"
	"cakepoint/utils"

	"github.com/julienschmidt/httprouter"
)

// GetCart serves the cart's lines and a running item count/subtotal.
func (s *Store) GetCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	lines := s.Lines(r.Context(), ps.ByName("cartid"))
	if lines == nil {
		lines = []models.CartLine{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"lines":  lines,
		"totals": Totals(lines, models.ModeTakeaway, 0),
	})
}

// AddLine resolves the chosen product tier, prices it and merges the
// resulting line into the cart.
func (s *Store) HandleAddLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()
	cartID := ps.ByName("cartid")

	var body struct {
		CategoryID string `json:"categoryId"`
		ProductID  string `json:"productId"`
		TierLabel  string `json:"tierLabel"`
		WithAddOn  bool   `json:"withAddOn"`
		Count      int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.CategoryID == "" || body.ProductID == "" || body.TierLabel == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "categoryId, productId and tierLabel are required")
		return
	}

	prods, err := catalogue.FetchProducts(ctx, body.CategoryID, catalogue.SortByName)
	if err != nil {
		log.Println("AddLine fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	var product *models.Product
	for i := range prods {
		if prods[i].ID == body.ProductID {
			product = &prods[i]
			break
		}
	}
	if product == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if !product.Orderable {
		utils.RespondWithError(w, http.StatusBadRequest, "Product has no orderable quantity")
		return
	}

	tierIdx := -1
	for i, q := range product.Quantities {
		if q.Quantity == body.TierLabel {
			tierIdx = i
			break
		}
	}
	if tierIdx == -1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown quantity option")
		return
	}

	sel := pricing.NewSelection(*product)
	sel.SelectTier(tierIdx)
	sel.ToggleAddOn(body.WithAddOn)
	sel.SetCount(body.Count)

	lines, err := s.AddLine(ctx, cartID, sel.CartLine())
	if err != nil {
		log.Println("AddLine save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "lines": lines})
}

// HandleAdjustLine applies a stepper delta to one line.
func (s *Store) HandleAdjustLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid line index")
		return
	}
	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	lines, err := s.Adjust(ctx, ps.ByName("cartid"), index, body.Delta)
	if err != nil {
		log.Println("AdjustLine save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "lines": lines})
}

// HandleRemoveLine deletes one line outright.
func (s *Store) HandleRemoveLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid line index")
		return
	}

	lines, err := s.Remove(ctx, ps.ByName("cartid"), index)
	if err != nil {
		log.Println("RemoveLine save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "lines": lines})
}

// HandleClear empties the cart.
func (s *Store) HandleClear(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	if err := s.Clear(ctx, ps.ByName("cartid")); err != nil {
		log.Println("ClearCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// HandlePlaceOrder validates customer details, composes the draft order
// text and the WhatsApp deep link, and clears the cart on success. The
// dispatch itself is the customer's browser opening the link; nothing is
// awaited here.
func (s *Store) HandlePlaceOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()
	cartID := ps.ByName("cartid")

	var req models.DraftOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	lines := s.Lines(ctx, cartID)
	cfg := settings.Fetch(ctx)
	totals := Totals(lines, req.Mode, cfg.DeliveryCharge)

	text, link, err := ComposeDraftOrder(req, lines, totals, cfg.WhatsAppNumber)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) || errors.Is(err, ErrEmptyCart) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compose order")
		return
	}

	if err := s.Clear(ctx, cartID); err != nil {
		// The draft is already composed; an uncleared cart just lingers
		// until the next mutation.
		log.Println("PlaceOrder clear error:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"text":   text,
		"url":    link,
		"totals": totals,
	})
}

// HandleOrderPDF renders the current cart as a printable draft order with
// a QR code of the dispatch link. The cart is left untouched.
func (s *Store) HandleOrderPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	var req models.DraftOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	lines := s.Lines(ctx, ps.ByName("cartid"))
	cfg := settings.Fetch(ctx)
	totals := Totals(lines, req.Mode, cfg.DeliveryCharge)

	_, link, err := ComposeDraftOrder(req, lines, totals, cfg.WhatsAppNumber)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	pdfBytes, err := RenderOrderPDF(req, lines, totals, link)
	if err != nil {
		log.Println("OrderPDF render error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=draft-order.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

func contextWithTimeout(r *http.Request) (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}
