package cart

import (
	"encoding/json"
	"log"

	"cakepoint/models"
)

// sameLine is the merge identity: adding the same product with the same
// tier and the same add-on choice must grow the existing line instead of
// creating a duplicate.
func sameLine(a, b models.CartLine) bool {
	return a.ProductID == b.ProductID && a.TierLabel == b.TierLabel && a.WithAddOn == b.WithAddOn
}

// MergeLine adds a line to the list, merging into a matching existing
// line by summing counts.
func MergeLine(lines []models.CartLine, line models.CartLine) []models.CartLine {
	if line.QuantityCount < 1 {
		line.QuantityCount = 1
	}
	for i := range lines {
		if sameLine(lines[i], line) {
			lines[i].QuantityCount += line.QuantityCount
			return lines
		}
	}
	return append(lines, line)
}

// AdjustCount applies a stepper delta to a line's count, clamped at one.
// Removal is a separate, explicit action. Out-of-range indexes are a
// no-op.
func AdjustCount(lines []models.CartLine, index, delta int) []models.CartLine {
	if index < 0 || index >= len(lines) {
		return lines
	}
	count := lines[index].QuantityCount + delta
	if count < 1 {
		count = 1
	}
	lines[index].QuantityCount = count
	return lines
}

// RemoveLine drops the line at index. Out-of-range indexes are a no-op.
func RemoveLine(lines []models.CartLine, index int) []models.CartLine {
	if index < 0 || index >= len(lines) {
		return lines
	}
	return append(lines[:index], lines[index+1:]...)
}

// Totals derives the item count and price summary. The delivery charge
// applies only in delivery mode.
func Totals(lines []models.CartLine, mode string, deliveryCharge float64) models.CartTotals {
	var t models.CartTotals
	for _, l := range lines {
		t.ItemCount += l.QuantityCount
		t.Subtotal += l.UnitPrice * float64(l.QuantityCount)
	}
	if mode == models.ModeDelivery {
		t.Delivery = deliveryCharge
	}
	t.Total = t.Subtotal + t.Delivery
	return t
}

// decodeLines parses a persisted cart. A corrupted payload is discarded
// silently and the cart starts empty; the customer never sees the error.
func decodeLines(data []byte) []models.CartLine {
	if len(data) == 0 {
		return nil
	}
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		log.Println("discarding corrupted cart payload:", err)
		return nil
	}
	return lines
}
