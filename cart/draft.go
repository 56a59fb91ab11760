package cart

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cakepoint/models"
)

// ValidationError names the customer fields that block composing a draft
// order. It is surfaced before anything is written or dispatched.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required field(s): " + strings.Join(e.Fields, ", ")
}

var ErrEmptyCart = errors.New("cart is empty")

// price renders amounts the way the storefront shows them: whole rupees
// without a decimal point unless the amount has one.
func price(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ComposeDraftOrder builds the human-readable order summary and the
// wa.me deep link carrying it. Validation runs first: customer name and
// phone are always required, the address only for delivery. The text is
// deterministic for a given input.
func ComposeDraftOrder(req models.DraftOrderRequest, lines []models.CartLine, totals models.CartTotals, waNumber string) (string, string, error) {
	var missing []string
	if strings.TrimSpace(req.CustomerName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Phone) == "" {
		missing = append(missing, "phone")
	}
	if req.Mode == models.ModeDelivery && strings.TrimSpace(req.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return "", "", &ValidationError{Fields: missing}
	}
	if len(lines) == 0 {
		return "", "", ErrEmptyCart
	}

	var b strings.Builder
	b.WriteString("*New Order* 🍰\n\n")
	fmt.Fprintf(&b, "*Customer:* %s\n", strings.TrimSpace(req.CustomerName))
	fmt.Fprintf(&b, "*Phone:* %s\n", strings.TrimSpace(req.Phone))
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		fmt.Fprintf(&b, "*Notes:* %s\n", notes)
	}
	if req.Mode == models.ModeDelivery {
		fmt.Fprintf(&b, "*Address:* %s\n", strings.TrimSpace(req.Address))
		fmt.Fprintf(&b, "*Delivery Charge:* +₹%s\n", price(totals.Delivery))
	} else {
		b.WriteString("*Mode:* Takeaway\n")
	}

	b.WriteString("\n*Order Details:*\n")
	for _, l := range lines {
		packText := ""
		if l.WithAddOn {
			packText = " + Birthday Pack"
		}
		fmt.Fprintf(&b, "• %dx %s\n", l.QuantityCount, l.Name)
		fmt.Fprintf(&b, "   Qty: %s%s\n", l.TierLabel, packText)
		if l.WithAddOn && l.BirthdayPackPrice != nil {
			fmt.Fprintf(&b, "    (Cake ₹%s + Birthday Pack ₹%s)\n", price(l.CakePrice), price(*l.BirthdayPackPrice))
		}
		fmt.Fprintf(&b, "   Price: ₹%s\n\n", price(l.UnitPrice*float64(l.QuantityCount)))
	}

	fmt.Fprintf(&b, "*Subtotal:* ₹%s\n", price(totals.Subtotal))
	if req.Mode == models.ModeDelivery {
		fmt.Fprintf(&b, "*Delivery:* ₹%s\n", price(totals.Delivery))
	}
	fmt.Fprintf(&b, "*TOTAL:* ₹%s\n\nThank you for your order! 🎉", price(totals.Total))

	text := b.String()
	link := "https://wa.me/" + waNumber + "?text=" + url.QueryEscape(text)
	return text, link, nil
}
