package cart

import (
	"strings"
	"testing"

	"cakepoint/models"
)

func fptr(v float64) *float64 { return &v }

func lineFixture() models.CartLine {
	return models.CartLine{
		ProductID:         "p1",
		Name:              "Choco Truffle",
		UnitPrice:         850,
		CakePrice:         700,
		BirthdayPackPrice: fptr(150),
		QuantityCount:     1,
		TierLabel:         "1kg",
		WithAddOn:         true,
	}
}

func TestMergeLineSumsMatchingLines(t *testing.T) {
	lines := MergeLine(nil, lineFixture())
	lines = MergeLine(lines, lineFixture())
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want merged 1", len(lines))
	}
	if lines[0].QuantityCount != 2 {
		t.Errorf("merged count = %d, want 2", lines[0].QuantityCount)
	}
}

func TestMergeLineKeepsDistinctChoices(t *testing.T) {
	lines := MergeLine(nil, lineFixture())

	other := lineFixture()
	other.WithAddOn = false
	other.UnitPrice = 700
	lines = MergeLine(lines, other)

	third := lineFixture()
	third.TierLabel = "500g"
	lines = MergeLine(lines, third)

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 distinct", len(lines))
	}
}

func TestMergeLineMinimumCount(t *testing.T) {
	bad := lineFixture()
	bad.QuantityCount = 0
	lines := MergeLine(nil, bad)
	if lines[0].QuantityCount != 1 {
		t.Errorf("count = %d, want clamped to 1", lines[0].QuantityCount)
	}
}

func TestAdjustCount(t *testing.T) {
	lines := []models.CartLine{lineFixture()}

	lines = AdjustCount(lines, 0, 2)
	if lines[0].QuantityCount != 3 {
		t.Errorf("after +2: %d, want 3", lines[0].QuantityCount)
	}

	// the stepper can never drop a line to zero
	lines = AdjustCount(lines, 0, -10)
	if lines[0].QuantityCount != 1 {
		t.Errorf("after -10: %d, want 1", lines[0].QuantityCount)
	}

	// out of range is a no-op
	lines = AdjustCount(lines, 5, 1)
	if len(lines) != 1 || lines[0].QuantityCount != 1 {
		t.Errorf("out-of-range adjust changed state: %+v", lines)
	}
}

func TestRemoveLine(t *testing.T) {
	a := lineFixture()
	b := lineFixture()
	b.TierLabel = "500g"
	lines := []models.CartLine{a, b}

	lines = RemoveLine(lines, 0)
	if len(lines) != 1 || lines[0].TierLabel != "500g" {
		t.Fatalf("after remove: %+v", lines)
	}
	lines = RemoveLine(lines, 7)
	if len(lines) != 1 {
		t.Errorf("out-of-range remove changed state: %+v", lines)
	}
}

func TestTotals(t *testing.T) {
	line := lineFixture()
	line.QuantityCount = 2
	lines := []models.CartLine{line}

	got := Totals(lines, models.ModeDelivery, 50)
	if got.ItemCount != 2 || got.Subtotal != 1700 {
		t.Fatalf("delivery totals = %+v", got)
	}
	if got.Delivery != 50 || got.Total != 1750 {
		t.Errorf("delivery charge = %+v, want 50/1750", got)
	}

	got = Totals(lines, models.ModeTakeaway, 50)
	if got.Delivery != 0 || got.Total != 1700 {
		t.Errorf("takeaway totals = %+v, want 0/1700", got)
	}
}

func TestDecodeLinesCorruptPayload(t *testing.T) {
	if got := decodeLines([]byte(`{"not":"an array"`)); got != nil {
		t.Errorf("corrupt payload decoded to %+v, want nil", got)
	}
	if got := decodeLines(nil); got != nil {
		t.Errorf("empty payload decoded to %+v, want nil", got)
	}
	got := decodeLines([]byte(`[{"productId":"p1","quantityCount":2}]`))
	if len(got) != 1 || got[0].ProductID != "p1" {
		t.Errorf("valid payload = %+v", got)
	}
}

func TestComposeDraftOrderValidation(t *testing.T) {
	lines := []models.CartLine{lineFixture()}
	totals := Totals(lines, models.ModeDelivery, 50)

	_, _, err := ComposeDraftOrder(models.DraftOrderRequest{Mode: models.ModeDelivery}, lines, totals, "911234567890")
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 3 {
		t.Errorf("missing fields = %v, want name, phone, address", verr.Fields)
	}

	// takeaway does not need an address
	req := models.DraftOrderRequest{CustomerName: "Asha", Phone: "98765", Mode: models.ModeTakeaway}
	if _, _, err := ComposeDraftOrder(req, lines, Totals(lines, req.Mode, 50), "911234567890"); err != nil {
		t.Errorf("takeaway without address rejected: %v", err)
	}

	// an empty cart never composes
	if _, _, err := ComposeDraftOrder(req, nil, models.CartTotals{}, "911234567890"); err != ErrEmptyCart {
		t.Errorf("empty cart error = %v, want ErrEmptyCart", err)
	}
}

func TestComposeDraftOrderText(t *testing.T) {
	line := lineFixture()
	line.QuantityCount = 2
	lines := []models.CartLine{line}
	req := models.DraftOrderRequest{
		CustomerName: "Asha",
		Phone:        "98765",
		Address:      "12 MG Road",
		Notes:        "less sugar",
		Mode:         models.ModeDelivery,
	}
	totals := Totals(lines, req.Mode, 50)

	text, link, err := ComposeDraftOrder(req, lines, totals, "911234567890")
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	for _, want := range []string{
		"*New Order*",
		"*Customer:* Asha",
		"*Phone:* 98765",
		"*Notes:* less sugar",
		"*Address:* 12 MG Road",
		"• 2x Choco Truffle",
		"Qty: 1kg + Birthday Pack",
		"(Cake ₹700 + Birthday Pack ₹150)",
		"Price: ₹1700",
		"*Subtotal:* ₹1700",
		"*Delivery:* ₹50",
		"*TOTAL:* ₹1750",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}

	if !strings.HasPrefix(link, "https://wa.me/911234567890?text=") {
		t.Errorf("link = %q", link)
	}
	if strings.ContainsAny(link[strings.Index(link, "=")+1:], " \n") {
		t.Error("link text not escaped")
	}
}

func TestComposeDraftOrderTakeawayText(t *testing.T) {
	lines := []models.CartLine{lineFixture()}
	req := models.DraftOrderRequest{CustomerName: "Ravi", Phone: "12345", Mode: models.ModeTakeaway}
	totals := Totals(lines, req.Mode, 50)

	text, _, err := ComposeDraftOrder(req, lines, totals, "911234567890")
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if !strings.Contains(text, "*Mode:* Takeaway") {
		t.Error("takeaway mode line missing")
	}
	if strings.Contains(text, "Delivery") {
		t.Error("takeaway text mentions delivery")
	}
}
