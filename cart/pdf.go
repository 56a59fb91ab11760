package cart

import (
	"bytes"
	"fmt"

	"cakepoint/models"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// RenderOrderPDF produces a printable copy of a draft order with a QR
// code of the dispatch link, so the order can be re-sent by scanning.
func RenderOrderPDF(req models.DraftOrderRequest, lines []models.CartLine, totals models.CartTotals, link string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Cake Point - Draft Order")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Customer: %s", req.CustomerName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Phone: %s", req.Phone))
	pdf.Ln(7)
	if req.Mode == models.ModeDelivery {
		pdf.Cell(0, 8, fmt.Sprintf("Address: %s", req.Address))
		pdf.Ln(7)
	} else {
		pdf.Cell(0, 8, "Mode: Takeaway")
		pdf.Ln(7)
	}
	if req.Notes != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Notes: %s", req.Notes))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Items")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, l := range lines {
		packText := ""
		if l.WithAddOn {
			packText = " + Birthday Pack"
		}
		pdf.Cell(0, 7, fmt.Sprintf("%dx %s (%s%s)", l.QuantityCount, l.Name, l.TierLabel, packText))
		pdf.Ln(6)
		pdf.Cell(0, 7, fmt.Sprintf("    Rs %s", price(l.UnitPrice*float64(l.QuantityCount))))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: Rs %s", price(totals.Subtotal)))
	pdf.Ln(7)
	if req.Mode == models.ModeDelivery {
		pdf.Cell(0, 8, fmt.Sprintf("Delivery: Rs %s", price(totals.Delivery)))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("TOTAL: Rs %s", price(totals.Total)))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
