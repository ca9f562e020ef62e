package invoice

import (
	"bytes"
	"fmt"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/jung-kurt/gofpdf"
)

// Renderer turns a finalized order aggregate into an A4 invoice PDF.
// Read-only over the aggregate, safe outside any transaction.
type Renderer struct {
	shopName    string
	shopAddress string
	shopContact string
}

func NewRenderer() *Renderer {
	return &Renderer{
		shopName:    "BazarHat",
		shopAddress: "Mymensingh, Bangladesh",
		shopContact: "support@bazarhat.example",
	}
}

func (r *Renderer) RenderInvoice(order *domain.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, r.shopName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, r.shopAddress, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, r.shopContact, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 6, "Invoice Details", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Customer Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	customerName, customerEmail := "", ""
	if order.User != nil {
		customerName = order.User.Name
		customerEmail = order.User.Email
	}
	pdf.CellFormat(95, 5, "Invoice No: "+order.Number, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, "Name: "+customerName, "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 5, "Date: "+order.CreatedAt.Format("02 Jan 2006"), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, "Email: "+customerEmail, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, "Shipping Address:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	addr := order.ShippingAddress
	pdf.CellFormat(0, 5, addr.Line1, "", 1, "L", false, 0, "")
	if addr.Line2 != "" {
		pdf.CellFormat(0, 5, addr.Line2, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, addr.City+" "+addr.PostalCode, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(232, 244, 253)
	pdf.CellFormat(80, 7, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Line Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		line, err := item.LineTotal()
		if err != nil {
			return nil, fmt.Errorf("line total for product %d: %w", item.ProductID, err)
		}
		pdf.CellFormat(80, 6, fmt.Sprintf("#%d", item.ProductID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, item.UnitPrice.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, line.String(), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	totals := []struct {
		label string
		value string
	}{
		{"Subtotal", order.Subtotal.String()},
		{"Discount", order.Discount.String()},
		{"Tax", order.Tax.String()},
		{"Shipping", order.ShippingCost.String()},
		{"Total (" + order.Currency + ")", order.Total.String()},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 10)
		}
		pdf.CellFormat(130, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, t.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, t.value, "", 1, "R", false, 0, "")
	}

	if len(order.Payments) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Payment History", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, p := range order.Payments {
			pdf.CellFormat(0, 5, fmt.Sprintf("%s  %s paid via %s, remaining %s",
				p.PaidAt.Format("02 Jan 2006"), p.AdvancePaid.String(),
				p.Medium, p.PayableAmount.String()), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
