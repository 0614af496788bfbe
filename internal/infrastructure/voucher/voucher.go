// Package voucher renders printable booking vouchers as single-page PDFs.
package voucher

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/tourhub/marketplace/internal/core/domain"
)

const qrSize = 256

// Renderer implements ports.VoucherRenderer.
type Renderer struct {
	brand string
}

// NewRenderer creates a Renderer; brand is printed in the header and footer.
func NewRenderer(brand string) *Renderer {
	if brand == "" {
		brand = "TourHub"
	}
	return &Renderer{brand: brand}
}

// Render lays out the booking summary with a QR code linking to bookingURL.
func (r *Renderer) Render(b *domain.Booking, bookingURL string) ([]byte, error) {
	qr, err := qrcode.Encode(bookingURL, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(r.brand+" voucher "+b.Reference, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 15, tr(r.brand+" BOOKING VOUCHER"))
	pdf.Ln(20)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(8)

	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 55, "F")

	pdf.SetXY(20, yStart+7)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "BOOKING SUMMARY")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		"Reference: " + b.Reference,
		"Experience: " + b.ListingName,
		"Date: " + formatDate(b),
		fmt.Sprintf("Guests: %d", b.Guests),
		fmt.Sprintf("Total: %.2f %s", b.TotalPrice, b.Currency),
	} {
		pdf.SetX(20)
		pdf.Cell(0, 8, tr(line))
		pdf.Ln(6)
	}

	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qr))
	pdf.ImageOptions("qr", 145, yStart+5, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 63)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "Show this voucher or scan the code at check-in.")
	pdf.Ln(10)

	sectionTitle(pdf, "LEAD TRAVELLER")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr("Name: "+b.ContactName))
	pdf.Ln(6)
	pdf.Cell(0, 8, tr("Email: "+b.ContactEmail))
	pdf.Ln(6)
	if b.ContactPhone != "" {
		pdf.Cell(0, 8, tr("Phone: "+b.ContactPhone))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	sectionTitle(pdf, "PAYMENT")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr("Status: "+b.PaymentStatus))
	pdf.Ln(6)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, 285, 195, 285)
	pdf.SetY(288)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 8, tr(bookingURL), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 9, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
}

func formatDate(b *domain.Booking) string {
	if b.ExperienceDate.IsZero() {
		return "to be confirmed"
	}
	return b.ExperienceDate.Format("Mon 2 Jan 2006")
}
