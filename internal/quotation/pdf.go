// Package quotation renders the paginated rental quotation PDF that stands
// in for an invoice: branding header, customer block, a manually laid out
// line-item table with product thumbnails, totals, payment instructions
// with a UPI QR code, and the boilerplate rental terms.
package quotation

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"furnirent_backend/internal/config"
	"furnirent_backend/internal/models"
	"furnirent_backend/internal/pricing"
)

// Line is one row of the quotation table.
type Line struct {
	Name         string
	ImageURL     string
	TenureMonths int
	Price        float64
	Quantity     int
}

// Document is everything the renderer needs for one quotation.
type Document struct {
	Number   string
	Date     time.Time
	Customer models.Customer
	Items    []Line
	Totals   pricing.Quote
}

// Page geometry in millimeters (A4: 210 × 297).
const (
	marginLeft  = 15.0
	marginRight = 195.0
	pageBottom  = 270.0
	lineHeight  = 5.0

	colThumbX = 15.0
	colNameX  = 34.0
	nameWidth = 62.0
	colTenure = 100.0
	colPriceR = 150.0
	colQtyR   = 165.0
	colTotalR = 195.0

	thumbSize = 16.0
)

var imageClient = &http.Client{Timeout: 10 * time.Second}

// Render draws the quotation and returns the PDF bytes. Any layout error
// aborts; a failed thumbnail fetch only skips that image.
func Render(doc Document, biz config.BusinessConfig) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Quotation %s", doc.Number), true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(130, 130, 130)
		pdf.Text(marginLeft, 287, fmt.Sprintf("%s | Quotation %s | Page %d", biz.CompanyName, doc.Number, pdf.PageNo()))
	})
	pdf.AddPage()

	registered := map[string]bool{}

	y := drawHeader(pdf, biz)
	y = drawCustomerBlock(pdf, doc, y)
	y = drawTableHeader(pdf, y)

	for _, item := range doc.Items {
		// Break before drawing, so a tall wrapped row never spills into
		// the footer area.
		if y+rowHeight(pdf, item) > pageBottom {
			pdf.AddPage()
			y = drawTableHeader(pdf, 25)
		}
		y = drawRow(pdf, item, y, registered)
	}

	if y+totalsHeight > pageBottom {
		pdf.AddPage()
		y = 25
	}
	pdf.SetDrawColor(51, 51, 51)
	pdf.Line(marginLeft, y, marginRight, y)
	y += 8

	y = drawTotals(pdf, doc.Totals, y)

	if y+70 > pageBottom {
		pdf.AddPage()
		y = 25
	}
	drawPaymentBlock(pdf, doc, biz, y)

	drawTerms(pdf, biz)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("quotation render: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *gofpdf.Fpdf, biz config.BusinessConfig) float64 {
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(marginLeft, 22, biz.CompanyName)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.Text(marginLeft, 28, biz.CompanyAddress)
	pdf.Text(marginLeft, 33, fmt.Sprintf("Email: %s | Phone: %s", biz.SupportEmail, biz.SupportPhone))

	pdf.SetDrawColor(51, 51, 51)
	pdf.Line(marginLeft, 37, marginRight, 37)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(51, 51, 51)
	title := "RENTAL QUOTATION"
	pdf.Text((210-pdf.GetStringWidth(title))/2, 46, title)

	return 54
}

func drawCustomerBlock(pdf *gofpdf.Fpdf, doc Document, y float64) float64 {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(51, 51, 51)
	pdf.Text(marginLeft, y, fmt.Sprintf("Quotation No: %s", doc.Number))
	pdf.Text(marginLeft, y+lineHeight, fmt.Sprintf("Date: %s", doc.Date.Format("02 Jan 2006")))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(120, y, "Quoted To:")
	pdf.SetFont("Helvetica", "", 10)

	cy := y + lineHeight
	if doc.Customer.Name != "" {
		pdf.Text(120, cy, doc.Customer.Name)
		cy += lineHeight
	}
	pdf.Text(120, cy, doc.Customer.Email)
	cy += lineHeight
	if doc.Customer.Phone != "" {
		pdf.Text(120, cy, doc.Customer.Phone)
		cy += lineHeight
	}
	if doc.Customer.Address != "" {
		for _, line := range pdf.SplitText(doc.Customer.Address, 75) {
			pdf.Text(120, cy, line)
			cy += lineHeight
		}
	}

	if cy < y+3*lineHeight {
		cy = y + 3*lineHeight
	}
	return cy + 6
}

func drawTableHeader(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(51, 51, 51)
	pdf.Text(colNameX, y, "Item")
	pdf.Text(colTenure, y, "Tenure")
	textRight(pdf, colPriceR, y, "Price/mo")
	textRight(pdf, colQtyR, y, "Qty")
	textRight(pdf, colTotalR, y, "Total")

	pdf.SetDrawColor(51, 51, 51)
	pdf.Line(marginLeft, y+2, marginRight, y+2)
	return y + 8
}

// totalsHeight covers the separator gap, up to four label rows and the
// grand-total line.
const totalsHeight = 48.0

// rowHeight projects what drawRow will occupy, assuming the thumbnail
// succeeds when a URL is present.
func rowHeight(pdf *gofpdf.Fpdf, item Line) float64 {
	pdf.SetFont("Helvetica", "", 10)
	h := float64(len(pdf.SplitText(item.Name, nameWidth))) * lineHeight
	if item.ImageURL != "" && h < thumbSize+2 {
		h = thumbSize + 2
	}
	return h + 3
}

func drawRow(pdf *gofpdf.Fpdf, item Line, y float64, registered map[string]bool) float64 {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(51, 51, 51)

	lines := pdf.SplitText(item.Name, nameWidth)
	height := float64(len(lines)) * lineHeight

	hasThumb := placeThumbnail(pdf, item.ImageURL, colThumbX, y-4, registered)
	if hasThumb && height < thumbSize+2 {
		height = thumbSize + 2
	}

	for i, line := range lines {
		pdf.Text(colNameX, y+float64(i)*lineHeight, line)
	}

	pdf.Text(colTenure, y, fmt.Sprintf("%d mo", item.TenureMonths))
	textRight(pdf, colPriceR, y, rs(item.Price))
	textRight(pdf, colQtyR, y, fmt.Sprintf("%d", item.Quantity))
	textRight(pdf, colTotalR, y, rs(item.Price*float64(item.Quantity)))

	return y + height + 3
}

func drawTotals(pdf *gofpdf.Fpdf, totals pricing.Quote, y float64) float64 {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(51, 51, 51)

	rows := []struct {
		label string
		value float64
		show  bool
	}{
		{"Subtotal", totals.Subtotal, true},
		{"Discount", -totals.Discount, totals.Discount > 0},
		{"Refundable Deposit", totals.Deposit, true},
		{"Transportation Fee", totals.TransportFee, true},
	}

	for _, row := range rows {
		if !row.show {
			continue
		}
		pdf.Text(130, y, row.label+":")
		textRight(pdf, colTotalR, y, rs(row.value))
		y += lineHeight + 1
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 140)
	pdf.Text(130, y+2, "Grand Total:")
	textRight(pdf, colTotalR, y+2, rs(totals.Total))
	pdf.SetTextColor(51, 51, 51)

	return y + 14
}

func drawPaymentBlock(pdf *gofpdf.Fpdf, doc Document, biz config.BusinessConfig, y float64) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(marginLeft, y, "Payment Instructions")
	pdf.SetFont("Helvetica", "", 9)

	lines := []string{
		fmt.Sprintf("Bank: %s", biz.BankName),
		fmt.Sprintf("Account Name: %s", biz.AccountName),
		fmt.Sprintf("Account No: %s | IFSC: %s", biz.AccountNumber, biz.IFSC),
		fmt.Sprintf("Advance payable on confirmation: %s", rs(biz.AdvancePayment)),
		fmt.Sprintf("Reference: %s", doc.Number),
		"This quotation is valid for 7 days from the date above.",
	}
	ly := y + 6
	for _, line := range lines {
		pdf.Text(marginLeft, ly, line)
		ly += lineHeight
	}

	// UPI QR next to the bank details; skipped if encoding fails.
	if qr, err := upiQR(biz, doc); err == nil {
		name := "upi-qr-" + doc.Number
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))
		pdf.ImageOptions(name, 160, y, 32, 32, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.Text(162, y+36, "Scan to pay advance (UPI)")
	}
}

func drawTerms(pdf *gofpdf.Fpdf, biz config.BusinessConfig) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(51, 51, 51)
	pdf.Text(marginLeft, 25, "Terms & Conditions")

	terms := []string{
		fmt.Sprintf("All rentals carry a minimum lock-in period of %d months. Early termination within the lock-in period forfeits the advance payment.", biz.LockInMonths),
		"The refundable deposit is returned within 7 working days of pickup, subject to the condition of the furniture at the time of return. Normal wear and tear is not charged.",
		"Damage beyond normal wear and tear, stains, burns or structural repairs are deducted from the deposit at assessed cost.",
		"Monthly rent is payable in advance on or before the 5th of each month. A late fee applies after 7 days.",
		"Delivery and installation are completed within 5-7 working days of payment confirmation. The transportation fee quoted covers one delivery and one pickup.",
		"All furniture remains the property of the company for the duration of the rental. Sub-letting or relocating items to another address without written consent is not permitted.",
		"Relocation within the same city can be arranged at an additional charge.",
		"This quotation is not an invoice. A tax invoice is issued after the advance payment is received and the order is confirmed.",
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetY(32)
	for i, term := range terms {
		pdf.SetX(marginLeft)
		pdf.MultiCell(marginRight-marginLeft, 4.5, fmt.Sprintf("%d. %s", i+1, term), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Ln(4)
	pdf.SetX(marginLeft)
	pdf.MultiCell(marginRight-marginLeft, 4.5, "Thank you for choosing "+biz.CompanyName+". Reply to this email or call our support line to confirm your order.", "", "L", false)
}

// placeThumbnail fetches a product image and draws it. Any failure along the
// way (network, bad content, decode) just leaves the row without a picture.
func placeThumbnail(pdf *gofpdf.Fpdf, imageURL string, x, y float64, registered map[string]bool) bool {
	if imageURL == "" {
		return false
	}

	if !registered[imageURL] {
		data, err := fetchAsPNG(imageURL)
		if err != nil {
			return false
		}
		pdf.RegisterImageOptionsReader(imageURL, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
		registered[imageURL] = true
	}

	pdf.ImageOptions(imageURL, x, y, thumbSize, thumbSize, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return true
}

// fetchAsPNG downloads a remote image and re-encodes it to PNG, so whatever
// the media host serves always registers cleanly with the PDF writer.
func fetchAsPNG(imageURL string) ([]byte, error) {
	resp, err := imageClient.Get(imageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// upiQR encodes a UPI deep link for the advance payment.
func upiQR(biz config.BusinessConfig, doc Document) ([]byte, error) {
	link := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR&tn=%s",
		url.QueryEscape(biz.UPIID),
		url.QueryEscape(biz.CompanyName),
		biz.AdvancePayment,
		url.QueryEscape(doc.Number),
	)
	return qrcode.Encode(link, qrcode.Medium, 256)
}

func textRight(pdf *gofpdf.Fpdf, right, y float64, s string) {
	pdf.Text(right-pdf.GetStringWidth(s), y, s)
}

func rs(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}
