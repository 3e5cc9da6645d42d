package quotation

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furnirent_backend/internal/config"
	"furnirent_backend/internal/models"
	"furnirent_backend/internal/pricing"
)

func testBiz() config.BusinessConfig {
	return config.BusinessConfig{
		CompanyName:    "FurniRent",
		CompanyAddress: "12 MG Road, Bengaluru",
		SupportEmail:   "support@furnirent.test",
		SupportPhone:   "+91 90000 00000",
		BankName:       "Test Bank",
		AccountName:    "FurniRent Rentals",
		AccountNumber:  "000111222333",
		IFSC:           "TEST0000001",
		UPIID:          "furnirent@testupi",
		AdvancePayment: 1000,
		LockInMonths:   3,
	}
}

func testDoc(items []Line) Document {
	return Document{
		Number: "QTN-123456",
		Date:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Customer: models.Customer{
			Name:    "Asha Rao",
			Email:   "asha@example.com",
			Phone:   "+91 98765 43210",
			Address: "Flat 4B, Indiranagar, Bengaluru 560038",
		},
		Items: items,
		Totals: pricing.Quote{
			Subtotal:     2200,
			Deposit:      4500,
			TransportFee: 650,
			Total:        7350,
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := Render(testDoc([]Line{
		{Name: "Fabric Sofa", TenureMonths: 6, Price: 500, Quantity: 2},
		{Name: "Queen Bed", TenureMonths: 12, Price: 1200, Quantity: 1},
	}), testBiz())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderWithReachableThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		png.Encode(w, img)
	}))
	defer srv.Close()

	out, err := Render(testDoc([]Line{
		{Name: "Fabric Sofa", ImageURL: srv.URL + "/sofa.png", TenureMonths: 6, Price: 500, Quantity: 2},
	}), testBiz())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderSkipsUnreachableThumbnail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	out, err := Render(testDoc([]Line{
		{Name: "Fabric Sofa", ImageURL: srv.URL + "/missing.png", TenureMonths: 6, Price: 500, Quantity: 2},
	}), testBiz())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderSkipsNonImageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	out, err := Render(testDoc([]Line{
		{Name: "Queen Bed", ImageURL: srv.URL + "/bed.jpg", TenureMonths: 12, Price: 1200, Quantity: 1},
	}), testBiz())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func pageCount(out []byte) int {
	// Each page object carries its own /Type /Page entry; the /Pages root
	// doesn't match because of the trailing newline.
	return bytes.Count(out, []byte("/Type /Page\n"))
}

func TestRenderSinglePageOfItemsPlusTerms(t *testing.T) {
	out, err := Render(testDoc([]Line{
		{Name: "Chair", TenureMonths: 3, Price: 150, Quantity: 1},
	}), testBiz())
	require.NoError(t, err)
	assert.Equal(t, 2, pageCount(out))
}

// Tall wrapped rows near the bottom must move to a fresh page rather than
// run into the footer, so a long catalog spreads across several pages.
func TestRenderTallRowsBreakOntoFreshPages(t *testing.T) {
	longName := strings.Repeat("Sheesham Wood King Bed with Hydraulic Storage ", 3)
	var items []Line
	for i := 0; i < 30; i++ {
		items = append(items, Line{Name: longName, TenureMonths: 12, Price: 1500, Quantity: 1})
	}

	out, err := Render(testDoc(items), testBiz())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pageCount(out), 4)
}

func TestRenderManyItemsPaginates(t *testing.T) {
	few := testDoc([]Line{{Name: "Chair", TenureMonths: 3, Price: 150, Quantity: 1}})
	fewOut, err := Render(few, testBiz())
	require.NoError(t, err)

	var items []Line
	for i := 0; i < 60; i++ {
		items = append(items, Line{
			Name:         "Ergonomic Study Chair with Adjustable Lumbar Support",
			TenureMonths: 6,
			Price:        350,
			Quantity:     2,
		})
	}
	manyOut, err := Render(testDoc(items), testBiz())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(manyOut, []byte("%PDF-")))
	assert.Greater(t, len(manyOut), len(fewOut))
}
