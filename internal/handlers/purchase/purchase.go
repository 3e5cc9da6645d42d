package purchase

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"furnirent_backend/internal/config"
	"furnirent_backend/internal/database"
	"furnirent_backend/internal/models"
	"furnirent_backend/internal/pricing"
	"furnirent_backend/internal/quotation"
	"furnirent_backend/internal/services"
)

// quotationNumber derives a short human-readable reference from the
// millisecond clock, e.g. QTN-583921.
func quotationNumber(t time.Time) string {
	return fmt.Sprintf("QTN-%06d", t.UnixMilli()%1000000)
}

// ProcessPurchase turns the caller's cart into a quotation: price it,
// render the PDF, persist the order, mail customer and admin, then clear
// the cart.
func ProcessPurchase(c *gin.Context) {
	uid := c.GetString("user_id")

	var input struct {
		CouponCode string `json:"couponCode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var cart models.Cart
	err := database.Carts().FindOne(ctx, bson.M{"user_id": uid}).Decode(&cart)
	if err == mongo.ErrNoDocuments || (err == nil && len(cart.Items) == 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading cart"})
		return
	}

	// Checkout captures the contact details before this endpoint is hit.
	var profile models.User
	if err := database.Users().FindOne(ctx, bson.M{"uid": uid}).Decode(&profile); err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading user"})
		return
	}
	if profile.Email == "" {
		profile.Email = c.GetString("email")
	}
	if profile.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required before purchase"})
		return
	}
	if profile.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email address is required before purchase"})
		return
	}

	// Deposits live on the product, not the cart line, so fetch the
	// products backing the cart. A product removed since it was added
	// makes the cart unpriceable.
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	cursor, err := database.Products().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading products"})
		return
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading products"})
		return
	}
	deposits := make(map[primitive.ObjectID]float64, len(products))
	for _, p := range products {
		deposits[p.ID] = p.RefundableDeposit
	}
	for _, item := range cart.Items {
		if _, ok := deposits[item.ProductID]; !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "A cart item is no longer available: " + item.Name})
			return
		}
	}

	biz := config.Business()

	lineItems := make([]pricing.LineItem, 0, len(cart.Items))
	pdfLines := make([]quotation.Line, 0, len(cart.Items))
	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		deposit := deposits[item.ProductID]
		lineItems = append(lineItems, pricing.LineItem{
			Name:              item.Name,
			Price:             item.Price,
			RefundableDeposit: deposit,
			Quantity:          item.Quantity,
		})
		pdfLines = append(pdfLines, quotation.Line{
			Name:         item.Name,
			ImageURL:     item.Image,
			TenureMonths: item.TenureMonths,
			Price:        item.Price,
			Quantity:     item.Quantity,
		})
		orderItems = append(orderItems, models.OrderItem{
			ProductID:         item.ProductID,
			Name:              item.Name,
			Image:             item.Image,
			TenureMonths:      item.TenureMonths,
			Price:             item.Price,
			RefundableDeposit: deposit,
			Quantity:          item.Quantity,
		})
	}

	quote, err := pricing.NewQuote(lineItems, input.CouponCode, biz.TransportFee)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon code"})
		return
	}

	now := time.Now()
	number := quotationNumber(now)
	customer := models.Customer{
		Name:    profile.Name,
		Email:   profile.Email,
		Phone:   profile.Phone,
		Address: profile.Address,
	}

	pdf, err := quotation.Render(quotation.Document{
		Number:   number,
		Date:     now,
		Customer: customer,
		Items:    pdfLines,
		Totals:   quote,
	}, biz)
	if err != nil {
		log.Println("❌ Quotation render failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating quotation"})
		return
	}

	order := models.Order{
		QuotationNumber: number,
		UserID:          uid,
		Customer:        customer,
		Items:           orderItems,
		Subtotal:        quote.Subtotal,
		Discount:        quote.Discount,
		Deposit:         quote.Deposit,
		TransportFee:    quote.TransportFee,
		Total:           quote.Total,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
	}
	if _, err := database.Orders().InsertOne(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving order"})
		return
	}

	filename := number + ".pdf"
	if err := services.SendQuotationEmail(
		profile.Email,
		"Your "+biz.CompanyName+" Quotation "+number,
		services.QuotationEmailHTML(order, biz.CompanyName),
		pdf, filename,
	); err != nil {
		log.Println("❌ Quotation email failed:", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":           "Quotation saved but email delivery failed",
			"quotationNumber": number,
		})
		return
	}
	if biz.AdminEmail != "" {
		if err := services.SendQuotationEmail(
			biz.AdminEmail,
			"New quotation "+number+" from "+customer.Name,
			services.PurchaseAlertHTML(order),
			pdf, filename,
		); err != nil {
			// Customer already has their copy; just log it.
			log.Println("⚠️ Admin alert email failed:", err)
		}
	}

	if _, err := database.Carts().DeleteOne(ctx, bson.M{"user_id": uid}); err != nil {
		log.Println("⚠️ Could not clear cart after purchase:", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"quotationNumber": number,
	})
}
