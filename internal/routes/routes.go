package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"furnirent_backend/internal/handlers/carousel"
	"furnirent_backend/internal/handlers/cart"
	"furnirent_backend/internal/handlers/product"
	"furnirent_backend/internal/handlers/purchase"
	"furnirent_backend/internal/handlers/user"
	"furnirent_backend/internal/middleware"
)

func corsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:5173", "http://localhost:3000"}
	}
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	authRequired := middleware.AuthRequired()

	// Catalog
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/search/:query", product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)
	api.POST("/products", authRequired, middleware.RequireAdmin, product.CreateProduct)
	api.PUT("/products/:id", authRequired, middleware.RequireAdmin, product.UpdateProduct)
	api.DELETE("/products/:id", authRequired, middleware.RequireAdmin, product.DeleteProduct)

	api.GET("/category", product.GetCategories)
	api.GET("/category/:slug", product.GetCategoryProducts)

	// Carousel
	api.GET("/carousel", carousel.GetCarousel)
	api.GET("/carousel/:id", carousel.GetCarouselItem)
	api.POST("/carousel", authRequired, middleware.RequireAdmin, carousel.CreateCarouselItem)
	api.PUT("/carousel/:id", authRequired, middleware.RequireAdmin, carousel.UpdateCarouselItem)
	api.DELETE("/carousel/:id", authRequired, middleware.RequireAdmin, carousel.DeleteCarouselItem)

	// Cart (ownership checked in the handlers)
	api.GET("/cart/:userId", authRequired, cart.GetCart)
	api.GET("/cart/:userId/summary", authRequired, cart.GetCartSummary)
	api.POST("/cart/:userId", authRequired, cart.AddToCart)
	api.PUT("/cart/:userId/:itemId", authRequired, cart.UpdateCartItem)
	api.DELETE("/cart/:userId/:itemId", authRequired, cart.RemoveFromCart)
	api.DELETE("/cart/:userId", authRequired, cart.ClearCart)

	// User details + checkout
	api.GET("/get-user-details", authRequired, user.GetUserDetails)
	api.POST("/update-user-details", authRequired, user.UpdateUserDetails)
	api.POST("/process-purchase", authRequired, middleware.PurchaseRateLimit(), purchase.ProcessPurchase)
}
