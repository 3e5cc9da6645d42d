package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"furnirent_backend/internal/config"
	"furnirent_backend/internal/database"
	"furnirent_backend/internal/routes"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	database.EnsureIndexes()

	warmupRedisCache()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 FurniRent server running on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Server stopped:", err)
	}
}

// warmupRedisCache establishes the Redis connection up front so the first
// catalog request doesn't pay for it.
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Redis cache warmed up")
	}
}
