package main

import (
	"context"
	"log"
	"os"

	"mobigear_back_end/internal/config"
	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	if os.Getenv("RAZORPAY_KEY_ID") == "" || os.Getenv("RAZORPAY_KEY_SECRET") == "" {
		log.Fatal("❌ Impossible d'initialiser Razorpay : clés manquantes")
	}
	log.Println("✅ Razorpay initialisé")

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ JWT_SECRET manquant dans .env")
	}

	database.ConnectDatabases()

	// ✅ Pré-chauffer le cache Redis
	warmupRedisCache()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur MobiGear lancé sur le port", port)
	r.Run(":" + port)
}

// warmupRedisCache fait un ping pour établir la connexion avant le premier appel
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
