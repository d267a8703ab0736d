package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"verdura_back_end/internal/config"
	"verdura_back_end/internal/database"
	"verdura_back_end/internal/routes"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Fatal("❌ Impossible d'initialiser Stripe : clé manquante")
	}
	log.Println("✅ Stripe initialisé")

	if os.Getenv("STRIPE_WEBHOOK_SECRET") == "" {
		log.Println("⚠️ STRIPE_WEBHOOK_SECRET absent — le settlement refusera tout événement")
	}

	database.ConnectDatabases()
	defer database.CloseMongo()

	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Verdura lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Serveur arrêté:", err)
	}
}

func corsConfig() cors.Config {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
