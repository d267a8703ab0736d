package config

import (
	"log"

	"github.com/joho/godotenv"
)

// Load charge le fichier .env s'il existe. Tous les secrets (Stripe, webhook,
// JWT, SMTP, MinIO) viennent de l'environnement, jamais du code.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé")
	}
}
