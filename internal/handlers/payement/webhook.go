package payement

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"verdura_back_end/internal/checkout"
)

// StripeWebhook reçoit les notifications de settlement sur POST /api/webhook.
// Le corps est lu brut et passé tel quel à la vérification de signature :
// aucun parsing avant vérification.
func StripeWebhook(s *checkout.Settlement) gin.HandlerFunc {
	return func(c *gin.Context) {
		const MaxBodyBytes = int64(65536)
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

		payload, err := c.GetRawData()
		if err != nil {
			log.Println("❌ Lecture payload échouée:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
			return
		}

		if s.Secret == "" {
			// Pas de secret = pas de vérification possible, on refuse tout
			log.Println("❌ STRIPE_WEBHOOK_SECRET absent — settlement refusé")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Webhook non configuré"})
			return
		}

		if err := s.Process(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
			var aerr *checkout.AuthenticationError
			if errors.As(err, &aerr) {
				// À surveiller : quelqu'un pousse des événements non signés
				log.Println("🚨 Signature Stripe invalide:", err)
				c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
				return
			}
			// Erreur de stockage : 500 pour que Stripe relivre l'événement
			log.Println("❌ Settlement échoué:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur traitement événement"})
			return
		}

		c.Status(http.StatusOK)
	}
}
