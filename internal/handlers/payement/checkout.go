package payement

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"verdura_back_end/internal/checkout"
)

// CheckoutHandler expose l'orchestrateur sur POST /api/checkout.
// Le client reçoit soit l'URL de redirection Stripe, soit un message
// générique : le détail des échecs aval ne sort que dans les logs.
func CheckoutHandler(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkout.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
			return
		}

		url, err := orch.Checkout(c.Request.Context(), req)
		if err != nil {
			var verr *checkout.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
				return
			}
			log.Println("❌ Checkout échoué:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de démarrer le paiement"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
