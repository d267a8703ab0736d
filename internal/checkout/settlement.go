package checkout

import (
	"context"
	"encoding/json"
	"log"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"verdura_back_end/internal/models"
)

// Notifier est appelé une seule fois par commande, à la transition unpaid → paid
type Notifier func(order models.Order)

// Settlement consomme les notifications signées du prestataire de paiement.
// La vérification de signature porte sur le corps brut, avant tout parsing :
// sans elle, n'importe qui pourrait marquer des commandes payées.
type Settlement struct {
	Secret string
	Orders OrderStore
	OnPaid Notifier
}

// Process vérifie puis applique un événement. Un retour nil vaut acquittement :
// les genres d'événements non modélisés, les commandes inconnues et les
// relivraisons sont acquittés sans mutation pour ne pas faire boucler le
// prestataire. Seules les erreurs de signature et de stockage remontent.
func (s *Settlement) Process(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.Secret)
	if err != nil {
		return &AuthenticationError{Cause: err}
	}

	if event.Type != "checkout.session.completed" {
		log.Printf("ℹ️ Événement ignoré : %s", event.Type)
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		log.Println("⚠️ Session indéchiffrable dans un événement signé :", err)
		return nil
	}

	orderID := session.Metadata["orderId"]
	paid := session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid

	if orderID == "" || !paid {
		log.Printf("ℹ️ Session %s sans transition (orderId=%q, statut=%s)",
			session.ID, orderID, session.PaymentStatus)
		return nil
	}

	order, err := s.Orders.MarkPaid(ctx, orderID)
	if err != nil {
		return &OrchestrationError{Step: "commande", Cause: err}
	}
	if order == nil {
		log.Printf("🔁 Commande %s inconnue ou déjà payée, on acquitte", orderID)
		return nil
	}

	log.Printf("✅ Commande %s payée (%d centimes)", orderID, order.Total())

	if s.OnPaid != nil {
		s.OnPaid(*order)
	}
	return nil
}
