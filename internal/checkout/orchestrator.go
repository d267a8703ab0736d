package checkout

import (
	"context"
	"log"
	"time"

	"verdura_back_end/internal/models"
)

// ProductFinder résout des ids de produits vers le catalogue.
// Les ids inconnus sont simplement écartés du résultat.
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

// OrderStore persiste les commandes. MarkPaid est une écriture conditionnelle
// unpaid → paid : elle retourne la commande si la transition a eu lieu, nil si
// la commande est inconnue ou déjà payée (relivraison).
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	MarkPaid(ctx context.Context, orderID string) (*models.Order, error)
}

// SessionStarter demande une session de paiement hébergée et retourne son URL.
// L'id de la commande voyage en métadonnée opaque et revient tel quel au settlement.
type SessionStarter interface {
	Start(ctx context.Context, order models.Order) (string, error)
}

type CheckoutRequest struct {
	Name          string   `json:"name" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	City          string   `json:"city" binding:"required"`
	PostalCode    string   `json:"postalCode" binding:"required"`
	StreetAddress string   `json:"streetAddress" binding:"required"`
	Country       string   `json:"country" binding:"required"`
	CartProducts  []string `json:"cartProducts"`
}

type Orchestrator struct {
	Products ProductFinder
	Orders   OrderStore
	Sessions SessionStarter
}

// Checkout fige le panier en commande puis ouvre la session de paiement.
// La commande est écrite AVANT l'appel au prestataire : si la session échoue,
// elle reste en base non payée (panier abandonné, jamais supprimée ici).
func (o *Orchestrator) Checkout(ctx context.Context, req CheckoutRequest) (string, error) {
	cart := models.Cart{ProductIDs: req.CartProducts}
	ids, quantities := cart.Quantities()

	products, err := o.Products.FindByIDs(ctx, ids)
	if err != nil {
		return "", &OrchestrationError{Step: "catalogue", Cause: err}
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}

	// Une ligne par produit résolu, quantité = répétitions dans le panier,
	// prix = valeur actuelle du catalogue (pas de gel au moment de l'ajout)
	lineItems := []models.OrderItem{}
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		lineItems = append(lineItems, models.OrderItem{
			ProductID:  id,
			Name:       p.Title,
			UnitAmount: p.UnitAmount(),
			Quantity:   quantities[id],
		})
	}

	if len(lineItems) == 0 {
		return "", &ValidationError{Reason: "no line items found"}
	}

	now := time.Now()
	order := models.Order{
		LineItems:     lineItems,
		Name:          req.Name,
		Email:         req.Email,
		City:          req.City,
		PostalCode:    req.PostalCode,
		StreetAddress: req.StreetAddress,
		Country:       req.Country,
		Paid:          false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := o.Orders.Create(ctx, &order); err != nil {
		return "", &OrchestrationError{Step: "commande", Cause: err}
	}

	url, err := o.Sessions.Start(ctx, order)
	if err != nil {
		log.Printf("⚠️ Session non créée pour la commande %s — elle reste non payée", order.ID.Hex())
		return "", &OrchestrationError{Step: "session", Cause: err}
	}

	log.Printf("💳 Checkout créé : commande %s (%d lignes, %d centimes) pour %s",
		order.ID.Hex(), len(order.LineItems), order.Total(), order.Email)

	return url, nil
}
