package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"

	"verdura_back_end/internal/models"
)

// StripeSessions crée les sessions Stripe Checkout hébergées
type StripeSessions struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

func (s *StripeSessions) Start(ctx context.Context, order models.Order) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(order.Email),
		SuccessURL:         stripe.String(s.SuccessURL),
		CancelURL:          stripe.String(s.CancelURL),
	}
	params.Context = ctx

	for _, item := range order.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(s.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	// Le prestataire renvoie orderId tel quel dans l'événement de settlement
	params.AddMetadata("orderId", order.ID.Hex())

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}
