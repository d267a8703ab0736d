package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order est la photographie d'un panier au moment du checkout.
// Les prix des lignes sont figés à la création : une modification
// ultérieure du catalogue ne touche jamais une commande existante.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LineItems     []OrderItem        `bson:"line_items" json:"line_items"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	City          string             `bson:"city" json:"city"`
	PostalCode    string             `bson:"postal_code" json:"postal_code"`
	StreetAddress string             `bson:"street_address" json:"street_address"`
	Country       string             `bson:"country" json:"country"`
	Paid          bool               `bson:"paid" json:"paid"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

type OrderItem struct {
	ProductID  string `bson:"product_id" json:"product_id"`
	Name       string `bson:"name" json:"name"`
	UnitAmount int64  `bson:"unit_amount" json:"unit_amount"` // centimes
	Quantity   int64  `bson:"quantity" json:"quantity"`
}

// Total retourne le montant de la commande en centimes (hors livraison)
func (o Order) Total() int64 {
	var total int64
	for _, item := range o.LineItems {
		total += item.UnitAmount * item.Quantity
	}
	return total
}
