package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Title       string                 `bson:"title" json:"title" binding:"required"`
	Description string                 `bson:"description" json:"description"`
	Price       float64                `bson:"price" json:"price" binding:"required"`
	Images      []string               `bson:"images" json:"images"`
	CategoryID  primitive.ObjectID     `bson:"category,omitempty" json:"category,omitempty"`
	Properties  map[string]interface{} `bson:"properties,omitempty" json:"properties,omitempty"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time              `bson:"updated_at" json:"updated_at"`
}

// UnitAmount retourne le prix courant en centimes (unités mineures Stripe)
func (p Product) UnitAmount() int64 {
	return int64(math.Round(p.Price * 100))
}
