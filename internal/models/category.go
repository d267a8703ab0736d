package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name       string              `bson:"name" json:"name"`
	Slug       string              `bson:"slug" json:"slug"`
	ParentID   *primitive.ObjectID `bson:"parent,omitempty" json:"parent,omitempty"`
	Properties []CategoryProperty  `bson:"properties,omitempty" json:"properties,omitempty"`
	CreatedAt  *time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

type CategoryProperty struct {
	Name   string   `bson:"name" json:"name"`
	Values []string `bson:"values" json:"values"`
}
