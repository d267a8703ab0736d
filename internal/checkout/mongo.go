package checkout

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"verdura_back_end/internal/models"
)

// MongoProducts résout les ids du panier contre la collection products
type MongoProducts struct {
	Coll *mongo.Collection
}

func (m *MongoProducts) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue // id illisible = id inconnu, écarté silencieusement
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cursor, err := m.Coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// MongoOrders persiste les commandes dans la collection orders
type MongoOrders struct {
	Coll *mongo.Collection
}

func (m *MongoOrders) Create(ctx context.Context, order *models.Order) error {
	res, err := m.Coll.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// MarkPaid applique la transition unpaid → paid en une seule écriture
// conditionnelle : pas de document correspondant = commande inconnue ou déjà
// payée, les deux cas sont des non-événements sous relivraison.
func (m *MongoOrders) MarkPaid(ctx context.Context, orderID string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, nil
	}

	res := m.Coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "paid": false},
		bson.M{"$set": bson.M{"paid": true, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var order models.Order
	if err := res.Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}
