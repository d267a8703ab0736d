package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"verdura_back_end/internal/database"
	"verdura_back_end/internal/models"
)

func getOrderCollection() *mongo.Collection {
	if database.MongoOrdersDB == nil {
		panic("❌ MongoOrdersDB n'est pas initialisée")
	}
	return database.MongoOrdersDB.Collection("orders")
}

// 🔵 Lister les commandes (admin), les plus récentes d'abord.
// ?unpaid=1 ne retourne que les commandes jamais réglées (paniers abandonnés).
func GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if c.Query("unpaid") == "1" {
		filter["paid"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := getOrderCollection().Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// 🔵 Récupérer une commande par id (admin)
func GetOrderByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := getOrderCollection().FindOne(ctx, bson.M{"_id": objID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}
