package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"verdura_back_end/internal/cache"
	"verdura_back_end/internal/database"
	"verdura_back_end/internal/models"
	"verdura_back_end/internal/services"
)

//
// --- MONGO COLLECTION ---
//
func getProductCollection() *mongo.Collection {
	if database.MongoProductsDB == nil {
		panic("❌ MongoProductsDB non initialisée — as-tu bien appelé database.ConnectDatabases() ?")
	}
	return database.MongoProductsDB.Collection("products")
}

//
// --- HANDLERS ---
//

// 🟢 Créer un produit (admin, avec vérification de la catégorie)
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()

	if !p.CategoryID.IsZero() {
		catColl := database.MongoCategoriesDB.Collection("categories")
		var category bson.M
		err := catColl.FindOne(ctx, bson.M{"_id": p.CategoryID}).Decode(&category)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification catégorie"})
			return
		}
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := getProductCollection().InsertOne(ctx, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	p.ID = res.InsertedID.(primitive.ObjectID)

	cache.InvalidateProducts(ctx)

	// 🔄 Indexe dans Elasticsearch
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// 🔵 Lister tous les produits (cache Redis 1h)
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "products:all"

	var cached []models.Product
	if cache.GetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	cursor, err := getProductCollection().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.SetJSON(ctx, cacheKey, products)

	c.JSON(http.StatusOK, products)
}

// 🔵 Récupérer un produit par id
func GetProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx := context.Background()
	cacheKey := "product:" + c.Param("id")

	var cached models.Product
	if cache.GetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	var product models.Product
	if err := getProductCollection().FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.SetJSON(ctx, cacheKey, product)

	c.JSON(http.StatusOK, product)
}

// 🟡 Mettre à jour un produit (admin)
func UpdateProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()
	update := bson.M{"$set": bson.M{
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"images":      p.Images,
		"category":    p.CategoryID,
		"properties":  p.Properties,
		"updated_at":  time.Now(),
	}}

	res, err := getProductCollection().UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateProducts(ctx, c.Param("id"))

	p.ID = objID
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// 🔴 Supprimer un produit (admin)
func DeleteProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx := context.Background()
	if _, err := getProductCollection().DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateProducts(ctx, c.Param("id"))
	go services.RemoveProduct(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// 🔍 Recherche de produits via Elasticsearch ou Mongo si indisponible
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 1️⃣ Tentative dans Elasticsearch
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}

	// 2️⃣ Fallback MongoDB si Elastic est vide ou indisponible
	ctx := context.Background()
	filter := bson.M{
		"$or": []bson.M{
			{"title": bson.M{"$regex": query, "$options": "i"}},
			{"description": bson.M{"$regex": query, "$options": "i"}},
		},
	}

	cursor, err := getProductCollection().Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche MongoDB"})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// 🔵 Produits d'une catégorie
func GetProductsByCategory(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de catégorie invalide"})
		return
	}

	ctx := context.Background()
	cursor, err := getProductCollection().Find(ctx, bson.M{"category": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}
