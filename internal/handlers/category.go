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
)

func getCategoryCollection() *mongo.Collection {
	if database.MongoCategoriesDB == nil {
		panic("❌ MongoCategoriesDB n'est pas initialisée")
	}
	return database.MongoCategoriesDB.Collection("categories")
}

// 🟢 Créer une catégorie (admin)
func CreateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cat.Name == "" || cat.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'slug' sont obligatoires"})
		return
	}

	now := time.Now()
	cat.CreatedAt = &now

	ctx := context.Background()
	res, err := getCategoryCollection().InsertOne(ctx, cat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCategories(ctx)

	c.JSON(http.StatusOK, gin.H{"id": res.InsertedID})
}

// 🔵 Lister les catégories (cache Redis 1h)
func GetAllCategories(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "categories:all"

	var cached []models.Category
	if cache.GetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	cursor, err := getCategoryCollection().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var cats []models.Category
	if err := cursor.All(ctx, &cats); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.SetJSON(ctx, cacheKey, cats)

	c.JSON(http.StatusOK, cats)
}

// 🟡 Mettre à jour une catégorie (admin)
func UpdateCategory(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()
	update := bson.M{"$set": bson.M{
		"name":       cat.Name,
		"slug":       cat.Slug,
		"parent":     cat.ParentID,
		"properties": cat.Properties,
	}}

	res, err := getCategoryCollection().UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	cache.InvalidateCategories(ctx)

	cat.ID = objID
	c.JSON(http.StatusOK, cat)
}

// 🔴 Supprimer une catégorie (admin)
func DeleteCategory(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	ctx := context.Background()
	if _, err := getCategoryCollection().DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCategories(ctx)

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
