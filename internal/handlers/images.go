package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"verdura_back_end/internal/cache"
	"verdura_back_end/internal/services"
)

//
// =========================
// 🟢 UPLOAD IMAGES PRODUIT
// =========================
//
func UploadProductImages(c *gin.Context) {
	ctx := context.Background()

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form-data invalide"})
		return
	}

	files := form.File["files"]
	productID := form.Value["product_id"]
	if len(productID) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champ 'product_id' manquant"})
		return
	}

	objID, err := primitive.ObjectIDFromHex(productID[0])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	uploaded := []string{}
	for _, fileHeader := range files {
		objectName, err := services.UploadFile(ctx, fileHeader)
		if err != nil {
			log.Println("⚠️ Erreur upload image:", fileHeader.Filename, err)
			continue
		}
		uploaded = append(uploaded, objectName)
	}

	if len(uploaded) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aucune image uploadée"})
		return
	}

	// 🔹 Ajout en masse sur le document produit
	_, err = getProductCollection().UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$push": bson.M{"images": bson.M{"$each": uploaded}}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour MongoDB"})
		return
	}

	cache.InvalidateProducts(ctx, productID[0])

	c.JSON(http.StatusOK, gin.H{
		"uploaded":   uploaded,
		"product_id": productID[0],
		"count":      len(uploaded),
	})
}

//
// =========================
// 🟡 LISTER LES IMAGES D'UN PRODUIT
// =========================
//
func GetProductImages(c *gin.Context) {
	ctx := context.Background()

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var product struct {
		Images []string `bson:"images"`
	}
	if err := getProductCollection().FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	signedURLs := []string{}
	for _, objectName := range product.Images {
		if objectName == "" {
			continue
		}
		signed, err := services.GenerateSignedURL(ctx, objectName, 24*time.Hour)
		if err == nil {
			signedURLs = append(signedURLs, signed)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": c.Param("id"),
		"images":     signedURLs,
	})
}

//
// =========================
// 🔴 SUPPRIMER UNE IMAGE
// =========================
//
func DeleteProductImage(c *gin.Context) {
	ctx := context.Background()
	// Paramètre wildcard gin : "/products/<uuid>-photo.jpg", on retire le / initial
	objectName := strings.TrimPrefix(c.Param("id"), "/")
	if objectName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom d'objet manquant"})
		return
	}

	if err := services.RemoveFile(ctx, objectName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression MinIO"})
		return
	}

	// Repère les produits qui référencent l'image, pour invalider leurs clés de cache
	touched := []string{}
	cursor, err := getProductCollection().Find(
		ctx,
		bson.M{"images": objectName},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err == nil {
		var docs []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.All(ctx, &docs); err == nil {
			for _, doc := range docs {
				touched = append(touched, doc.ID.Hex())
			}
		}
	}

	// Retire aussi la référence des documents produits
	_, err = getProductCollection().UpdateMany(
		ctx,
		bson.M{"images": objectName},
		bson.M{"$pull": bson.M{"images": objectName}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression MongoDB"})
		return
	}

	cache.InvalidateProducts(ctx, touched...)

	c.JSON(http.StatusOK, gin.H{"deleted": objectName})
}
