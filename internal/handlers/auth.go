package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"verdura_back_end/internal/utils"
)

// AdminLogin authentifie l'administrateur du back-office.
// Le credential vient de l'environnement (ADMIN_EMAIL + hash argon2id),
// jamais du code ni de la base.
func AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminEmail == "" || adminHash == "" {
		log.Println("⚠️ ADMIN_EMAIL / ADMIN_PASSWORD_HASH absents — login admin désactivé")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Login non configuré"})
		return
	}

	if req.Email != adminEmail {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	ok, err := utils.VerifyPassword(req.Password, adminHash)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	token, err := utils.GenerateJWT(adminEmail, "admin")
	if err != nil {
		log.Println("❌ Erreur génération JWT:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
