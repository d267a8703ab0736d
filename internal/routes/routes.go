package routes

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"verdura_back_end/internal/checkout"
	"verdura_back_end/internal/database"
	"verdura_back_end/internal/handlers"
	"verdura_back_end/internal/handlers/payement"
	"verdura_back_end/internal/middleware"
	"verdura_back_end/internal/models"
	"verdura_back_end/internal/utils"
)

func RegisterRoutes(r *gin.Engine) {
	publicURL := os.Getenv("PUBLIC_URL")
	if publicURL == "" {
		publicURL = "http://localhost:3000"
	}

	currency := os.Getenv("CHECKOUT_CURRENCY")
	if currency == "" {
		currency = "eur"
	}

	orders := &checkout.MongoOrders{Coll: database.MongoOrdersDB.Collection("orders")}

	orch := &checkout.Orchestrator{
		Products: &checkout.MongoProducts{Coll: database.MongoProductsDB.Collection("products")},
		Orders:   orders,
		Sessions: &checkout.StripeSessions{
			Currency:   currency,
			SuccessURL: publicURL + "/cart?success=1",
			CancelURL:  publicURL + "/cart?canceled=1",
		},
	}

	settlement := &checkout.Settlement{
		Secret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Orders: orders,
		OnPaid: notifyOrderPaid,
	}

	api := r.Group("/api")

	// --- Public ---
	api.POST("/auth/login", handlers.AdminLogin)

	api.GET("/products", handlers.GetAllProducts)
	api.GET("/products/search", handlers.SearchProducts)
	api.GET("/products/:id", handlers.GetProduct)
	api.GET("/products/:id/images", handlers.GetProductImages)
	api.GET("/categories", handlers.GetAllCategories)
	api.GET("/categories/:id/products", handlers.GetProductsByCategory)

	api.POST("/checkout", payement.CheckoutHandler(orch))
	api.POST("/webhook", payement.StripeWebhook(settlement))

	// --- Back-office (admin) ---
	admin := api.Group("", middleware.AuthRequired(), middleware.RequireAdmin)

	admin.POST("/products", handlers.CreateProduct)
	admin.PUT("/products/:id", handlers.UpdateProduct)
	admin.DELETE("/products/:id", handlers.DeleteProduct)

	admin.POST("/categories", handlers.CreateCategory)
	admin.PUT("/categories/:id", handlers.UpdateCategory)
	admin.DELETE("/categories/:id", handlers.DeleteCategory)

	admin.POST("/upload", handlers.UploadProductImages)
	admin.DELETE("/images/*id", handlers.DeleteProductImage)

	admin.GET("/orders", handlers.GetAllOrders)
	admin.GET("/orders/:id", handlers.GetOrderByID)
}

// notifyOrderPaid part l'e-mail de confirmation hors du chemin du webhook :
// Stripe attend son acquittement, pas notre SMTP
func notifyOrderPaid(order models.Order) {
	go func() {
		if os.Getenv("SMTP_HOST") == "" {
			log.Println("⚠️ SMTP_HOST absent — pas d'e-mail de confirmation")
			return
		}

		html := utils.GenerateOrderConfirmationHTML(order)

		pdf, err := utils.GenerateInvoicePDF(order)
		if err != nil {
			log.Println("❌ Erreur génération PDF :", err)
			pdf = nil
		}

		if err := utils.SendConfirmationEmail(order.Email, "Confirmation de votre commande Verdura", html, pdf); err != nil {
			log.Println("❌ Erreur envoi e-mail confirmation :", err)
		} else {
			log.Println("📧 E-mail de confirmation envoyé à", order.Email)
		}
	}()
}
