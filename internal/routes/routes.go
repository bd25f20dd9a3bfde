package routes

import (
	"net/http"
	"time"

	"velora_back_end/internal/config"
	"velora_back_end/internal/handlers/order"
	"velora_back_end/internal/handlers/payment"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps regroupe les handlers montés par le routeur.
type Deps struct {
	Cfg     *config.Config
	Auth    *user.AuthHandler
	Order   *order.Handler
	Payment *payment.Handler
	Product *product.Handler
}

// Setup construit le routeur gin complet.
func Setup(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{d.Cfg.FrontendURL, "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jwtSecret := []byte(d.Cfg.JWTSecret)
	auth := middleware.AuthRequired(jwtSecret)

	// Authentification
	r.POST("/auth/register", middleware.RegisterRateLimit(), d.Auth.Register)
	r.POST("/auth/login", middleware.LoginRateLimit(), d.Auth.Login)
	r.GET("/auth/me", auth, d.Auth.Me)
	r.GET("/auth/:provider", d.Auth.BeginAuth)
	r.GET("/auth/:provider/callback", d.Auth.AuthCallback)

	// Catalogue
	r.GET("/products", d.Product.List)
	r.GET("/products/search", d.Product.Search)
	r.GET("/products/:id", d.Product.Get)

	// Commandes
	r.POST("/order/new", auth, d.Order.NewOrder)
	r.GET("/order/:id", auth, d.Order.GetOrder)
	r.GET("/orders/me", auth, d.Order.MyOrders)

	// Paiements — process reste public, le front l'appelle avant la création
	// du compte invité.
	r.POST("/payment/process", d.Payment.ProcessPayment)
	r.GET("/payment/status/:id", auth, d.Payment.PaymentStatus)

	// Panier
	cart := r.Group("/cart", auth)
	{
		cart.GET("", user.GetCart)
		cart.POST("/add", user.AddToCart)
		cart.DELETE("/clear", user.ClearCart)
		cart.DELETE("/:productId", user.RemoveFromCart)
	}

	// Wishlist
	wishlist := r.Group("/wishlist", auth)
	{
		wishlist.GET("", user.GetWishlist)
		wishlist.POST("/add", user.AddToWishlist)
		wishlist.DELETE("/:productId", user.RemoveFromWishlist)
	}

	// Administration
	adminGroup := r.Group("/admin", auth, middleware.RequireAdmin)
	{
		adminGroup.GET("/orders", d.Order.AllOrders)
		adminGroup.PUT("/order/:id", d.Order.UpdateOrderStatus)
		adminGroup.DELETE("/order/:id", d.Order.DeleteOrder)

		adminGroup.POST("/products", d.Product.Create)
		adminGroup.PUT("/products/:id", d.Product.Update)
		adminGroup.DELETE("/products/:id", d.Product.Delete)
	}

	return r
}
