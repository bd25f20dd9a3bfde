package order

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Mailer couvre les notifications déclenchées par le cycle de vie d'une
// commande. Les envois sont best-effort : la commande reste validée même
// si l'email échoue.
type Mailer interface {
	SendOrderConfirmation(user models.User, order *models.Order) error
	SendLowStockAlert(p *models.Product) error
}

type Handler struct {
	Orders   store.OrderStore
	Products store.ProductStore
	Users    store.UserStore
	Mailer   Mailer
}

func NewHandler(orders store.OrderStore, products store.ProductStore, users store.UserStore, mailer Mailer) *Handler {
	return &Handler{Orders: orders, Products: products, Users: users, Mailer: mailer}
}

type newOrderRequest struct {
	ShippingInfo models.ShippingInfo `json:"shippingInfo"`
	OrderItems   []models.OrderItem  `json:"orderItems"`
	PaymentInfo  models.PaymentInfo  `json:"paymentInfo"`
	TotalPrice   *float64            `json:"totalPrice"`
}

// NewOrder crée une commande pour l'utilisateur connecté.
// POST /order/new
func (h *Handler) NewOrder(c *gin.Context) {
	var req newOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body!"})
		return
	}

	if len(req.OrderItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Order items are required!"})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User authentication failed!"})
		return
	}

	if req.TotalPrice == nil || *req.TotalPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid total price!"})
		return
	}

	order := &models.Order{
		ID:           uuid.NewString(),
		ShippingInfo: req.ShippingInfo,
		OrderItems:   req.OrderItems,
		UserID:       userID,
		PaymentInfo:  req.PaymentInfo,
		TotalPrice:   *req.TotalPrice,
		OrderStatus:  models.OrderProcessing,
	}
	if err := order.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// Pas d'info de paiement : on enregistre quand même la commande comme
	// payée, avec un paiement factice (comportement hérité du front).
	if order.PaymentInfo.ID == "" {
		log.Println("⚠️ Payment info manquante, génération d'un paiement factice")
		order.PaymentInfo = models.PaymentInfo{
			ID:     "txn-" + uuid.NewString(),
			Status: "TXN_SUCCESS",
		}
	}

	now := time.Now()
	order.PaidAt = &now
	order.CreatedAt = now
	order.UpdatedAt = now

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Orders.Insert(ctx, order); err != nil {
		log.Println("❌ Erreur insertion commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Order creation failed!"})
		return
	}

	log.Printf("✅ Commande %s enregistrée pour user %s", order.ID, userID)

	if user, err := h.Users.GetByID(ctx, userID); err == nil {
		u := *user
		o := *order
		go func() {
			if err := h.Mailer.SendOrderConfirmation(u, &o); err != nil {
				log.Println("❌ Erreur envoi e-mail confirmation :", err)
			} else {
				log.Println("📧 E-mail de confirmation envoyé à", u.Email)
			}
		}()
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// GetOrder renvoie une commande avec le nom et l'email de son propriétaire.
// GET /order/:id
func (h *Handler) GetOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Orders.GetByID(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order Not Found"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur lecture commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch order!"})
		return
	}

	resp := gin.H{"success": true, "order": order}
	if user, err := h.Users.GetByID(ctx, order.UserID); err == nil {
		resp["user"] = gin.H{"name": user.Name, "email": user.Email}
	}

	c.JSON(http.StatusOK, resp)
}

// MyOrders liste les commandes de l'utilisateur connecté. Une liste vide
// est renvoyée comme 404 : contrat historique conservé pour le front.
// GET /orders/me
func (h *Handler) MyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.Orders.ListByUser(ctx, userID)
	if err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch orders!"})
		return
	}

	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No Orders Found"})
		return
	}

	log.Printf("✅ %d commandes trouvées pour user %s", len(orders), userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}
