package payment

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"velora_back_end/internal/payments"
	"velora_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Payments  store.PaymentStore
	Processor payments.Processor
}

func NewHandler(store store.PaymentStore, processor payments.Processor) *Handler {
	return &Handler{Payments: store, Processor: processor}
}

// ProcessPayment traite une demande de paiement via la passerelle active.
// Le sélecteur de méthode est ignoré. Aucune branche ne refuse un paiement
// hormis une erreur inattendue.
// POST /payment/process
func (h *Handler) ProcessPayment(c *gin.Context) {
	var req payments.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body!"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid amount!"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	p, err := h.Processor.Process(ctx, req)
	if err != nil {
		log.Println("❌ Erreur passerelle de paiement:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Payment processing failed!"})
		return
	}

	if err := h.Payments.Insert(ctx, p); err != nil {
		log.Println("❌ Erreur insertion paiement:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Payment processing failed!"})
		return
	}

	log.Printf("✅ Paiement approuvé | orderId=%s txnId=%s montant=%s", p.OrderID, p.TxnID, p.TxnAmount)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment approved successfully!",
		"orderId": p.OrderID,
		"txnId":   p.TxnID,
	})
}

// PaymentStatus renvoie l'id de transaction et le statut, rien d'autre.
// "success" est rejeté : cette valeur fuit parfois de l'URL de redirection
// du front et ne correspond jamais à un vrai orderId.
// GET /payment/status/:id
func (h *Handler) PaymentStatus(c *gin.Context) {
	orderID := strings.TrimSpace(c.Param("id"))

	if orderID == "" || orderID == "success" {
		log.Println("⚠️ Order ID invalide reçu:", orderID)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid Order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Payments.GetByOrderID(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Payment Details Not Found"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur lecture paiement:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch payment status!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"txn": gin.H{
			"id":     p.TxnID,
			"status": p.ResultInfo.ResultStatus,
		},
	})
}
