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
)

// AllOrders liste toutes les commandes avec le chiffre d'affaires cumulé.
// GET /admin/orders
func (h *Handler) AllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	orders, err := h.Orders.ListAll(ctx)
	if err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch orders!"})
		return
	}

	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No Orders Found"})
		return
	}

	var totalAmount float64
	for _, o := range orders {
		totalAmount += o.TotalPrice
	}

	log.Printf("✅ %d commandes | 💰 CA total: %.2f", len(orders), totalAmount)
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "totalAmount": totalAmount})
}

// UpdateOrderStatus fait avancer le statut d'une commande. Delivered est
// terminal. Le passage à Shipped décrémente le stock de chaque article de
// façon synchrone ; les échecs sont agrégés et renvoyés, pas avalés.
// La réécriture ne revalide pas les champs imbriqués (mise à jour partielle).
// PUT /admin/order/:id
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Status is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	order, err := h.Orders.GetByID(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order Not Found"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur lecture commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update order!"})
		return
	}

	if order.OrderStatus == models.OrderDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Already Delivered"})
		return
	}

	now := time.Now()
	var stockWarnings []string

	if req.Status == models.OrderShipped {
		order.ShippedAt = &now
		stockWarnings = h.adjustStockForItems(ctx, order.OrderItems, -1)
	}

	// Une annulation après expédition restitue le stock prélevé ; avant
	// expédition rien n'a été prélevé.
	if req.Status == models.OrderCancelled && order.ShippedAt != nil && order.OrderStatus == models.OrderShipped {
		stockWarnings = h.adjustStockForItems(ctx, order.OrderItems, 1)
	}

	order.OrderStatus = req.Status
	if req.Status == models.OrderDelivered {
		order.DeliveredAt = &now
	}
	order.UpdatedAt = now

	if err := h.Orders.Update(ctx, order); err != nil {
		log.Println("❌ Erreur mise à jour commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update order!"})
		return
	}

	log.Printf("🔄 Commande %s ➡ %s", order.ID, req.Status)

	resp := gin.H{"success": true}
	if len(stockWarnings) > 0 {
		resp["stockWarnings"] = stockWarnings
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteOrder supprime une commande sans condition : pas de contrôle de
// statut, pas de nettoyage du Payment associé.
// DELETE /admin/order/:id
func (h *Handler) DeleteOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Orders.GetByID(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order Not Found"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur lecture commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete order!"})
		return
	}

	if err := h.Orders.Delete(ctx, order); err != nil {
		log.Println("❌ Erreur suppression commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete order!"})
		return
	}

	log.Printf("🗑 Commande %s supprimée", order.ID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// adjustStockForItems applique sign*quantity sur le stock de chaque article
// et renvoie les ids produits dont la mise à jour a échoué.
func (h *Handler) adjustStockForItems(ctx context.Context, items []models.OrderItem, sign int) []string {
	var warnings []string
	for _, item := range items {
		p, err := h.Products.AdjustStock(ctx, item.Product, sign*item.Quantity)
		if err != nil {
			log.Printf("⚠️ Mise à jour stock échouée pour %s: %v", item.Product, err)
			warnings = append(warnings, item.Product)
			continue
		}
		if sign < 0 && p.Stock <= p.LowStockThreshold {
			prod := *p
			go func() {
				if err := h.Mailer.SendLowStockAlert(&prod); err != nil {
					log.Println("❌ Erreur alerte stock bas:", err)
				}
			}()
		}
	}
	return warnings
}
