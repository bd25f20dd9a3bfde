package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetWishlist récupère la wishlist, via le cache Redis quand il est chaud.
// GET /wishlist
func GetWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx := context.Background()
	cacheKey := "wishlist:" + userID

	cached, err := database.Redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var wishlist models.Wishlist
		if json.Unmarshal([]byte(cached), &wishlist) == nil {
			c.JSON(http.StatusOK, wishlist)
			return
		}
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT product_id FROM wishlist WHERE user_id = ?", userID).Iter()

	var productIDs []gocql.UUID
	var productID gocql.UUID
	for iter.Scan(&productID) {
		productIDs = append(productIDs, productID)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lecture wishlist"})
		return
	}

	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur connexion base de données"})
		return
	}

	var products []models.Product
	for _, pid := range productIDs {
		var product models.Product
		err := productsSession.Query(`
			SELECT product_id, name, description, price, stock, low_stock_threshold,
				category, image_urls, tags, is_active, created_at, updated_at
			FROM products WHERE product_id = ?
		`, pid).Scan(
			&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.LowStockThreshold, &product.Category,
			&product.ImageURLs, &product.Tags, &product.IsActive,
			&product.CreatedAt, &product.UpdatedAt,
		)
		if err == nil {
			products = append(products, product)
		}
	}

	wishlist := models.Wishlist{
		UserID: userID,
		Items:  products,
	}

	if data, err := json.Marshal(wishlist); err == nil {
		database.Redis.Set(ctx, cacheKey, data, 10*time.Minute)
	}

	c.JSON(http.StatusOK, wishlist)
}

// AddToWishlist ajoute un produit à la wishlist.
// POST /wishlist/add
func AddToWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Données invalides"})
		return
	}

	productUUID, err := gocql.ParseUUID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID produit invalide"})
		return
	}

	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur connexion base de données"})
		return
	}

	var exists gocql.UUID
	if err := productsSession.Query("SELECT product_id FROM products WHERE product_id = ?", productUUID).
		Scan(&exists); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Produit introuvable"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur connexion base de données"})
		return
	}

	err = session.Query(`
		INSERT INTO wishlist (user_id, product_id, added_at)
		VALUES (?, ?, ?)
	`, userID, productUUID, time.Now()).Exec()
	if err != nil {
		log.Printf("❌ Erreur ajout wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur ajout à la wishlist"})
		return
	}

	database.Redis.Del(context.Background(), "wishlist:"+userID)

	log.Printf("⭐ Produit %s ajouté à la wishlist de %s", req.ProductID, userID)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Produit ajouté à la wishlist",
		"product_id": req.ProductID,
	})
}

// RemoveFromWishlist retire un produit de la wishlist.
// DELETE /wishlist/:productId
func RemoveFromWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	productUUID, err := gocql.ParseUUID(productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID produit invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur connexion base de données"})
		return
	}

	err = session.Query("DELETE FROM wishlist WHERE user_id = ? AND product_id = ?",
		userID, productUUID).Exec()
	if err != nil {
		log.Printf("❌ Erreur suppression wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur suppression de la wishlist"})
		return
	}

	database.Redis.Del(context.Background(), "wishlist:"+userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Produit retiré de la wishlist"})
}
