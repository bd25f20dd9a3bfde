package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const cartTTL = 30 * 24 * time.Hour

// GetCart renvoie le panier Redis de l'utilisateur (vide si absent).
// GET /cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	key := "cart:" + userID
	data, err := database.Redis.Get(context.Background(), key).Result()
	if err != nil || data == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "items": []models.CartItem{}})
		return
	}

	var cart []models.CartItem
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur décodage panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": cart})
}

// AddToCart ajoute (ou cumule) un produit dans le panier.
// POST /cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	key := "cart:" + userID

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Quantité invalide"})
		return
	}

	productUUID, err := gocql.ParseUUID(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur connexion base de données"})
		return
	}

	var (
		name      string
		price     float64
		imageURLs []string
	)
	err = session.Query(`SELECT name, price, image_urls FROM products WHERE product_id = ?`, productUUID).
		Scan(&name, &price, &imageURLs)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Produit introuvable"})
		return
	}

	imageURL := ""
	if len(imageURLs) > 0 {
		imageURL = imageURLs[0]
	}

	item := models.CartItem{
		ProductID: input.ProductID,
		Name:      name,
		Price:     price,
		Quantity:  input.Quantity,
		ImageURL:  imageURL,
	}

	ctx := context.Background()
	data, _ := database.Redis.Get(ctx, key).Result()
	var cart []models.CartItem
	if data != "" {
		_ = json.Unmarshal([]byte(data), &cart)
	}

	found := false
	for i := range cart {
		if cart[i].ProductID == item.ProductID {
			cart[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, item)
	}

	jsonData, _ := json.Marshal(cart)
	database.Redis.Set(ctx, key, jsonData, cartTTL)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Produit ajouté au panier",
		"items":   cart,
	})
}

// RemoveFromCart retire un produit du panier.
// DELETE /cart/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")
	key := "cart:" + userID

	ctx := context.Background()
	data, _ := database.Redis.Get(ctx, key).Result()
	if data == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "items": []models.CartItem{}})
		return
	}

	var cart []models.CartItem
	_ = json.Unmarshal([]byte(data), &cart)

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID != productID {
			newCart = append(newCart, item)
		}
	}

	jsonData, _ := json.Marshal(newCart)
	database.Redis.Set(ctx, key, jsonData, cartTTL)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Produit supprimé du panier",
		"items":   newCart,
	})
}

// ClearCart vide complètement le panier.
// DELETE /cart/clear
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	key := "cart:" + userID

	if err := database.Redis.Del(context.Background(), key).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Panier vidé avec succès"})
}
