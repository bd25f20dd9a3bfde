package product

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
	"velora_back_end/internal/services"
	"velora_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

type Handler struct {
	Products store.ProductStore
	Cfg      *config.Config
}

func NewHandler(products store.ProductStore, cfg *config.Config) *Handler {
	return &Handler{Products: products, Cfg: cfg}
}

// List renvoie le catalogue complet.
// GET /products
func (h *Handler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, err := h.Products.List(ctx)
	if err != nil {
		log.Println("❌ Erreur lecture catalogue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lecture catalogue"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// Get renvoie un produit par son id.
// GET /products/:id
func (h *Handler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lecture produit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

// Search interroge Elasticsearch (name, description, tags).
// GET /products/search?q=...
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Paramètre de recherche manquant"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		log.Println("❌ Erreur recherche Elastic:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lors de la recherche"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

// Create crée un produit. Multipart : champs texte + images optionnelles
// poussées vers MinIO.
// POST /admin/products
func (h *Handler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	priceStr := c.PostForm("price")

	if name == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Nom et prix requis"})
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Prix invalide"})
		return
	}

	stock, _ := strconv.Atoi(c.PostForm("stock"))
	threshold, _ := strconv.Atoi(c.PostForm("lowStockThreshold"))
	if threshold <= 0 {
		threshold = 5
	}

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	var imageURLs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["images"] {
			url, err := services.UploadFile(h.Cfg, file)
			if err != nil {
				log.Println("⚠️ Erreur upload image:", err)
				continue
			}
			imageURLs = append(imageURLs, url)
		}
	}

	now := time.Now()
	p := models.Product{
		ID:                gocql.TimeUUID(),
		Name:              name,
		Description:       c.PostForm("description"),
		Price:             price,
		Stock:             stock,
		LowStockThreshold: threshold,
		Category:          c.PostForm("category"),
		ImageURLs:         imageURLs,
		Tags:              tags,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Products.Insert(ctx, &p); err != nil {
		log.Println("❌ Erreur insertion produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur création produit"})
		return
	}

	go services.IndexProduct(p)

	log.Printf("✅ Produit créé: %s (%s)", p.Name, p.ID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": p})
}

// Update modifie un produit existant puis réindexe.
// PUT /admin/products/:id
func (h *Handler) Update(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lecture produit"})
		return
	}

	var input struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Price       *float64  `json:"price"`
		Stock       *int      `json:"stock"`
		Category    *string   `json:"category"`
		Tags        *[]string `json:"tags"`
		IsActive    *bool     `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Données invalides"})
		return
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Prix invalide"})
			return
		}
		p.Price = *input.Price
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Tags != nil {
		p.Tags = *input.Tags
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := h.Products.Update(ctx, p); err != nil {
		log.Println("❌ Erreur mise à jour produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur mise à jour produit"})
		return
	}

	go services.IndexProduct(*p)

	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

// Delete supprime un produit et le retire de l'index.
// DELETE /admin/products/:id
func (h *Handler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id := c.Param("id")
	if _, err := h.Products.GetByID(ctx, id); errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Produit introuvable"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lecture produit"})
		return
	}

	if err := h.Products.Delete(ctx, id); err != nil {
		log.Println("❌ Erreur suppression produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur suppression produit"})
		return
	}

	go services.RemoveProduct(id)

	log.Printf("🗑 Produit supprimé: %s", id)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Produit supprimé"})
}
