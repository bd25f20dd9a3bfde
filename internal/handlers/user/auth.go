package user

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
	"velora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Users store.UserStore
	Cfg   *config.Config
}

func NewAuthHandler(users store.UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Cfg: cfg}
}

// Register crée un compte local.
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Données invalides"})
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email et mot de passe requis"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, input.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Un compte avec cet email existe déjà"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur création utilisateur"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur création utilisateur"})
		return
	}

	user := models.User{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     "customer",
		Provider: "local",
	}

	if err := h.Users.Insert(ctx, &user); err != nil {
		log.Println("❌ Erreur insertion utilisateur:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(user, []byte(h.Cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Nouveau compte : %s", user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"userId":  user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
	})
}

// Login authentifie un compte local.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(*user, []byte(h.Cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"userId":  user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
	})
}

// Me renvoie le profil de l'utilisateur connecté.
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByID(ctx, c.GetString("user_id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Utilisateur introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lecture utilisateur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
