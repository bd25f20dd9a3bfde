package user

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
	"velora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"
)

// InitOAuthProviders configure gothic et les providers sociaux. Appelé une
// fois au démarrage.
func InitOAuthProviders(cfg *config.Config) {
	if cfg.SessionSecret == "" {
		log.Println("⚠️ SESSION_SECRET manquant — OAuth désactivé")
		return
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // true en prod derrière HTTPS
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = store

	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		if provider := req.FormValue("provider"); provider != "" {
			return provider, nil
		}
		return "", errors.New("provider not found")
	}

	var providers []goth.Provider

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		providers = append(providers, google.New(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.BaseURL+"/auth/google/callback",
		))
		log.Println("✅ Google OAuth activé")
	}

	if cfg.FacebookClientID != "" && cfg.FacebookClientSecret != "" {
		providers = append(providers, facebook.New(
			cfg.FacebookClientID,
			cfg.FacebookClientSecret,
			cfg.BaseURL+"/auth/facebook/callback",
		))
		log.Println("✅ Facebook OAuth activé")
	}

	if len(providers) == 0 {
		log.Println("⚠️ Aucun provider OAuth configuré")
		return
	}

	goth.UseProviders(providers...)
	log.Printf("✅ %d OAuth provider(s) initialisé(s)", len(providers))
}

// BeginAuth redirige vers le provider social.
// GET /auth/:provider
func (h *AuthHandler) BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "aucun provider spécifié"})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// AuthCallback termine le flow OAuth, crée le compte au premier passage
// puis redirige vers le front avec le JWT en query.
// GET /auth/:provider/callback
func (h *AuthHandler) AuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Println("❌ Erreur OAuth:", err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentification échouée"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, gothUser.Email)
	if errors.Is(err, store.ErrNotFound) {
		user = &models.User{
			ID:         uuid.NewString(),
			Name:       gothUser.Name,
			Email:      gothUser.Email,
			Role:       "customer",
			Provider:   provider,
			ProviderID: gothUser.UserID,
		}
		if err := h.Users.Insert(ctx, user); err != nil {
			log.Println("❌ Erreur insertion utilisateur OAuth:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur création utilisateur"})
			return
		}
		log.Printf("✅ Compte %s créé via %s", user.Email, provider)
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lecture utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(*user, []byte(h.Cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur génération token"})
		return
	}

	redirect := h.Cfg.FrontendURL + "/oauth?token=" + url.QueryEscape(token)
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}
