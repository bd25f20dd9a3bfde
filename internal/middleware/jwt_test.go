package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("secret-de-test")

func protectedRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	return r
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := protectedRouter(testSecret)

	t.Run("token valide", func(t *testing.T) {
		token, err := utils.GenerateJWT(models.User{
			ID: "user-1", Email: "alice@example.com", Name: "Alice", Role: "admin",
		}, testSecret)
		require.NoError(t, err)

		w := request(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
		assert.Contains(t, w.Body.String(), `"role":"admin"`)
	})

	t.Run("header manquant", func(t *testing.T) {
		w := request(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("format invalide", func(t *testing.T) {
		w := request(r, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("mauvais secret", func(t *testing.T) {
		token, err := utils.GenerateJWT(models.User{ID: "user-1"}, []byte("autre-secret"))
		require.NoError(t, err)

		w := request(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token expiré", func(t *testing.T) {
		claims := jwt.MapClaims{
			"user_id": "user-1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
		require.NoError(t, err)

		w := request(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("user_id manquant dans les claims", func(t *testing.T) {
		claims := jwt.MapClaims{
			"email": "alice@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
		require.NoError(t, err)

		w := request(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
		})
		r.GET("/admin", RequireAdmin, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		return r
	}

	t.Run("admin autorisé", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("admin").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("client refusé", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("customer").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rôle absent refusé", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
