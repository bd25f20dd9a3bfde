package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"velora_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	LoginMaxAttempts    = 5
	RegisterMaxAttempts = 3

	LoginCooldown    = 15 * time.Minute
	RegisterCooldown = 30 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email (compteur
// Redis avec expiration). Le body est relu puis remis en place pour le
// handler suivant.
func LoginRateLimit() gin.HandlerFunc {
	return rateLimitByEmail("ratelimit:login:", LoginMaxAttempts, LoginCooldown)
}

// RegisterRateLimit limite les créations de compte par email.
func RegisterRateLimit() gin.HandlerFunc {
	return rateLimitByEmail("ratelimit:register:", RegisterMaxAttempts, RegisterCooldown)
}

func rateLimitByEmail(prefix string, max int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			// Pas d'email exploitable, on laisse le handler rejeter
			c.Next()
			return
		}

		ctx := context.Background()
		key := prefix + strings.ToLower(input.Email)

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			// Redis indisponible : on ne bloque pas le login pour autant
			c.Next()
			return
		}
		if count == 1 {
			database.Redis.Expire(ctx, key, cooldown)
		}

		if count > int64(max) {
			ttl, _ := database.Redis.TTL(ctx, key).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Trop de tentatives, réessayez dans %s", ttl.Round(time.Second)),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
