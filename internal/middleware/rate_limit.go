package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mobigear_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute

	APIMaxRequests = 100 // Par minute pour les endpoints généraux
	APICooldown    = 1 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par numéro de téléphone
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Phone string `json:"phone"`
		}

		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Phone == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		key := "login_attempts:" + input.Phone
		cooldownKey := "login_cooldown:" + input.Phone

		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, key)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Compte bloqué pendant %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RecordLoginFailure incrémente le compteur de tentatives pour un téléphone
func RecordLoginFailure(phone string) {
	ctx := context.Background()
	key := "login_attempts:" + phone
	database.Redis.Incr(ctx, key)
	database.Redis.Expire(ctx, key, LoginCooldown)
}

// ResetLoginAttempts remet le compteur à zéro après un login réussi
func ResetLoginAttempts(phone string) {
	database.Redis.Del(context.Background(), "login_attempts:"+phone)
}
