package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/opencollect/collect-api/internal/config"
	"github.com/opencollect/collect-api/internal/modules/model"
	"github.com/opencollect/collect-api/internal/modules/serializer"
)

// CallerAuth resolves the caller identity once per request and stores it in
// the gin context under "caller". In noauth mode every request runs as the
// guest identity, which bypasses habilitation checks downstream; otherwise a
// Bearer JWT is required and its subject becomes the caller id.
func CallerAuth(cfg *config.Config, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Auth.Mode == "noauth" {
			c.Set("caller", model.Guest())
			c.Next()
			return
		}

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.Auth.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			log.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		c.Set("caller", &model.Caller{ID: sub, Token: raw})
		c.Next()
	}
}
