package middleware

import (
	"net/http"
	types "portrait-backend/internal/common/type"
	"portrait-backend/internal/pkg/helper"
	"portrait-backend/internal/pkg/jwt"
	"strings"

	"github.com/gin-gonic/gin"
)

const AuthKey = "auth"

// AuthMiddleware requires a valid admin bearer token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		send := c.MustGet("send").(func(r *types.Response))

		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "token not found"}))
			c.Abort()
			return
		}

		admin, err := jwt.ValidateToken(token)
		if err != nil {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "invalid token", Error: err}))
			c.Abort()
			return
		}

		c.Set(AuthKey, *admin)
		c.Next()
	}
}
