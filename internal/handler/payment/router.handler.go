package payment

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup, mw ...gin.HandlerFunc) {
	payment := e.Group("/payment")

	handlers := append(append([]gin.HandlerFunc{}, mw...), h.GetStatus)
	payment.GET("/status", handlers...)
}
