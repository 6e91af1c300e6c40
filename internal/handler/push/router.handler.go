package push

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup, auth gin.HandlerFunc) {
	push := e.Group("/v1/push")

	push.POST("/notifications", auth, h.SendPush)
	push.POST("/notifications/click", h.SendClick)
	push.POST("/clients", h.RegisterClient)
}
