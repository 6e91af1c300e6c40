package booking

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	bookings := e.Group("/v1/bookings")

	bookings.POST("/:booking_id/purchase-report", h.ReportPurchase)
}
