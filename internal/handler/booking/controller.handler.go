package booking

import (
	"net/http"
	conversionService "portrait-backend/internal/service/conversion"

	"github.com/gin-gonic/gin"
)

const (
	clickIDCookie   = "_fbc"
	browserIDCookie = "_fbp"
)

type Handler struct {
	conversionService conversionService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(conversionService conversionService.IService) IHandler {
	return &Handler{
		conversionService: conversionService,
	}
}

// ReportPurchase godoc
// @Summary      Report a booking purchase
// @Description  Sends a Purchase conversion event for a confirmed booking. Always answers 200; failures are logged and reported as success false.
// @Tags         Bookings
// @Produce      json
// @Param        booking_id  path      string  true   "Booking ID"
// @Param        Referer     header    string  false  "Event source URL"
// @Success      200         {object}  conversionService.Outcome
// @Router       /v1/bookings/{booking_id}/purchase-report [post]
func (h *Handler) ReportPurchase(c *gin.Context) {
	fbc, _ := c.Cookie(clickIDCookie)
	fbp, _ := c.Cookie(browserIDCookie)

	out := h.conversionService.ReportPurchase(c.Request.Context(), &conversionService.ReportInput{
		BookingID:      c.Param("booking_id"),
		FBC:            fbc,
		FBP:            fbp,
		EventSourceURL: c.GetHeader("Referer"),
	})

	c.JSON(http.StatusOK, out)
}
