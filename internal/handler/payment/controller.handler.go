package payment

import (
	"errors"
	"net/http"
	"portrait-backend/internal/common/enum"
	types "portrait-backend/internal/common/type"
	"portrait-backend/internal/pkg/gateway"
	"portrait-backend/internal/pkg/logger"
	paymentService "portrait-backend/internal/service/payment"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const statusEndpoint = "/api/payment/status"

type Handler struct {
	paymentService paymentService.IService
	env            enum.EnvEnum
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup, mw ...gin.HandlerFunc)
}

func NewHandler(paymentService paymentService.IService, env enum.EnvEnum) IHandler {
	return &Handler{
		paymentService: paymentService,
		env:            env,
	}
}

// GetStatus godoc
// @Summary      Get payment status
// @Description  Relays the gateway's status for an order. The body shape is a public contract, so it is rendered directly instead of through send.
// @Tags         Payments
// @Produce      json
// @Param        idOrder  query     int  true  "Order ID"
// @Success      200      {object}  paymentService.StatusResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      429      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /payment/status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	var query paymentService.StatusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: badOrderID(c)})
		return
	}

	orderID, err := strconv.ParseInt(strings.TrimSpace(query.IDOrder), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: badOrderID(c)})
		return
	}

	result, err := h.paymentService.GetOrderStatus(c.Request.Context(), orderID)
	if err != nil {
		logger.With(
			"endpoint", statusEndpoint,
			"action", "get_order_status",
			"id_order", orderID,
			"not_found", errors.Is(err, gateway.ErrOrderNotFound),
		).Error("payment status lookup failed", "error", err)

		body := types.ErrorResponse{Error: "Failed to fetch payment status"}
		if h.env.IsDevelopment() {
			body.Details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
		return
	}

	c.JSON(http.StatusOK, result)
}

func badOrderID(c *gin.Context) string {
	if strings.TrimSpace(c.Query("idOrder")) == "" {
		return "idOrder is required"
	}
	return "idOrder must be an integer"
}
