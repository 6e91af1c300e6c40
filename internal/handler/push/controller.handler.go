package push

import (
	"net/http"
	types "portrait-backend/internal/common/type"
	"portrait-backend/internal/pkg/helper"
	pushService "portrait-backend/internal/service/push"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	pushService pushService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup, auth gin.HandlerFunc)
}

func NewHandler(pushService pushService.IService) IHandler {
	return &Handler{
		pushService: pushService,
	}
}

func badRequest(err error) *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
		Error:   helper.NewPublicError("invalid request body", err),
	})
}

// SendPush godoc
// @Summary      Send a push notification
// @Description  Queues a push notification for every subscribed browser
// @Tags         Push
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string                          true  "Bearer token"
// @Param        request        body      pushService.SendPushRequest     true  "Notification"
// @Success      200            {object}  types.ResponseAPI
// @Failure      400            {object}  types.ResponseAPI
// @Failure      401            {object}  types.ResponseAPI
// @Router       /v1/push/notifications [post]
func (h *Handler) SendPush(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req pushService.SendPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.pushService.SendPush(c.Request.Context(), &req))
}

// SendClick godoc
// @Summary      Report a notification click
// @Tags         Push
// @Accept       json
// @Produce      json
// @Param        request  body      pushService.ClickRequest  true  "Click"
// @Success      200      {object}  types.ResponseAPI
// @Failure      400      {object}  types.ResponseAPI
// @Router       /v1/push/notifications/click [post]
func (h *Handler) SendClick(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req pushService.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.pushService.SendClick(c.Request.Context(), &req))
}

// RegisterClient godoc
// @Summary      Register a browser client
// @Tags         Push
// @Accept       json
// @Produce      json
// @Param        request  body      pushService.RegisterClientRequest  true  "Client"
// @Success      200      {object}  types.ResponseAPI
// @Failure      400      {object}  types.ResponseAPI
// @Router       /v1/push/clients [post]
func (h *Handler) RegisterClient(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req pushService.RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.pushService.RegisterClient(c.Request.Context(), &req))
}
