package middleware

import (
	"portrait-backend/internal/common/enum"
	types "portrait-backend/internal/common/type"
	"portrait-backend/internal/pkg/helper"
	"portrait-backend/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ResponseInit installs the `send` closure that handlers use to render a
// service Response. Error details are sanitized for env.
func ResponseInit(env enum.EnvEnum) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("send", func(r *types.Response) {
			r = helper.ParseResponse(r)

			body := types.ResponseAPI{
				Status:    r.Code,
				Message:   r.Message,
				Data:      r.Data,
				RequestID: GetRequestID(c),
			}
			if r.Error != nil {
				logger.With(
					RequestIDKey, body.RequestID,
					"path", c.Request.URL.Path,
					"status", r.Code,
				).Error(r.Message, "error", r.Error)
				body.Error = helper.SanitizeError(r.Error, r.Code, env)
			}

			c.JSON(r.Code, body)
		})

		c.Next()
	}
}
