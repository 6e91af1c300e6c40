package serverApp

import (
	"net/http"
	"net/url"
	"portrait-backend/docs"
	"portrait-backend/internal/common/enum"
	database "portrait-backend/internal/pkg/db"
	"portrait-backend/internal/pkg/middleware"
	"portrait-backend/internal/pkg/rabbitmq"
	"portrait-backend/internal/pkg/redis"
	"strings"
	"time"

	bookingHandler "portrait-backend/internal/handler/booking"
	paymentHandler "portrait-backend/internal/handler/payment"
	pushHandler "portrait-backend/internal/handler/push"
	conversionService "portrait-backend/internal/service/conversion"
	paymentService "portrait-backend/internal/service/payment"
	pushService "portrait-backend/internal/service/push"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// APIDeps are the collaborators the HTTP layer needs.
type APIDeps struct {
	Env             enum.EnvEnum
	BaseURL         string
	CorsOrigins     string
	StatusPollLimit int
	Db              *database.Database
	Rds             redis.IRedis
	Rb              *rabbitmq.ConnectionManager
	Payment         paymentService.IService
	Conversion      conversionService.IService
	Push            pushService.IService
}

// Setup initializes the HTTP server with middleware and routes
func Setup(engine *gin.Engine, deps *APIDeps) {
	InitMiddleware(engine, deps)

	// Swagger host follows APP_BASE_URL
	if parsed, err := url.Parse(deps.BaseURL); err == nil && parsed.Host != "" {
		docs.SwaggerInfo.Host = parsed.Host
		if strings.HasPrefix(deps.BaseURL, "https") {
			docs.SwaggerInfo.Schemes = []string{"https"}
		} else {
			docs.SwaggerInfo.Schemes = []string{"http"}
		}
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/health", healthHandler(deps))

	e := engine.Group(BasePath())
	InitRoutes(e, deps)
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine, deps *APIDeps) {
	e.Use(middleware.CorsMiddleware(deps.CorsOrigins))
	e.Use(middleware.RequestInit())
	e.Use(middleware.ResponseInit(deps.Env))
}

func InitRoutes(e *gin.RouterGroup, deps *APIDeps) {
	// === Payment status ===
	paymentHandler.NewHandler(deps.Payment, deps.Env).
		NewRoutes(e, middleware.RateLimit(deps.Rds, "payment-status", deps.StatusPollLimit, time.Minute))

	// === Purchase report ===
	bookingHandler.NewHandler(deps.Conversion).NewRoutes(e)

	// === Push ===
	pushHandler.NewHandler(deps.Push).NewRoutes(e, middleware.AuthMiddleware())
}

func healthHandler(deps *APIDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		rabbitmqHealth := "unhealthy"
		redisHealth := "unhealthy"
		databaseHealth := "unhealthy"

		if deps.Db != nil && deps.Db.Ping() == nil {
			databaseHealth = "healthy"
		}
		if deps.Rb != nil && !deps.Rb.IsClosed() {
			rabbitmqHealth = "healthy"
		}
		if deps.Rds != nil {
			if deps.Rds.Ping(c.Request.Context()) == nil {
				redisHealth = "healthy"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"service": gin.H{
				"rabbitmq": gin.H{
					"status": rabbitmqHealth,
				},
				"redis": gin.H{
					"status": redisHealth,
				},
				"database": gin.H{
					"status": databaseHealth,
				},
			},
		})
	}
}
