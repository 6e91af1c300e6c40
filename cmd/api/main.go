package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	config "portrait-backend/configs"
	"portrait-backend/internal/pkg/conversion"
	database "portrait-backend/internal/pkg/db"
	"portrait-backend/internal/pkg/gateway"
	"portrait-backend/internal/pkg/logger"
	midtransPkg "portrait-backend/internal/pkg/midtrans"
	"portrait-backend/internal/pkg/rabbitmq"
	"portrait-backend/internal/pkg/redis"
	"portrait-backend/internal/pkg/serviceworker"
	"portrait-backend/internal/pkg/validation"
	"portrait-backend/internal/pkg/webpush"
	"portrait-backend/internal/repository"
	bookingRepo "portrait-backend/internal/repository/booking"
	postRepo "portrait-backend/internal/repository/post"
	serverApp "portrait-backend/internal/server"
	conversionService "portrait-backend/internal/service/conversion"
	paymentService "portrait-backend/internal/service/payment"
	pushService "portrait-backend/internal/service/push"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

const drainTimeout = 20 * time.Second

// @title           Portrait Backend API
// @version         1.0
// @description     Payment status relay, purchase conversion reporting and web push for the portrait studio site

// @BasePath        /api
func main() {
	logger.Setup()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}
	logger.Setup(env.AppEnv)

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	// Setup Redis
	redisClient, err := setupRedis(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Redis", err)
		cancel()
		return
	}

	// Setup RabbitMQ
	rabbit, err := setupRabbitMQ(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up RabbitMQ", err)
		cancel()
		return
	}

	// Setup Database
	db, err := setupDB(env, redisClient)
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		cancel()
		return
	}

	// Setup Server
	setupServer(&config.SetupServerDto{
		Rds:        redisClient,
		Env:        env,
		Ctx:        &ctx,
		Cancel:     cancel,
		Db:         db,
		Wg:         &wg,
		Rb:         rabbit,
		Provider:   setupProvider(env),
		Conversion: setupConversion(env),
	})
}

func setupRedis(ctx context.Context, env *config.Config) (*redis.Client, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
		VHost:    env.RabbitVHost,
	})
}

func setupDB(env *config.Config, rds *redis.Client) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:      env.DBHost,
		Port:      env.DBPort,
		User:      env.DBUser,
		Password:  env.DBPass,
		Database:  env.DBName,
		SSLMode:   env.DBSSLMode,
		Driver:    database.DriverEnum(env.DBDriver),
		Cache:     env.DBCache,
		Rds:       rds,
		CacheTime: 5 * time.Minute,
	})
}

func setupProvider(env *config.Config) gateway.Provider {
	if env.PaymentProvider == "midtrans" {
		logger.Info.Println("Payment provider: midtrans")
		return midtransPkg.Setup(&midtransPkg.Config{
			ServerKey:   env.MidtransServerKey,
			Environment: env.MidtransEnvironment,
		})
	}

	logger.Info.Println("Payment provider: gateway")
	return gateway.New(&gateway.Config{
		BaseURL:  env.PaymentGatewayURL,
		APIKey:   env.PaymentGatewayKey,
		Timeout:  env.PaymentTimeout,
		ProxyURL: env.OutboundProxyURL,
	})
}

func setupConversion(env *config.Config) conversion.IClient {
	return conversion.New(&conversion.Config{
		PixelID:       env.MetaPixelID,
		AccessToken:   env.MetaAccessToken,
		APIVersion:    env.MetaAPIVersion,
		TestEventCode: env.MetaTestEventCode,
		Timeout:       env.PaymentTimeout,
		ProxyURL:      env.OutboundProxyURL,
	})
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg
	rb := payload.Rb
	db := payload.Db

	defer func() {
		cancel()
		wg.Wait()
		if rds != nil {
			_ = rds.Close()
		}
		_ = rb.Close()
		_ = db.Close()
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	if !env.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	e.Use(gin.Recovery())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.AppPort),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	publisher, err := rabbitmq.NewPublisher(*ctx, rb)
	if err != nil {
		panic(err)
	}
	defer func() { _ = publisher.Close() }()

	rp := repository.IRepository{
		Booking: bookingRepo.NewRepo(db),
		Post:    postRepo.NewRepo(db),
	}

	platform := webpush.NewPlatform(rds, publisher, &webpush.Config{
		ClientTTL: time.Duration(env.PushClientTTL) * time.Second,
	})
	host := serviceworker.NewHost(platform)

	PaymentService := paymentService.NewService(payload.Provider)
	ConversionService := conversionService.NewService(rp, payload.Conversion, env.DefaultCurrency)
	PushService := pushService.NewService(*ctx, publisher, host, platform)

	serverApp.Setup(e, &serverApp.APIDeps{
		Env:             env.AppEnv,
		BaseURL:         env.AppBaseURL,
		CorsOrigins:     env.CorsOrigins,
		StatusPollLimit: env.StatusPollLimit,
		Db:              db,
		Rds:             rds,
		Rb:              rb,
		Payment:         PaymentService,
		Conversion:      ConversionService,
		Push:            PushService,
	})

	if err = host.Start(*ctx); err != nil {
		logger.Error.Println("Service worker failed to start:", err)
	}

	subscribers, err := serverApp.InitWorker(*ctx, rb, PushService, ConversionService)
	if err != nil {
		logger.Error.Println("Failed to start workers:", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.HTTP.Println("========= Server Shutting Down =========")

	shutdownCtx, stop := context.WithTimeout(context.Background(), drainTimeout)
	defer stop()

	_ = server.Shutdown(shutdownCtx)
	for _, sub := range subscribers {
		if err := sub.Stop(); err != nil {
			logger.Warning.Println("Failed to stop subscriber:", err)
		}
	}
	if err = host.Drain(shutdownCtx); err != nil {
		logger.Warning.Println("Service worker drain incomplete:", err)
	}
}
