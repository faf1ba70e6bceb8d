package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aoacon/conference-backend/internal/config"
	"github.com/aoacon/conference-backend/internal/database"
	"github.com/aoacon/conference-backend/internal/di"
	"github.com/aoacon/conference-backend/internal/gateway"
	"github.com/aoacon/conference-backend/internal/logger"
	"github.com/aoacon/conference-backend/internal/middleware"
	"github.com/aoacon/conference-backend/internal/redis"
	"github.com/aoacon/conference-backend/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := &logger.Config{
		Level:       cfg.App.Environment,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting conference backend...")

	ctx := context.Background()

	if cfg.OTel.Enabled {
		_, err := telemetry.Init(ctx, &telemetry.Config{
			Enabled:        true,
			ServiceName:    cfg.OTel.ServiceName,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			CollectorAddr:  cfg.OTel.CollectorAddr,
			SampleRatio:    cfg.OTel.SampleRatio,
		})
		if err != nil {
			appLog.Warn(fmt.Sprintf("Telemetry init failed: %v", err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := telemetry.Shutdown(shutdownCtx); err != nil {
					appLog.Warn(fmt.Sprintf("Telemetry shutdown failed: %v", err))
				}
			}()
		}
	}

	var db *database.PostgresDB
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err = database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Database connection failed: %v", err))
		db = nil
	} else {
		defer db.Close()
		appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))
	}

	var redisClient *redis.Client
	redisCfg := &redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}
	redisClient, err = redis.NewClient(ctx, redisCfg)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Redis connection failed: %v", err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info("Redis connected")
	}

	gatewayType := "razorpay"
	if cfg.Razorpay.UseMock || cfg.Razorpay.KeyID == "" {
		gatewayType = "mock"
	}
	paymentGateway, err := gateway.NewPaymentGateway(gatewayType, &gateway.GatewayConfig{
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to create payment gateway: %v", err))
	}
	appLog.Info(fmt.Sprintf("Using %s payment gateway", paymentGateway.Name()))

	container := di.NewContainer(&di.ContainerConfig{
		Config:         cfg,
		DB:             db,
		Redis:          redisClient,
		PaymentGateway: paymentGateway,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}

	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	auth := middleware.AuthMiddleware(cfg.JWT.Secret)
	admin := middleware.AdminMiddleware()

	var idempotency gin.HandlerFunc
	if redisClient != nil {
		idemCfg := middleware.DefaultIdempotencyConfig(redisClient)
		idempotency = middleware.IdempotencyMiddleware(idemCfg)
	} else {
		idempotency = func(c *gin.Context) { c.Next() }
		appLog.Warn("Redis unavailable, payment idempotency keys are not enforced")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"version": cfg.App.Version,
				"service": cfg.App.Name,
			})
		})

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", container.AuthHandler.Register)
			authGroup.POST("/login", container.AuthHandler.Login)
			authGroup.GET("/me", auth, container.AuthHandler.Me)
		}

		registrations := v1.Group("/registrations", auth)
		{
			registrations.POST("", container.RegistrationHandler.Create)
			registrations.GET("/me", container.RegistrationHandler.GetMine)
			registrations.GET("/pricing", container.RegistrationHandler.Pricing)
			registrations.GET("", admin, container.RegistrationHandler.List)
		}

		accommodations := v1.Group("/accommodations")
		{
			accommodations.GET("", container.AccommodationHandler.List)
			accommodations.GET("/:id", container.AccommodationHandler.Get)
			accommodations.POST("", auth, admin, container.AccommodationHandler.Create)
			accommodations.POST("/:id/bookings", auth, container.AccommodationHandler.CreateBooking)
			accommodations.GET("/bookings/me", auth, container.AccommodationHandler.MyBookings)
		}

		payments := v1.Group("/payments", auth)
		{
			payments.POST("/orders/registration", idempotency, container.PaymentHandler.CreateRegistrationOrder)
			payments.POST("/orders/accommodation", idempotency, container.PaymentHandler.CreateAccommodationOrder)
			payments.POST("/verify", container.PaymentHandler.Verify)
			payments.POST("/failed", container.PaymentHandler.Failed)
			payments.GET("/me", container.PaymentHandler.ListMine)
			payments.POST("/:orderId/reconcile", admin, container.PaymentHandler.Reconcile)
		}

		attendance := v1.Group("/attendance", auth)
		{
			attendance.POST("/badge", container.AttendanceHandler.Badge)
			attendance.GET("/badge/me", container.AttendanceHandler.Badge)
			attendance.POST("/scan/check", admin, container.AttendanceHandler.CheckScan)
			attendance.POST("/scan/mark", admin, container.AttendanceHandler.MarkScan)
			attendance.GET("", admin, container.AttendanceHandler.List)
			attendance.GET("/:id/scans", admin, container.AttendanceHandler.ListScans)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		appLog.Info(fmt.Sprintf("Conference backend listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
