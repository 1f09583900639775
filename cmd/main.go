package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agriswayam/go-notification-service/internal/consumer"
	"github.com/agriswayam/go-notification-service/internal/delivery"
	"github.com/agriswayam/go-notification-service/internal/generator"
	"github.com/agriswayam/go-notification-service/internal/handler"
	"github.com/agriswayam/go-notification-service/internal/middleware"
	"github.com/agriswayam/go-notification-service/internal/scheduler"
	"github.com/agriswayam/go-notification-service/internal/shared/config"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
	"github.com/agriswayam/go-notification-service/internal/shared/mongodb"
	"github.com/agriswayam/go-notification-service/internal/shared/rabbitmq"
	"github.com/agriswayam/go-notification-service/internal/storage"
	"github.com/agriswayam/go-notification-service/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Initialize logger
	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting AgriSwayam Notification Service...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	// Initialize persistence. A missing Mongo falls back to in-memory storage
	// so the dashboard keeps working for the session without durability.
	var kv storage.KV
	mongoClient, err := mongodb.NewMongoClient(cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		log.Error("Failed to connect to MongoDB, running without durability", "error", err)
		kv = storage.NewMemoryKV()
	} else {
		defer mongoClient.Disconnect(context.Background())
		kv = storage.NewMongoKV(mongoClient)
	}
	adapter := storage.NewAdapter(kv, log)

	// Initialize browser delivery
	notifier := delivery.NewPushGatewayNotifier(cfg.Push.GatewayURL, cfg.Push.IconURL, log)
	channel := delivery.NewChannel(notifier, log)

	// Initialize the notification store
	notificationStore := store.New(adapter, channel, log)

	// Ask for browser permission up front, matching dashboard startup
	if granted, _ := notificationStore.RequestPermission(context.Background()); granted {
		log.Info("Browser notification permission granted")
	}

	// A fresh installation starts with sample notifications so the dashboard
	// is not empty on first run.
	if cfg.Server.SeedSamples && len(notificationStore.Notifications()) == 0 {
		log.Info("Seeding sample notifications")
		for _, req := range generator.Samples() {
			notificationStore.Add(req)
		}
	}

	// Initialize scheduler (expiry pruning + time-based reminders)
	notificationScheduler := scheduler.NewNotificationScheduler(notificationStore, log)
	if err := notificationScheduler.Start(); err != nil {
		log.Error("Failed to start scheduler", "error", err)
	}
	defer notificationScheduler.Stop()

	// Initialize RabbitMQ consumer for farm events
	rabbitMQClient, err := rabbitmq.NewRabbitMQClient(cfg.RabbitMQ.URL)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ, farm events disabled", "error", err)
	} else {
		defer rabbitMQClient.Close()
		eventConsumer := consumer.NewEventConsumer(rabbitMQClient, notificationStore, log)
		go func() {
			if err := eventConsumer.Start(); err != nil {
				log.Error("Event consumer stopped", "error", err)
			}
		}()
	}

	// Initialize HTTP handlers
	notificationHandler := handler.NewNotificationHandler(notificationStore, log)
	preferencesHandler := handler.NewPreferencesHandler(notificationStore, log)
	rateLimiter := middleware.NewFarmerRateLimiter(cfg.RateLimit.PerFarmer, cfg.RateLimit.Burst)

	// Setup routes
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/state", notificationHandler.GetState)
		v1.GET("/notifications", notificationHandler.List)
		v1.POST("/notifications", middleware.RateLimitMiddleware(rateLimiter), notificationHandler.Trigger)
		v1.POST("/notifications/read-all", notificationHandler.MarkAllAsRead)
		v1.POST("/notifications/:id/read", notificationHandler.MarkAsRead)
		v1.DELETE("/notifications/:id", notificationHandler.Delete)
		v1.DELETE("/notifications", notificationHandler.ClearAll)
		v1.GET("/preferences", preferencesHandler.GetPreferences)
		v1.PATCH("/preferences", preferencesHandler.UpdatePreferences)
		v1.POST("/permission/request", notificationHandler.RequestPermission)
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	// Let in-flight persistence writes land before the process exits.
	notificationStore.Flush()

	log.Info("Server exited")
}
