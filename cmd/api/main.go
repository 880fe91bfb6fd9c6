package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/fitcore/gym-api/internal/config"
	"github.com/fitcore/gym-api/internal/handler"
	"github.com/fitcore/gym-api/internal/middleware"
	"github.com/fitcore/gym-api/internal/notify"
	"github.com/fitcore/gym-api/internal/repository"
	"github.com/fitcore/gym-api/internal/service"
	"github.com/fitcore/gym-api/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN())
	if err != nil {
		log.Error("parse db config", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.DB.MaxConns

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to PostgreSQL")

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis")

	// RabbitMQ
	amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Error("connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer amqpConn.Close()

	amqpCh, err := amqpConn.Channel()
	if err != nil {
		log.Error("open RabbitMQ channel", "error", err)
		os.Exit(1)
	}
	defer amqpCh.Close()

	if err := notify.Setup(amqpCh); err != nil {
		log.Error("setup RabbitMQ", "error", err)
		os.Exit(1)
	}
	log.Info("connected to RabbitMQ")

	// Repositories
	txManager := repository.NewTxManager(dbPool)
	userRepo := repository.NewUserRepository(dbPool)
	categoryRepo := repository.NewCategoryRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	serviceRepo := repository.NewServiceRepository(dbPool)
	trainerRepo := repository.NewTrainerRepository(dbPool)
	cartRepo := repository.NewCartRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)
	contactRepo := repository.NewContactRepository(dbPool)

	// Notification publisher
	publisher := notify.NewAMQPPublisher(amqpCh)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	productSvc := service.NewProductService(productRepo, redisClient)
	catalogSvc := service.NewCatalogService(categoryRepo, serviceRepo, trainerRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, cartRepo, productRepo, txManager, publisher, log)
	contactSvc := service.NewContactService(contactRepo, publisher, cfg.AdminEmail, log)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	productH := handler.NewProductHandler(productSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	cartH := handler.NewCartHandler(cartSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	contactH := handler.NewContactHandler(contactSvc)
	healthH := handler.NewHealthHandler(dbPool, redisClient, amqpConn)

	// Worker
	notificationWorker := worker.NewNotificationWorker(amqpCh, worker.NewSMTPMailer(cfg.SMTP), redisClient, log)

	// Router
	router := gin.Default()
	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	authRequired := middleware.AuthMiddleware(cfg.JWT.Secret)
	adminOnly := middleware.AdminOnly()

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)

		products := v1.Group("/products")
		products.GET("", productH.List)
		products.GET("/:id", productH.GetByID)
		productsAdmin := products.Group("", authRequired, adminOnly)
		productsAdmin.POST("", productH.Create)
		productsAdmin.PUT("/:id", productH.Update)
		productsAdmin.DELETE("/:id", productH.Delete)

		categories := v1.Group("/categories")
		categories.GET("", catalogH.ListCategories)
		categories.GET("/:id", catalogH.GetCategory)
		categoriesAdmin := categories.Group("", authRequired, adminOnly)
		categoriesAdmin.POST("", catalogH.CreateCategory)
		categoriesAdmin.PUT("/:id", catalogH.UpdateCategory)
		categoriesAdmin.DELETE("/:id", catalogH.DeleteCategory)

		services := v1.Group("/services")
		services.GET("", catalogH.ListServices)
		services.GET("/:id", catalogH.GetService)
		servicesAdmin := services.Group("", authRequired, adminOnly)
		servicesAdmin.POST("", catalogH.CreateService)
		servicesAdmin.PUT("/:id", catalogH.UpdateService)
		servicesAdmin.DELETE("/:id", catalogH.DeleteService)

		trainers := v1.Group("/trainers")
		trainers.GET("", catalogH.ListTrainers)
		trainers.GET("/:id", catalogH.GetTrainer)
		trainersAdmin := trainers.Group("", authRequired, adminOnly)
		trainersAdmin.POST("", catalogH.CreateTrainer)
		trainersAdmin.PUT("/:id", catalogH.UpdateTrainer)
		trainersAdmin.DELETE("/:id", catalogH.DeleteTrainer)

		v1.POST("/contact", contactH.Create)
		v1.GET("/contact", authRequired, adminOnly, contactH.List)

		cart := v1.Group("/cart", authRequired)
		cart.GET("", cartH.GetCart)
		cart.POST("", cartH.AddItem)
		cart.PUT("/:id", cartH.UpdateItem)
		cart.DELETE("/:id", cartH.RemoveItem)
		cart.DELETE("", cartH.Clear)

		orders := v1.Group("/orders", authRequired)
		orders.POST("", orderH.PlaceOrder)
		orders.GET("", orderH.ListOrders)
		orders.GET("/:id", orderH.GetOrder)
		orders.POST("/:id/cancel", orderH.CancelOrder)
		orders.PUT("/:id/status", adminOnly, orderH.UpdateStatus)

		v1.GET("/admin/orders", authRequired, adminOnly, orderH.ListAllOrders)
	}

	if err := notificationWorker.Start(ctx); err != nil {
		log.Error("start notification worker", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	notificationWorker.Stop()
	time.Sleep(500 * time.Millisecond)
	cancel()
	log.Info("server stopped")
}
