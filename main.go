// main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-commerce-api/config"
	"go-commerce-api/controllers"
	"go-commerce-api/middleware"
	"go-commerce-api/payment"
	"go-commerce-api/repository"
	"go-commerce-api/routes"
	"go-commerce-api/services"
	"go-commerce-api/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, err := utils.ConnectDB(ctx, cfg.Mongo.URI)
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("mongodb disconnect failed", zap.Error(err))
		}
	}()
	db := client.Database(cfg.Mongo.Database)

	// Stores
	users := repository.NewUserStore(db)
	products := repository.NewProductStore(db)
	orders := repository.NewOrderStore(db)
	carts := repository.NewCartStore(db)

	// Collaborators
	emailService := utils.NewEmailService(cfg.Mail)
	gateway := payment.NewStripeGateway(cfg.Stripe)
	issuer := utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	google := utils.NewGoogleVerifier(cfg.Auth.GoogleClientID)

	// Services
	orderService := services.NewOrderService(orders, products, users, gateway, emailService, cfg.Pricing, logger)
	statsService := services.NewStatsService(orders, products, users, logger)

	// Controllers
	auth := middleware.NewAuth(issuer)
	userController := controllers.NewUserController(users, issuer, google, cfg.Auth.TokenTTL, logger)
	productController := controllers.NewProductController(products)
	cartController := controllers.NewCartController(carts, products)
	orderController := controllers.NewOrderController(orderService, carts, logger)
	adminController := controllers.NewAdminController(orderService, statsService, logger)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, auth, userController, productController, cartController, orderController, adminController)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
