package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/DeepaShriSG/EcomBE/config"
	"github.com/DeepaShriSG/EcomBE/database"
	"github.com/DeepaShriSG/EcomBE/handlers"
	"github.com/DeepaShriSG/EcomBE/metrics"
	"github.com/DeepaShriSG/EcomBE/notify"
	"github.com/DeepaShriSG/EcomBE/otp"
	"github.com/DeepaShriSG/EcomBE/payment"
	"github.com/DeepaShriSG/EcomBE/routes"
	"github.com/DeepaShriSG/EcomBE/store"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	// Initialize Echo
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())

	// Connect to MongoDB
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatal("Failed to create indexes:", err)
	}
	cancel()

	// Wire dependencies
	users := store.NewUserStore(db)
	products := store.NewProductStore(db)
	sms := notify.NewVonageSender(cfg.VonageAPIKey, cfg.VonageAPISecret)
	payments := payment.NewStripeProvider(cfg.StripeSecret, cfg.StripeWebhookSecret, cfg.Domain)
	otpService := otp.NewService(users, sms, cfg.SMSSender)
	defer otpService.Close()

	h := handlers.New(users, products, payments, sms, otpService, cfg)

	// Setup routes
	routes.SetupRoutes(e, h)

	// Start the server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
