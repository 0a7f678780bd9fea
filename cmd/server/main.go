package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/appessoa/PetGo/config"
	"github.com/appessoa/PetGo/internal/app/controller"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/internal/app/service"
	"github.com/appessoa/PetGo/internal/db"
	"github.com/appessoa/PetGo/internal/middleware"
	"github.com/appessoa/PetGo/internal/router"
	"github.com/appessoa/PetGo/internal/scheduler"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/appessoa/PetGo/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting PetGo Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; the catalog cache degrades to direct DB reads
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Continuing without catalog cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer redis.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	vetRepo := repository.NewVeterinarianRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	schedulingRepo := repository.NewSchedulingRepository(db.GetDB())
	prontuarioRepo := repository.NewProntuarioRepository(db.GetDB())
	petRepo := repository.NewPetRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	adoptionRepo := repository.NewAdoptionRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, vetRepo, cfg.JWT)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, db.GetDB())
	orderService := service.NewOrderService(orderRepo, cartRepo, db.GetDB())
	schedulingService := service.NewSchedulingService(schedulingRepo, petRepo, vetRepo)
	prontuarioService := service.NewProntuarioService(prontuarioRepo, petRepo, vetRepo, db.GetDB())
	petService := service.NewPetService(petRepo)
	vetService := service.NewVeterinarianService(vetRepo)
	addressService := service.NewAddressService(addressRepo)
	adoptionService := service.NewAdoptionService(adoptionRepo, petRepo, db.GetDB())
	reportService := service.NewReportService(orderRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService, reportService)
	schedulingController := controller.NewSchedulingController(schedulingService)
	prontuarioController := controller.NewProntuarioController(prontuarioService)
	petController := controller.NewPetController(petService)
	vetController := controller.NewVeterinarianController(vetService)
	addressController := controller.NewAddressController(addressService)
	adoptionController := controller.NewAdoptionController(adoptionService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		orderController,
		schedulingController,
		prontuarioController,
		petController,
		vetController,
		addressController,
		adoptionController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the cart janitor
	janitor := scheduler.NewCartJanitor(cartRepo, cfg.Cart)
	if err := janitor.Start(); err != nil {
		logger.Fatal("Failed to start cart janitor", err)
	}
	defer janitor.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
