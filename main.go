package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"coin-reward-system/handlers"
	"coin-reward-system/models"
	"coin-reward-system/services"
	"coin-reward-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Claim{},
		&models.DailyLink{},
		&models.Meta{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	baseClaimURL := os.Getenv("BASE_CLAIM_URL")
	if baseClaimURL == "" {
		baseClaimURL = "http://localhost:3000/claim"
	}

	balanceService := services.NewBalanceService(db)
	metaService := services.NewMetaService(db)
	claimService := services.NewClaimService(db)
	linkService := services.NewLinkService(db, services.NewEnvShortener(), baseClaimURL)
	notifier := workers.NewNotifier()

	resetService := services.NewResetService(balanceService, metaService, clockwork.NewRealClock())
	resetService.StartScheduler()

	app := fiber.New(fiber.Config{})

	handlers.SetupClaimRoutes(app, claimService, notifier)
	handlers.SetupLinkRoutes(app, linkService, claimService, balanceService)
	handlers.SetupAdminRoutes(app, balanceService, claimService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Weekly reset scheduler running (checked every minute)")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
