package main

import (
	"log"

	"github.com/Usupek/tutor-app/internal/config"
	"github.com/Usupek/tutor-app/internal/database"
	"github.com/Usupek/tutor-app/internal/logger"
	"github.com/Usupek/tutor-app/internal/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog := logger.New(cfg.AppEnv)
	defer func() {
		_ = zlog.Sync()
	}()

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		zlog.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl); err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB()
	zlog.Info("Connected to PostgreSQL")

	// 3. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	routes.RegisterRoutes(app, cfg, database.DB)

	// 4. Start Server
	zlog.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.Int64("pay_rate", cfg.PayRate),
		zap.Float64("min_duration_minutes", cfg.MinDurationMinutes),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("Server failed to start", zap.Error(err))
	}
}
