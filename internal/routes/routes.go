package routes

import (
	"github.com/Usupek/tutor-app/internal/config"
	"github.com/Usupek/tutor-app/internal/handlers"
	"github.com/Usupek/tutor-app/internal/middleware"
	"github.com/Usupek/tutor-app/internal/repository"
	"github.com/Usupek/tutor-app/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	sessionService := services.NewSessionService(db, sessionRepo, services.SessionConfig{
		PayRate:            cfg.PayRate,
		MaxStudents:        cfg.MaxStudents,
		MinDurationMinutes: cfg.MinDurationMinutes,
	})
	sessionHandler := handlers.NewSessionHandler(sessionService)
	walletService := services.NewWalletService(walletRepo, transactionRepo)
	walletHandler := handlers.NewWalletHandler(walletService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	sessions := authProtected.Group("/sessions", middleware.TutorOnly())
	sessions.Post("/start", sessionHandler.StartSession)
	sessions.Post("/end", sessionHandler.EndSession)
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/:id", sessionHandler.GetSession)

	wallet := authProtected.Group("/wallet", middleware.TutorOnly())
	wallet.Get("", walletHandler.GetWallet)
	wallet.Get("/transactions", walletHandler.ListTransactions)
}
