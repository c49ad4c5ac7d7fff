package handlers

import (
	"context"

	"github.com/Usupek/tutor-app/internal/models"
	"github.com/Usupek/tutor-app/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	service walletApplicationService
}

type walletApplicationService interface {
	GetWallet(ctx context.Context, tutorID int64) (*models.Wallet, error)
	ListTransactions(ctx context.Context, tutorID int64) ([]models.Transaction, error)
}

func NewWalletHandler(service *services.WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	tutorID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	wallet, err := h.service.GetWallet(c.Context(), tutorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load wallet"})
	}

	return c.JSON(fiber.Map{"wallet": wallet})
}

func (h *WalletHandler) ListTransactions(c *fiber.Ctx) error {
	tutorID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	transactions, err := h.service.ListTransactions(c.Context(), tutorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load transactions"})
	}

	return c.JSON(fiber.Map{"transactions": transactions})
}
