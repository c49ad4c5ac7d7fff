package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Usupek/tutor-app/internal/middleware"
	"github.com/Usupek/tutor-app/internal/models"
	"github.com/gofiber/fiber/v2"
)

type stubWalletService struct {
	wallet       *models.Wallet
	walletErr    error
	transactions []models.Transaction
	listErr      error
	lastTutorID  int64
}

func (s *stubWalletService) GetWallet(_ context.Context, tutorID int64) (*models.Wallet, error) {
	s.lastTutorID = tutorID
	return s.wallet, s.walletErr
}

func (s *stubWalletService) ListTransactions(_ context.Context, tutorID int64) ([]models.Transaction, error) {
	s.lastTutorID = tutorID
	return s.transactions, s.listErr
}

func newWalletTestApp(service *stubWalletService, role string) *fiber.App {
	handler := &WalletHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "42")
		return c.Next()
	})
	wallet := app.Group("/api/v1/wallet", middleware.TutorOnly())
	wallet.Get("", handler.GetWallet)
	wallet.Get("/transactions", handler.ListTransactions)
	return app
}

func TestGetWalletReturnsBalance(t *testing.T) {
	service := &stubWalletService{
		wallet: &models.Wallet{TutorID: 42, Balance: 100000},
	}
	app := newWalletTestApp(service, "tutor")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastTutorID != 42 {
		t.Fatalf("expected tutor id 42, got %d", service.lastTutorID)
	}

	var body struct {
		Wallet models.Wallet `json:"wallet"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Wallet.Balance != 100000 {
		t.Fatalf("expected balance 100000, got %d", body.Wallet.Balance)
	}
}

func TestGetWalletRejectsNonTutor(t *testing.T) {
	service := &stubWalletService{}
	app := newWalletTestApp(service, "student")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if service.lastTutorID != 0 {
		t.Fatal("expected service not to be called")
	}
}

func TestListTransactionsReturnsLedgerEntries(t *testing.T) {
	service := &stubWalletService{
		transactions: []models.Transaction{
			{ID: "tx-2", TutorID: 42, Amount: 50000, Type: "credit", Reason: "session_payment", SessionID: "sess-2"},
			{ID: "tx-1", TutorID: 42, Amount: 50000, Type: "credit", Reason: "session_payment", SessionID: "sess-1"},
		},
	}
	app := newWalletTestApp(service, "tutor")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet/transactions", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(body.Transactions))
	}
	if body.Transactions[0].ID != "tx-2" {
		t.Fatalf("expected newest transaction first, got %q", body.Transactions[0].ID)
	}
}
