package services

import (
	"context"
	"errors"

	"github.com/Usupek/tutor-app/internal/models"
	"github.com/Usupek/tutor-app/internal/repository"
	"github.com/jackc/pgx/v5"
)

// WalletService is the read-only surface over the ledger. The only write
// path to wallets and transactions is EndSession's settlement.
type WalletService struct {
	walletRepo      *repository.WalletRepository
	transactionRepo *repository.TransactionRepository
}

func NewWalletService(
	walletRepo *repository.WalletRepository,
	transactionRepo *repository.TransactionRepository,
) *WalletService {
	return &WalletService{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
	}
}

// GetWallet returns the tutor's wallet. Tutors that have never been paid
// have no wallet row yet and get a zero balance.
func (s *WalletService) GetWallet(ctx context.Context, tutorID int64) (*models.Wallet, error) {
	wallet, err := s.walletRepo.GetByTutorID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.Wallet{TutorID: tutorID, Balance: 0}, nil
		}
		return nil, err
	}
	return wallet, nil
}

func (s *WalletService) ListTransactions(
	ctx context.Context,
	tutorID int64,
) ([]models.Transaction, error) {
	return s.transactionRepo.ListByTutor(ctx, tutorID)
}
