package repository

import (
	"context"

	"github.com/Usupek/tutor-app/internal/models"
)

type WalletRepository struct {
	db DBTX
}

func NewWalletRepository(db DBTX) *WalletRepository {
	return &WalletRepository{db: db}
}

// IncrementBalance credits a tutor's wallet, creating the row on first
// credit. This upsert is the only write path to wallets.
func (r *WalletRepository) IncrementBalance(
	ctx context.Context,
	tutorID int64,
	amount int64,
) (*models.Wallet, error) {
	query := `
		INSERT INTO wallets (tutor_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (tutor_id)
		DO UPDATE SET balance = wallets.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING tutor_id, balance, updated_at
	`

	var wallet models.Wallet
	err := r.db.QueryRow(ctx, query, tutorID, amount).
		Scan(&wallet.TutorID, &wallet.Balance, &wallet.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *WalletRepository) GetByTutorID(ctx context.Context, tutorID int64) (*models.Wallet, error) {
	query := `
		SELECT tutor_id, balance, updated_at
		FROM wallets
		WHERE tutor_id = $1
	`

	var wallet models.Wallet
	err := r.db.QueryRow(ctx, query, tutorID).
		Scan(&wallet.TutorID, &wallet.Balance, &wallet.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}
