package repository

import (
	"context"

	"github.com/Usupek/tutor-app/internal/models"
)

type CreateTransactionInput struct {
	ID        string
	TutorID   int64
	Amount    int64
	SessionID string
}

type TransactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends a credit entry to the ledger. There is no update or
// delete path; entries are immutable once written.
func (r *TransactionRepository) Create(
	ctx context.Context,
	input CreateTransactionInput,
) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (id, tutor_id, amount, type, reason, session_id)
		VALUES ($1, $2, $3, 'credit', 'session_payment', $4)
		RETURNING id, tutor_id, amount, type, reason, session_id, created_at
	`

	var tx models.Transaction
	err := r.db.QueryRow(ctx, query, input.ID, input.TutorID, input.Amount, input.SessionID).Scan(
		&tx.ID,
		&tx.TutorID,
		&tx.Amount,
		&tx.Type,
		&tx.Reason,
		&tx.SessionID,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *TransactionRepository) ListByTutor(
	ctx context.Context,
	tutorID int64,
) ([]models.Transaction, error) {
	query := `
		SELECT id, tutor_id, amount, type, reason, session_id, created_at
		FROM transactions
		WHERE tutor_id = $1
		ORDER BY created_at DESC, id ASC
	`

	rows, err := r.db.Query(ctx, query, tutorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.TutorID,
			&tx.Amount,
			&tx.Type,
			&tx.Reason,
			&tx.SessionID,
			&tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *TransactionRepository) ListBySessionID(
	ctx context.Context,
	sessionID string,
) ([]models.Transaction, error) {
	query := `
		SELECT id, tutor_id, amount, type, reason, session_id, created_at
		FROM transactions
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.TutorID,
			&tx.Amount,
			&tx.Type,
			&tx.Reason,
			&tx.SessionID,
			&tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}
