package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Usupek/tutor-app/internal/models"
)

type CreateSessionInput struct {
	ID         string
	TutorID    int64
	StudentIDs []string
	StartTime  time.Time
}

// FinalizeSessionInput carries the terminal fields written exactly once
// when a session leaves the active state.
type FinalizeSessionInput struct {
	ID              string
	Status          string
	EndTime         time.Time
	DurationMinutes float64
	Paid            bool
	PayoutTxID      *string
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(
	ctx context.Context,
	input CreateSessionInput,
) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, tutor_id, student_ids, status, start_time)
		VALUES ($1, $2, $3, 'active', $4)
		RETURNING id, tutor_id, student_ids, status, start_time, end_time,
			duration_minutes, paid, payout_tx_id, created_at, updated_at
	`

	var session models.Session
	err := r.db.QueryRow(
		ctx,
		query,
		input.ID,
		input.TutorID,
		input.StudentIDs,
		input.StartTime,
	).Scan(
		&session.ID,
		&session.TutorID,
		&session.StudentIDs,
		&session.Status,
		&session.StartTime,
		&session.EndTime,
		&session.DurationMinutes,
		&session.Paid,
		&session.PayoutTxID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	query := `
		SELECT id, tutor_id, student_ids, status, start_time, end_time,
			duration_minutes, paid, payout_tx_id, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`
	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID,
		&session.TutorID,
		&session.StudentIDs,
		&session.Status,
		&session.StartTime,
		&session.EndTime,
		&session.DurationMinutes,
		&session.Paid,
		&session.PayoutTxID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetByIDForUpdate(
	ctx context.Context,
	sessionID string,
) (*models.Session, error) {
	query := `
		SELECT id, tutor_id, student_ids, status, start_time, end_time,
			duration_minutes, paid, payout_tx_id, created_at, updated_at
		FROM sessions
		WHERE id = $1
		FOR UPDATE
	`
	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID,
		&session.TutorID,
		&session.StudentIDs,
		&session.Status,
		&session.StartTime,
		&session.EndTime,
		&session.DurationMinutes,
		&session.Paid,
		&session.PayoutTxID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) HasActive(ctx context.Context, tutorID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sessions
			WHERE tutor_id = $1
			  AND status = 'active'
		)
	`
	var hasActive bool
	if err := r.db.QueryRow(ctx, query, tutorID).Scan(&hasActive); err != nil {
		return false, err
	}
	return hasActive, nil
}

// FinalizeIfActive writes the terminal fields only when the session is
// still active, so a session can leave the active state at most once.
// Returns pgx.ErrNoRows when the session is already terminal.
func (r *SessionRepository) FinalizeIfActive(
	ctx context.Context,
	input FinalizeSessionInput,
) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET status = $2, end_time = $3, duration_minutes = $4, paid = $5,
			payout_tx_id = $6, updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING id, tutor_id, student_ids, status, start_time, end_time,
			duration_minutes, paid, payout_tx_id, created_at, updated_at
	`
	var session models.Session
	err := r.db.QueryRow(
		ctx,
		query,
		input.ID,
		input.Status,
		input.EndTime,
		input.DurationMinutes,
		input.Paid,
		input.PayoutTxID,
	).Scan(
		&session.ID,
		&session.TutorID,
		&session.StudentIDs,
		&session.Status,
		&session.StartTime,
		&session.EndTime,
		&session.DurationMinutes,
		&session.Paid,
		&session.PayoutTxID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ListByTutor(
	ctx context.Context,
	tutorID int64,
	status string,
) ([]models.Session, error) {
	args := []any{tutorID}
	whereParts := []string{"tutor_id = $1"}

	if status := strings.TrimSpace(status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT id, tutor_id, student_ids, status, start_time, end_time,
			duration_minutes, paid, payout_tx_id, created_at, updated_at
		FROM sessions
		WHERE %s
		ORDER BY start_time DESC, id ASC
	`, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.ID,
			&session.TutorID,
			&session.StudentIDs,
			&session.Status,
			&session.StartTime,
			&session.EndTime,
			&session.DurationMinutes,
			&session.Paid,
			&session.PayoutTxID,
			&session.CreatedAt,
			&session.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
