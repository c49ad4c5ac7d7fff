package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Usupek/tutor-app/internal/models"
	"github.com/Usupek/tutor-app/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("tutor already has an active session")
	ErrForbidden       = errors.New("forbidden")
	ErrSessionNotFound = errors.New("session not found")
	ErrCorruptSession  = errors.New("session missing start time")
)

// SessionConfig holds the payout settings injected at construction.
// PayRate is in minor currency units.
type SessionConfig struct {
	PayRate            int64
	MaxStudents        int
	MinDurationMinutes float64
}

type SessionService struct {
	db          *pgxpool.Pool
	sessionRepo *repository.SessionRepository
	cfg         SessionConfig
}

func NewSessionService(db *pgxpool.Pool, sessionRepo *repository.SessionRepository, cfg SessionConfig) *SessionService {
	return &SessionService{
		db:          db,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// StartSession opens a new active session for the tutor. The existence
// check and the insert run in one transaction serialized on a per-tutor
// advisory lock, so two concurrent starts cannot both succeed.
func (s *SessionService) StartSession(
	ctx context.Context,
	tutorID int64,
	studentIDs []string,
) (*models.Session, error) {
	ids := normalizeStudentIDs(studentIDs)
	if len(ids) < 1 || len(ids) > s.cfg.MaxStudents {
		return nil, ErrInvalidInput
	}

	now := time.Now().UTC()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", tutorID); err != nil {
		return nil, err
	}

	hasActive, err := txSessionRepo.HasActive(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, ErrConflict
	}

	session, err := txSessionRepo.Create(ctx, repository.CreateSessionInput{
		ID:         uuid.NewString(),
		TutorID:    tutorID,
		StudentIDs: ids,
		StartTime:  now,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return session, nil
}

// EndSession moves a session to its terminal state and, when the session
// ran long enough, credits the tutor's wallet and appends a ledger entry
// in the same transaction. Ending an already-terminal session returns the
// stored result without writing, so retries never pay twice.
func (s *SessionService) EndSession(
	ctx context.Context,
	tutorID int64,
	sessionID string,
) (*models.SessionResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidInput
	}

	// Taken once so a retried transaction sees the same end time.
	now := time.Now().UTC()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)
	txWalletRepo := repository.NewWalletRepository(tx)
	txTransactionRepo := repository.NewTransactionRepository(tx)

	session, err := txSessionRepo.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.TutorID != tutorID {
		return nil, ErrForbidden
	}

	if session.Terminal() {
		return s.storedResult(session), nil
	}

	if session.StartTime.IsZero() {
		return nil, ErrCorruptSession
	}

	durationMinutes := billableMinutes(session.StartTime, now)

	if durationMinutes < s.cfg.MinDurationMinutes {
		if _, err := txSessionRepo.FinalizeIfActive(ctx, repository.FinalizeSessionInput{
			ID:              sessionID,
			Status:          models.SessionStatusShort,
			EndTime:         now,
			DurationMinutes: durationMinutes,
			Paid:            false,
		}); err != nil {
			return nil, err
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		return &models.SessionResult{
			SessionID:       sessionID,
			Status:          models.SessionStatusShort,
			Paid:            false,
			Amount:          0,
			DurationMinutes: durationMinutes,
		}, nil
	}

	payoutTxID := uuid.NewString()

	if _, err := txSessionRepo.FinalizeIfActive(ctx, repository.FinalizeSessionInput{
		ID:              sessionID,
		Status:          models.SessionStatusCompleted,
		EndTime:         now,
		DurationMinutes: durationMinutes,
		Paid:            true,
		PayoutTxID:      &payoutTxID,
	}); err != nil {
		return nil, err
	}

	if _, err := txWalletRepo.IncrementBalance(ctx, tutorID, s.cfg.PayRate); err != nil {
		return nil, err
	}

	if _, err := txTransactionRepo.Create(ctx, repository.CreateTransactionInput{
		ID:        payoutTxID,
		TutorID:   tutorID,
		Amount:    s.cfg.PayRate,
		SessionID: sessionID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.SessionResult{
		SessionID:       sessionID,
		Status:          models.SessionStatusCompleted,
		Paid:            true,
		Amount:          s.cfg.PayRate,
		PayoutTxID:      &payoutTxID,
		DurationMinutes: durationMinutes,
	}, nil
}

func (s *SessionService) GetSession(
	ctx context.Context,
	tutorID int64,
	sessionID string,
) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.TutorID != tutorID {
		return nil, ErrForbidden
	}
	return session, nil
}

func (s *SessionService) ListSessions(
	ctx context.Context,
	tutorID int64,
	status string,
) ([]models.Session, error) {
	status = strings.TrimSpace(status)
	if status != "" &&
		status != models.SessionStatusActive &&
		status != models.SessionStatusCompleted &&
		status != models.SessionStatusShort {
		return nil, ErrInvalidInput
	}
	return s.sessionRepo.ListByTutor(ctx, tutorID, status)
}

func (s *SessionService) storedResult(session *models.Session) *models.SessionResult {
	result := &models.SessionResult{
		SessionID:  session.ID,
		Status:     session.Status,
		Paid:       session.Paid,
		PayoutTxID: session.PayoutTxID,
	}
	if session.DurationMinutes != nil {
		result.DurationMinutes = *session.DurationMinutes
	}
	if session.Paid {
		result.Amount = s.cfg.PayRate
	}
	return result
}

func normalizeStudentIDs(studentIDs []string) []string {
	ids := make([]string, 0, len(studentIDs))
	for _, id := range studentIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// billableMinutes computes the session length from integer milliseconds
// to keep the eligibility comparison stable near the threshold.
func billableMinutes(start, end time.Time) float64 {
	return float64(end.Sub(start).Milliseconds()) / 60000
}
