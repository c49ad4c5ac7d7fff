package models

import "time"

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusShort     = "short"
)

type Session struct {
	ID              string     `json:"id"`
	TutorID         int64      `json:"tutor_id"`
	StudentIDs      []string   `json:"student_ids"`
	Status          string     `json:"status"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes *float64   `json:"duration_minutes"`
	Paid            bool       `json:"paid"`
	PayoutTxID      *string    `json:"payout_tx_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Terminal reports whether the session has left the active state.
func (s *Session) Terminal() bool {
	return s.Status != SessionStatusActive
}

// SessionResult is the outcome of ending a session. Amount is in minor
// currency units and is zero for unpaid sessions.
type SessionResult struct {
	SessionID       string  `json:"session_id"`
	Status          string  `json:"status"`
	Paid            bool    `json:"paid"`
	Amount          int64   `json:"amount"`
	PayoutTxID      *string `json:"payout_tx_id"`
	DurationMinutes float64 `json:"duration_minutes"`
}
