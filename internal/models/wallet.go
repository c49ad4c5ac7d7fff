package models

import "time"

const (
	TransactionTypeCredit        = "credit"
	TransactionReasonSessionPaid = "session_payment"
)

// Wallet holds a tutor's running payout balance in minor currency units.
// The balance only ever grows, and only through session settlement.
type Wallet struct {
	TutorID   int64     `json:"tutor_id"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transaction is an immutable ledger entry recording one payout.
type Transaction struct {
	ID        string    `json:"id"`
	TutorID   int64     `json:"tutor_id"`
	Amount    int64     `json:"amount"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}
