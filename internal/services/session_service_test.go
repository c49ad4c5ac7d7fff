package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Usupek/tutor-app/internal/models"
)

func TestStartSessionRejectsInvalidStudentCounts(t *testing.T) {
	// Validation runs before any store access.
	service := &SessionService{cfg: SessionConfig{MaxStudents: 6}}

	cases := []struct {
		name       string
		studentIDs []string
	}{
		{"empty", []string{}},
		{"all blank", []string{"", "  "}},
		{"too many", []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.StartSession(context.Background(), 1, tc.studentIDs)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestEndSessionRequiresSessionID(t *testing.T) {
	service := &SessionService{cfg: SessionConfig{MaxStudents: 6}}

	_, err := service.EndSession(context.Background(), 1, "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListSessionsRejectsUnknownStatus(t *testing.T) {
	service := &SessionService{cfg: SessionConfig{MaxStudents: 6}}

	_, err := service.ListSessions(context.Background(), 1, "pending")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNormalizeStudentIDsDropsEmptyValues(t *testing.T) {
	ids := normalizeStudentIDs([]string{" s1 ", "", "s2", "   ", "s3"})

	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d (%v)", len(ids), ids)
	}
	if ids[0] != "s1" || ids[1] != "s2" || ids[2] != "s3" {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestNormalizeStudentIDsKeepsOrder(t *testing.T) {
	ids := normalizeStudentIDs([]string{"b", "a", "c"})

	if len(ids) != 3 || ids[0] != "b" || ids[1] != "a" || ids[2] != "c" {
		t.Fatalf("expected order preserved, got %v", ids)
	}
}

func TestBillableMinutes(t *testing.T) {
	start := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want float64
	}{
		{"one minute", start.Add(time.Minute), 1},
		{"forty six minutes", start.Add(46 * time.Minute), 46},
		{"half minute", start.Add(30 * time.Second), 0.5},
		{"sub millisecond ignored", start.Add(45*time.Minute + 500*time.Microsecond), 45},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := billableMinutes(start, tc.end)
			if got != tc.want {
				t.Fatalf("expected %v minutes, got %v", tc.want, got)
			}
		})
	}
}

func TestBillableMinutesAtThresholdIsEligible(t *testing.T) {
	start := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	if billableMinutes(start, end) < 45 {
		t.Fatal("expected exactly 45 minutes to meet the threshold")
	}
}

func TestStoredResultForPaidSession(t *testing.T) {
	service := &SessionService{cfg: SessionConfig{PayRate: 50000}}
	duration := 62.5
	txID := "tx-1"

	result := service.storedResult(&models.Session{
		ID:              "sess-1",
		Status:          models.SessionStatusCompleted,
		Paid:            true,
		PayoutTxID:      &txID,
		DurationMinutes: &duration,
	})

	if result.Status != models.SessionStatusCompleted || !result.Paid {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Amount != 50000 {
		t.Fatalf("expected amount 50000, got %d", result.Amount)
	}
	if result.PayoutTxID == nil || *result.PayoutTxID != "tx-1" {
		t.Fatalf("expected payout tx id tx-1, got %v", result.PayoutTxID)
	}
	if result.DurationMinutes != 62.5 {
		t.Fatalf("expected duration 62.5, got %v", result.DurationMinutes)
	}
}

func TestStoredResultForShortSession(t *testing.T) {
	service := &SessionService{cfg: SessionConfig{PayRate: 50000}}
	duration := 1.25

	result := service.storedResult(&models.Session{
		ID:              "sess-2",
		Status:          models.SessionStatusShort,
		Paid:            false,
		DurationMinutes: &duration,
	})

	if result.Status != models.SessionStatusShort || result.Paid {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Amount != 0 {
		t.Fatalf("expected amount 0, got %d", result.Amount)
	}
	if result.PayoutTxID != nil {
		t.Fatalf("expected no payout tx id, got %v", *result.PayoutTxID)
	}
}
