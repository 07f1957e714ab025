package domain

import (
	"errors"
	"testing"
)

func TestHoldConservesFunds(t *testing.T) {
	u := User{ID: 1, Balance: 12_000, Held: 0}
	total := u.Balance + u.Held

	if err := u.Hold(12_000, 7); err != nil {
		t.Fatalf("Hold() = %v", err)
	}
	if u.Balance != 0 || u.Held != 12_000 {
		t.Errorf("after hold: balance %d held %d, want 0 and 12000", u.Balance, u.Held)
	}
	if u.Balance+u.Held != total {
		t.Errorf("balance+held = %d, want %d", u.Balance+u.Held, total)
	}
	if u.PendingWithdrawalID == nil || *u.PendingWithdrawalID != 7 {
		t.Error("pending withdrawal not recorded")
	}
}

func TestHoldErrors(t *testing.T) {
	pending := int64(3)

	tests := []struct {
		name    string
		user    User
		amount  int64
		wantErr error
	}{
		{"already in flight", User{Balance: 20_000, PendingWithdrawalID: &pending}, 20_000, ErrWithdrawalPending},
		{"insufficient balance", User{Balance: 5_000}, 6_000, ErrInsufficientBalance},
		{"zero amount", User{Balance: 5_000}, 0, ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.user
			err := tt.user.Hold(tt.amount, 9)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Hold() = %v, want %v", err, tt.wantErr)
			}
			if tt.user.Balance != before.Balance || tt.user.Held != before.Held {
				t.Error("failed hold moved funds")
			}
		})
	}
}

// Request then reject: release must restore the exact original balance.
func TestHoldReleaseRoundTrip(t *testing.T) {
	u := User{ID: 1, Balance: 15_000}

	if err := u.Hold(15_000, 4); err != nil {
		t.Fatalf("Hold() = %v", err)
	}
	if err := u.ReleaseHeld(15_000); err != nil {
		t.Fatalf("ReleaseHeld() = %v", err)
	}
	if u.Balance != 15_000 || u.Held != 0 {
		t.Errorf("after round trip: balance %d held %d, want 15000 and 0", u.Balance, u.Held)
	}
}

// Request then pay: the held amount leaves the system, the available
// balance is untouched.
func TestHoldDebit(t *testing.T) {
	u := User{ID: 1, Balance: 15_000}

	if err := u.Hold(15_000, 4); err != nil {
		t.Fatalf("Hold() = %v", err)
	}
	if err := u.DebitHeld(15_000); err != nil {
		t.Fatalf("DebitHeld() = %v", err)
	}
	if u.Balance != 0 || u.Held != 0 {
		t.Errorf("after payout: balance %d held %d, want 0 and 0", u.Balance, u.Held)
	}
}

func TestHeldMoveErrors(t *testing.T) {
	u := User{Balance: 100, Held: 50}

	if err := u.ReleaseHeld(60); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ReleaseHeld over held = %v, want ErrInvalidTransition", err)
	}
	if err := u.DebitHeld(60); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("DebitHeld over held = %v, want ErrInvalidTransition", err)
	}
	if err := u.DebitHeld(0); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("DebitHeld zero = %v, want ErrInvalidTransition", err)
	}
	if u.Balance != 100 || u.Held != 50 {
		t.Error("failed moves changed funds")
	}
}
