package domain

import "testing"

func TestWithdrawalTransitions(t *testing.T) {
	tests := []struct {
		from WithdrawalStatus
		to   WithdrawalStatus
		want bool
	}{
		{WithdrawalAwaitingDetails, WithdrawalPending, true},
		{WithdrawalAwaitingDetails, WithdrawalRejected, true},
		{WithdrawalAwaitingDetails, WithdrawalPaid, false},
		{WithdrawalPending, WithdrawalPaid, true},
		{WithdrawalPending, WithdrawalRejected, true},
		{WithdrawalPending, WithdrawalAwaitingDetails, false},
		{WithdrawalPaid, WithdrawalRejected, false},
		{WithdrawalPaid, WithdrawalPaid, false},
		{WithdrawalRejected, WithdrawalPaid, false},
		{WithdrawalRejected, WithdrawalPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanBecome(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

// Once one of pay/reject wins, the other must be refused: terminal
// states accept no further transition at all.
func TestWithdrawalSettlementExclusive(t *testing.T) {
	for _, winner := range []WithdrawalStatus{WithdrawalPaid, WithdrawalRejected} {
		if !winner.Terminal() {
			t.Errorf("%s not terminal", winner)
		}
		for _, next := range []WithdrawalStatus{WithdrawalAwaitingDetails, WithdrawalPending, WithdrawalPaid, WithdrawalRejected} {
			if winner.CanBecome(next) {
				t.Errorf("terminal %s allows transition to %s", winner, next)
			}
		}
	}
}
