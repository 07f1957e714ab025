package domain

import (
	"time"

	"github.com/google/uuid"
)

type WithdrawalStatus string

const (
	WithdrawalAwaitingDetails WithdrawalStatus = "awaiting_details"
	WithdrawalPending         WithdrawalStatus = "pending"
	WithdrawalPaid            WithdrawalStatus = "paid"
	WithdrawalRejected        WithdrawalStatus = "rejected"
)

func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalPaid || s == WithdrawalRejected
}

// CanBecome encodes the legal transitions: awaiting_details moves to
// pending or rejected, pending moves to paid or rejected, terminal
// states never move again. Paying out a withdrawal that never got its
// details is not allowed.
func (s WithdrawalStatus) CanBecome(next WithdrawalStatus) bool {
	switch s {
	case WithdrawalAwaitingDetails:
		return next == WithdrawalPending || next == WithdrawalRejected
	case WithdrawalPending:
		return next == WithdrawalPaid || next == WithdrawalRejected
	default:
		return false
	}
}

type Withdrawal struct {
	ID        int64
	Reference uuid.UUID
	UserID    int64
	Amount    int64
	Status    WithdrawalStatus
	Details   string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
