package domain

import "time"

type User struct {
	ID         int64
	TelegramID int64
	IsAdmin    bool
	FirstName  string
	Username   string

	// Balance and Held are minor currency units. Held is money
	// escrowed for an in-flight withdrawal.
	Balance int64
	Held    int64

	StreakDays          int
	Level               int
	LastCompletedDate   *Day
	PendingWithdrawalID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hold escrows amount for withdrawalID: the funds move from Balance to
// Held, so Balance+Held is unchanged. Fails when a withdrawal is
// already in flight or the balance cannot cover the amount.
func (u *User) Hold(amount, withdrawalID int64) error {
	if u.PendingWithdrawalID != nil {
		return ErrWithdrawalPending
	}
	if amount <= 0 || u.Balance < amount {
		return ErrInsufficientBalance
	}
	u.Balance -= amount
	u.Held += amount
	u.PendingWithdrawalID = &withdrawalID
	return nil
}

// ReleaseHeld returns escrowed funds to the available balance, again
// conserving Balance+Held. Used when a withdrawal is rejected.
func (u *User) ReleaseHeld(amount int64) error {
	if amount <= 0 || u.Held < amount {
		return ErrInvalidTransition
	}
	u.Held -= amount
	u.Balance += amount
	return nil
}

// DebitHeld removes paid-out funds from escrow; the money leaves the
// system and Balance is untouched.
func (u *User) DebitHeld(amount int64) error {
	if amount <= 0 || u.Held < amount {
		return ErrInvalidTransition
	}
	u.Held -= amount
	return nil
}
