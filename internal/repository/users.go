package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/streakworks/streakbot/internal/domain"
)

const userColumns = `id, telegram_id, is_admin, first_name, username, balance, held,
	streak_days, level, last_completed_date, pending_withdrawal_id, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var lastCompleted *time.Time
	err := row.Scan(
		&u.ID, &u.TelegramID, &u.IsAdmin, &u.FirstName, &u.Username,
		&u.Balance, &u.Held, &u.StreakDays, &u.Level,
		&lastCompleted, &u.PendingWithdrawalID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastCompleted != nil {
		d := domain.DayOf(*lastCompleted)
		u.LastCompletedDate = &d
	}
	return &u, nil
}

func (q *Queries) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	return scanUser(row)
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetUserForUpdate locks the user row for the rest of the transaction.
// Lock ordering convention: user first, then campaign or withdrawal.
func (q *Queries) GetUserForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
	return scanUser(row)
}

type CreateUserParams struct {
	TelegramID int64
	FirstName  string
	Username   string
	IsAdmin    bool
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*domain.User, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO users (telegram_id, first_name, username, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		arg.TelegramID, arg.FirstName, arg.Username, arg.IsAdmin)
	return scanUser(row)
}

type UpdateUserInfoParams struct {
	ID        int64
	FirstName string
	Username  string
}

func (q *Queries) UpdateUserInfo(ctx context.Context, arg UpdateUserInfoParams) error {
	_, err := q.db.Exec(ctx, `
		UPDATE users SET first_name = $2, username = $3, updated_at = NOW()
		WHERE id = $1`,
		arg.ID, arg.FirstName, arg.Username)
	return err
}

// AddToUserBalance applies a signed delta and returns the new balance.
// The balance >= 0 check constraint rejects overdrafts.
func (q *Queries) AddToUserBalance(ctx context.Context, id, delta int64) (int64, error) {
	var balance int64
	err := q.db.QueryRow(ctx, `
		UPDATE users SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING balance`,
		id, delta).Scan(&balance)
	return balance, err
}

type SetUserStreakParams struct {
	ID                int64
	StreakDays        int
	Level             int
	LastCompletedDate domain.Day
}

func (q *Queries) SetUserStreak(ctx context.Context, arg SetUserStreakParams) error {
	_, err := q.db.Exec(ctx, `
		UPDATE users SET streak_days = $2, level = $3, last_completed_date = $4, updated_at = NOW()
		WHERE id = $1`,
		arg.ID, arg.StreakDays, arg.Level, arg.LastCompletedDate.Time())
	return err
}

type HoldUserBalanceParams struct {
	ID           int64
	Amount       int64
	WithdrawalID int64
}

// HoldUserBalance moves the user's whole balance into held and records
// the pending withdrawal. The WHERE clause re-checks balance and the
// no-pending invariant, so a concurrent balance change makes this
// affect zero rows instead of holding a stale amount.
func (q *Queries) HoldUserBalance(ctx context.Context, arg HoldUserBalanceParams) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE users
		SET balance = balance - $2, held = held + $2, pending_withdrawal_id = $3, updated_at = NOW()
		WHERE id = $1 AND balance = $2 AND pending_withdrawal_id IS NULL`,
		arg.ID, arg.Amount, arg.WithdrawalID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) ClearPendingWithdrawal(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx, `
		UPDATE users SET pending_withdrawal_id = NULL, updated_at = NOW()
		WHERE id = $1`, userID)
	return err
}

// ReleaseHeld returns held funds to the available balance.
func (q *Queries) ReleaseHeld(ctx context.Context, userID, amount int64) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE users SET held = held - $2, balance = balance + $2, updated_at = NOW()
		WHERE id = $1 AND held >= $2`,
		userID, amount)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DebitHeld removes held funds from the system (a paid withdrawal).
func (q *Queries) DebitHeld(ctx context.Context, userID, amount int64) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE users SET held = held - $2, updated_at = NOW()
		WHERE id = $1 AND held >= $2`,
		userID, amount)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
