package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/streakworks/streakbot/internal/domain"
)

const withdrawalColumns = `id, reference, user_id, amount, status, details, note, created_at, updated_at`

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := row.Scan(&w.ID, &w.Reference, &w.UserID, &w.Amount, &w.Status,
		&w.Details, &w.Note, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (q *Queries) CreateWithdrawal(ctx context.Context, userID, amount int64) (*domain.Withdrawal, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO withdrawals (user_id, amount)
		VALUES ($1, $2)
		RETURNING `+withdrawalColumns,
		userID, amount)
	return scanWithdrawal(row)
}

func (q *Queries) GetWithdrawalByID(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id)
	return scanWithdrawal(row)
}

func (q *Queries) GetWithdrawalByReference(ctx context.Context, ref uuid.UUID) (*domain.Withdrawal, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE reference = $1`, ref)
	return scanWithdrawal(row)
}

func (q *Queries) GetWithdrawalForUpdate(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`, id)
	return scanWithdrawal(row)
}

// SubmitWithdrawalDetails moves awaiting_details -> pending. Affects
// zero rows if the withdrawal is in any other state.
func (q *Queries) SubmitWithdrawalDetails(ctx context.Context, id int64, details string) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE withdrawals SET details = $2, status = 'pending', updated_at = NOW()
		WHERE id = $1 AND status = 'awaiting_details'`,
		id, details)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// MarkWithdrawalPaid moves pending -> paid.
func (q *Queries) MarkWithdrawalPaid(ctx context.Context, id int64, note string) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE withdrawals SET status = 'paid', note = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`,
		id, note)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// MarkWithdrawalRejected moves pending or awaiting_details -> rejected.
func (q *Queries) MarkWithdrawalRejected(ctx context.Context, id int64, note string) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE withdrawals SET status = 'rejected', note = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'awaiting_details')`,
		id, note)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) ListPendingWithdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+withdrawalColumns+` FROM withdrawals
		WHERE status IN ('awaiting_details', 'pending')
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, *w)
	}
	return withdrawals, rows.Err()
}
