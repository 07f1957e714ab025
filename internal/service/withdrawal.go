package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/streakworks/streakbot/internal/config"
	"github.com/streakworks/streakbot/internal/domain"
	"github.com/streakworks/streakbot/internal/repository"
)

// WithdrawalService runs the withdrawal state machine:
// awaiting_details -> pending -> paid | rejected. Every transition
// locks the user row and then the withdrawal row, re-checks the
// current status with a conditional update, and moves held funds in
// the same transaction, so balance + held is conserved at every step.
type WithdrawalService struct {
	db      *pgxpool.Pool
	queries *repository.Queries
}

func NewWithdrawalService(db *pgxpool.Pool, queries *repository.Queries) *WithdrawalService {
	return &WithdrawalService{db: db, queries: queries}
}

// Request opens a withdrawal for the user's full available balance and
// escrows it. A user can have at most one withdrawal in flight; if one
// exists it is returned together with ErrWithdrawalPending.
func (s *WithdrawalService) Request(ctx context.Context, userID int64) (*domain.Withdrawal, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	user, err := qtx.GetUserForUpdate(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}

	if user.PendingWithdrawalID != nil {
		existing, err := qtx.GetWithdrawalByID(ctx, *user.PendingWithdrawalID)
		if err != nil {
			return nil, fmt.Errorf("get pending withdrawal: %w", err)
		}
		return existing, domain.ErrWithdrawalPending
	}

	if user.Balance < config.MinWithdraw {
		return nil, domain.ErrBelowMinimum
	}

	withdrawal, err := qtx.CreateWithdrawal(ctx, user.ID, user.Balance)
	if err != nil {
		return nil, fmt.Errorf("create withdrawal: %w", err)
	}

	// The user row is locked, so the in-memory escrow move is the
	// authoritative precondition check; the conditional update below
	// mirrors it on the row.
	if err := user.Hold(withdrawal.Amount, withdrawal.ID); err != nil {
		return nil, err
	}

	rows, err := qtx.HoldUserBalance(ctx, repository.HoldUserBalanceParams{
		ID:           user.ID,
		Amount:       withdrawal.Amount,
		WithdrawalID: withdrawal.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("hold balance: %w", err)
	}
	if rows == 0 {
		// Balance changed between read and write; abort rather than
		// hold a stale amount.
		return nil, domain.ErrInsufficientBalance
	}

	if err := qtx.CreateActivity(ctx, repository.CreateActivityParams{
		UserID:  &user.ID,
		Event:   domain.EventWithdrawalRequested,
		Amount:  &withdrawal.Amount,
		Details: withdrawal.Reference.String(),
	}); err != nil {
		return nil, fmt.Errorf("log request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return withdrawal, nil
}

// AttachDetails stores the user's payout instructions and moves the
// withdrawal to pending, releasing the one-in-flight lock on the user
// record. Returns nil when the user has no withdrawal awaiting
// details.
func (s *WithdrawalService) AttachDetails(ctx context.Context, userID int64, details string) (*domain.Withdrawal, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	user, err := qtx.GetUserForUpdate(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}
	if user.PendingWithdrawalID == nil {
		return nil, nil
	}

	withdrawal, err := qtx.GetWithdrawalForUpdate(ctx, *user.PendingWithdrawalID)
	if err != nil {
		return nil, fmt.Errorf("lock withdrawal: %w", err)
	}
	if !withdrawal.Status.CanBecome(domain.WithdrawalPending) {
		return nil, domain.ErrInvalidTransition
	}

	rows, err := qtx.SubmitWithdrawalDetails(ctx, withdrawal.ID, details)
	if err != nil {
		return nil, fmt.Errorf("submit details: %w", err)
	}
	if rows == 0 {
		return nil, domain.ErrInvalidTransition
	}

	if err := qtx.ClearPendingWithdrawal(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("clear pending: %w", err)
	}

	if err := qtx.CreateActivity(ctx, repository.CreateActivityParams{
		UserID:  &user.ID,
		Event:   domain.EventWithdrawalSubmitted,
		Amount:  &withdrawal.Amount,
		Details: withdrawal.Reference.String(),
	}); err != nil {
		return nil, fmt.Errorf("log submit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	withdrawal.Status = domain.WithdrawalPending
	withdrawal.Details = details
	return withdrawal, nil
}

// Pay settles a pending withdrawal: the held amount leaves the system.
// Never touches the available balance.
func (s *WithdrawalService) Pay(ctx context.Context, withdrawalID int64, note string) (*domain.Withdrawal, error) {
	return s.finish(ctx, withdrawalID, note, true)
}

// Reject reverses a withdrawal in awaiting_details or pending: held
// funds return to the available balance in full.
func (s *WithdrawalService) Reject(ctx context.Context, withdrawalID int64, note string) (*domain.Withdrawal, error) {
	return s.finish(ctx, withdrawalID, note, false)
}

func (s *WithdrawalService) finish(ctx context.Context, withdrawalID int64, note string, pay bool) (*domain.Withdrawal, error) {
	// Resolve the owner before locking anything so the lock order
	// stays user first, withdrawal second.
	peek, err := s.queries.GetWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("get withdrawal: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	user, err := qtx.GetUserForUpdate(ctx, peek.UserID)
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}

	withdrawal, err := qtx.GetWithdrawalForUpdate(ctx, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("lock withdrawal: %w", err)
	}

	target := domain.WithdrawalRejected
	if pay {
		target = domain.WithdrawalPaid
	}
	// Both rows are locked: a racing pay/reject already committed its
	// status, so this check settles the exclusivity.
	if !withdrawal.Status.CanBecome(target) {
		return nil, domain.ErrInvalidTransition
	}

	var rows int64
	var event string
	if pay {
		rows, err = qtx.MarkWithdrawalPaid(ctx, withdrawal.ID, note)
		event = domain.EventWithdrawalPaid
	} else {
		rows, err = qtx.MarkWithdrawalRejected(ctx, withdrawal.ID, note)
		event = domain.EventWithdrawalRejected
	}
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if rows == 0 {
		return nil, domain.ErrInvalidTransition
	}

	if pay {
		err = user.DebitHeld(withdrawal.Amount)
	} else {
		err = user.ReleaseHeld(withdrawal.Amount)
	}
	if err != nil {
		return nil, err
	}

	if pay {
		rows, err = qtx.DebitHeld(ctx, user.ID, withdrawal.Amount)
	} else {
		rows, err = qtx.ReleaseHeld(ctx, user.ID, withdrawal.Amount)
	}
	if err != nil {
		return nil, fmt.Errorf("move held funds: %w", err)
	}
	if rows == 0 {
		return nil, domain.ErrInvalidTransition
	}

	// A rejection during awaiting_details also releases the
	// one-in-flight lock on the user.
	if user.PendingWithdrawalID != nil && *user.PendingWithdrawalID == withdrawal.ID {
		if err := qtx.ClearPendingWithdrawal(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("clear pending: %w", err)
		}
	}

	if err := qtx.CreateActivity(ctx, repository.CreateActivityParams{
		UserID:  &user.ID,
		Event:   event,
		Amount:  &withdrawal.Amount,
		Details: withdrawal.Reference.String(),
	}); err != nil {
		return nil, fmt.Errorf("log settle: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	if pay {
		withdrawal.Status = domain.WithdrawalPaid
	} else {
		withdrawal.Status = domain.WithdrawalRejected
	}
	withdrawal.Note = note
	return withdrawal, nil
}

func parseReference(ref string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(ref))
}

func (s *WithdrawalService) ListPending(ctx context.Context) ([]domain.Withdrawal, error) {
	withdrawals, err := s.queries.ListPendingWithdrawals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending withdrawals: %w", err)
	}
	return withdrawals, nil
}

// ByReference resolves a withdrawal from its public reference.
func (s *WithdrawalService) ByReference(ctx context.Context, ref string) (*domain.Withdrawal, error) {
	parsed, err := parseReference(ref)
	if err != nil {
		return nil, domain.ErrWithdrawalNotFound
	}
	withdrawal, err := s.queries.GetWithdrawalByReference(ctx, parsed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("get withdrawal: %w", err)
	}
	return withdrawal, nil
}
