package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/streakworks/streakbot/internal/clock"
	"github.com/streakworks/streakbot/internal/config"
	"github.com/streakworks/streakbot/internal/domain"
	"github.com/streakworks/streakbot/internal/repository"
)

// CompletionService is the transactional ledger: it records task
// completions exactly once per user per task, triggers campaign
// payouts, and keeps streak and level consistent with the completion
// facts. Everything one call does commits or rolls back together.
type CompletionService struct {
	db        *pgxpool.Pool
	queries   *repository.Queries
	campaigns *CampaignService
	clock     clock.Clock
}

func NewCompletionService(db *pgxpool.Pool, queries *repository.Queries, campaigns *CampaignService, clk clock.Clock) *CompletionService {
	return &CompletionService{db: db, queries: queries, campaigns: campaigns, clock: clk}
}

type CompletionResult struct {
	AlreadyDone   bool
	StreakChanged bool
	NewStreak     int
	NewLevel      int
	PaidAmount    int64
}

// CompleteTask records the completion. Safe to call repeatedly: only
// the first call moves money or streak state. Quiz tasks are refused
// here: callback data is client-forgeable, so the answer check in
// SubmitQuizAnswer must not be bypassable by a crafted confirm.
func (s *CompletionService) CompleteTask(ctx context.Context, userID, taskID int64) (*CompletionResult, error) {
	task, err := s.getTodayTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if requiresAnswer(task.Kind) {
		return nil, domain.ErrAnswerRequired
	}
	return s.complete(ctx, userID, task)
}

// SubmitQuizAnswer completes a quiz task when the answer matches.
func (s *CompletionService) SubmitQuizAnswer(ctx context.Context, userID, taskID int64, answer string) (*CompletionResult, error) {
	task, err := s.getTodayTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Kind != domain.TaskQuiz {
		return nil, domain.ErrTaskNotFound
	}
	if !answersMatch(task.Answer, answer) {
		return nil, domain.ErrWrongAnswer
	}
	return s.complete(ctx, userID, task)
}

// RedeemCode completes a campaign or link task via its per-day code.
// Code redemption and direct confirmation are equivalent triggers into
// the same ledger path.
func (s *CompletionService) RedeemCode(ctx context.Context, userID, taskID int64, code string) (*CompletionResult, error) {
	task, err := s.getTodayTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Code == "" {
		return nil, domain.ErrTaskNotFound
	}
	if !strings.EqualFold(strings.TrimSpace(code), task.Code) {
		return nil, domain.ErrWrongCode
	}
	return s.complete(ctx, userID, task)
}

func (s *CompletionService) getTodayTask(ctx context.Context, taskID int64) (*domain.DailyTask, error) {
	task, err := s.queries.GetDailyTask(ctx, taskID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if !task.Day.Equal(s.clock.Today()) {
		return nil, domain.ErrTaskNotToday
	}
	return task, nil
}

func (s *CompletionService) complete(ctx context.Context, userID int64, task *domain.DailyTask) (*CompletionResult, error) {
	today := s.clock.Today()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	// Lock the user row first; TryPay locks the campaign row second.
	user, err := qtx.GetUserForUpdate(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}

	inserted, err := qtx.CreateCompletion(ctx, repository.CreateCompletionParams{
		UserID:      userID,
		DailyTaskID: task.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create completion: %w", err)
	}
	if !inserted {
		return &CompletionResult{
			AlreadyDone: true,
			NewStreak:   user.StreakDays,
			NewLevel:    user.Level,
		}, nil
	}

	result := &CompletionResult{
		NewStreak: user.StreakDays,
		NewLevel:  user.Level,
	}

	if task.IsCampaign() && task.CampaignID != nil {
		paid, err := s.campaigns.TryPay(ctx, qtx, *task.CampaignID, userID, user.Level)
		if err != nil && err != domain.ErrCampaignNotFound {
			return nil, err
		}
		result.PaidAmount = paid
	}

	if err := qtx.CreateActivity(ctx, repository.CreateActivityParams{
		UserID:  &userID,
		Event:   domain.EventTaskCompleted,
		Details: fmt.Sprintf("task=%d day=%s", task.ID, task.Day),
	}); err != nil {
		return nil, fmt.Errorf("log completion: %w", err)
	}

	if err := s.applyStreak(ctx, qtx, user, today, result); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return result, nil
}

// applyStreak re-evaluates the user's streak after a new completion.
// Runs inside the completion transaction so a recorded completion is
// never visible without its streak consequence.
func (s *CompletionService) applyStreak(ctx context.Context, qtx *repository.Queries, user *domain.User, today domain.Day, result *CompletionResult) error {
	total, err := qtx.CountDailyTasks(ctx, today)
	if err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	done, err := qtx.CountCompletionsForDay(ctx, repository.CountCompletionsForDayParams{
		UserID: user.ID,
		Day:    today,
	})
	if err != nil {
		return fmt.Errorf("count completions: %w", err)
	}
	if total == 0 || done < total {
		return nil
	}

	// Already credited for today: the last task of the day was
	// completed twice in quick succession.
	if user.LastCompletedDate != nil && user.LastCompletedDate.Equal(today) {
		return nil
	}

	streak := nextStreak(user.LastCompletedDate, today, user.StreakDays)
	level := levelForStreak(streak)

	if err := qtx.SetUserStreak(ctx, repository.SetUserStreakParams{
		ID:                user.ID,
		StreakDays:        streak,
		Level:             level,
		LastCompletedDate: today,
	}); err != nil {
		return fmt.Errorf("set streak: %w", err)
	}

	if err := qtx.CreateActivity(ctx, repository.CreateActivityParams{
		UserID:  &user.ID,
		Event:   domain.EventAllTasksDone,
		Details: fmt.Sprintf("day=%s streak=%d level=%d", today, streak, level),
	}); err != nil {
		return fmt.Errorf("log streak: %w", err)
	}

	result.StreakChanged = true
	result.NewStreak = streak
	result.NewLevel = level
	return nil
}

// nextStreak continues the streak only when yesterday was fully
// completed; any gap resets to 1.
func nextStreak(last *domain.Day, today domain.Day, current int) int {
	if last != nil && last.Equal(today.AddDays(-1)) {
		return current + 1
	}
	return 1
}

// levelForStreak derives level from streak every time; nothing else
// ever writes level.
func levelForStreak(streak int) int {
	level := 1 + streak/config.LevelStepDays
	if level < 1 {
		level = 1
	}
	if level > config.MaxLevel {
		level = config.MaxLevel
	}
	return level
}

func answersMatch(expected, got string) bool {
	return strings.EqualFold(strings.TrimSpace(expected), strings.TrimSpace(got))
}

// requiresAnswer reports whether a task kind cannot be completed by a
// bare confirmation.
func requiresAnswer(kind domain.TaskKind) bool {
	return kind == domain.TaskQuiz
}
