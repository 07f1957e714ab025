package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/streakworks/streakbot/internal/config"
	"github.com/streakworks/streakbot/internal/domain"
	"github.com/streakworks/streakbot/internal/repository"
)

// DailyTaskService derives each day's task set from the catalog and
// the active campaign. Generation is a pure function of the day: the
// RNG is seeded from the day's ordinal, so regenerating the same day
// (after a crash, or from two racing requests) reproduces the
// identical set and the (day, position) constraint absorbs the
// duplicate inserts.
type DailyTaskService struct {
	db      *pgxpool.Pool
	queries *repository.Queries
}

func NewDailyTaskService(db *pgxpool.Pool, queries *repository.Queries) *DailyTaskService {
	return &DailyTaskService{db: db, queries: queries}
}

// EnsureDay publishes the task set for day if it does not exist yet.
// Idempotent.
func (s *DailyTaskService) EnsureDay(ctx context.Context, day domain.Day) error {
	count, err := s.queries.CountDailyTasks(ctx, day)
	if err != nil {
		return fmt.Errorf("count daily tasks: %w", err)
	}
	if count > 0 {
		return nil
	}

	templates, err := s.queries.ListActiveTaskTemplates(ctx)
	if err != nil {
		return fmt.Errorf("list templates: %w", err)
	}

	campaign, err := s.queries.GetActiveCampaign(ctx)
	if err != nil && err != pgx.ErrNoRows {
		return fmt.Errorf("get active campaign: %w", err)
	}

	rng := dayRNG(day)
	position := 1

	// An active campaign always takes slot 1, ahead of catalog variety.
	if campaign != nil {
		params := repository.CreateDailyTaskParams{
			Day:        day,
			Position:   position,
			Kind:       domain.TaskCampaign,
			CampaignID: &campaign.ID,
			Title:      campaign.Title,
			URL:        campaign.URL,
			Code:       redemptionCode(rng),
		}
		if err := s.queries.CreateDailyTask(ctx, params); err != nil {
			return fmt.Errorf("create campaign task: %w", err)
		}
		position++
	}

	remaining := config.TasksPerDay - (position - 1)
	for _, t := range pickTemplates(rng, templates, remaining) {
		params := repository.CreateDailyTaskParams{
			Day:        day,
			Position:   position,
			Kind:       t.Kind,
			TemplateID: &t.ID,
			Title:      t.Title,
			URL:        t.URL,
			Question:   t.Question,
			Answer:     t.Answer,
		}
		if t.Kind == domain.TaskLink {
			params.Code = redemptionCode(rng)
		}
		if err := s.queries.CreateDailyTask(ctx, params); err != nil {
			return fmt.Errorf("create daily task: %w", err)
		}
		position++
	}

	return nil
}

// ListForUser returns today's published tasks with per-user done
// marks, generating the day first if needed.
func (s *DailyTaskService) ListForUser(ctx context.Context, userID int64, day domain.Day) ([]domain.DailyTaskStatus, error) {
	if err := s.EnsureDay(ctx, day); err != nil {
		return nil, err
	}
	statuses, err := s.queries.ListDailyTaskStatuses(ctx, repository.ListDailyTaskStatusesParams{
		Day:    day,
		UserID: userID,
	})
	if err != nil {
		return nil, fmt.Errorf("list task statuses: %w", err)
	}
	return statuses, nil
}

// dayRNG seeds a PCG stream from the day's ordinal. Every caller that
// generates the same day draws the same sequence.
func dayRNG(day domain.Day) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(day.Ordinal()), 0))
}

// pickTemplates does weighted sampling without replacement. If the
// catalog is smaller than n it returns everything, never an error.
func pickTemplates(rng *rand.Rand, templates []domain.TaskTemplate, n int) []domain.TaskTemplate {
	pool := make([]domain.TaskTemplate, len(templates))
	copy(pool, templates)

	var picked []domain.TaskTemplate
	for len(picked) < n && len(pool) > 0 {
		total := 0
		for _, t := range pool {
			total += t.Weight
		}
		r := rng.IntN(total)
		for i, t := range pool {
			r -= t.Weight
			if r < 0 {
				picked = append(picked, t)
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}
	return picked
}

const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// redemptionCode draws a per-day-and-slot code from the day's RNG
// stream, so racing generators converge on identical codes.
func redemptionCode(rng *rand.Rand) string {
	code := make([]byte, config.CodeLength)
	for i := range code {
		code[i] = codeCharset[rng.IntN(len(codeCharset))]
	}
	return string(code)
}
