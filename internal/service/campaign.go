package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/streakworks/streakbot/internal/config"
	"github.com/streakworks/streakbot/internal/domain"
	"github.com/streakworks/streakbot/internal/repository"
)

// CampaignService owns the campaign registry and the payout engine.
type CampaignService struct {
	db      *pgxpool.Pool
	queries *repository.Queries
}

func NewCampaignService(db *pgxpool.Pool, queries *repository.Queries) *CampaignService {
	return &CampaignService{db: db, queries: queries}
}

type CreateCampaignInput struct {
	Title  string
	URL    string
	Budget int64
	Goal   int
}

// Create validates and creates a campaign, deactivating any other
// active campaign in the same transaction: at most one campaign is
// active at a time.
func (s *CampaignService) Create(ctx context.Context, in CreateCampaignInput, createdBy int64) (*domain.Campaign, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: empty title", domain.ErrInvalidCampaign)
	}
	if in.Budget <= 0 || in.Goal <= 0 {
		return nil, fmt.Errorf("%w: budget and goal must be positive", domain.ErrInvalidCampaign)
	}
	// The payout floor must be fundable for every completion the goal
	// still owes, or the goal is unreachable within budget.
	if in.Budget < int64(in.Goal)*config.MinPayout {
		return nil, fmt.Errorf("%w: budget cannot cover goal at the minimum payout", domain.ErrInvalidCampaign)
	}
	if in.URL != "" && !validHTTPURL(in.URL) {
		return nil, fmt.Errorf("%w: invalid url", domain.ErrInvalidCampaign)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	if err := qtx.DeactivateActiveCampaigns(ctx); err != nil {
		return nil, fmt.Errorf("deactivate campaigns: %w", err)
	}

	campaign, err := qtx.CreateCampaign(ctx, repository.CreateCampaignParams{
		Title:     strings.TrimSpace(in.Title),
		URL:       strings.TrimSpace(in.URL),
		Budget:    in.Budget,
		Goal:      in.Goal,
		CreatedBy: createdBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return campaign, nil
}

func (s *CampaignService) GetActive(ctx context.Context) (*domain.Campaign, error) {
	campaign, err := s.queries.GetActiveCampaign(ctx)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("get active campaign: %w", err)
	}
	return campaign, nil
}

// TryPay pays the user for completing the campaign task, at most once
// ever per (campaign, user). It must run inside the caller's
// transaction with the user row already locked; it locks the campaign
// row itself so the amount is computed against read-consistent
// remainders. Returns the amount paid, zero if nothing was paid.
func (s *CampaignService) TryPay(ctx context.Context, qtx *repository.Queries, campaignID, userID int64, userLevel int) (int64, error) {
	campaign, err := qtx.GetCampaignForUpdate(ctx, campaignID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrCampaignNotFound
		}
		return 0, fmt.Errorf("lock campaign: %w", err)
	}
	if !campaign.Active {
		return 0, nil
	}

	amount := payoutAmount(campaign, userLevel)
	if amount == 0 {
		if err := qtx.DeactivateCampaign(ctx, campaignID); err != nil {
			return 0, fmt.Errorf("deactivate campaign: %w", err)
		}
		return 0, nil
	}

	inserted, err := qtx.CreateCampaignPayout(ctx, repository.CreateCampaignPayoutParams{
		CampaignID: campaignID,
		UserID:     userID,
		Amount:     amount,
	})
	if err != nil {
		return 0, fmt.Errorf("create payout: %w", err)
	}
	if !inserted {
		// Already paid by this campaign at some point.
		return 0, nil
	}

	if _, err := qtx.AddToUserBalance(ctx, userID, amount); err != nil {
		return 0, fmt.Errorf("credit balance: %w", err)
	}

	updated, err := qtx.ApplyCampaignPayout(ctx, campaignID, amount)
	if err != nil {
		return 0, fmt.Errorf("apply payout: %w", err)
	}

	if err := qtx.CreateActivity(ctx, repository.CreateActivityParams{
		UserID:  &userID,
		Event:   domain.EventCampaignPayout,
		Amount:  &amount,
		Details: fmt.Sprintf("campaign=%d", campaignID),
	}); err != nil {
		return 0, fmt.Errorf("log payout: %w", err)
	}

	if updated.Exhausted() {
		if err := qtx.DeactivateCampaign(ctx, campaignID); err != nil {
			return 0, fmt.Errorf("deactivate campaign: %w", err)
		}
		if err := qtx.CreateActivity(ctx, repository.CreateActivityParams{
			Event:   domain.EventCampaignExhausted,
			Details: fmt.Sprintf("campaign=%d spent=%d completed=%d", campaignID, updated.Spent, updated.CompletedCount),
		}); err != nil {
			return 0, fmt.Errorf("log exhaustion: %w", err)
		}
	}

	return amount, nil
}

// payoutAmount is the budget-constrained per-completion amount. base
// is the even split of the remaining budget over the remaining goal,
// recomputed on every call; the bonus rewards user level; maxAllowed
// reserves the payout floor for everyone still owed, which is what
// guarantees the goal stays reachable within budget.
func payoutAmount(c *domain.Campaign, userLevel int) int64 {
	remainingBudget := c.Budget - c.Spent
	remainingNeeded := int64(c.Goal - c.CompletedCount)
	if remainingBudget <= 0 || remainingNeeded <= 0 {
		return 0
	}

	base := remainingBudget / remainingNeeded
	if base < config.MinPayout {
		base = config.MinPayout
	}

	bonus := int64(userLevel - 1)
	if bonus < 0 {
		bonus = 0
	}
	if bonus > config.LevelBonusCap {
		bonus = config.LevelBonusCap
	}

	payout := base + bonus
	maxAllowed := remainingBudget - (remainingNeeded-1)*config.MinPayout
	if payout > maxAllowed {
		payout = maxAllowed
	}
	if payout < config.MinPayout {
		payout = config.MinPayout
	}
	return payout
}
