package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/streakworks/streakbot/internal/domain"
)

const campaignColumns = `id, title, url, budget, goal, spent, completed_count, active, created_by, created_at`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.Title, &c.URL, &c.Budget, &c.Goal, &c.Spent,
		&c.CompletedCount, &c.Active, &c.CreatedBy, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type CreateCampaignParams struct {
	Title     string
	URL       string
	Budget    int64
	Goal      int
	CreatedBy int64
}

func (q *Queries) CreateCampaign(ctx context.Context, arg CreateCampaignParams) (*domain.Campaign, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO campaigns (title, url, budget, goal, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+campaignColumns,
		arg.Title, arg.URL, arg.Budget, arg.Goal, arg.CreatedBy)
	return scanCampaign(row)
}

// DeactivateActiveCampaigns enforces the single-active-campaign rule
// when a new campaign is created.
func (q *Queries) DeactivateActiveCampaigns(ctx context.Context) error {
	_, err := q.db.Exec(ctx, `UPDATE campaigns SET active = FALSE WHERE active`)
	return err
}

func (q *Queries) GetActiveCampaign(ctx context.Context) (*domain.Campaign, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+campaignColumns+` FROM campaigns WHERE active ORDER BY id DESC LIMIT 1`)
	return scanCampaign(row)
}

func (q *Queries) GetCampaignByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	return scanCampaign(row)
}

// GetCampaignForUpdate locks the campaign row. The payout formula
// reads remaining budget and remaining goal from this snapshot, so the
// lock must be held until the matching ApplyCampaignPayout commits.
func (q *Queries) GetCampaignForUpdate(ctx context.Context, id int64) (*domain.Campaign, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, id)
	return scanCampaign(row)
}

// ApplyCampaignPayout books one rewarded completion and returns the
// updated campaign.
func (q *Queries) ApplyCampaignPayout(ctx context.Context, id, amount int64) (*domain.Campaign, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE campaigns
		SET spent = spent + $2, completed_count = completed_count + 1
		WHERE id = $1
		RETURNING `+campaignColumns,
		id, amount)
	return scanCampaign(row)
}

func (q *Queries) DeactivateCampaign(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `UPDATE campaigns SET active = FALSE WHERE id = $1`, id)
	return err
}

type CreateCampaignPayoutParams struct {
	CampaignID int64
	UserID     int64
	Amount     int64
}

// CreateCampaignPayout reports whether the payout fact was inserted.
// The (campaign_id, user_id) unique constraint guarantees at most one
// payout per user for the campaign's lifetime.
func (q *Queries) CreateCampaignPayout(ctx context.Context, arg CreateCampaignPayoutParams) (bool, error) {
	tag, err := q.db.Exec(ctx, `
		INSERT INTO campaign_payouts (campaign_id, user_id, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (campaign_id, user_id) DO NOTHING`,
		arg.CampaignID, arg.UserID, arg.Amount)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
