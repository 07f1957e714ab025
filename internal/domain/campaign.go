package domain

import "time"

// Campaign is a budget- and goal-capped promotional task. Once spent
// reaches budget or completed_count reaches goal it is deactivated and
// never pays again.
type Campaign struct {
	ID             int64
	Title          string
	URL            string
	Budget         int64
	Goal           int
	Spent          int64
	CompletedCount int
	Active         bool
	CreatedBy      int64
	CreatedAt      time.Time
}

func (c *Campaign) Exhausted() bool {
	return c.Spent >= c.Budget || c.CompletedCount >= c.Goal
}

// CampaignPayout records that a user was paid by a campaign. The
// (campaign, user) pair is unique for the campaign's whole lifetime.
type CampaignPayout struct {
	ID         int64
	CampaignID int64
	UserID     int64
	Amount     int64
	CreatedAt  time.Time
}
