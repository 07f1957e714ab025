package service

import (
	"testing"

	"github.com/streakworks/streakbot/internal/domain"
)

func TestPayoutAmount(t *testing.T) {
	tests := []struct {
		name     string
		campaign domain.Campaign
		level    int
		want     int64
	}{
		{
			name:     "even split on a fresh campaign",
			campaign: domain.Campaign{Budget: 100, Goal: 10, Active: true},
			level:    1,
			want:     10,
		},
		{
			name:     "level bonus on top of the base",
			campaign: domain.Campaign{Budget: 100, Goal: 10, Active: true},
			level:    4,
			want:     13,
		},
		{
			name:     "bonus capped",
			campaign: domain.Campaign{Budget: 1000, Goal: 10, Active: true},
			level:    10,
			want:     105,
		},
		{
			name:     "reserve keeps the floor fundable for everyone still owed",
			campaign: domain.Campaign{Budget: 12, Goal: 10, Active: true},
			level:    10,
			want:     3,
		},
		{
			name:     "last completion takes the remainder",
			campaign: domain.Campaign{Budget: 100, Goal: 10, Spent: 91, CompletedCount: 9, Active: true},
			level:    1,
			want:     9,
		},
		{
			name:     "tight budget still pays the floor",
			campaign: domain.Campaign{Budget: 10, Goal: 10, Spent: 5, CompletedCount: 5, Active: true},
			level:    8,
			want:     1,
		},
		{
			name:     "budget exhausted pays nothing",
			campaign: domain.Campaign{Budget: 100, Goal: 10, Spent: 100, CompletedCount: 8, Active: true},
			level:    1,
			want:     0,
		},
		{
			name:     "goal met pays nothing",
			campaign: domain.Campaign{Budget: 100, Goal: 10, Spent: 60, CompletedCount: 10, Active: true},
			level:    1,
			want:     0,
		},
		{
			name:     "level zero treated as no bonus",
			campaign: domain.Campaign{Budget: 100, Goal: 10, Active: true},
			level:    0,
			want:     10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payoutAmount(&tt.campaign, tt.level)
			if got != tt.want {
				t.Errorf("payoutAmount() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Simulating a whole campaign run must land exactly on the goal without
// overspending, whatever the levels of the users completing it.
func TestPayoutAmountDrainsWithinBudget(t *testing.T) {
	c := domain.Campaign{Budget: 137, Goal: 25, Active: true}
	levels := []int{1, 10, 3, 7, 1, 2, 9, 4, 5, 6, 1, 10, 10, 2, 3, 1, 8, 4, 1, 5, 6, 7, 2, 9, 1}

	for i, level := range levels {
		amount := payoutAmount(&c, level)
		if amount <= 0 {
			t.Fatalf("completion %d: payout %d, want positive", i, amount)
		}
		c.Spent += amount
		c.CompletedCount++
		if c.Spent > c.Budget {
			t.Fatalf("completion %d: spent %d exceeds budget %d", i, c.Spent, c.Budget)
		}
	}

	if c.CompletedCount != c.Goal {
		t.Errorf("completed %d, want %d", c.CompletedCount, c.Goal)
	}
	if got := payoutAmount(&c, 1); got != 0 {
		t.Errorf("payout after goal met = %d, want 0", got)
	}
}

func TestCampaignExhausted(t *testing.T) {
	tests := []struct {
		name     string
		campaign domain.Campaign
		want     bool
	}{
		{"fresh", domain.Campaign{Budget: 100, Goal: 10}, false},
		{"partial", domain.Campaign{Budget: 100, Goal: 10, Spent: 50, CompletedCount: 5}, false},
		{"budget spent", domain.Campaign{Budget: 100, Goal: 10, Spent: 100, CompletedCount: 9}, true},
		{"goal met", domain.Campaign{Budget: 100, Goal: 10, Spent: 80, CompletedCount: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.campaign.Exhausted(); got != tt.want {
				t.Errorf("Exhausted() = %v, want %v", got, tt.want)
			}
		})
	}
}
