package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/streakworks/streakbot/internal/domain"
	"github.com/streakworks/streakbot/internal/repository"
)

// ActivityService reads the append-only activity log. Appends happen
// inside the ledger, payout and withdrawal transactions.
type ActivityService struct {
	db      *pgxpool.Pool
	queries *repository.Queries
}

func NewActivityService(db *pgxpool.Pool, queries *repository.Queries) *ActivityService {
	return &ActivityService{db: db, queries: queries}
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	events, err := s.queries.ListRecentActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return events, nil
}
