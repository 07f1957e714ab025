package repository

import (
	"context"
	"time"
)

// CheckAndIncrementRateLimit bumps the per-chat counter for the
// current minute window and returns the new count.
func (q *Queries) CheckAndIncrementRateLimit(ctx context.Context, chatID int64) (int, error) {
	var count int
	err := q.db.QueryRow(ctx, `
		INSERT INTO rate_limits (chat_id, window_start, count)
		VALUES ($1, date_trunc('minute', NOW()), 1)
		ON CONFLICT (chat_id, window_start)
		DO UPDATE SET count = rate_limits.count + 1
		RETURNING count`,
		chatID).Scan(&count)
	return count, err
}

func (q *Queries) CleanupStaleRateWindows(ctx context.Context, olderThan time.Duration) error {
	_, err := q.db.Exec(ctx,
		`DELETE FROM rate_limits WHERE window_start < NOW() - $1::interval`,
		olderThan)
	return err
}
