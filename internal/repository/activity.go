package repository

import (
	"context"

	"github.com/streakworks/streakbot/internal/domain"
)

type CreateActivityParams struct {
	UserID  *int64
	Event   string
	Amount  *int64
	Details string
}

// CreateActivity appends one narrative entry. The log is append-only;
// nothing in the system updates or deletes rows here.
func (q *Queries) CreateActivity(ctx context.Context, arg CreateActivityParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO activity_log (user_id, event, amount, details)
		VALUES ($1, $2, $3, $4)`,
		arg.UserID, arg.Event, arg.Amount, arg.Details)
	return err
}

func (q *Queries) ListRecentActivity(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, user_id, event, amount, details, created_at
		FROM activity_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.ActivityEvent
	for rows.Next() {
		var e domain.ActivityEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Event, &e.Amount, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
