package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/streakworks/streakbot/internal/domain"
)

const templateColumns = `id, kind, title, weight, question, answer, url, active, created_by, created_at`

func scanTemplate(row pgx.Row) (*domain.TaskTemplate, error) {
	var t domain.TaskTemplate
	err := row.Scan(&t.ID, &t.Kind, &t.Title, &t.Weight, &t.Question, &t.Answer,
		&t.URL, &t.Active, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type CreateTaskTemplateParams struct {
	Kind      domain.TaskKind
	Title     string
	Weight    int
	Question  string
	Answer    string
	URL       string
	CreatedBy int64
}

func (q *Queries) CreateTaskTemplate(ctx context.Context, arg CreateTaskTemplateParams) (*domain.TaskTemplate, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO task_templates (kind, title, weight, question, answer, url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+templateColumns,
		arg.Kind, arg.Title, arg.Weight, arg.Question, arg.Answer, arg.URL, arg.CreatedBy)
	return scanTemplate(row)
}

func (q *Queries) ListActiveTaskTemplates(ctx context.Context) ([]domain.TaskTemplate, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+templateColumns+` FROM task_templates WHERE active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.TaskTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func (q *Queries) SetTaskTemplateActive(ctx context.Context, id int64, active bool) error {
	_, err := q.db.Exec(ctx,
		`UPDATE task_templates SET active = $2 WHERE id = $1`, id, active)
	return err
}

const dailyTaskColumns = `id, day, position, kind, template_id, campaign_id,
	title, url, question, answer, code, created_at`

func scanDailyTask(row pgx.Row) (*domain.DailyTask, error) {
	var t domain.DailyTask
	var day time.Time
	err := row.Scan(&t.ID, &day, &t.Position, &t.Kind, &t.TemplateID, &t.CampaignID,
		&t.Title, &t.URL, &t.Question, &t.Answer, &t.Code, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Day = domain.DayOf(day)
	return &t, nil
}

type CreateDailyTaskParams struct {
	Day        domain.Day
	Position   int
	Kind       domain.TaskKind
	TemplateID *int64
	CampaignID *int64
	Title      string
	URL        string
	Question   string
	Answer     string
	Code       string
}

// CreateDailyTask inserts one published task. The (day, position)
// unique constraint makes a racing generator's duplicate insert a
// no-op, which is what lets two uncoordinated callers converge on the
// same deterministic set.
func (q *Queries) CreateDailyTask(ctx context.Context, arg CreateDailyTaskParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO daily_tasks (day, position, kind, template_id, campaign_id, title, url, question, answer, code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (day, position) DO NOTHING`,
		arg.Day.Time(), arg.Position, arg.Kind, arg.TemplateID, arg.CampaignID,
		arg.Title, arg.URL, arg.Question, arg.Answer, arg.Code)
	return err
}

func (q *Queries) CountDailyTasks(ctx context.Context, day domain.Day) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_tasks WHERE day = $1`, day.Time()).Scan(&count)
	return count, err
}

func (q *Queries) GetDailyTask(ctx context.Context, id int64) (*domain.DailyTask, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+dailyTaskColumns+` FROM daily_tasks WHERE id = $1`, id)
	return scanDailyTask(row)
}

func (q *Queries) ListDailyTasks(ctx context.Context, day domain.Day) ([]domain.DailyTask, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+dailyTaskColumns+` FROM daily_tasks WHERE day = $1 ORDER BY position`,
		day.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.DailyTask
	for rows.Next() {
		t, err := scanDailyTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

type ListDailyTaskStatusesParams struct {
	Day    domain.Day
	UserID int64
}

func (q *Queries) ListDailyTaskStatuses(ctx context.Context, arg ListDailyTaskStatusesParams) ([]domain.DailyTaskStatus, error) {
	rows, err := q.db.Query(ctx, `
		SELECT t.id, t.day, t.position, t.kind, t.template_id, t.campaign_id,
			t.title, t.url, t.question, t.answer, t.code, t.created_at,
			c.id IS NOT NULL AS done
		FROM daily_tasks t
		LEFT JOIN completions c ON c.daily_task_id = t.id AND c.user_id = $2
		WHERE t.day = $1
		ORDER BY t.position`,
		arg.Day.Time(), arg.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []domain.DailyTaskStatus
	for rows.Next() {
		var s domain.DailyTaskStatus
		var day time.Time
		t := &s.Task
		err := rows.Scan(&t.ID, &day, &t.Position, &t.Kind, &t.TemplateID, &t.CampaignID,
			&t.Title, &t.URL, &t.Question, &t.Answer, &t.Code, &t.CreatedAt, &s.Done)
		if err != nil {
			return nil, err
		}
		t.Day = domain.DayOf(day)
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

type CreateCompletionParams struct {
	UserID      int64
	DailyTaskID int64
}

// CreateCompletion reports whether the row was actually inserted. The
// (user_id, daily_task_id) unique constraint is the sole idempotency
// mechanism: a separate check-then-insert would leave a race window
// under duplicate delivery.
func (q *Queries) CreateCompletion(ctx context.Context, arg CreateCompletionParams) (bool, error) {
	tag, err := q.db.Exec(ctx, `
		INSERT INTO completions (user_id, daily_task_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, daily_task_id) DO NOTHING`,
		arg.UserID, arg.DailyTaskID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type CountCompletionsForDayParams struct {
	UserID int64
	Day    domain.Day
}

func (q *Queries) CountCompletionsForDay(ctx context.Context, arg CountCompletionsForDayParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM completions c
		JOIN daily_tasks t ON t.id = c.daily_task_id
		WHERE c.user_id = $1 AND t.day = $2`,
		arg.UserID, arg.Day.Time()).Scan(&count)
	return count, err
}
