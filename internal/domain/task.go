package domain

import "time"

type TaskKind string

const (
	TaskCheckin  TaskKind = "checkin"
	TaskQuiz     TaskKind = "quiz"
	TaskLink     TaskKind = "link"
	TaskCampaign TaskKind = "campaign"
)

// TaskTemplate is a reusable catalog entry. Templates are soft-disabled
// via Active, never deleted once referenced by published days.
type TaskTemplate struct {
	ID        int64
	Kind      TaskKind
	Title     string
	Weight    int
	Question  string
	Answer    string
	URL       string
	Active    bool
	CreatedBy int64
	CreatedAt time.Time
}

// DailyTask is an immutable per-day instantiation of a template or a
// campaign. Display fields and the quiz answer are copied at creation
// time so later catalog edits do not alter an already-published day.
type DailyTask struct {
	ID         int64
	Day        Day
	Position   int
	Kind       TaskKind
	TemplateID *int64
	CampaignID *int64
	Title      string
	URL        string
	Question   string
	Answer     string
	Code       string
	CreatedAt  time.Time
}

func (t *DailyTask) IsCampaign() bool { return t.Kind == TaskCampaign }

type Completion struct {
	ID          int64
	UserID      int64
	DailyTaskID int64
	CreatedAt   time.Time
}

// DailyTaskStatus pairs a published task with whether the given user
// has completed it.
type DailyTaskStatus struct {
	Task DailyTask
	Done bool
}
