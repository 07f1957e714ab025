package domain

import "time"

const (
	EventRegistration        = "registration"
	EventTaskCompleted       = "task_completed"
	EventAllTasksDone        = "all_tasks_done"
	EventCampaignPayout      = "campaign_payout"
	EventCampaignExhausted   = "campaign_exhausted"
	EventWithdrawalRequested = "withdrawal_requested"
	EventWithdrawalSubmitted = "withdrawal_submitted"
	EventWithdrawalPaid      = "withdrawal_paid"
	EventWithdrawalRejected  = "withdrawal_rejected"
)

// ActivityEvent is an append-only narrative entry for ledger-affecting
// operations.
type ActivityEvent struct {
	ID        int64
	UserID    *int64
	Event     string
	Amount    *int64
	Details   string
	CreatedAt time.Time
}
