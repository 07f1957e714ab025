package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskNotToday        = errors.New("task is not part of today's set")
	ErrWrongAnswer         = errors.New("wrong quiz answer")
	ErrAnswerRequired      = errors.New("task requires a quiz answer")
	ErrWrongCode           = errors.New("wrong redemption code")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWithdrawalPending   = errors.New("withdrawal already pending")
	ErrBelowMinimum        = errors.New("balance below withdrawal minimum")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrInvalidTransition   = errors.New("withdrawal status does not allow this transition")
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrInvalidTemplate     = errors.New("invalid task template")
	ErrInvalidCampaign     = errors.New("invalid campaign")
	ErrNotAdmin            = errors.New("not an admin")
)
