package config

import "time"

const (
	// Daily task generation
	TasksPerDay = 3

	// Streak / level progression
	LevelStepDays = 7
	MaxLevel      = 10

	// Campaign payouts (minor currency units)
	MinPayout     = 1
	LevelBonusCap = 5

	// Withdrawals (minor currency units)
	MinWithdraw = 10_000

	// Redemption codes on campaign and link tasks
	CodeLength = 6

	// Rate limits (per minute, per chat)
	RateLimitPerMinute = 10

	// Stale rate-limit window cleanup
	RateWindowCleanup = 60 * time.Second
	RateWindowAge     = 3 * time.Minute

	// Activity log page size for /actividad
	ActivityPageSize = 15

	// Telegram limits
	MaxTelegramMessageLen = 4096
)
