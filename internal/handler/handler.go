package handler

import (
	"github.com/go-telegram/bot"
	"github.com/streakworks/streakbot/internal/clock"
	"github.com/streakworks/streakbot/internal/config"
	"github.com/streakworks/streakbot/internal/repository"
	"github.com/streakworks/streakbot/internal/service"
	"github.com/streakworks/streakbot/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	clock       clock.Clock
	userService *service.UserService
	catalog     *service.CatalogService
	dailyTasks  *service.DailyTaskService
	completions *service.CompletionService
	campaigns   *service.CampaignService
	withdrawals *service.WithdrawalService
	activity    *service.ActivityService
	queries     *repository.Queries
	tgLogger    *telegram.TelegramLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	Clock       clock.Clock
	UserService *service.UserService
	Catalog     *service.CatalogService
	DailyTasks  *service.DailyTaskService
	Completions *service.CompletionService
	Campaigns   *service.CampaignService
	Withdrawals *service.WithdrawalService
	Activity    *service.ActivityService
	Queries     *repository.Queries
	TgLogger    *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		clock:       deps.Clock,
		userService: deps.UserService,
		catalog:     deps.Catalog,
		dailyTasks:  deps.DailyTasks,
		completions: deps.Completions,
		campaigns:   deps.Campaigns,
		withdrawals: deps.Withdrawals,
		activity:    deps.Activity,
		queries:     deps.Queries,
		tgLogger:    deps.TgLogger,
	}
}
