package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"

	streakbot "github.com/streakworks/streakbot"
	"github.com/streakworks/streakbot/internal/clock"
	"github.com/streakworks/streakbot/internal/config"
	"github.com/streakworks/streakbot/internal/handler"
	"github.com/streakworks/streakbot/internal/middleware"
	"github.com/streakworks/streakbot/internal/repository"
	"github.com/streakworks/streakbot/internal/service"
	"github.com/streakworks/streakbot/internal/telegram"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(streakbot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	queries := repository.New(pool)
	clk := clock.NewSystem(cfg.Location())

	// Initialize services
	userService := service.NewUserService(pool, queries)
	catalogService := service.NewCatalogService(pool, queries)
	dailyTaskService := service.NewDailyTaskService(pool, queries)
	campaignService := service.NewCampaignService(pool, queries)
	completionService := service.NewCompletionService(pool, queries, campaignService, clk)
	withdrawalService := service.NewWithdrawalService(pool, queries)
	activityService := service.NewActivityService(pool, queries)

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(queries),
			middleware.UserLoader(userService, cfg),
		),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.DropPendingUpdates {
		b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true})
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize telegram logger
	tgLogger := telegram.NewTelegramLogger(b, cfg)

	// Initialize handler
	h := handler.New(handler.Deps{
		Bot:         b,
		Cfg:         cfg,
		Clock:       clk,
		UserService: userService,
		Catalog:     catalogService,
		DailyTasks:  dailyTaskService,
		Completions: completionService,
		Campaigns:   campaignService,
		Withdrawals: withdrawalService,
		Activity:    activityService,
		Queries:     queries,
		TgLogger:    tgLogger,
	})

	// Register all handlers
	h.Register()

	// Free-form private text carries withdrawal payout details
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, h.HandleTextPrivate)

	// Start stale rate window cleanup goroutine
	go func() {
		ticker := time.NewTicker(config.RateWindowCleanup)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := queries.CleanupStaleRateWindows(context.Background(), config.RateWindowAge); err != nil {
					slog.Error("cleanup stale rate windows", "error", err)
				}
			}
		}
	}()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
