package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/streakworks/streakbot/internal/domain"
	"github.com/streakworks/streakbot/internal/middleware"
	"github.com/streakworks/streakbot/internal/service"
	tg "github.com/streakworks/streakbot/internal/telegram"
)

func (h *Handler) handleTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID

	statuses, err := h.dailyTasks.ListForUser(ctx, user.ID, h.clock.Today())
	if err != nil {
		slog.Error("list daily tasks", "error", err, "user_id", user.ID)
		h.tgLogger.LogError(err, "list daily tasks")
		return
	}

	if len(statuses) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📋 Hoy no hay tareas publicadas.",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 *Tareas de hoy:*\n\n")

	var rows [][]models.InlineKeyboardButton
	for _, s := range statuses {
		mark := "▫️"
		if s.Done {
			mark = "✅"
		}
		sb.WriteString(fmt.Sprintf("%s %d. *%s*\n", mark, s.Task.Position, s.Task.Title))
		if !s.Done {
			rows = append(rows, tg.ButtonRow(
				tg.InlineButton(fmt.Sprintf("%d. %s", s.Task.Position, s.Task.Title),
					fmt.Sprintf("task_%d", s.Task.ID)),
			))
		}
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})
}

func (h *Handler) handleSelectTask(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	taskID, ok := callbackID(update.CallbackQuery.Data, "task_")
	if !ok {
		return
	}

	task, err := h.queries.GetDailyTask(ctx, taskID)
	if err != nil {
		return
	}

	chatID := callbackChatID(update)
	if chatID == 0 {
		return
	}

	switch task.Kind {
	case domain.TaskCheckin:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      fmt.Sprintf("📍 *%s*\n\nConfirmá tu check-in de hoy:", task.Title),
			ParseMode: models.ParseModeMarkdownV1,
			ReplyMarkup: tg.InlineKeyboard(
				tg.ButtonRow(tg.InlineButton("✅ Confirmar", fmt.Sprintf("done_%d", task.ID))),
			),
		})
	case domain.TaskQuiz:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: fmt.Sprintf("❓ *%s*\n\n%s\n\nRespondé con:\n`/responder %d tu respuesta`",
				task.Title, task.Question, task.ID),
			ParseMode: models.ParseModeMarkdownV1,
		})
	case domain.TaskLink, domain.TaskCampaign:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: fmt.Sprintf("🔗 *%s*\n\nVisitá el enlace y canjeá el código que encuentres:\n`/canjear %d CODIGO`",
				task.Title, task.ID),
			ParseMode: models.ParseModeMarkdownV1,
			ReplyMarkup: tg.InlineKeyboard(
				tg.ButtonRow(tg.URLButton("🔗 Abrir", task.URL)),
				tg.ButtonRow(tg.InlineButton("✅ Ya lo hice", fmt.Sprintf("done_%d", task.ID))),
			),
		})
	}
}

// handleConfirmTask is the direct-confirm entry point; code redemption
// is the alternate trigger into the same ledger call.
func (h *Handler) handleConfirmTask(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	taskID, ok := callbackID(update.CallbackQuery.Data, "done_")
	if !ok {
		return
	}

	result, err := h.completions.CompleteTask(ctx, user.ID, taskID)
	if err != nil {
		h.answerCompletionError(ctx, b, update.CallbackQuery.ID, err)
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})
	h.sendCompletionResult(ctx, b, callbackChatID(update), user.TelegramID, result)
}

func (h *Handler) handleQuizAnswer(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID

	taskID, rest, ok := commandIDArg(update.Message.Text)
	if !ok {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Uso: /responder <número de tarea> <respuesta>",
		})
		return
	}

	result, err := h.completions.SubmitQuizAnswer(ctx, user.ID, taskID, rest)
	if err != nil {
		h.sendCompletionError(ctx, b, chatID, err)
		return
	}

	h.sendCompletionResult(ctx, b, chatID, user.TelegramID, result)
}

func (h *Handler) handleRedeemCode(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID

	taskID, code, ok := commandIDArg(update.Message.Text)
	if !ok || code == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Uso: /canjear <número de tarea> <código>",
		})
		return
	}

	result, err := h.completions.RedeemCode(ctx, user.ID, taskID, code)
	if err != nil {
		h.sendCompletionError(ctx, b, chatID, err)
		return
	}

	h.sendCompletionResult(ctx, b, chatID, user.TelegramID, result)
}

func (h *Handler) sendCompletionResult(ctx context.Context, b *bot.Bot, chatID, telegramID int64, result *service.CompletionResult) {
	if chatID == 0 {
		return
	}

	if result.AlreadyDone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Ya completaste esta tarea hoy.",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("✅ ¡Tarea completada!")
	if result.PaidAmount > 0 {
		sb.WriteString(fmt.Sprintf("\n💰 Ganaste *%s*", tg.FormatMoney(result.PaidAmount)))
		h.tgLogger.LogPayout(telegramID, "", result.PaidAmount)
	}
	if result.StreakChanged {
		sb.WriteString(fmt.Sprintf("\n🔥 Racha: *%d días* — Nivel ⭐ %d", result.NewStreak, result.NewLevel))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeMarkdownV1,
	})
}

func (h *Handler) sendCompletionError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   completionErrorText(err),
	})
}

func (h *Handler) answerCompletionError(ctx context.Context, b *bot.Bot, callbackQueryID string, err error) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackQueryID,
		Text:            completionErrorText(err),
		ShowAlert:       true,
	})
}

func completionErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return "Esa tarea no existe."
	case errors.Is(err, domain.ErrTaskNotToday):
		return "Esa tarea no es de hoy."
	case errors.Is(err, domain.ErrAnswerRequired):
		return "Esta tarea se completa respondiendo: /responder <número> <respuesta>"
	case errors.Is(err, domain.ErrWrongAnswer):
		return "❌ Respuesta incorrecta. Probá de nuevo."
	case errors.Is(err, domain.ErrWrongCode):
		return "❌ Código incorrecto. Probá de nuevo."
	default:
		slog.Error("complete task", "error", err)
		return "Algo salió mal. Intentá más tarde."
	}
}

func callbackID(data, prefix string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	return id, err == nil
}

func callbackChatID(update *models.Update) int64 {
	if msg := update.CallbackQuery.Message.Message; msg != nil {
		return msg.Chat.ID
	}
	return 0
}

// commandIDArg splits "/cmd <id> <rest...>" into id and rest.
func commandIDArg(text string) (int64, string, bool) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 3)
	if len(parts) < 2 {
		return 0, "", false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, "", false
	}
	rest := ""
	if len(parts) == 3 {
		rest = strings.TrimSpace(parts[2])
	}
	return id, rest, true
}
