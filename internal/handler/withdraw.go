package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/streakworks/streakbot/internal/config"
	"github.com/streakworks/streakbot/internal/domain"
	"github.com/streakworks/streakbot/internal/middleware"
	tg "github.com/streakworks/streakbot/internal/telegram"
)

func (h *Handler) handleWithdraw(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID

	withdrawal, err := h.withdrawals.Request(ctx, user.ID)
	switch {
	case errors.Is(err, domain.ErrWithdrawalPending):
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: fmt.Sprintf("Ya tenés un retiro en curso por %s. Enviá los datos de cobro en un mensaje para continuar.",
				tg.FormatMoney(withdrawal.Amount)),
		})
	case errors.Is(err, domain.ErrBelowMinimum):
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("El mínimo para retirar es %s.", tg.FormatMoney(config.MinWithdraw)),
		})
	case errors.Is(err, domain.ErrInsufficientBalance):
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Tu saldo cambió, intentá de nuevo.",
		})
	case err != nil:
		slog.Error("request withdrawal", "error", err, "user_id", user.ID)
		h.tgLogger.LogError(err, "request withdrawal")
	default:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: fmt.Sprintf("🏦 Retiro iniciado por *%s*.\n\nAhora enviame en un mensaje los datos de cobro (alias, CBU, etc.).",
				tg.FormatMoney(withdrawal.Amount)),
			ParseMode: models.ParseModeMarkdownV1,
		})
	}
}

// HandleTextPrivate routes free-form private messages. While the user
// has a withdrawal awaiting details, the next message is taken as the
// payout instructions.
func (h *Handler) HandleTextPrivate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	withdrawal, err := h.withdrawals.AttachDetails(ctx, user.ID, msg.Text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return
		}
		slog.Error("attach withdrawal details", "error", err, "user_id", user.ID)
		return
	}
	if withdrawal == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text: fmt.Sprintf("✅ Retiro enviado a revisión.\n\nReferencia: `%s`\nMonto: *%s*",
			withdrawal.Reference, tg.FormatMoney(withdrawal.Amount)),
		ParseMode: models.ParseModeMarkdownV1,
	})

	h.tgLogger.LogWithdrawal(user.TelegramID, withdrawal.Reference.String(), withdrawal.Amount, "submitted")
}
