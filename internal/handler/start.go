package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/streakworks/streakbot/internal/middleware"
	tg "github.com/streakworks/streakbot/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID

	welcomeText := fmt.Sprintf(
		"👋 ¡Hola, *%s*!\n\n"+
			"Completá las tareas de cada día, mantené tu racha y ganá dinero con las campañas.\n\n"+
			"📋 *Comandos:*\n"+
			"/tareas — Tareas de hoy\n"+
			"/saldo — Tu saldo y racha\n"+
			"/retirar — Retirar tu saldo\n"+
			"/responder — Responder un quiz\n"+
			"/canjear — Canjear un código",
		user.FirstName,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      welcomeText,
		ParseMode: models.ParseModeMarkdownV1,
	})
}

func (h *Handler) handleBalance(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	text := fmt.Sprintf(
		"💼 *Tu cuenta*\n\n"+
			"Saldo: *%s*\n"+
			"Retenido: %s\n"+
			"Racha: 🔥 %d días\n"+
			"Nivel: ⭐ %d",
		tg.FormatMoney(user.Balance),
		tg.FormatMoney(user.Held),
		user.StreakDays,
		user.Level,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
}
