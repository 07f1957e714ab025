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
	"github.com/streakworks/streakbot/internal/config"
	"github.com/streakworks/streakbot/internal/domain"
	"github.com/streakworks/streakbot/internal/middleware"
	"github.com/streakworks/streakbot/internal/service"
	tg "github.com/streakworks/streakbot/internal/telegram"
)

// adminUser returns the calling admin, or nil after replying with a
// refusal. Admin membership comes from config, loaded by UserLoader.
func (h *Handler) adminUser(ctx context.Context, b *bot.Bot, chatID int64) *domain.User {
	user := middleware.GetUser(ctx)
	if user == nil {
		return nil
	}
	if !user.IsAdmin {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Este comando es solo para administradores.",
		})
		return nil
	}
	return user
}

// handleAddTask admits a catalog template.
//
//	/addtask checkin <peso> | <título>
//	/addtask quiz <peso> | <título> | <pregunta> | <respuesta>
//	/addtask link <peso> | <título> | <url>
func (h *Handler) handleAddTask(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	user := h.adminUser(ctx, b, chatID)
	if user == nil {
		return
	}

	usage := "Uso:\n/addtask checkin <peso> | <título>\n/addtask quiz <peso> | <título> | <pregunta> | <respuesta>\n/addtask link <peso> | <título> | <url>"

	args := strings.SplitN(strings.TrimSpace(update.Message.Text), " ", 3)
	if len(args) < 3 {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: usage})
		return
	}

	kind := domain.TaskKind(args[1])
	fields := splitFields(args[2])
	if len(fields) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: usage})
		return
	}

	weight, err := strconv.Atoi(fields[0])
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: usage})
		return
	}

	in := service.CreateTemplateInput{Kind: kind, Weight: weight, Title: fields[1]}
	switch kind {
	case domain.TaskQuiz:
		if len(fields) < 4 {
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: usage})
			return
		}
		in.Question = fields[2]
		in.Answer = fields[3]
	case domain.TaskLink:
		if len(fields) < 3 {
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: usage})
			return
		}
		in.URL = fields[2]
	}

	template, err := h.catalog.CreateTemplate(ctx, in, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTemplate) {
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ " + err.Error()})
			return
		}
		slog.Error("create template", "error", err)
		h.tgLogger.LogError(err, "create template")
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("✅ Tarea #%d creada (%s, peso %d).", template.ID, template.Kind, template.Weight),
	})
}

// handleAddCampaign creates a campaign and deactivates any other
// active one.
//
//	/addcampaign <presupuesto> <meta> | <título> | [url]
func (h *Handler) handleAddCampaign(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	user := h.adminUser(ctx, b, chatID)
	if user == nil {
		return
	}

	usage := "Uso: /addcampaign <presupuesto> <meta> | <título> | [url]"

	args := strings.SplitN(strings.TrimSpace(update.Message.Text), " ", 4)
	if len(args) < 4 {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: usage})
		return
	}

	budget, err := tg.ParseMoney(args[1])
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: usage})
		return
	}
	goal, err := strconv.Atoi(args[2])
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: usage})
		return
	}
	// args[3] starts at the first separator: "| <título> | [url]".
	fields := splitFields(args[3])
	if fields[0] == "" {
		fields = fields[1:]
	}
	if len(fields) == 0 || fields[0] == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: usage})
		return
	}
	in := service.CreateCampaignInput{Budget: budget, Goal: goal, Title: fields[0]}
	if len(fields) > 1 {
		in.URL = fields[1]
	}

	campaign, err := h.campaigns.Create(ctx, in, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCampaign) {
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ " + err.Error()})
			return
		}
		slog.Error("create campaign", "error", err)
		h.tgLogger.LogError(err, "create campaign")
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("✅ Campaña #%d creada: %s, presupuesto %s, meta %d. Cualquier otra campaña activa fue desactivada.",
			campaign.ID, campaign.Title, tg.FormatMoney(campaign.Budget), campaign.Goal),
	})
}

func (h *Handler) handlePendingWithdrawals(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if h.adminUser(ctx, b, chatID) == nil {
		return
	}

	withdrawals, err := h.withdrawals.ListPending(ctx)
	if err != nil {
		slog.Error("list withdrawals", "error", err)
		return
	}

	if len(withdrawals) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "No hay retiros pendientes."})
		return
	}

	var sb strings.Builder
	sb.WriteString("🏦 *Retiros pendientes:*\n\n")
	for _, w := range withdrawals {
		sb.WriteString(fmt.Sprintf("`%s`\nUsuario %d — %s — %s\n%s\n\n",
			w.Reference, w.UserID, tg.FormatMoney(w.Amount), w.Status, w.Details))
	}
	sb.WriteString("Usá /pagar <ref> [nota] o /rechazar <ref> [nota].")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeMarkdownV1,
	})
}

func (h *Handler) handlePayWithdrawal(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.settleWithdrawal(ctx, b, update, true)
}

func (h *Handler) handleRejectWithdrawal(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.settleWithdrawal(ctx, b, update, false)
}

func (h *Handler) settleWithdrawal(ctx context.Context, b *bot.Bot, update *models.Update, pay bool) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if h.adminUser(ctx, b, chatID) == nil {
		return
	}

	args := strings.SplitN(strings.TrimSpace(update.Message.Text), " ", 3)
	if len(args) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "Falta la referencia del retiro."})
		return
	}
	note := ""
	if len(args) == 3 {
		note = args[2]
	}

	withdrawal, err := h.withdrawals.ByReference(ctx, args[1])
	if err == nil {
		if pay {
			withdrawal, err = h.withdrawals.Pay(ctx, withdrawal.ID, note)
		} else {
			withdrawal, err = h.withdrawals.Reject(ctx, withdrawal.ID, note)
		}
	}

	switch {
	case errors.Is(err, domain.ErrWithdrawalNotFound):
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "No encontré ese retiro."})
	case errors.Is(err, domain.ErrInvalidTransition):
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "Ese retiro ya fue resuelto."})
	case err != nil:
		slog.Error("settle withdrawal", "error", err)
		h.tgLogger.LogError(err, "settle withdrawal")
	default:
		verb, status := "rechazado (fondos devueltos)", "rejected"
		if pay {
			verb, status = "pagado", "paid"
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      fmt.Sprintf("✅ Retiro `%s` %s: %s", withdrawal.Reference, verb, tg.FormatMoney(withdrawal.Amount)),
			ParseMode: models.ParseModeMarkdownV1,
		})
		if owner, err := h.userService.GetByID(ctx, withdrawal.UserID); err == nil {
			h.tgLogger.LogWithdrawal(owner.TelegramID, withdrawal.Reference.String(), withdrawal.Amount, status)
		}
	}
}

func (h *Handler) handleActivity(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if h.adminUser(ctx, b, chatID) == nil {
		return
	}

	events, err := h.activity.Recent(ctx, config.ActivityPageSize)
	if err != nil {
		slog.Error("list activity", "error", err)
		return
	}

	if len(events) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "Sin actividad registrada."})
		return
	}

	var sb strings.Builder
	sb.WriteString("📜 *Actividad reciente:*\n\n")
	for _, e := range events {
		sb.WriteString(fmt.Sprintf("`%s` %s", e.CreatedAt.Format("01-02 15:04"), e.Event))
		if e.Amount != nil {
			sb.WriteString(" " + tg.FormatMoney(*e.Amount))
		}
		if e.Details != "" {
			sb.WriteString(" — " + e.Details)
		}
		sb.WriteString("\n")
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeMarkdownV1,
	})
}

// splitFields splits "a | b | c" admin-command payloads.
func splitFields(s string) []string {
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
