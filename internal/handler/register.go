package handler

import (
	"github.com/go-telegram/bot"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tareas", bot.MatchTypePrefix, h.handleTasks)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/saldo", bot.MatchTypePrefix, h.handleBalance)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/retirar", bot.MatchTypePrefix, h.handleWithdraw)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/responder", bot.MatchTypePrefix, h.handleQuizAnswer)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/canjear", bot.MatchTypePrefix, h.handleRedeemCode)

	// Admin commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addtask", bot.MatchTypePrefix, h.handleAddTask)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addcampaign", bot.MatchTypePrefix, h.handleAddCampaign)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/retiros", bot.MatchTypePrefix, h.handlePendingWithdrawals)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/pagar", bot.MatchTypePrefix, h.handlePayWithdrawal)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/rechazar", bot.MatchTypePrefix, h.handleRejectWithdrawal)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/actividad", bot.MatchTypePrefix, h.handleActivity)

	// Task callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "task_", bot.MatchTypePrefix, h.handleSelectTask)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "done_", bot.MatchTypePrefix, h.handleConfirmTask)
}
