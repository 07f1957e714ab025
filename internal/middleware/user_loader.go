package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/streakworks/streakbot/internal/domain"
	"github.com/streakworks/streakbot/internal/service"
)

type ctxKey string

const UserKey ctxKey = "user"

// GetUser extracts user from context.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// UserLoader returns middleware that loads (or creates) the user into
// context. The admin predicate is injected from config; it is the only
// authorization check admin entry points rely on.
func UserLoader(userService *service.UserService, cfg interface{ IsAdmin(int64) bool }) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User

			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from == nil {
				next(ctx, b, update)
				return
			}

			isAdmin := cfg.IsAdmin(from.ID)

			user, created, err := userService.FindOrCreate(ctx, from.ID, from.FirstName, from.Username, isAdmin)
			if err == nil && user != nil {
				if !created && (user.FirstName != from.FirstName || user.Username != from.Username) {
					if err := userService.UpdateInfo(ctx, user.ID, from.FirstName, from.Username); err == nil {
						user.FirstName = from.FirstName
						user.Username = from.Username
					}
				}
				ctx = context.WithValue(ctx, UserKey, user)
			}

			next(ctx, b, update)
		}
	}
}
