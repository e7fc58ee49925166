package middleware

import (
	"slices"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AdminOnly молча пропускает обновления не от администраторов.
func AdminOnly(adminIDs ...int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		userID, ok := UserID(update)
		if !ok || !IsAdmin(adminIDs, userID) {
			return nil
		}

		return ctx.Next(update)
	}
}

// UserID — автор сообщения или нажавший кнопку.
func UserID(update telego.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID, true
	default:
		return 0, false
	}
}

func IsAdmin(adminIDs []int64, userID int64) bool {
	return slices.Contains(adminIDs, userID)
}
