package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"fortune_cookie/internal/transport/bot/middleware"
	"fortune_cookie/internal/transport/bot/view"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminIDs []int64) {
	// Печенье открывать может кто угодно.
	bh.HandleMessage(h.OnStart, th.CommandEqual("start"))
	bh.HandleMessage(h.OnCookie, th.CommandEqual("cookie"))
	bh.HandleCallbackQuery(h.OnCallback, th.Or(
		th.CallbackDataEqual(view.DataCookie),
		th.CallbackDataEqual(view.DataNoop),
	))

	adminGroup := bh.Group(th.Any())
	adminGroup.Use(middleware.AdminOnly(adminIDs...))

	adminGroup.HandleMessage(h.OnPhrases, th.CommandEqual("phrases"))
	adminGroup.HandleMessage(h.OnCancel, th.CommandEqual("cancel"))
	adminGroup.HandleMessage(h.OnText, th.AnyMessageWithText(), th.Not(th.AnyCommand()))
	adminGroup.HandleCallbackQuery(h.OnCallback, th.AnyCallbackQuery())
}
