package bot

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"expense-ledger-bot/internal/conversation"
)

func RegisterHandlers(b *telebot.Bot, machine *conversation.Machine, log *logrus.Logger) {
	b.Handle("/start", func(ctx telebot.Context) error {
		if err := machine.Start(ctx.Chat().ID); err != nil {
			log.WithField("chatId", ctx.Chat().ID).WithError(err).Error("error handling /start")
		}
		return nil
	})

	b.Handle("/cancel", func(ctx telebot.Context) error {
		if err := machine.Cancel(ctx.Chat().ID); err != nil {
			log.WithField("chatId", ctx.Chat().ID).WithError(err).Error("error handling /cancel")
		}
		return nil
	})

	b.Handle(telebot.OnText, func(ctx telebot.Context) error {
		if err := machine.HandleText(ctx.Chat().ID, ctx.Text()); err != nil {
			log.WithField("chatId", ctx.Chat().ID).WithError(err).Error("error handling text")
		}
		return nil
	})

	b.Handle(telebot.OnCallback, func(ctx telebot.Context) error {
		data := strings.TrimSpace(strings.ReplaceAll(ctx.Callback().Data, "\f", ""))
		event, err := conversation.DecodePayload(data)
		if err != nil {
			log.WithField("chatId", ctx.Chat().ID).WithError(err).Warn("unknown callback payload")
			return ctx.Respond()
		}

		if err := machine.HandleEvent(ctx.Chat().ID, event); err != nil {
			log.WithField("chatId", ctx.Chat().ID).WithError(err).Error("error handling callback")
		}
		return ctx.Respond()
	})
}
