package bot

import (
	"gopkg.in/telebot.v3"

	"expense-ledger-bot/internal/conversation"
)

type telebotSender struct {
	b *telebot.Bot
}

// NewSender adapts a telebot instance to the conversation.Sender interface.
func NewSender(b *telebot.Bot) conversation.Sender {
	return &telebotSender{b: b}
}

func (s *telebotSender) Send(chatID int64, p conversation.Prompt) error {
	recipient := telebot.ChatID(chatID)

	if len(p.Menu) > 0 {
		markup := &telebot.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
		var rows []telebot.Row
		for _, menuRow := range p.Menu {
			var row telebot.Row
			for _, label := range menuRow {
				row = append(row, markup.Text(label))
			}
			rows = append(rows, row)
		}
		markup.Reply(rows...)
		_, err := s.b.Send(recipient, p.Text, markup)
		return err
	}

	if len(p.Buttons) > 0 {
		markup := &telebot.ReplyMarkup{}
		var rows []telebot.Row
		for _, buttonRow := range p.Buttons {
			var row telebot.Row
			for _, button := range buttonRow {
				row = append(row, markup.Data(button.Label, button.Payload))
			}
			rows = append(rows, row)
		}
		markup.Inline(rows...)
		_, err := s.b.Send(recipient, p.Text, markup)
		return err
	}

	_, err := s.b.Send(recipient, p.Text)
	return err
}
