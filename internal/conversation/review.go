package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"expense-ledger-bot/internal/ledger"
	"expense-ledger-bot/internal/model"
)

// HandleEvent advances the session with a decoded button click. Only the
// review workflow states react to buttons.
func (m *Machine) HandleEvent(chatID int64, ev Event) error {
	sess, ok := m.sessions.Get(chatID)
	if !ok {
		m.log.WithField("chatId", chatID).Warn("callback without an active session")
		return nil
	}

	switch sess.State {
	case model.StatePaymentAction:
		return m.handlePaymentAction(chatID, sess, ev)
	case model.StateChangeStatus:
		return m.handleChangeStatus(chatID, sess, ev)
	}

	m.log.WithFields(logrus.Fields{"chatId": chatID, "state": sess.State}).Warn("callback in unexpected state")
	return nil
}

// showRecentOrders lists orders created inside the trailing window, one
// "change status" button per order. With nothing to show the session falls
// back to the menu.
func (m *Machine) showRecentOrders(chatID int64, sess *model.Session) error {
	records, err := m.ledger.ReadAll(m.tables.Orders)
	if err != nil {
		m.log.WithField("chatId", chatID).WithError(err).Error("error reading orders")
		m.sessions.Clear(chatID)
		return m.send(chatID, "❌ Не удалось получить заказы.")
	}

	cutoff := m.now().Add(-m.window)
	var recent []model.OrderRef
	for _, rec := range records {
		order := model.OrderFromRow(rec.Values)
		createdAt, err := time.ParseInLocation(model.TimeLayout, order.CreatedAt, time.Local)
		if err != nil || createdAt.Before(cutoff) {
			continue
		}
		recent = append(recent, model.OrderRef{Row: rec.Row, Order: order})
	}

	if len(recent) == 0 {
		sess.State = model.StateMenu
		return m.send(chatID, "Нет заказов за последнюю неделю.")
	}

	sess.RecentOrders = recent
	sess.State = model.StatePaymentAction

	var text strings.Builder
	text.WriteString("Последние заказы (неделя):\n\n")
	buttons := make([][]Button, 0, len(recent)+1)
	for i, ref := range recent {
		fmt.Fprintf(&text, "%d. %s - %sкг - %s₸ - Статус: %s\n",
			i+1, ref.Order.Item, ref.Order.Quantity, ref.Order.UnitPrice, statusLabel(ref.Order.Status))
		buttons = append(buttons, []Button{{
			Label:   fmt.Sprintf("Изменить статус %d", i+1),
			Payload: payloadSelectOrder(ref.Row),
		}})
	}
	buttons = append(buttons, []Button{{Label: "❌ Отмена", Payload: payloadCancelReview}})

	return m.sender.Send(chatID, Prompt{Text: text.String(), Buttons: buttons})
}

func (m *Machine) handlePaymentAction(chatID int64, sess *model.Session, ev Event) error {
	switch ev := ev.(type) {
	case CancelReview:
		m.sessions.Clear(chatID)
		return m.send(chatID, "❌ Действие отменено. Напиши /start для нового ввода.")
	case SelectOrder:
		sess.EditingRow = ev.Row
		sess.State = model.StateChangeStatus
		return m.sender.Send(chatID, Prompt{Text: "Выберите новый статус:", Buttons: statusKeyboard()})
	}

	m.log.WithFields(logrus.Fields{"chatId": chatID, "event": fmt.Sprintf("%T", ev)}).Warn("unexpected event in payment action")
	return nil
}

func (m *Machine) handleChangeStatus(chatID int64, sess *model.Session, ev Event) error {
	switch ev := ev.(type) {
	case CancelStatusChange:
		if err := m.send(chatID, "❌ Изменение статуса отменено."); err != nil {
			return err
		}
		return m.showRecentOrders(chatID, sess)
	case SetStatus:
		err := m.ledger.UpdateCell(m.tables.Orders, sess.EditingRow, ledger.StatusColumn, ev.Status)
		if err == nil {
			err = m.ledger.SetStatusStyle(m.tables.Orders, sess.EditingRow, ev.Status)
		}
		if err != nil {
			m.log.WithField("chatId", chatID).WithError(err).Error("error changing order status")
			m.sessions.Clear(chatID)
			return m.send(chatID, "❌ Не удалось изменить статус.")
		}

		if err := m.send(chatID, fmt.Sprintf("✅ Статус изменен на '%s'!", statusLabel(ev.Status))); err != nil {
			return err
		}
		return m.showRecentOrders(chatID, sess)
	}

	m.log.WithFields(logrus.Fields{"chatId": chatID, "event": fmt.Sprintf("%T", ev)}).Warn("unexpected event in status change")
	return nil
}

func statusKeyboard() [][]Button {
	return [][]Button{
		{
			{Label: "🟦 План", Payload: payloadSetStatus(model.StatusPlanned)},
			{Label: "🟩 Факт", Payload: payloadSetStatus(model.StatusActual)},
		},
		{{Label: "❌ Отмена", Payload: payloadCancelStatusChange}},
	}
}

func statusLabel(status string) string {
	switch status {
	case model.StatusPlanned:
		return "План"
	case model.StatusActual:
		return "Факт"
	}
	return status
}
