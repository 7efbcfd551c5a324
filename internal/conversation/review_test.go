package conversation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-ledger-bot/internal/ledger"
	"expense-ledger-bot/internal/model"
)

func orderRecord(row int, item string, createdAt string) ledger.Record {
	return ledger.Record{
		Row:    row,
		Values: []string{item, "2", "150", "300", "01.06.2024", createdAt, model.StatusPlanned, "Иван"},
	}
}

func daysAgo(n int) string {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour).Format(model.TimeLayout)
}

func TestRecentOrdersFilter(t *testing.T) {
	lg := &fakeLedger{records: []ledger.Record{
		orderRecord(2, "Яблоки", daysAgo(3)),
		orderRecord(3, "Груши", daysAgo(10)),
		orderRecord(4, "Сливы", "не дата"),
	}}
	sender := &fakeSender{}
	m, sessions := newTestMachine(lg, sender)

	drive(t, m, "Оплата")

	sess, ok := sessions.Get(testChat)
	require.True(t, ok)
	assert.Equal(t, model.StatePaymentAction, sess.State)
	require.Len(t, sess.RecentOrders, 1)
	assert.Equal(t, 2, sess.RecentOrders[0].Row)

	listing := sender.last()
	assert.Contains(t, listing.Text, "1. Яблоки")
	assert.NotContains(t, listing.Text, "Груши")
	assert.NotContains(t, listing.Text, "Сливы")

	require.Len(t, listing.Buttons, 2)
	assert.Equal(t, "Изменить статус 1", listing.Buttons[0][0].Label)
	assert.Equal(t, "change_2", listing.Buttons[0][0].Payload)
	assert.Equal(t, "cancel_payment", listing.Buttons[1][0].Payload)
}

func TestRecentOrdersEmpty(t *testing.T) {
	lg := &fakeLedger{records: []ledger.Record{orderRecord(2, "Груши", daysAgo(10))}}
	sender := &fakeSender{}
	m, sessions := newTestMachine(lg, sender)

	drive(t, m, "Оплата")

	sess, ok := sessions.Get(testChat)
	require.True(t, ok)
	assert.Equal(t, model.StateMenu, sess.State)
	assert.Equal(t, "Нет заказов за последнюю неделю.", sender.last().Text)
}

func TestSelectOrderShowsStatusKeyboard(t *testing.T) {
	lg := &fakeLedger{records: []ledger.Record{orderRecord(5, "Яблоки", daysAgo(1))}}
	sender := &fakeSender{}
	m, sessions := newTestMachine(lg, sender)

	drive(t, m, "Оплата")
	require.NoError(t, m.HandleEvent(testChat, SelectOrder{Row: 5}))

	sess, ok := sessions.Get(testChat)
	require.True(t, ok)
	assert.Equal(t, model.StateChangeStatus, sess.State)
	assert.Equal(t, 5, sess.EditingRow)

	keyboard := sender.last()
	assert.Equal(t, "Выберите новый статус:", keyboard.Text)
	require.Len(t, keyboard.Buttons, 2)
	assert.Equal(t, "status_Planned", keyboard.Buttons[0][0].Payload)
	assert.Equal(t, "status_Actual", keyboard.Buttons[0][1].Payload)
	assert.Equal(t, "cancel_status_change", keyboard.Buttons[1][0].Payload)
}

func TestStatusChangeUpdatesAndLoopsBack(t *testing.T) {
	lg := &fakeLedger{records: []ledger.Record{orderRecord(5, "Яблоки", daysAgo(1))}}
	sender := &fakeSender{}
	m, sessions := newTestMachine(lg, sender)

	drive(t, m, "Оплата")
	require.NoError(t, m.HandleEvent(testChat, SelectOrder{Row: 5}))
	require.NoError(t, m.HandleEvent(testChat, SetStatus{Status: model.StatusActual}))

	require.Len(t, lg.updates, 1)
	assert.Equal(t, cellUpdate{table: "Orders", row: 5, column: 7, value: "Actual"}, lg.updates[0])
	require.Len(t, lg.styles, 1)
	assert.Equal(t, styleCall{table: "Orders", row: 5, status: "Actual"}, lg.styles[0])

	// Confirmation first, then the listing is rendered again.
	confirmation := sender.sent[len(sender.sent)-2].prompt
	assert.Contains(t, confirmation.Text, "Статус изменен")
	assert.Contains(t, sender.last().Text, "Последние заказы")

	sess, ok := sessions.Get(testChat)
	require.True(t, ok)
	assert.Equal(t, model.StatePaymentAction, sess.State)
}

func TestStatusChangeCancelReturnsToListing(t *testing.T) {
	lg := &fakeLedger{records: []ledger.Record{orderRecord(5, "Яблоки", daysAgo(1))}}
	sender := &fakeSender{}
	m, sessions := newTestMachine(lg, sender)

	drive(t, m, "Оплата")
	require.NoError(t, m.HandleEvent(testChat, SelectOrder{Row: 5}))
	require.NoError(t, m.HandleEvent(testChat, CancelStatusChange{}))

	assert.Empty(t, lg.updates)
	assert.Contains(t, sender.last().Text, "Последние заказы")

	sess, ok := sessions.Get(testChat)
	require.True(t, ok)
	assert.Equal(t, model.StatePaymentAction, sess.State)
}

func TestReviewCancelEndsConversation(t *testing.T) {
	lg := &fakeLedger{records: []ledger.Record{orderRecord(5, "Яблоки", daysAgo(1))}}
	sender := &fakeSender{}
	m, sessions := newTestMachine(lg, sender)

	drive(t, m, "Оплата")
	require.NoError(t, m.HandleEvent(testChat, CancelReview{}))

	_, ok := sessions.Get(testChat)
	assert.False(t, ok)
	assert.Contains(t, sender.last().Text, "Действие отменено")
}

func TestStatusChangeUpdateFailure(t *testing.T) {
	lg := &fakeLedger{
		records:   []ledger.Record{orderRecord(5, "Яблоки", daysAgo(1))},
		updateErr: errors.New("api unavailable"),
	}
	sender := &fakeSender{}
	m, sessions := newTestMachine(lg, sender)

	drive(t, m, "Оплата")
	require.NoError(t, m.HandleEvent(testChat, SelectOrder{Row: 5}))
	require.NoError(t, m.HandleEvent(testChat, SetStatus{Status: model.StatusActual}))

	assert.Empty(t, lg.styles, "no styling after a failed update")
	_, ok := sessions.Get(testChat)
	assert.False(t, ok, "conversation ends on backend failure")
	assert.Contains(t, sender.last().Text, "Не удалось изменить статус")
}

func TestIgnoresTextWhileWaitingForButton(t *testing.T) {
	lg := &fakeLedger{records: []ledger.Record{orderRecord(5, "Яблоки", daysAgo(1))}}
	sender := &fakeSender{}
	m, sessions := newTestMachine(lg, sender)

	drive(t, m, "Оплата")
	sentBefore := len(sender.sent)
	require.NoError(t, m.HandleText(testChat, "текст вместо кнопки"))

	assert.Len(t, sender.sent, sentBefore)
	sess, ok := sessions.Get(testChat)
	require.True(t, ok)
	assert.Equal(t, model.StatePaymentAction, sess.State)
}
