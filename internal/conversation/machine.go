package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"expense-ledger-bot/internal/ledger"
	"expense-ledger-bot/internal/model"
	"expense-ledger-bot/internal/session"
)

// Main menu options, matched literally against the reply keyboard text.
const (
	optionExpenses = "Расходы"
	optionIncome   = "Доходы"
	optionOrders   = "Заказы"
	optionPayment  = "Оплата"
)

// Machine runs the dialog: one inbound event advances one chat's session by
// exactly one transition and emits exactly one prompt.
type Machine struct {
	sessions *session.Store
	ledger   ledger.Ledger
	sender   Sender
	log      *logrus.Logger
	tables   ledger.Tables
	window   time.Duration
	now      func() time.Time
}

func New(sessions *session.Store, lg ledger.Ledger, sender Sender, log *logrus.Logger, tables ledger.Tables, recentWindow time.Duration) *Machine {
	if recentWindow <= 0 {
		recentWindow = 7 * 24 * time.Hour
	}
	return &Machine{
		sessions: sessions,
		ledger:   lg,
		sender:   sender,
		log:      log,
		tables:   tables,
		window:   recentWindow,
		now:      time.Now,
	}
}

// Start resets the chat's session and shows the main menu.
func (m *Machine) Start(chatID int64) error {
	m.sessions.Begin(chatID)
	return m.sender.Send(chatID, Prompt{
		Text: "Выберите категорию:",
		Menu: [][]string{{optionExpenses, optionIncome, optionOrders}, {optionPayment}},
	})
}

// Cancel drops the chat's session without persisting the draft.
func (m *Machine) Cancel(chatID int64) error {
	m.sessions.Clear(chatID)
	return m.send(chatID, "❌ Действие отменено.")
}

// HandleText advances the session with a free-text answer.
func (m *Machine) HandleText(chatID int64, text string) error {
	sess, ok := m.sessions.Get(chatID)
	if !ok {
		return m.send(chatID, "Напиши /start, чтобы начать ввод.")
	}

	switch sess.State {
	case model.StateMenu:
		return m.handleMenu(chatID, sess, text)

	case model.StateCategory:
		sess.Expense.Category = text
		sess.State = model.StateDescription
		return m.send(chatID, "На что потрачено?")
	case model.StateDescription:
		sess.Expense.Description = text
		sess.State = model.StateAmount
		return m.send(chatID, "Введите сумму:")
	case model.StateAmount:
		sess.Expense.Amount = text
		sess.State = model.StateWho
		return m.send(chatID, "Кто потратил?")
	case model.StateWho:
		return m.finishExpense(chatID, sess, text)

	case model.StateIncomeType:
		sess.Income.Type = text
		sess.State = model.StateIncomeWho
		return m.send(chatID, "Кто оплатил?")
	case model.StateIncomeWho:
		sess.Income.Payer = text
		sess.State = model.StateIncomeAmount
		return m.send(chatID, "Введите сумму дохода:")
	case model.StateIncomeAmount:
		return m.finishIncome(chatID, sess, text)

	case model.StateOrderCustomer:
		sess.Order.Customer = text
		sess.State = model.StateOrderItem
		return m.send(chatID, "Введите название товара:")
	case model.StateOrderItem:
		sess.Order.Item = text
		sess.State = model.StateOrderQuantity
		return m.send(chatID, "Введите количество (в кг):")
	case model.StateOrderQuantity:
		sess.Order.Quantity = text
		sess.State = model.StateOrderPrice
		return m.send(chatID, "Введите цену:")
	case model.StateOrderPrice:
		return m.handleOrderPrice(chatID, sess, text)
	case model.StateOrderDate:
		return m.finishOrder(chatID, sess, text)

	case model.StatePaymentAction, model.StateChangeStatus:
		// These states only react to buttons.
		m.log.WithField("chatId", chatID).Debug("ignoring text while waiting for a button")
		return nil
	}

	m.log.WithFields(logrus.Fields{"chatId": chatID, "state": sess.State}).Warn("text in unknown state")
	return nil
}

func (m *Machine) handleMenu(chatID int64, sess *model.Session, text string) error {
	switch text {
	case optionExpenses:
		sess.State = model.StateCategory
		return m.send(chatID, "Введите категорию расхода:")
	case optionIncome:
		sess.State = model.StateIncomeType
		return m.send(chatID, "Введите тип дохода:")
	case optionOrders:
		sess.State = model.StateOrderCustomer
		return m.send(chatID, "Кто заказал:")
	case optionPayment:
		return m.showRecentOrders(chatID, sess)
	}
	return m.send(chatID, "Пожалуйста, выберите кнопку.")
}

func (m *Machine) finishExpense(chatID int64, sess *model.Session, who string) error {
	sess.Expense.Who = who
	record := model.Expense{
		Category:    sess.Expense.Category,
		Description: sess.Expense.Description,
		Amount:      sess.Expense.Amount,
		Who:         sess.Expense.Who,
		RecordedAt:  m.now().Format(model.TimeLayout),
	}

	m.sessions.Clear(chatID)
	if _, err := m.ledger.Append(m.tables.Expenses, record.Row()); err != nil {
		m.log.WithField("chatId", chatID).WithError(err).Error("error saving expense")
		return m.send(chatID, "❌ Не удалось сохранить запись.")
	}
	return m.send(chatID, "✅ Расход записан! Напиши /start для нового ввода.")
}

func (m *Machine) finishIncome(chatID int64, sess *model.Session, amount string) error {
	record := model.Income{
		RecordedAt: m.now().Format(model.TimeLayout),
		Type:       sess.Income.Type,
		Payer:      sess.Income.Payer,
		Amount:     amount,
	}

	m.sessions.Clear(chatID)
	if _, err := m.ledger.Append(m.tables.Incomes, record.Row()); err != nil {
		m.log.WithField("chatId", chatID).WithError(err).Error("error saving income")
		return m.send(chatID, "❌ Не удалось сохранить запись.")
	}
	return m.send(chatID, "✅ Доход записан! Напиши /start для нового ввода.")
}

func (m *Machine) handleOrderPrice(chatID int64, sess *model.Session, text string) error {
	price, priceErr := parseDecimal(text)
	quantity, quantityErr := parseDecimal(sess.Order.Quantity)
	if priceErr != nil || quantityErr != nil {
		return m.send(chatID, "❌ Введите корректное число! Например: 150 или 99.50")
	}

	sess.Order.UnitPrice = price
	sess.Order.Total = price.Mul(quantity).Round(2)
	sess.State = model.StateOrderDate
	return m.send(chatID, fmt.Sprintf(
		"Сумма: %s ₸ (рассчитано автоматически)\nВведите дату доставки (ДД.ММ.ГГГГ):",
		sess.Order.Total,
	))
}

func (m *Machine) finishOrder(chatID int64, sess *model.Session, deliveryDate string) error {
	sess.Order.DeliveryDate = deliveryDate
	record := model.Order{
		Item:         sess.Order.Item,
		Quantity:     sess.Order.Quantity,
		UnitPrice:    sess.Order.UnitPrice.String(),
		Total:        sess.Order.Total.String(),
		DeliveryDate: sess.Order.DeliveryDate,
		CreatedAt:    m.now().Format(model.TimeLayout),
		Status:       model.StatusPlanned,
		Customer:     sess.Order.Customer,
	}

	m.sessions.Clear(chatID)
	row, err := m.ledger.Append(m.tables.Orders, record.Row())
	if err == nil {
		err = m.ledger.SetStatusStyle(m.tables.Orders, row, model.StatusPlanned)
	}
	if err != nil {
		m.log.WithField("chatId", chatID).WithError(err).Error("error saving order")
		return m.send(chatID, "❌ Не удалось сохранить заказ.")
	}
	return m.send(chatID, "✅ Заказ записан (статус: План)! Напиши /start для нового ввода.")
}

func (m *Machine) send(chatID int64, text string) error {
	return m.sender.Send(chatID, Prompt{Text: text})
}

// parseDecimal accepts both the comma and the dot as decimal separator.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}
