package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the timestamp format written to the sheet for the
// recorded-at and created-at columns.
const TimeLayout = "02.01.2006 15:04"

// Order statuses stored in the sheet. Keyboard labels are localized, the
// stored value is always one of these two literals.
const (
	StatusPlanned = "Planned"
	StatusActual  = "Actual"
)

// State is the current step of a chat's dialog.
type State int

const (
	StateMenu State = iota
	StateCategory
	StateDescription
	StateAmount
	StateWho
	StateIncomeType
	StateIncomeWho
	StateIncomeAmount
	StateOrderCustomer
	StateOrderItem
	StateOrderQuantity
	StateOrderPrice
	StateOrderDate
	StatePaymentAction
	StateChangeStatus
)

// ExpenseDraft accumulates the expense pipeline's answers.
type ExpenseDraft struct {
	Category    string
	Description string
	Amount      string
	Who         string
}

// IncomeDraft accumulates the income pipeline's answers.
type IncomeDraft struct {
	Type  string
	Payer string
}

// OrderDraft accumulates the order pipeline's answers. UnitPrice and Total
// are set together once the price input passes the numeric guard.
type OrderDraft struct {
	Customer     string
	Item         string
	Quantity     string
	UnitPrice    decimal.Decimal
	Total        decimal.Decimal
	DeliveryDate string
}

// Expense is one row of the expenses table.
type Expense struct {
	Category    string
	Description string
	Amount      string
	Who         string
	RecordedAt  string
}

func (e Expense) Row() []interface{} {
	return []interface{}{e.Category, e.Description, e.Amount, e.Who, e.RecordedAt}
}

// Income is one row of the incomes table.
type Income struct {
	RecordedAt string
	Type       string
	Payer      string
	Amount     string
}

func (i Income) Row() []interface{} {
	return []interface{}{i.RecordedAt, i.Type, i.Payer, i.Amount}
}

// Order is one row of the orders table.
type Order struct {
	Item         string
	Quantity     string
	UnitPrice    string
	Total        string
	DeliveryDate string
	CreatedAt    string
	Status       string
	Customer     string
}

func (o Order) Row() []interface{} {
	return []interface{}{o.Item, o.Quantity, o.UnitPrice, o.Total, o.DeliveryDate, o.CreatedAt, o.Status, o.Customer}
}

// OrderFromRow maps a sheet row back into an Order. Short rows are padded so
// callers never index past the end.
func OrderFromRow(values []string) Order {
	row := make([]string, 8)
	copy(row, values)
	return Order{
		Item:         row[0],
		Quantity:     row[1],
		UnitPrice:    row[2],
		Total:        row[3],
		DeliveryDate: row[4],
		CreatedAt:    row[5],
		Status:       row[6],
		Customer:     row[7],
	}
}

// OrderRef is one entry of the review workflow's listing: the sheet row the
// order lives in plus the order as read at that moment.
type OrderRef struct {
	Row   int
	Order Order
}

// Session is one chat's in-progress dialog: the current state plus the draft
// being filled in. Created on /start, dropped on a terminal transition or on
// cancel.
type Session struct {
	State   State
	Expense ExpenseDraft
	Income  IncomeDraft
	Order   OrderDraft

	// Review workflow scratch: the listing snapshot and the row being edited.
	RecentOrders []OrderRef
	EditingRow   int

	StartedAt time.Time
}
