package ledger

// StatusColumn is the 1-based position of the status column in the orders
// table. The update-cell and styling calls both target it.
const StatusColumn = 7

// Record is one data row read from a table: its 1-based sheet row (header
// included, so the first record is row 2) and the cell values in column order.
type Record struct {
	Row    int
	Values []string
}

// Tables names the three logical tables the bot writes to.
type Tables struct {
	Expenses string
	Incomes  string
	Orders   string
}

// Ledger is the tabular backend the conversation writes to. Append returns
// the 1-based row the record landed in so new orders can be styled right
// away.
type Ledger interface {
	Append(table string, row []interface{}) (int, error)
	ReadAll(table string) ([]Record, error)
	UpdateCell(table string, row, column int, value string) error
	SetStatusStyle(table string, row int, status string) error
}
