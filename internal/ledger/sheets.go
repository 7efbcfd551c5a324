package ledger

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"expense-ledger-bot/internal/model"
)

// SheetsLedger talks to one Google spreadsheet; each logical table is a tab.
type SheetsLedger struct {
	svc           *sheets.Service
	spreadsheetID string

	mu       sync.Mutex
	sheetIDs map[string]int64
}

// NewSheetsLedger builds a sheets client from a service-account key file.
func NewSheetsLedger(ctx context.Context, credentialsFile, spreadsheetID string) (*SheetsLedger, error) {
	key, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading credentials file")
	}

	conf, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, errors.Wrap(err, "parsing service account key")
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, errors.Wrap(err, "creating sheets service")
	}

	return &SheetsLedger{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetIDs:      make(map[string]int64),
	}, nil
}

func (l *SheetsLedger) Append(table string, row []interface{}) (int, error) {
	resp, err := l.svc.Spreadsheets.Values.
		Append(l.spreadsheetID, table, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return 0, errors.Wrapf(err, "appending to %s", table)
	}
	if resp.Updates == nil {
		return 0, errors.Errorf("append to %s returned no updated range", table)
	}

	rowIndex, err := rowFromRange(resp.Updates.UpdatedRange)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing updated range %q", resp.Updates.UpdatedRange)
	}
	return rowIndex, nil
}

func (l *SheetsLedger) ReadAll(table string) ([]Record, error) {
	resp, err := l.svc.Spreadsheets.Values.Get(l.spreadsheetID, table).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", table)
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}

	// Skip the header; data rows are 1-based starting at 2.
	records := make([]Record, 0, len(resp.Values)-1)
	for i, row := range resp.Values[1:] {
		values := make([]string, len(row))
		for j, cell := range row {
			values[j] = fmt.Sprint(cell)
		}
		records = append(records, Record{Row: i + 2, Values: values})
	}
	return records, nil
}

func (l *SheetsLedger) UpdateCell(table string, row, column int, value string) error {
	cellRef := fmt.Sprintf("%s!%s%d", table, columnName(column), row)
	_, err := l.svc.Spreadsheets.Values.
		Update(l.spreadsheetID, cellRef, &sheets.ValueRange{Values: [][]interface{}{{value}}}).
		ValueInputOption("USER_ENTERED").
		Do()
	return errors.Wrapf(err, "updating %s", cellRef)
}

// SetStatusStyle colors the status cell: bold on blue for Planned, bold on
// green for Actual, cleared for anything else.
func (l *SheetsLedger) SetStatusStyle(table string, row int, status string) error {
	sheetID, err := l.sheetID(table)
	if err != nil {
		return err
	}

	var format *sheets.CellFormat
	switch status {
	case model.StatusPlanned:
		format = statusFormat(&sheets.Color{Red: 0, Green: 0.5, Blue: 1.0})
	case model.StatusActual:
		format = statusFormat(&sheets.Color{Red: 0, Green: 1.0, Blue: 0.2})
	}

	req := &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    int64(row - 1),
				EndRowIndex:      int64(row),
				StartColumnIndex: StatusColumn - 1,
				EndColumnIndex:   StatusColumn,
			},
			Cell:   &sheets.CellData{UserEnteredFormat: format},
			Fields: "userEnteredFormat(backgroundColor,textFormat)",
		},
	}

	_, err = l.svc.Spreadsheets.
		BatchUpdate(l.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: []*sheets.Request{req}}).
		Do()
	return errors.Wrapf(err, "styling %s row %d", table, row)
}

func statusFormat(color *sheets.Color) *sheets.CellFormat {
	return &sheets.CellFormat{
		BackgroundColor: color,
		TextFormat:      &sheets.TextFormat{Bold: true},
	}
}

// sheetID resolves a tab title to its numeric sheet id, caching the lookup.
func (l *SheetsLedger) sheetID(table string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if id, ok := l.sheetIDs[table]; ok {
		return id, nil
	}

	meta, err := l.svc.Spreadsheets.Get(l.spreadsheetID).Fields("sheets.properties").Do()
	if err != nil {
		return 0, errors.Wrap(err, "fetching spreadsheet metadata")
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil {
			l.sheetIDs[sheet.Properties.Title] = sheet.Properties.SheetId
		}
	}

	id, ok := l.sheetIDs[table]
	if !ok {
		return 0, errors.Errorf("no sheet named %q", table)
	}
	return id, nil
}

// rowFromRange extracts the row number from an A1 range like "Orders!A5:H5".
func rowFromRange(ref string) (int, error) {
	if i := strings.IndexByte(ref, '!'); i >= 0 {
		ref = ref[i+1:]
	}
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		ref = ref[:i]
	}
	digits := strings.TrimLeft(ref, "$ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	return strconv.Atoi(digits)
}

// columnName converts a 1-based column index to its A1 letter form.
func columnName(n int) string {
	var name []byte
	for n > 0 {
		n--
		name = append([]byte{byte('A' + n%26)}, name...)
		n /= 26
	}
	return string(name)
}
