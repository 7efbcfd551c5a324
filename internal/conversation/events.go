package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"expense-ledger-bot/internal/model"
)

// Event is a decoded button click. The transport layer turns the opaque
// callback payload into one of these before it reaches the machine.
type Event interface {
	isEvent()
}

// SelectOrder picks a listed order for a status edit by its sheet row.
type SelectOrder struct {
	Row int
}

// SetStatus chooses the new status for the order being edited.
type SetStatus struct {
	Status string
}

// CancelReview leaves the order listing and ends the conversation.
type CancelReview struct{}

// CancelStatusChange backs out of the status keyboard to the listing.
type CancelStatusChange struct{}

func (SelectOrder) isEvent()        {}
func (SetStatus) isEvent()          {}
func (CancelReview) isEvent()       {}
func (CancelStatusChange) isEvent() {}

const (
	payloadCancelReview       = "cancel_payment"
	payloadCancelStatusChange = "cancel_status_change"
	payloadSelectOrderPrefix  = "change_"
	payloadSetStatusPrefix    = "status_"
)

func payloadSelectOrder(row int) string {
	return payloadSelectOrderPrefix + strconv.Itoa(row)
}

func payloadSetStatus(status string) string {
	return payloadSetStatusPrefix + status
}

// DecodePayload parses a callback payload into its event. Only the closed
// set of payloads this package itself renders is accepted.
func DecodePayload(data string) (Event, error) {
	switch {
	case data == payloadCancelReview:
		return CancelReview{}, nil
	case data == payloadCancelStatusChange:
		return CancelStatusChange{}, nil
	case strings.HasPrefix(data, payloadSelectOrderPrefix):
		row, err := strconv.Atoi(strings.TrimPrefix(data, payloadSelectOrderPrefix))
		if err != nil {
			return nil, errors.Wrapf(err, "bad row in payload %q", data)
		}
		return SelectOrder{Row: row}, nil
	case strings.HasPrefix(data, payloadSetStatusPrefix):
		status := strings.TrimPrefix(data, payloadSetStatusPrefix)
		if status != model.StatusPlanned && status != model.StatusActual {
			return nil, fmt.Errorf("unknown status in payload %q", data)
		}
		return SetStatus{Status: status}, nil
	}
	return nil, fmt.Errorf("unknown payload %q", data)
}
