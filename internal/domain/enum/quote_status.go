package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus int

const (
	QuoteStatusDraft     QuoteStatus = 0
	QuoteStatusSent      QuoteStatus = 1
	QuoteStatusViewed    QuoteStatus = 2
	QuoteStatusApproved  QuoteStatus = 3
	QuoteStatusDeclined  QuoteStatus = 4
	QuoteStatusExpired   QuoteStatus = 5
	QuoteStatusConverted QuoteStatus = 6
)

func (s QuoteStatus) String() string {
	return [...]string{"Draft", "Sent", "Viewed", "Approved", "Declined", "Expired", "Converted"}[s]
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// Transitions are one-directional; Converted, Declined and Expired are terminal.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	switch s {
	case QuoteStatusDraft:
		return next == QuoteStatusSent
	case QuoteStatusSent:
		return next == QuoteStatusViewed || next == QuoteStatusApproved ||
			next == QuoteStatusDeclined || next == QuoteStatusExpired
	case QuoteStatusViewed:
		return next == QuoteStatusApproved || next == QuoteStatusDeclined ||
			next == QuoteStatusExpired
	case QuoteStatusApproved:
		return next == QuoteStatusConverted
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusDeclined || s == QuoteStatusExpired || s == QuoteStatusConverted
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = QuoteStatusDraft
	case "Sent":
		*s = QuoteStatusSent
	case "Viewed":
		*s = QuoteStatusViewed
	case "Approved":
		*s = QuoteStatusApproved
	case "Declined":
		*s = QuoteStatusDeclined
	case "Expired":
		*s = QuoteStatusExpired
	case "Converted":
		*s = QuoteStatusConverted
	}
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
