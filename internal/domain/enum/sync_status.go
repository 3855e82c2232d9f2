package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SyncStatus represents the replay state of a queued offline action
type SyncStatus int

const (
	SyncStatusPending SyncStatus = 0
	SyncStatusApplied SyncStatus = 1
	SyncStatusFailed  SyncStatus = 2
)

func (s SyncStatus) String() string {
	return [...]string{"Pending", "Applied", "Failed"}[s]
}

func (s SyncStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SyncStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SyncStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = SyncStatusPending
	case "Applied":
		*s = SyncStatusApplied
	case "Failed":
		*s = SyncStatusFailed
	}
	return nil
}

func (s SyncStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SyncStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SyncStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SyncStatus(v)
	case int:
		*s = SyncStatus(v)
	}
	return nil
}
