package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// JobStatus represents the lifecycle state of a job
type JobStatus int

const (
	JobStatusScheduled  JobStatus = 0
	JobStatusInProgress JobStatus = 1
	JobStatusCompleted  JobStatus = 2
	JobStatusCancelled  JobStatus = 3
)

func (s JobStatus) String() string {
	return [...]string{"Scheduled", "InProgress", "Completed", "Cancelled"}[s]
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// Completed and Cancelled are terminal.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusScheduled:
		return next == JobStatusInProgress || next == JobStatusCancelled
	case JobStatusInProgress:
		return next == JobStatusCompleted || next == JobStatusCancelled
	default:
		return false
	}
}

func (s JobStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = JobStatus(i)
		return nil
	}
	switch str {
	case "Scheduled":
		*s = JobStatusScheduled
	case "InProgress":
		*s = JobStatusInProgress
	case "Completed":
		*s = JobStatusCompleted
	case "Cancelled":
		*s = JobStatusCancelled
	}
	return nil
}

func (s JobStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *JobStatus) Scan(value interface{}) error {
	if value == nil {
		*s = JobStatusScheduled
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = JobStatus(v)
	case int:
		*s = JobStatus(v)
	}
	return nil
}
