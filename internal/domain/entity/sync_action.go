package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/google/uuid"
)

// Offline action types technicians can queue from the field.
const (
	SyncActionJobNote       = "job_note"
	SyncActionChecklistItem = "checklist_item"
	SyncActionPartUsage     = "part_usage"
	SyncActionCheckIn       = "check_in"
	SyncActionCheckOut      = "check_out"
)

// SyncAction is an outbox entry for a mutation a technician performed while
// offline. The primary key is a content hash, so re-submitting the identical
// action is a no-op and enqueue is idempotent under at-least-once delivery.
type SyncAction struct {
	ID            string          `gorm:"size:64;primary_key" json:"id"`
	ActionType    string          `gorm:"size:50;not null;index" json:"action_type"`
	Payload       string          `gorm:"type:text;not null" json:"payload"`
	JobID         *uuid.UUID      `gorm:"type:uuid;index" json:"job_id,omitempty"`
	SubmittedByID uuid.UUID       `gorm:"type:uuid;not null" json:"submitted_by_id"`
	Timestamp     time.Time       `gorm:"not null;index" json:"timestamp"`
	Status        enum.SyncStatus `gorm:"default:0;index" json:"status"`
	Attempts      int             `gorm:"default:0" json:"attempts"`
	NextAttemptAt *time.Time      `gorm:"index" json:"next_attempt_at,omitempty"`
	LastError     *string         `gorm:"type:text" json:"last_error,omitempty"`
	AppliedAt     *time.Time      `json:"applied_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName returns the table name for the SyncAction model
func (SyncAction) TableName() string {
	return "sync_actions"
}

// SyncActionID derives the deterministic content hash used as the action's
// primary key: SHA-256 over type, payload and job id.
func SyncActionID(actionType, payload string, jobID *uuid.UUID) string {
	h := sha256.New()
	h.Write([]byte(actionType))
	h.Write([]byte{0})
	h.Write([]byte(payload))
	h.Write([]byte{0})
	if jobID != nil {
		h.Write([]byte(jobID.String()))
	}
	return hex.EncodeToString(h.Sum(nil))
}
