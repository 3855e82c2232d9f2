package request

import "time"

// EnqueueSyncActionRequest represents an offline action submission
type EnqueueSyncActionRequest struct {
	ActionType string     `json:"action_type" binding:"required,oneof=job_note checklist_item part_usage check_in check_out"`
	Payload    string     `json:"payload" binding:"required"`
	JobID      *string    `json:"job_id" binding:"omitempty,uuid"`
	Timestamp  *time.Time `json:"timestamp"`
}
