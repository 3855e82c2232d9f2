package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChecklistItemRequest represents a checklist item on job creation
type ChecklistItemRequest struct {
	Text     string `json:"text" binding:"required,max=500"`
	Required bool   `json:"required"`
}

// CreateJobRequest represents a direct job creation request
type CreateJobRequest struct {
	CustomerID     *string                `json:"customer_id" binding:"omitempty,uuid"`
	TechnicianID   *string                `json:"technician_id" binding:"omitempty,uuid"`
	Title          string                 `json:"title" binding:"required,max=255"`
	Description    *string                `json:"description"`
	EstimatedCost  decimal.Decimal        `json:"estimated_cost"`
	ScheduledAt    *time.Time             `json:"scheduled_at"`
	ChecklistItems []ChecklistItemRequest `json:"checklist_items" binding:"dive"`
}

// UpdateJobRequest represents a job update request
type UpdateJobRequest struct {
	Title         *string          `json:"title" binding:"omitempty,max=255"`
	Description   *string          `json:"description"`
	TechnicianID  *string          `json:"technician_id" binding:"omitempty,uuid"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
	ScheduledAt   *time.Time       `json:"scheduled_at"`
}

// ToggleChecklistItemRequest sets a checklist item's completion state
type ToggleChecklistItemRequest struct {
	Completed bool `json:"completed"`
}

// AddPartRequest records part usage on a job
type AddPartRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	PartNumber   *string         `json:"part_number" binding:"omitempty,max=100"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	QuantityUsed decimal.Decimal `json:"quantity_used" binding:"required"`
}

// AddNoteRequest attaches a note to a job
type AddNoteRequest struct {
	Body string `json:"body" binding:"required"`
}
