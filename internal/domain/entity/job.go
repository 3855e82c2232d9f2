package entity

import (
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Job represents scheduled field work, created directly or by converting an
// approved quote (in which case QuoteID is set).
type Job struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	JobNumber    string         `gorm:"size:50;uniqueIndex;not null" json:"job_number"`
	QuoteID      *uuid.UUID     `gorm:"type:uuid;index" json:"quote_id,omitempty"`
	CustomerID   *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	TechnicianID *uuid.UUID     `gorm:"type:uuid;index" json:"technician_id,omitempty"`
	CreatedByID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by_id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	Status       enum.JobStatus `gorm:"default:0" json:"status"`

	EstimatedCost decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"estimated_cost"`

	ScheduledAt *time.Time `gorm:"index" json:"scheduled_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Quote      *Quote        `gorm:"foreignKey:QuoteID" json:"-"`
	Customer   *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Technician *Technician   `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	CreatedBy  User          `gorm:"foreignKey:CreatedByID" json:"-"`
	Checklist  *JobChecklist `gorm:"foreignKey:JobID" json:"checklist,omitempty"`
	Parts      []JobPart     `gorm:"foreignKey:JobID" json:"parts,omitempty"`
	Notes      []JobNote     `gorm:"foreignKey:JobID" json:"notes,omitempty"`
}

// BeforeCreate generates a UUID before creating a new job
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// JobChecklist is the single checklist attached to a job. Required items are
// derived from service-type quote items on conversion and gate job completion.
type JobChecklist struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	JobID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"job_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Job   Job             `gorm:"foreignKey:JobID" json:"-"`
	Items []ChecklistItem `gorm:"foreignKey:ChecklistID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new checklist
func (c *JobChecklist) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the JobChecklist model
func (JobChecklist) TableName() string {
	return "job_checklists"
}

// TotalCount returns the number of checklist items.
func (c *JobChecklist) TotalCount() int {
	return len(c.Items)
}

// CompletedCount returns the number of completed checklist items.
func (c *JobChecklist) CompletedCount() int {
	n := 0
	for _, item := range c.Items {
		if item.Completed {
			n++
		}
	}
	return n
}

// RequiredRemaining returns the number of required items not yet completed.
func (c *JobChecklist) RequiredRemaining() int {
	n := 0
	for _, item := range c.Items {
		if item.Required && !item.Completed {
			n++
		}
	}
	return n
}

// ChecklistItem is a single task on a job checklist
type ChecklistItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ChecklistID uuid.UUID  `gorm:"type:uuid;not null;index" json:"checklist_id"`
	Text        string     `gorm:"size:500;not null" json:"text"`
	Required    bool       `gorm:"default:false" json:"required"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	SortOrder   int        `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Checklist JobChecklist `gorm:"foreignKey:ChecklistID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new checklist item
func (i *ChecklistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ChecklistItem model
func (ChecklistItem) TableName() string {
	return "checklist_items"
}

// JobPart records a part consumed while working a job
type JobPart struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	JobID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"job_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	PartNumber   *string         `gorm:"size:100" json:"part_number,omitempty"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_cost"`
	QuantityUsed decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity_used"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relationships
	Job Job `gorm:"foreignKey:JobID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new job part
func (p *JobPart) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the JobPart model
func (JobPart) TableName() string {
	return "job_parts"
}

// TotalCost returns unit_cost x quantity_used.
func (p *JobPart) TotalCost() decimal.Decimal {
	return p.UnitCost.Mul(p.QuantityUsed)
}

// JobNote is a free-text note a technician records against a job, often
// replayed from the offline queue.
type JobNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Job    Job  `gorm:"foreignKey:JobID" json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new job note
func (n *JobNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the JobNote model
func (JobNote) TableName() string {
	return "job_notes"
}
