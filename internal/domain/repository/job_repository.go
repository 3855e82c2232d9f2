package repository

import (
	"context"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/pkg/pagination"
	"github.com/google/uuid"
)

// JobRepository defines the interface for job data operations
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	// GetWithDetails loads the job with checklist items, parts and notes
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *JobFilterParams) ([]entity.Job, int64, error)
	// ConvertFromQuote atomically inserts the job and its checklist and marks
	// the quote converted. Either all three writes land or none do.
	ConvertFromQuote(ctx context.Context, job *entity.Job, checklist *entity.JobChecklist, quote *entity.Quote) error
	LatestNumberWithPrefix(ctx context.Context, prefix string) (number string, found bool, err error)
}

// JobFilterParams contains filtering parameters for job queries
type JobFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	Status       *enum.JobStatus
	CustomerID   *uuid.UUID
	TechnicianID *uuid.UUID
	SortBy       string
	SortOrder    string
}

// ChecklistRepository defines the interface for job checklist operations
type ChecklistRepository interface {
	CreateWithItems(ctx context.Context, checklist *entity.JobChecklist) error
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*entity.JobChecklist, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*entity.ChecklistItem, error)
	UpdateItem(ctx context.Context, item *entity.ChecklistItem) error
}

// JobPartRepository defines the interface for job part usage operations
type JobPartRepository interface {
	Create(ctx context.Context, part *entity.JobPart) error
	GetByJobID(ctx context.Context, jobID uuid.UUID) ([]entity.JobPart, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JobNoteRepository defines the interface for job note operations
type JobNoteRepository interface {
	Create(ctx context.Context, note *entity.JobNote) error
	GetByJobID(ctx context.Context, jobID uuid.UUID) ([]entity.JobNote, error)
}
