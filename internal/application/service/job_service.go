package service

import (
	"context"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobService handles job scheduling, the status lifecycle, checklist
// progress, part usage and notes.
type JobService struct {
	jobRepo        repository.JobRepository
	checklistRepo  repository.ChecklistRepository
	jobPartRepo    repository.JobPartRepository
	jobNoteRepo    repository.JobNoteRepository
	customerRepo   repository.CustomerRepository
	technicianRepo repository.TechnicianRepository
	numbering      *NumberingService
}

// NewJobService creates a new job service
func NewJobService(
	jobRepo repository.JobRepository,
	checklistRepo repository.ChecklistRepository,
	jobPartRepo repository.JobPartRepository,
	jobNoteRepo repository.JobNoteRepository,
	customerRepo repository.CustomerRepository,
	technicianRepo repository.TechnicianRepository,
	numbering *NumberingService,
) *JobService {
	return &JobService{
		jobRepo:        jobRepo,
		checklistRepo:  checklistRepo,
		jobPartRepo:    jobPartRepo,
		jobNoteRepo:    jobNoteRepo,
		customerRepo:   customerRepo,
		technicianRepo: technicianRepo,
		numbering:      numbering,
	}
}

// CreateJobInput represents the input for creating a job directly (not via
// quote conversion).
type CreateJobInput struct {
	CreatedByID    uuid.UUID
	CustomerID     *uuid.UUID
	TechnicianID   *uuid.UUID
	Title          string
	Description    *string
	EstimatedCost  decimal.Decimal
	ScheduledAt    *time.Time
	ChecklistItems []ChecklistItemInput
}

// ChecklistItemInput represents a checklist item input
type ChecklistItemInput struct {
	Text     string
	Required bool
}

// UpdateJobInput represents the mutable job fields
type UpdateJobInput struct {
	Title         *string
	Description   *string
	TechnicianID  *uuid.UUID
	EstimatedCost *decimal.Decimal
	ScheduledAt   *time.Time
}

// CreateJob creates a job directly, allocating its number from the shared
// sequence.
func (s *JobService) CreateJob(ctx context.Context, input *CreateJobInput) (*entity.Job, error) {
	if input.Title == "" {
		return nil, apperror.NewBadRequestError("Title is required")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}
	if input.TechnicianID != nil {
		if err := s.checkTechnician(ctx, *input.TechnicianID); err != nil {
			return nil, err
		}
	}

	number, err := s.numbering.NextNumber(ctx, enum.DocumentTypeJob)
	if err != nil {
		return nil, err
	}

	job := &entity.Job{
		JobNumber:     number,
		CustomerID:    input.CustomerID,
		TechnicianID:  input.TechnicianID,
		CreatedByID:   input.CreatedByID,
		Title:         input.Title,
		Description:   input.Description,
		Status:        enum.JobStatusScheduled,
		EstimatedCost: input.EstimatedCost,
		ScheduledAt:   input.ScheduledAt,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	checklist := &entity.JobChecklist{JobID: job.ID}
	for i, in := range input.ChecklistItems {
		checklist.Items = append(checklist.Items, entity.ChecklistItem{
			Text:      in.Text,
			Required:  in.Required,
			SortOrder: i,
		})
	}
	if err := s.checklistRepo.CreateWithItems(ctx, checklist); err != nil {
		return nil, err
	}
	job.Checklist = checklist

	return job, nil
}

// GetJob retrieves a job with checklist, parts and notes
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := s.jobRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}
	return job, nil
}

// ListJobs retrieves jobs with pagination and filtering
func (s *JobService) ListJobs(ctx context.Context, params *repository.JobFilterParams) ([]entity.Job, int64, error) {
	return s.jobRepo.List(ctx, params)
}

// UpdateJob updates scheduling and assignment fields. Terminal jobs are
// read-only.
func (s *JobService) UpdateJob(ctx context.Context, id uuid.UUID, input *UpdateJobInput) (*entity.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}
	if job.Status == enum.JobStatusCompleted || job.Status == enum.JobStatusCancelled {
		return nil, apperror.NewInvalidTransitionError("Completed or cancelled jobs cannot be edited")
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Description != nil {
		job.Description = input.Description
	}
	if input.TechnicianID != nil {
		if err := s.checkTechnician(ctx, *input.TechnicianID); err != nil {
			return nil, err
		}
		job.TechnicianID = input.TechnicianID
	}
	if input.EstimatedCost != nil {
		job.EstimatedCost = *input.EstimatedCost
	}
	if input.ScheduledAt != nil {
		job.ScheduledAt = input.ScheduledAt
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// StartJob moves a scheduled job to in progress
func (s *JobService) StartJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := s.loadForTransition(ctx, id, enum.JobStatusInProgress)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job.Status = enum.JobStatusInProgress
	job.StartedAt = &now

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// CompleteJob completes an in-progress job. All required checklist items
// must be completed first.
func (s *JobService) CompleteJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := s.loadForTransition(ctx, id, enum.JobStatusCompleted)
	if err != nil {
		return nil, err
	}

	checklist, err := s.checklistRepo.GetByJobID(ctx, id)
	if err != nil {
		return nil, err
	}
	if checklist != nil && checklist.RequiredRemaining() > 0 {
		return nil, apperror.NewInvalidTransitionError("All required checklist items must be completed first")
	}

	now := time.Now().UTC()
	job.Status = enum.JobStatusCompleted
	job.CompletedAt = &now

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// CancelJob cancels a scheduled or in-progress job
func (s *JobService) CancelJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := s.loadForTransition(ctx, id, enum.JobStatusCancelled)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job.Status = enum.JobStatusCancelled
	job.CancelledAt = &now

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ToggleChecklistItem sets a checklist item's completion state
func (s *JobService) ToggleChecklistItem(ctx context.Context, itemID uuid.UUID, completed bool) (*entity.ChecklistItem, error) {
	item, err := s.checklistRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Checklist item")
	}

	item.Completed = completed
	if completed {
		now := time.Now().UTC()
		item.CompletedAt = &now
	} else {
		item.CompletedAt = nil
	}

	if err := s.checklistRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// AddPartInput represents a part usage record
type AddPartInput struct {
	Name         string
	PartNumber   *string
	UnitCost     decimal.Decimal
	QuantityUsed decimal.Decimal
}

// AddPart records a part consumed on a job
func (s *JobService) AddPart(ctx context.Context, jobID uuid.UUID, input *AddPartInput) (*entity.JobPart, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Part name is required")
	}

	part := &entity.JobPart{
		JobID:        jobID,
		Name:         input.Name,
		PartNumber:   input.PartNumber,
		UnitCost:     input.UnitCost,
		QuantityUsed: input.QuantityUsed,
	}
	if err := s.jobPartRepo.Create(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// RemovePart deletes a part usage record
func (s *JobService) RemovePart(ctx context.Context, partID uuid.UUID) error {
	return s.jobPartRepo.Delete(ctx, partID)
}

// AddNote attaches a note to a job
func (s *JobService) AddNote(ctx context.Context, jobID, authorID uuid.UUID, body string) (*entity.JobNote, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}
	if body == "" {
		return nil, apperror.NewBadRequestError("Note body is required")
	}

	note := &entity.JobNote{
		JobID:    jobID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.jobNoteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *JobService) loadForTransition(ctx context.Context, id uuid.UUID, next enum.JobStatus) (*entity.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}
	if !job.Status.CanTransitionTo(next) {
		return nil, apperror.NewInvalidTransitionError(
			"Job cannot move from " + job.Status.String() + " to " + next.String())
	}
	return job, nil
}

func (s *JobService) checkTechnician(ctx context.Context, id uuid.UUID) error {
	technician, err := s.technicianRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if technician == nil {
		return apperror.NewNotFoundError("Technician")
	}
	if !technician.Active {
		return apperror.NewBadRequestError("Technician is not active")
	}
	return nil
}
