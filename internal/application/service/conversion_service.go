package service

import (
	"context"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/pkg/apperror"
	"github.com/google/uuid"
)

// ConversionService turns an approved quote into a scheduled job with a
// checklist derived from the quote items.
type ConversionService struct {
	quoteRepo repository.QuoteRepository
	jobRepo   repository.JobRepository
	numbering *NumberingService
}

// NewConversionService creates a new conversion service
func NewConversionService(
	quoteRepo repository.QuoteRepository,
	jobRepo repository.JobRepository,
	numbering *NumberingService,
) *ConversionService {
	return &ConversionService{
		quoteRepo: quoteRepo,
		jobRepo:   jobRepo,
		numbering: numbering,
	}
}

// ConvertQuoteToJob converts an approved quote into a job. The job insert,
// checklist insert and quote status change are committed atomically; a quote
// that is not approved produces a conflict and no job row.
func (s *ConversionService) ConvertQuoteToJob(ctx context.Context, quoteID uuid.UUID) (*entity.Quote, *entity.Job, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, quoteID)
	if err != nil {
		return nil, nil, err
	}
	if quote == nil {
		return nil, nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Status != enum.QuoteStatusApproved {
		return nil, nil, apperror.NewInvalidTransitionError("Quote must be approved before conversion")
	}

	jobNumber, err := s.numbering.NextNumber(ctx, enum.DocumentTypeJob)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()

	job := &entity.Job{
		JobNumber:     jobNumber,
		QuoteID:       &quote.ID,
		CustomerID:    quote.CustomerID,
		CreatedByID:   quote.CreatedByID,
		Title:         quote.Title,
		Description:   quote.Description,
		Status:        enum.JobStatusScheduled,
		EstimatedCost: quote.TotalAmount,
	}

	checklist := &entity.JobChecklist{
		Items: make([]entity.ChecklistItem, 0, len(quote.Items)),
	}
	for i := range quote.Items {
		item := &quote.Items[i]
		checklist.Items = append(checklist.Items, entity.ChecklistItem{
			Text:      item.ChecklistText(),
			Required:  item.ItemType == enum.ItemTypeService,
			SortOrder: item.SortOrder,
		})
	}

	quote.Status = enum.QuoteStatusConverted
	quote.ConvertedAt = &now

	if err := s.jobRepo.ConvertFromQuote(ctx, job, checklist, quote); err != nil {
		return nil, nil, err
	}

	job.Checklist = checklist
	return quote, job, nil
}
