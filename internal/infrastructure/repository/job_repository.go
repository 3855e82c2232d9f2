package repository

import (
	"context"
	"errors"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	domainRepo "github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) domainRepo.JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var job entity.Job
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Technician").
		First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &job, err
}

func (r *jobRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var job entity.Job
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Technician").
		Preload("Checklist.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Parts").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &job, err
}

func (r *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(job).Error
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Job{}, "id = ?", id).Error
}

func (r *jobRepository) List(ctx context.Context, params *domainRepo.JobFilterParams) ([]entity.Job, int64, error) {
	var jobs []entity.Job
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Job{})

	if params.Search != "" {
		query = query.Where("job_number LIKE ? OR title LIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.TechnicianID != nil {
		query = query.Where("technician_id = ?", *params.TechnicianID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Technician").
		Order(sortBy + " " + sortOrder).
		Find(&jobs).Error

	return jobs, total, err
}

// ConvertFromQuote writes the job, its derived checklist and the quote's
// terminal status in a single transaction so a failure in any step leaves no
// partial state behind.
func (r *jobRepository) ConvertFromQuote(ctx context.Context, job *entity.Job, checklist *entity.JobChecklist, quote *entity.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(job).Error; err != nil {
			return err
		}

		checklist.JobID = job.ID
		if err := tx.Create(checklist).Error; err != nil {
			return err
		}

		quote.ConvertedToJobID = &job.ID
		return tx.Omit(clause.Associations).Save(quote).Error
	})
}

func (r *jobRepository) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, bool, error) {
	var job entity.Job
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("job_number LIKE ?", prefix+"%").
		Order("job_number DESC").
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return job.JobNumber, true, nil
}

type checklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new job checklist repository
func NewChecklistRepository(db *gorm.DB) domainRepo.ChecklistRepository {
	return &checklistRepository{db: db}
}

func (r *checklistRepository) CreateWithItems(ctx context.Context, checklist *entity.JobChecklist) error {
	return r.db.WithContext(ctx).Create(checklist).Error
}

func (r *checklistRepository) GetByJobID(ctx context.Context, jobID uuid.UUID) (*entity.JobChecklist, error) {
	var checklist entity.JobChecklist
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		First(&checklist, "job_id = ?", jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &checklist, err
}

func (r *checklistRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*entity.ChecklistItem, error) {
	var item entity.ChecklistItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *checklistRepository) UpdateItem(ctx context.Context, item *entity.ChecklistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

type jobPartRepository struct {
	db *gorm.DB
}

// NewJobPartRepository creates a new job part repository
func NewJobPartRepository(db *gorm.DB) domainRepo.JobPartRepository {
	return &jobPartRepository{db: db}
}

func (r *jobPartRepository) Create(ctx context.Context, part *entity.JobPart) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *jobPartRepository) GetByJobID(ctx context.Context, jobID uuid.UUID) ([]entity.JobPart, error) {
	var parts []entity.JobPart
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&parts).Error
	return parts, err
}

func (r *jobPartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.JobPart{}, "id = ?", id).Error
}

type jobNoteRepository struct {
	db *gorm.DB
}

// NewJobNoteRepository creates a new job note repository
func NewJobNoteRepository(db *gorm.DB) domainRepo.JobNoteRepository {
	return &jobNoteRepository{db: db}
}

func (r *jobNoteRepository) Create(ctx context.Context, note *entity.JobNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *jobNoteRepository) GetByJobID(ctx context.Context, jobID uuid.UUID) ([]entity.JobNote, error) {
	var notes []entity.JobNote
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&notes).Error
	return notes, err
}
