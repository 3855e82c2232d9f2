package repository

import (
	"context"
	"errors"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	domainRepo "github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type technicianRepository struct {
	db *gorm.DB
}

// NewTechnicianRepository creates a new technician repository
func NewTechnicianRepository(db *gorm.DB) domainRepo.TechnicianRepository {
	return &technicianRepository{db: db}
}

func (r *technicianRepository) Create(ctx context.Context, technician *entity.Technician) error {
	return r.db.WithContext(ctx).Create(technician).Error
}

func (r *technicianRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Technician, error) {
	var technician entity.Technician
	err := r.db.WithContext(ctx).First(&technician, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &technician, err
}

func (r *technicianRepository) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*entity.Technician, error) {
	var technician entity.Technician
	err := r.db.WithContext(ctx).First(&technician, "employee_number = ?", employeeNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &technician, err
}

func (r *technicianRepository) Update(ctx context.Context, technician *entity.Technician) error {
	return r.db.WithContext(ctx).Save(technician).Error
}

func (r *technicianRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Technician{}, "id = ?", id).Error
}

func (r *technicianRepository) List(ctx context.Context, params *domainRepo.TechnicianFilterParams) ([]entity.Technician, int64, error) {
	var technicians []entity.Technician
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Technician{})

	if params.Search != "" {
		query = query.Where("name LIKE ? OR employee_number LIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&technicians).Error

	return technicians, total, err
}
