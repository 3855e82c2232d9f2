package repository

import (
	"context"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/pkg/pagination"
	"github.com/google/uuid"
)

// TechnicianRepository defines the interface for technician data operations
type TechnicianRepository interface {
	Create(ctx context.Context, technician *entity.Technician) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Technician, error)
	GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*entity.Technician, error)
	Update(ctx context.Context, technician *entity.Technician) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *TechnicianFilterParams) ([]entity.Technician, int64, error)
}

// TechnicianFilterParams contains filtering parameters for technician queries
type TechnicianFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ActiveOnly bool
}
