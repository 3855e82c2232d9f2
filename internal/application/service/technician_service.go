package service

import (
	"context"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/pkg/apperror"
	"github.com/google/uuid"
)

// TechnicianService handles technician-related operations
type TechnicianService struct {
	technicianRepo repository.TechnicianRepository
}

// NewTechnicianService creates a new technician service
func NewTechnicianService(technicianRepo repository.TechnicianRepository) *TechnicianService {
	return &TechnicianService{technicianRepo: technicianRepo}
}

// TechnicianInput represents the input for creating or updating a technician
type TechnicianInput struct {
	UserID         *uuid.UUID
	Name           string
	Phone          *string
	EmployeeNumber string
	Specialty      *string
	Active         *bool
}

// CreateTechnician creates a new technician
func (s *TechnicianService) CreateTechnician(ctx context.Context, input *TechnicianInput) (*entity.Technician, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Name is required")
	}
	if input.EmployeeNumber == "" {
		return nil, apperror.NewBadRequestError("Employee number is required")
	}

	existing, err := s.technicianRepo.GetByEmployeeNumber(ctx, input.EmployeeNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Employee number is already in use")
	}

	technician := &entity.Technician{
		UserID:         input.UserID,
		Name:           input.Name,
		Phone:          input.Phone,
		EmployeeNumber: input.EmployeeNumber,
		Specialty:      input.Specialty,
		Active:         true,
	}
	if input.Active != nil {
		technician.Active = *input.Active
	}

	if err := s.technicianRepo.Create(ctx, technician); err != nil {
		return nil, err
	}
	return technician, nil
}

// GetTechnician retrieves a technician by ID
func (s *TechnicianService) GetTechnician(ctx context.Context, id uuid.UUID) (*entity.Technician, error) {
	technician, err := s.technicianRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if technician == nil {
		return nil, apperror.NewNotFoundError("Technician")
	}
	return technician, nil
}

// ListTechnicians retrieves technicians with pagination and filtering
func (s *TechnicianService) ListTechnicians(ctx context.Context, params *repository.TechnicianFilterParams) ([]entity.Technician, int64, error) {
	return s.technicianRepo.List(ctx, params)
}

// UpdateTechnician updates an existing technician
func (s *TechnicianService) UpdateTechnician(ctx context.Context, id uuid.UUID, input *TechnicianInput) (*entity.Technician, error) {
	technician, err := s.technicianRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if technician == nil {
		return nil, apperror.NewNotFoundError("Technician")
	}

	if input.Name != "" {
		technician.Name = input.Name
	}
	if input.Phone != nil {
		technician.Phone = input.Phone
	}
	if input.EmployeeNumber != "" && input.EmployeeNumber != technician.EmployeeNumber {
		existing, err := s.technicianRepo.GetByEmployeeNumber(ctx, input.EmployeeNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Employee number is already in use")
		}
		technician.EmployeeNumber = input.EmployeeNumber
	}
	if input.Specialty != nil {
		technician.Specialty = input.Specialty
	}
	if input.Active != nil {
		technician.Active = *input.Active
	}
	if input.UserID != nil {
		technician.UserID = input.UserID
	}

	if err := s.technicianRepo.Update(ctx, technician); err != nil {
		return nil, err
	}
	return technician, nil
}

// DeleteTechnician removes a technician
func (s *TechnicianService) DeleteTechnician(ctx context.Context, id uuid.UUID) error {
	technician, err := s.technicianRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if technician == nil {
		return apperror.NewNotFoundError("Technician")
	}
	return s.technicianRepo.Delete(ctx, id)
}
