package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	domainRepo "github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new company settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.CompanySettings, error) {
	var settings entity.CompanySettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *settingsRepository) Create(ctx context.Context, settings *entity.CompanySettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.CompanySettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

func counterColumn(docType enum.DocumentType) (string, error) {
	switch docType {
	case enum.DocumentTypeQuote:
		return "next_quote_number", nil
	case enum.DocumentTypeInvoice:
		return "next_invoice_number", nil
	case enum.DocumentTypeJob:
		return "next_job_number", nil
	}
	return "", fmt.Errorf("unknown document type %q", docType)
}

// CompareAndSwapNextNumber advances the counter only if it still holds the
// value the caller read. A zero RowsAffected means another allocator won the
// race; the caller re-reads and retries.
func (r *settingsRepository) CompareAndSwapNextNumber(ctx context.Context, docType enum.DocumentType, seen, next int) (bool, error) {
	column, err := counterColumn(docType)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&entity.CompanySettings{}).
		Where(column+" = ?", seen).
		Update(column, next)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
