package service

import (
	"context"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SettingsService manages the company settings row. Numbering counters only
// move forward here; allocation itself goes through NumberingService.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// UpdateSettingsInput represents the mutable settings fields
type UpdateSettingsInput struct {
	CompanyName       *string
	VATRegistration   *string
	Address           *string
	Phone             *string
	Currency          *string
	QuotePrefix       *string
	InvoicePrefix     *string
	JobPrefix         *string
	NextQuoteNumber   *int
	NextInvoiceNumber *int
	NextJobNumber     *int
	VATRate           *decimal.Decimal
	DefaultHourlyRate *decimal.Decimal
	DefaultDueDays    *int
	QuoteValidityDays *int
	ZATCAEnabled      *bool
}

// GetSettings returns the settings row
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.CompanySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Company settings")
	}
	return settings, nil
}

// UpdateSettings applies the given changes. Manual counter edits clamp to
// the current value so already-issued numbers can never be reissued.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.CompanySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Company settings")
	}

	if input.CompanyName != nil {
		settings.CompanyName = *input.CompanyName
	}
	if input.VATRegistration != nil {
		settings.VATRegistration = *input.VATRegistration
	}
	if input.Address != nil {
		settings.Address = input.Address
	}
	if input.Phone != nil {
		settings.Phone = input.Phone
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.QuotePrefix != nil && *input.QuotePrefix != "" {
		settings.QuotePrefix = *input.QuotePrefix
	}
	if input.InvoicePrefix != nil && *input.InvoicePrefix != "" {
		settings.InvoicePrefix = *input.InvoicePrefix
	}
	if input.JobPrefix != nil && *input.JobPrefix != "" {
		settings.JobPrefix = *input.JobPrefix
	}
	if input.NextQuoteNumber != nil && *input.NextQuoteNumber > settings.NextQuoteNumber {
		settings.NextQuoteNumber = *input.NextQuoteNumber
	}
	if input.NextInvoiceNumber != nil && *input.NextInvoiceNumber > settings.NextInvoiceNumber {
		settings.NextInvoiceNumber = *input.NextInvoiceNumber
	}
	if input.NextJobNumber != nil && *input.NextJobNumber > settings.NextJobNumber {
		settings.NextJobNumber = *input.NextJobNumber
	}
	if input.VATRate != nil {
		if input.VATRate.IsNegative() || input.VATRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, apperror.NewBadRequestError("VAT rate must be between 0 and 1")
		}
		settings.VATRate = *input.VATRate
	}
	if input.DefaultHourlyRate != nil {
		if input.DefaultHourlyRate.IsNegative() {
			return nil, apperror.NewBadRequestError("Hourly rate cannot be negative")
		}
		settings.DefaultHourlyRate = *input.DefaultHourlyRate
	}
	if input.DefaultDueDays != nil && *input.DefaultDueDays > 0 {
		settings.DefaultDueDays = *input.DefaultDueDays
	}
	if input.QuoteValidityDays != nil && *input.QuoteValidityDays > 0 {
		settings.QuoteValidityDays = *input.QuoteValidityDays
	}
	if input.ZATCAEnabled != nil {
		settings.ZATCAEnabled = *input.ZATCAEnabled
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
