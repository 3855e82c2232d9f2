package request

import "github.com/shopspring/decimal"

// UpdateSettingsRequest represents a company settings update request
type UpdateSettingsRequest struct {
	CompanyName       *string          `json:"company_name" binding:"omitempty,max=255"`
	VATRegistration   *string          `json:"vat_registration" binding:"omitempty,max=50"`
	Address           *string          `json:"address"`
	Phone             *string          `json:"phone" binding:"omitempty,max=50"`
	Currency          *string          `json:"currency" binding:"omitempty,max=10"`
	QuotePrefix       *string          `json:"quote_prefix" binding:"omitempty,max=20"`
	InvoicePrefix     *string          `json:"invoice_prefix" binding:"omitempty,max=20"`
	JobPrefix         *string          `json:"job_prefix" binding:"omitempty,max=20"`
	NextQuoteNumber   *int             `json:"next_quote_number" binding:"omitempty,min=1"`
	NextInvoiceNumber *int             `json:"next_invoice_number" binding:"omitempty,min=1"`
	NextJobNumber     *int             `json:"next_job_number" binding:"omitempty,min=1"`
	VATRate           *decimal.Decimal `json:"vat_rate"`
	DefaultHourlyRate *decimal.Decimal `json:"default_hourly_rate"`
	DefaultDueDays    *int             `json:"default_due_days" binding:"omitempty,min=1"`
	QuoteValidityDays *int             `json:"quote_validity_days" binding:"omitempty,min=1"`
	ZATCAEnabled      *bool            `json:"zatca_enabled"`
}
