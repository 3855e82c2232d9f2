package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompanySettings is the single settings row for the deployment. It carries
// the document numbering counters mutated by the sequence allocator, the VAT
// configuration and the ZATCA flags. Counters are monotonically non-decreasing.
type CompanySettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Company identity (printed on invoices and encoded into the ZATCA QR)
	CompanyName      string  `gorm:"size:255;not null;default:''" json:"company_name"`
	VATRegistration  string  `gorm:"size:50;not null;default:''" json:"vat_registration"`
	Address          *string `gorm:"type:text" json:"address,omitempty"`
	Phone            *string `gorm:"size:50" json:"phone,omitempty"`
	Currency         string  `gorm:"size:10;default:'SAR'" json:"currency"`

	// Document numbering
	QuotePrefix       string `gorm:"size:20;default:'QUO-'" json:"quote_prefix"`
	InvoicePrefix     string `gorm:"size:20;default:'INV-'" json:"invoice_prefix"`
	JobPrefix         string `gorm:"size:20;default:'JOB-'" json:"job_prefix"`
	NextQuoteNumber   int    `gorm:"default:1000" json:"next_quote_number"`
	NextInvoiceNumber int    `gorm:"default:1000" json:"next_invoice_number"`
	NextJobNumber     int    `gorm:"default:1000" json:"next_job_number"`

	// Billing defaults
	VATRate           decimal.Decimal `gorm:"type:decimal(5,4);default:0.15" json:"vat_rate"`
	DefaultHourlyRate decimal.Decimal `gorm:"type:decimal(15,2);default:150" json:"default_hourly_rate"`
	DefaultDueDays    int             `gorm:"default:30" json:"default_due_days"`
	QuoteValidityDays int             `gorm:"default:30" json:"quote_validity_days"`
	ZATCAEnabled      bool            `gorm:"column:zatca_enabled;default:true" json:"zatca_enabled"`
}

// BeforeCreate generates a UUID before creating the settings row
func (s *CompanySettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompanySettings model
func (CompanySettings) TableName() string {
	return "company_settings"
}
