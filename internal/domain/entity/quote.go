package entity

import (
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote represents a priced proposal sent to a customer. Totals are a
// snapshot computed from the items at write time; the status lifecycle is
// one-directional and Converted is terminal.
type Quote struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	QuoteNumber string           `gorm:"size:50;uniqueIndex;not null" json:"quote_number"`
	CustomerID  *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CreatedByID uuid.UUID        `gorm:"type:uuid;not null;index" json:"created_by_id"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description *string          `gorm:"type:text" json:"description,omitempty"`
	Status      enum.QuoteStatus `gorm:"default:0" json:"status"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(5,4);default:0" json:"tax_rate"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_amount"`

	// Status transition timestamps
	SentAt     *time.Time `json:"sent_at,omitempty"`
	ViewedAt   *time.Time `json:"viewed_at,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	DeclinedAt *time.Time `json:"declined_at,omitempty"`
	ExpiresAt  *time.Time `gorm:"index" json:"expires_at,omitempty"`

	// Customer sign-off captured on approval
	CustomerSignature *string    `gorm:"type:text" json:"customer_signature,omitempty"`
	SignedBy          *string    `gorm:"size:255" json:"signed_by,omitempty"`
	SignedAt          *time.Time `json:"signed_at,omitempty"`

	// Conversion back-links set when the quote becomes a job
	ConvertedToJobID *uuid.UUID `gorm:"type:uuid;index" json:"converted_to_job_id,omitempty"`
	ConvertedAt      *time.Time `json:"converted_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer  *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedBy User        `gorm:"foreignKey:CreatedByID" json:"-"`
	Items     []QuoteItem `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// QuoteItem represents a line item in a quote. Items are owned exclusively
// by their quote and replaced wholesale on update.
type QuoteItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"quote_id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	ItemType    enum.ItemType   `gorm:"default:0" json:"item_type"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_price"`
	SortOrder   int             `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Quote Quote `gorm:"foreignKey:QuoteID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new quote item
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}

// ChecklistText is the checklist line derived from this item on conversion:
// "<description or name> - <type>".
func (qi *QuoteItem) ChecklistText() string {
	label := qi.Name
	if qi.Description != nil && *qi.Description != "" {
		label = *qi.Description
	}
	return label + " - " + qi.ItemType.String()
}
