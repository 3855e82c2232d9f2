package entity

import (
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is the financial snapshot generated from a completed job. The
// monetary fields are copied at generation time and never recomputed from the
// source job afterwards.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber string             `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	JobID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"job_id"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Status        enum.InvoiceStatus `gorm:"default:0" json:"status"`

	LaborCost         decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"labor_cost"`
	PartsCost         decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"parts_cost"`
	AdditionalCharges decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"additional_charges"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	DiscountAmount    decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	VATRate           decimal.Decimal `gorm:"type:decimal(5,4);default:0" json:"vat_rate"`
	VATAmount         decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_amount"`

	// ZATCA simplified invoice QR payload (Base64 TLV); empty when disabled
	ZATCAQRCode string `gorm:"column:zatca_qr_code;type:text" json:"zatca_qr_code,omitempty"`

	IssuedAt time.Time  `gorm:"not null" json:"issued_at"`
	DueAt    time.Time  `gorm:"not null" json:"due_at"`
	PaidAt   *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Job      Job           `gorm:"foreignKey:JobID" json:"-"`
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem represents a line item on an invoice
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string          `gorm:"size:500;not null" json:"description"`
	ItemType    enum.ItemType   `gorm:"default:0" json:"item_type"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_price"`
	SortOrder   int             `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
