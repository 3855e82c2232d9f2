package repository

import (
	"context"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// CreateWithItems inserts the invoice and its line items in one
	// transaction; the QR payload is already on the invoice so no row can
	// exist without it.
	CreateWithItems(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetByJobID returns the job's live invoice; voided invoices are
	// ignored so the job can be invoiced again.
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// ListAll returns every invoice with its customer, newest first, for
	// register exports.
	ListAll(ctx context.Context) ([]entity.Invoice, error)
	// MarkOverdue flips issued invoices past their due date to overdue and
	// returns how many were affected.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	LatestNumberWithPrefix(ctx context.Context, prefix string) (number string, found bool, err error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}
