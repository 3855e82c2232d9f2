package repository

import (
	"context"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/pkg/pagination"
	"github.com/google/uuid"
)

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetByNumber(ctx context.Context, number string) (*entity.Quote, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	// UpdateWithItems replaces the quote's items wholesale and saves the
	// quote in one transaction; a failed insert leaves the old items intact.
	UpdateWithItems(ctx context.Context, quote *entity.Quote, items []entity.QuoteItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	// LatestNumberWithPrefix returns the highest quote number that starts
	// with prefix, ordered descending; found is false when none exists.
	LatestNumberWithPrefix(ctx context.Context, prefix string) (number string, found bool, err error)
	// ExpireStale marks sent/viewed quotes whose expires_at has passed as
	// expired and returns how many were affected.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// QuoteItemRepository defines the interface for quote item data operations
type QuoteItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.QuoteItem) error
	GetByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteItem, error)
}
