package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	domainRepo "github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetByNumber(ctx context.Context, number string) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).First(&quote, "quote_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(quote).Error
}

func (r *quoteRepository) UpdateWithItems(ctx context.Context, quote *entity.Quote, items []entity.QuoteItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.QuoteItem{}, "quote_id = ?", quote.ID).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(quote).Error
	})
}

func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Quote{}, "id = ?", id).Error
}

func (r *quoteRepository) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quote{})

	if params.Search != "" {
		query = query.Where("quote_number LIKE ? OR title LIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&quotes).Error

	return quotes, total, err
}

// LatestNumberWithPrefix relies on the zero-padded suffix: lexicographic
// descending order matches numeric order for equal-width numbers.
func (r *quoteRepository) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, bool, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("quote_number LIKE ?", prefix+"%").
		Order("quote_number DESC").
		First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return quote.QuoteNumber, true, nil
}

func (r *quoteRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Quote{}).
		Where("status IN ?", []enum.QuoteStatus{enum.QuoteStatusSent, enum.QuoteStatusViewed}).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Update("status", enum.QuoteStatusExpired)
	return result.RowsAffected, result.Error
}

type quoteItemRepository struct {
	db *gorm.DB
}

// NewQuoteItemRepository creates a new quote item repository
func NewQuoteItemRepository(db *gorm.DB) domainRepo.QuoteItemRepository {
	return &quoteItemRepository{db: db}
}

func (r *quoteItemRepository) CreateBatch(ctx context.Context, items []entity.QuoteItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *quoteItemRepository) GetByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteItem, error) {
	var items []entity.QuoteItem
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error
	return items, err
}
