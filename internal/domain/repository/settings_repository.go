package repository

import (
	"context"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
)

// SettingsRepository defines the interface for company settings operations.
// The settings row carries the document counters; the allocator mutates them
// only through CompareAndSwapNextNumber so concurrent allocations serialize.
type SettingsRepository interface {
	// Get returns the settings row, or nil if none has been created yet
	Get(ctx context.Context) (*entity.CompanySettings, error)
	Create(ctx context.Context, settings *entity.CompanySettings) error
	Update(ctx context.Context, settings *entity.CompanySettings) error
	// CompareAndSwapNextNumber advances the counter for docType from seen to
	// next. Returns false without error when another writer got there first.
	CompareAndSwapNextNumber(ctx context.Context, docType enum.DocumentType, seen, next int) (bool, error)
}
