package repository

import (
	"context"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
)

// SyncRepository defines the interface for the offline action outbox
type SyncRepository interface {
	// CreateIfAbsent inserts the action unless a row with the same content
	// hash already exists. Returns true when the row was inserted.
	CreateIfAbsent(ctx context.Context, action *entity.SyncAction) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.SyncAction, error)
	Update(ctx context.Context, action *entity.SyncAction) error
	// PendingDue returns pending actions whose next attempt is due, FIFO by
	// client timestamp.
	PendingDue(ctx context.Context, now time.Time, limit int) ([]entity.SyncAction, error)
	ListPending(ctx context.Context) ([]entity.SyncAction, error)
	ListFailed(ctx context.Context) ([]entity.SyncAction, error)
}
