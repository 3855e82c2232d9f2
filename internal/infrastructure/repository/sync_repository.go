package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	domainRepo "github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type syncRepository struct {
	db *gorm.DB
}

// NewSyncRepository creates a new sync outbox repository
func NewSyncRepository(db *gorm.DB) domainRepo.SyncRepository {
	return &syncRepository{db: db}
}

func (r *syncRepository) CreateIfAbsent(ctx context.Context, action *entity.SyncAction) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(action)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *syncRepository) GetByID(ctx context.Context, id string) (*entity.SyncAction, error) {
	var action entity.SyncAction
	err := r.db.WithContext(ctx).First(&action, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &action, err
}

func (r *syncRepository) Update(ctx context.Context, action *entity.SyncAction) error {
	return r.db.WithContext(ctx).Save(action).Error
}

func (r *syncRepository) PendingDue(ctx context.Context, now time.Time, limit int) ([]entity.SyncAction, error) {
	var actions []entity.SyncAction
	err := r.db.WithContext(ctx).
		Where("status = ?", enum.SyncStatusPending).
		Where("next_attempt_at IS NULL OR next_attempt_at <= ?", now).
		Order("timestamp ASC").
		Limit(limit).
		Find(&actions).Error
	return actions, err
}

func (r *syncRepository) ListPending(ctx context.Context) ([]entity.SyncAction, error) {
	var actions []entity.SyncAction
	err := r.db.WithContext(ctx).
		Where("status = ?", enum.SyncStatusPending).
		Order("timestamp ASC").
		Find(&actions).Error
	return actions, err
}

func (r *syncRepository) ListFailed(ctx context.Context) ([]entity.SyncAction, error) {
	var actions []entity.SyncAction
	err := r.db.WithContext(ctx).
		Where("status = ?", enum.SyncStatusFailed).
		Order("timestamp ASC").
		Find(&actions).Error
	return actions, err
}
