package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SyncService is the server side of the technicians' offline queue. Actions
// are enqueued with a content-hash ID so duplicate submissions collapse, and
// a background drain replays them FIFO against the domain services with
// exponential backoff.
type SyncService struct {
	syncRepo    repository.SyncRepository
	jobService  *JobService
	batchSize   int
	maxAttempts int
	backoffBase time.Duration
}

// NewSyncService creates a new sync service
func NewSyncService(
	syncRepo repository.SyncRepository,
	jobService *JobService,
	batchSize int,
	maxAttempts int,
	backoffBase time.Duration,
) *SyncService {
	return &SyncService{
		syncRepo:    syncRepo,
		jobService:  jobService,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
	}
}

// EnqueueInput represents an offline action submitted by a client
type EnqueueInput struct {
	ActionType    string
	Payload       string
	JobID         *uuid.UUID
	SubmittedByID uuid.UUID
	Timestamp     time.Time
}

// Enqueue stores an offline action. Re-submitting identical content is a
// no-op; the returned bool reports whether a new row was created.
func (s *SyncService) Enqueue(ctx context.Context, input *EnqueueInput) (*entity.SyncAction, bool, error) {
	switch input.ActionType {
	case entity.SyncActionJobNote, entity.SyncActionChecklistItem, entity.SyncActionPartUsage,
		entity.SyncActionCheckIn, entity.SyncActionCheckOut:
	default:
		return nil, false, apperror.NewBadRequestError("Unknown action type " + input.ActionType)
	}
	if !json.Valid([]byte(input.Payload)) {
		return nil, false, apperror.NewBadRequestError("Payload must be valid JSON")
	}

	ts := input.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	action := &entity.SyncAction{
		ID:            entity.SyncActionID(input.ActionType, input.Payload, input.JobID),
		ActionType:    input.ActionType,
		Payload:       input.Payload,
		JobID:         input.JobID,
		SubmittedByID: input.SubmittedByID,
		Timestamp:     ts,
		Status:        enum.SyncStatusPending,
	}

	created, err := s.syncRepo.CreateIfAbsent(ctx, action)
	if err != nil {
		return nil, false, err
	}
	if !created {
		existing, err := s.syncRepo.GetByID(ctx, action.ID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return action, true, nil
}

// ListPending returns pending actions, oldest first
func (s *SyncService) ListPending(ctx context.Context) ([]entity.SyncAction, error) {
	return s.syncRepo.ListPending(ctx)
}

// ListFailed returns actions that exhausted their attempts
func (s *SyncService) ListFailed(ctx context.Context) ([]entity.SyncAction, error) {
	return s.syncRepo.ListFailed(ctx)
}

// Drain replays due pending actions in timestamp order. Rejected actions
// (bad payloads, invalid transitions) fail immediately; transient errors back
// off exponentially until maxAttempts, after which the action is marked
// failed and left for operator review. Returns how many actions were applied.
func (s *SyncService) Drain(ctx context.Context) (int, error) {
	actions, err := s.syncRepo.PendingDue(ctx, time.Now().UTC(), s.batchSize)
	if err != nil {
		return 0, err
	}

	applied := 0
	for i := range actions {
		action := &actions[i]
		if err := s.apply(ctx, action); err != nil {
			s.recordFailure(ctx, action, err)
			continue
		}

		now := time.Now().UTC()
		action.Status = enum.SyncStatusApplied
		action.AppliedAt = &now
		action.LastError = nil
		if err := s.syncRepo.Update(ctx, action); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func (s *SyncService) apply(ctx context.Context, action *entity.SyncAction) error {
	switch action.ActionType {
	case entity.SyncActionJobNote:
		var p struct {
			Body string `json:"body"`
		}
		if err := json.Unmarshal([]byte(action.Payload), &p); err != nil {
			return apperror.NewBadRequestError("Malformed job note payload")
		}
		if action.JobID == nil {
			return apperror.NewBadRequestError("Job note requires a job")
		}
		_, err := s.jobService.AddNote(ctx, *action.JobID, action.SubmittedByID, p.Body)
		return err

	case entity.SyncActionChecklistItem:
		var p struct {
			ItemID    uuid.UUID `json:"item_id"`
			Completed bool      `json:"completed"`
		}
		if err := json.Unmarshal([]byte(action.Payload), &p); err != nil {
			return apperror.NewBadRequestError("Malformed checklist payload")
		}
		_, err := s.jobService.ToggleChecklistItem(ctx, p.ItemID, p.Completed)
		return err

	case entity.SyncActionPartUsage:
		var p struct {
			Name         string          `json:"name"`
			PartNumber   *string         `json:"part_number"`
			UnitCost     decimal.Decimal `json:"unit_cost"`
			QuantityUsed decimal.Decimal `json:"quantity_used"`
		}
		if err := json.Unmarshal([]byte(action.Payload), &p); err != nil {
			return apperror.NewBadRequestError("Malformed part usage payload")
		}
		if action.JobID == nil {
			return apperror.NewBadRequestError("Part usage requires a job")
		}
		_, err := s.jobService.AddPart(ctx, *action.JobID, &AddPartInput{
			Name:         p.Name,
			PartNumber:   p.PartNumber,
			UnitCost:     p.UnitCost,
			QuantityUsed: p.QuantityUsed,
		})
		return err

	case entity.SyncActionCheckIn:
		if action.JobID == nil {
			return apperror.NewBadRequestError("Check-in requires a job")
		}
		_, err := s.jobService.StartJob(ctx, *action.JobID)
		return err

	case entity.SyncActionCheckOut:
		if action.JobID == nil {
			return apperror.NewBadRequestError("Check-out requires a job")
		}
		_, err := s.jobService.CompleteJob(ctx, *action.JobID)
		return err
	}

	return apperror.NewBadRequestError("Unknown action type " + action.ActionType)
}

// recordFailure updates attempt bookkeeping. Application-level rejections
// will never succeed on retry, so they fail the action immediately.
func (s *SyncService) recordFailure(ctx context.Context, action *entity.SyncAction, cause error) {
	action.Attempts++
	msg := cause.Error()
	action.LastError = &msg

	if apperror.IsAppError(cause) || action.Attempts >= s.maxAttempts {
		action.Status = enum.SyncStatusFailed
		action.NextAttemptAt = nil
		log.Printf("Sync action %s failed permanently after %d attempts: %v", action.ID, action.Attempts, cause)
	} else {
		next := time.Now().UTC().Add(s.backoffBase * (1 << (action.Attempts - 1)))
		action.NextAttemptAt = &next
	}

	if err := s.syncRepo.Update(ctx, action); err != nil {
		log.Printf("Failed to record sync attempt for %s: %v", action.ID, err)
	}
}
