package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func TestEnqueueDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	job, err := env.jobs.CreateJob(ctx, &CreateJobInput{CreatedByID: env.user.ID, Title: "Site visit"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	input := &EnqueueInput{
		ActionType:    entity.SyncActionJobNote,
		Payload:       `{"body":"compressor rattling on startup"}`,
		JobID:         &job.ID,
		SubmittedByID: env.user.ID,
	}

	first, created, err := env.sync.Enqueue(ctx, input)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if !created {
		t.Fatal("expected first enqueue to create a row")
	}

	second, created, err := env.sync.Enqueue(ctx, input)
	if err != nil {
		t.Fatalf("re-enqueue: %v", err)
	}
	if created {
		t.Fatal("expected duplicate enqueue to be a no-op")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same content hash, got %s and %s", first.ID, second.ID)
	}

	var count int64
	if err := env.db.Model(&entity.SyncAction{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 action row got %d", count)
	}
}

func TestEnqueueRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if _, _, err := env.sync.Enqueue(ctx, &EnqueueInput{
		ActionType: "reboot_printer", Payload: `{}`, SubmittedByID: env.user.ID,
	}); err == nil {
		t.Fatal("expected unknown action type to be rejected")
	}

	if _, _, err := env.sync.Enqueue(ctx, &EnqueueInput{
		ActionType: entity.SyncActionJobNote, Payload: `{not json`, SubmittedByID: env.user.ID,
	}); err == nil {
		t.Fatal("expected malformed payload to be rejected")
	}
}

func TestDrainAppliesActionsInTimestampOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	job, err := env.jobs.CreateJob(ctx, &CreateJobInput{CreatedByID: env.user.ID, Title: "Site visit"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)
	// Enqueued newest-first; the drain must still apply oldest-first.
	for i := 2; i >= 0; i-- {
		_, _, err := env.sync.Enqueue(ctx, &EnqueueInput{
			ActionType:    entity.SyncActionJobNote,
			Payload:       fmt.Sprintf(`{"body":"note %d"}`, i),
			JobID:         &job.ID,
			SubmittedByID: env.user.ID,
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	applied, err := env.sync.Drain(ctx)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if applied != 3 {
		t.Fatalf("expected 3 applied got %d", applied)
	}

	var notes []entity.JobNote
	if err := env.db.Where("job_id = ?", job.ID).Order("created_at ASC").Find(&notes).Error; err != nil {
		t.Fatalf("load notes: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes got %d", len(notes))
	}
	for i, note := range notes {
		want := fmt.Sprintf("note %d", i)
		if note.Body != want {
			t.Fatalf("expected %q at position %d got %q", want, i, note.Body)
		}
	}

	pending, err := env.sync.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty queue got %d", len(pending))
	}
}

func TestDrainRejectionFailsImmediately(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	// A job note without a job can never apply.
	if _, _, err := env.sync.Enqueue(ctx, &EnqueueInput{
		ActionType:    entity.SyncActionJobNote,
		Payload:       `{"body":"orphan note"}`,
		SubmittedByID: env.user.ID,
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	applied, err := env.sync.Drain(ctx)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected 0 applied got %d", applied)
	}

	failed, err := env.sync.ListFailed(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("expected 1 failed action got %d", len(failed))
	}
	if failed[0].LastError == nil {
		t.Fatal("expected last_error to be recorded")
	}
	if failed[0].Attempts != 1 {
		t.Fatalf("expected 1 attempt got %d", failed[0].Attempts)
	}
}

func TestDrainSkipsBackedOffActions(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	job, err := env.jobs.CreateJob(ctx, &CreateJobInput{CreatedByID: env.user.ID, Title: "Site visit"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	action, _, err := env.sync.Enqueue(ctx, &EnqueueInput{
		ActionType:    entity.SyncActionJobNote,
		Payload:       `{"body":"later"}`,
		JobID:         &job.ID,
		SubmittedByID: env.user.ID,
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	future := time.Now().UTC().Add(time.Hour)
	if err := env.db.Model(&entity.SyncAction{}).Where("id = ?", action.ID).
		Update("next_attempt_at", future).Error; err != nil {
		t.Fatalf("schedule: %v", err)
	}

	applied, err := env.sync.Drain(ctx)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected backed-off action to be skipped, applied %d", applied)
	}

	var reloaded entity.SyncAction
	if err := env.db.First(&reloaded, "id = ?", action.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != enum.SyncStatusPending {
		t.Fatalf("expected still pending got %d", reloaded.Status)
	}
}

func TestDrainAppliesFieldWorkflow(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	job, err := env.jobs.CreateJob(ctx, &CreateJobInput{
		CreatedByID: env.user.ID,
		Title:       "Rooftop unit swap",
		ChecklistItems: []ChecklistItemInput{
			{Text: "Swap unit", Required: true},
		},
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	itemID := job.Checklist.Items[0].ID

	base := time.Now().UTC().Add(-time.Hour)
	steps := []struct {
		actionType string
		payload    string
	}{
		{entity.SyncActionCheckIn, `{}`},
		{entity.SyncActionChecklistItem, fmt.Sprintf(`{"item_id":"%s","completed":true}`, itemID)},
		{entity.SyncActionPartUsage, `{"name":"Condenser fan","unit_cost":"120","quantity_used":"1"}`},
		{entity.SyncActionCheckOut, `{}`},
	}
	for i, step := range steps {
		_, _, err := env.sync.Enqueue(ctx, &EnqueueInput{
			ActionType:    step.actionType,
			Payload:       step.payload,
			JobID:         &job.ID,
			SubmittedByID: env.user.ID,
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("enqueue %s: %v", step.actionType, err)
		}
	}

	applied, err := env.sync.Drain(ctx)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if applied != 4 {
		t.Fatalf("expected 4 applied got %d", applied)
	}

	reloaded, err := env.jobs.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if reloaded.Status != enum.JobStatusCompleted {
		t.Fatalf("expected completed got %s", reloaded.Status)
	}
	if len(reloaded.Parts) != 1 || !reloaded.Parts[0].UnitCost.Equal(decimal.NewFromInt(120)) {
		t.Fatal("expected part usage to be recorded")
	}
	if !reloaded.Checklist.Items[0].Completed {
		t.Fatal("expected checklist item completed")
	}
}
