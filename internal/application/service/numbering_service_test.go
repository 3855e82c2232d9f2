package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	infra "github.com/fieldsync/fieldsync-api/internal/infrastructure/repository"
)

func TestNextNumberSequence(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	first, err := env.numbering.NextNumber(ctx, enum.DocumentTypeQuote)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if first != "QUO-1000" {
		t.Fatalf("expected QUO-1000 got %s", first)
	}

	second, err := env.numbering.NextNumber(ctx, enum.DocumentTypeQuote)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if second != "QUO-1001" {
		t.Fatalf("expected QUO-1001 got %s", second)
	}

	var settings entity.CompanySettings
	if err := env.db.First(&settings).Error; err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.NextQuoteNumber != 1002 {
		t.Fatalf("expected counter 1002 got %d", settings.NextQuoteNumber)
	}
}

func TestNextNumberIndependentPerType(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if _, err := env.numbering.NextNumber(ctx, enum.DocumentTypeQuote); err != nil {
		t.Fatalf("allocate quote: %v", err)
	}
	if _, err := env.numbering.NextNumber(ctx, enum.DocumentTypeQuote); err != nil {
		t.Fatalf("allocate quote: %v", err)
	}

	jobNumber, err := env.numbering.NextNumber(ctx, enum.DocumentTypeJob)
	if err != nil {
		t.Fatalf("allocate job: %v", err)
	}
	if jobNumber != "JOB-1000" {
		t.Fatalf("expected JOB-1000 got %s", jobNumber)
	}

	invoiceNumber, err := env.numbering.NextNumber(ctx, enum.DocumentTypeInvoice)
	if err != nil {
		t.Fatalf("allocate invoice: %v", err)
	}
	if invoiceNumber != "INV-1000" {
		t.Fatalf("expected INV-1000 got %s", invoiceNumber)
	}
}

func TestNextNumberReconcilesWithExistingRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	// A quote numbered ahead of the counter, as after a restore from backup.
	quote := &entity.Quote{
		QuoteNumber: "QUO-2500",
		CreatedByID: env.user.ID,
		Title:       "Imported quote",
	}
	if err := env.db.Create(quote).Error; err != nil {
		t.Fatalf("seed quote: %v", err)
	}

	number, err := env.numbering.NextNumber(ctx, enum.DocumentTypeQuote)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if number != "QUO-2501" {
		t.Fatalf("expected QUO-2501 got %s", number)
	}
}

func TestNextNumberRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.numbering.NextNumber(t.Context(), enum.DocumentType("receipt")); err == nil {
		t.Fatal("expected error for unknown document type")
	}
}

// unreachableQuoteRepo simulates a transient failure of the reconciliation
// lookup while the rest of the repository keeps working.
type unreachableQuoteRepo struct {
	repository.QuoteRepository
}

func (unreachableQuoteRepo) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, bool, error) {
	return "", false, errors.New("relation temporarily unavailable")
}

func TestNextNumberFallsBackWhenReconciliationFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	numbering := NewNumberingService(
		infra.NewSettingsRepository(env.db),
		unreachableQuoteRepo{infra.NewQuoteRepository(env.db)},
		infra.NewInvoiceRepository(env.db),
		infra.NewJobRepository(env.db),
	)

	first, err := numbering.NextNumber(ctx, enum.DocumentTypeQuote)
	if err != nil {
		t.Fatalf("allocate with failing lookup: %v", err)
	}
	if first != "QUO-1000" {
		t.Fatalf("expected QUO-1000 got %s", first)
	}

	second, err := numbering.NextNumber(ctx, enum.DocumentTypeQuote)
	if err != nil {
		t.Fatalf("allocate with failing lookup: %v", err)
	}
	if second != "QUO-1001" {
		t.Fatalf("expected QUO-1001 got %s", second)
	}
}
