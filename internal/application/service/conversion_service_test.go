package service

import (
	"testing"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func approvedQuote(t *testing.T, env *testEnv, items []QuoteItemInput) *entity.Quote {
	t.Helper()
	ctx := t.Context()

	quote := newQuote(t, env, items, decimal.Zero)
	if _, err := env.quotes.SendQuote(ctx, quote.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	approved, err := env.quotes.ApproveQuote(ctx, quote.ID, nil)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	return approved
}

func TestConvertRequiresApprovedQuote(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	quote := newQuote(t, env, []QuoteItemInput{
		{Name: "Inspection", ItemType: enum.ItemTypeService,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(300)},
	}, decimal.Zero)

	if _, _, err := env.conversion.ConvertQuoteToJob(ctx, quote.ID); err == nil {
		t.Fatal("expected conversion of a draft to fail")
	}

	var jobCount int64
	if err := env.db.Model(&entity.Job{}).Count(&jobCount).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if jobCount != 0 {
		t.Fatalf("expected no job rows got %d", jobCount)
	}
}

func TestConvertDerivesChecklist(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	desc := "Full compressor teardown"
	quote := approvedQuote(t, env, []QuoteItemInput{
		{Name: "Compressor service", Description: &desc, ItemType: enum.ItemTypeService,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(800)},
		{Name: "Refrigerant top-up", ItemType: enum.ItemTypeService,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(150)},
		{Name: "Filter drier", ItemType: enum.ItemTypePart,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
	})

	convertedQuote, job, err := env.conversion.ConvertQuoteToJob(ctx, quote.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if job.JobNumber != "JOB-1000" {
		t.Fatalf("expected JOB-1000 got %s", job.JobNumber)
	}
	if !job.EstimatedCost.Equal(quote.TotalAmount) {
		t.Fatalf("expected estimate %s got %s", quote.TotalAmount, job.EstimatedCost)
	}
	if job.QuoteID == nil || *job.QuoteID != quote.ID {
		t.Fatal("expected job to link back to the quote")
	}

	if convertedQuote.Status != enum.QuoteStatusConverted {
		t.Fatalf("expected converted got %s", convertedQuote.Status)
	}
	if convertedQuote.ConvertedToJobID == nil || *convertedQuote.ConvertedToJobID != job.ID {
		t.Fatal("expected quote to link to the job")
	}
	if convertedQuote.ConvertedAt == nil {
		t.Fatal("expected converted_at to be set")
	}

	checklist, err := env.jobs.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("load job: %v", err)
	}
	items := checklist.Checklist.Items
	if len(items) != 3 {
		t.Fatalf("expected 3 checklist items got %d", len(items))
	}
	if items[0].Text != "Full compressor teardown - Service" {
		t.Fatalf("unexpected checklist text %q", items[0].Text)
	}
	if items[2].Text != "Filter drier - Part" {
		t.Fatalf("unexpected checklist text %q", items[2].Text)
	}

	required := 0
	for _, item := range items {
		if item.Completed {
			t.Fatal("expected fresh checklist items to be incomplete")
		}
		if item.Required {
			required++
		}
	}
	if required != 2 {
		t.Fatalf("expected 2 required items got %d", required)
	}
}

func TestConvertTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	quote := approvedQuote(t, env, []QuoteItemInput{
		{Name: "Inspection", ItemType: enum.ItemTypeService,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(300)},
	})

	if _, _, err := env.conversion.ConvertQuoteToJob(ctx, quote.ID); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, _, err := env.conversion.ConvertQuoteToJob(ctx, quote.ID); err == nil {
		t.Fatal("expected second conversion to fail")
	}

	var jobCount int64
	if err := env.db.Model(&entity.Job{}).Count(&jobCount).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if jobCount != 1 {
		t.Fatalf("expected 1 job row got %d", jobCount)
	}
}
