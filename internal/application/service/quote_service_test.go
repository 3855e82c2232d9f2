package service

import (
	"testing"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	infra "github.com/fieldsync/fieldsync-api/internal/infrastructure/repository"
	"github.com/fieldsync/fieldsync-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newQuote(t *testing.T, env *testEnv, items []QuoteItemInput, discount decimal.Decimal) *entity.Quote {
	t.Helper()
	quote, err := env.quotes.CreateQuote(t.Context(), &CreateQuoteInput{
		CreatedByID:    env.user.ID,
		CustomerID:     &env.customer.ID,
		Title:          "Compressor overhaul",
		DiscountAmount: discount,
		Items:          items,
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	return quote
}

func TestCreateQuoteTotals(t *testing.T) {
	env := newTestEnv(t)

	quote := newQuote(t, env, []QuoteItemInput{
		{Name: "Compressor service", ItemType: enum.ItemTypeService,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000)},
	}, decimal.NewFromInt(100))

	if quote.QuoteNumber != "QUO-1000" {
		t.Fatalf("expected QUO-1000 got %s", quote.QuoteNumber)
	}
	if !quote.Subtotal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected subtotal 1000 got %s", quote.Subtotal)
	}
	// (1000 - 100) * 0.15
	if !quote.TaxAmount.Equal(decimal.NewFromInt(135)) {
		t.Fatalf("expected tax 135 got %s", quote.TaxAmount)
	}
	if !quote.TotalAmount.Equal(decimal.NewFromInt(1035)) {
		t.Fatalf("expected total 1035 got %s", quote.TotalAmount)
	}
	if quote.ExpiresAt == nil {
		t.Fatal("expected expiry to be set")
	}
}

func TestQuoteDiscountItemsReduceSubtotal(t *testing.T) {
	env := newTestEnv(t)

	quote := newQuote(t, env, []QuoteItemInput{
		{Name: "Diagnostics", ItemType: enum.ItemTypeService,
			Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(250)},
		{Name: "Loyalty discount", ItemType: enum.ItemTypeDiscount,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
	}, decimal.Zero)

	if !quote.Subtotal.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected subtotal 450 got %s", quote.Subtotal)
	}
	// 450 * 0.15
	if !quote.TaxAmount.Equal(decimal.RequireFromString("67.5")) {
		t.Fatalf("expected tax 67.5 got %s", quote.TaxAmount)
	}
}

func TestQuoteTransitionGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	quote := newQuote(t, env, nil, decimal.Zero)

	// Draft cannot be approved directly.
	if _, err := env.quotes.ApproveQuote(ctx, quote.ID, nil); err == nil {
		t.Fatal("expected approval of a draft to fail")
	} else if apperror.GetAppError(err).Code != 409 {
		t.Fatalf("expected conflict got %v", err)
	}

	if _, err := env.quotes.SendQuote(ctx, quote.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := env.quotes.MarkViewed(ctx, quote.ID); err != nil {
		t.Fatalf("mark viewed: %v", err)
	}

	sig := "data:image/png;base64,iVBORw0KGgo="
	signer := "Khalid"
	approved, err := env.quotes.ApproveQuote(ctx, quote.ID, &ApproveQuoteInput{Signature: &sig, SignedBy: &signer})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != enum.QuoteStatusApproved {
		t.Fatalf("expected approved got %s", approved.Status)
	}
	if approved.CustomerSignature == nil || approved.SignedAt == nil {
		t.Fatal("expected signature to be recorded")
	}

	// Approved is past declining.
	if _, err := env.quotes.DeclineQuote(ctx, quote.ID); err == nil {
		t.Fatal("expected decline of an approved quote to fail")
	}
}

func TestUpdateQuoteReplacesItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	quote := newQuote(t, env, []QuoteItemInput{
		{Name: "Old item", ItemType: enum.ItemTypeService,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
	}, decimal.Zero)

	updated, err := env.quotes.UpdateQuote(ctx, quote.ID, &UpdateQuoteInput{
		Items: []QuoteItemInput{
			{Name: "Filter swap", ItemType: enum.ItemTypeService,
				Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(200)},
			{Name: "Filter", ItemType: enum.ItemTypePart,
				Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(30)},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(updated.Items) != 2 {
		t.Fatalf("expected 2 items got %d", len(updated.Items))
	}
	if !updated.Subtotal.Equal(decimal.NewFromInt(260)) {
		t.Fatalf("expected subtotal 260 got %s", updated.Subtotal)
	}

	var count int64
	if err := env.db.Model(&entity.QuoteItem{}).Where("quote_id = ?", quote.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 item rows got %d", count)
	}
}

func TestUpdateQuoteKeepsItemsOnFailedReplacement(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	quote := newQuote(t, env, []QuoteItemInput{
		{Name: "Diagnostics", ItemType: enum.ItemTypeService,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(400)},
	}, decimal.Zero)

	// Duplicate preset IDs make the batch insert violate the primary key,
	// so the whole replacement must roll back.
	quoteRepo := infra.NewQuoteRepository(env.db)
	dup := uuid.New()
	bad := []entity.QuoteItem{
		{ID: dup, QuoteID: quote.ID, Name: "Belt", ItemType: enum.ItemTypePart,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		{ID: dup, QuoteID: quote.ID, Name: "Filter", ItemType: enum.ItemTypePart,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(30)},
	}
	if err := quoteRepo.UpdateWithItems(ctx, quote, bad); err == nil {
		t.Fatal("expected duplicate item IDs to fail the replacement")
	}

	var count int64
	if err := env.db.Model(&entity.QuoteItem{}).Where("quote_id = ?", quote.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected the original item to survive, got %d rows", count)
	}
}

func TestDeleteQuoteOnlyDraft(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	quote := newQuote(t, env, nil, decimal.Zero)
	if _, err := env.quotes.SendQuote(ctx, quote.ID); err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := env.quotes.DeleteQuote(ctx, quote.ID); err == nil {
		t.Fatal("expected delete of a sent quote to fail")
	}

	draft := newQuote(t, env, nil, decimal.Zero)
	if err := env.quotes.DeleteQuote(ctx, draft.ID); err != nil {
		t.Fatalf("delete draft: %v", err)
	}
}

func TestExpireStaleQuotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	quote := newQuote(t, env, nil, decimal.Zero)
	if _, err := env.quotes.SendQuote(ctx, quote.ID); err != nil {
		t.Fatalf("send: %v", err)
	}

	past := time.Now().UTC().Add(-24 * time.Hour)
	if err := env.db.Model(&entity.Quote{}).Where("id = ?", quote.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	// A draft past its expiry must be left alone.
	draft := newQuote(t, env, nil, decimal.Zero)
	if err := env.db.Model(&entity.Quote{}).Where("id = ?", draft.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	expired, err := env.quotes.ExpireStaleQuotes(ctx)
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expired got %d", expired)
	}

	reloaded, err := env.quotes.GetQuote(ctx, quote.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != enum.QuoteStatusExpired {
		t.Fatalf("expected expired got %s", reloaded.Status)
	}
}
