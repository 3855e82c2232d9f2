package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestUpdateSettingsClampsCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	// Forward edits take effect.
	forward := 5000
	updated, err := env.settings.UpdateSettings(ctx, &UpdateSettingsInput{NextQuoteNumber: &forward})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.NextQuoteNumber != 5000 {
		t.Fatalf("expected 5000 got %d", updated.NextQuoteNumber)
	}

	// Backward edits are silently clamped so issued numbers stay unique.
	backward := 100
	updated, err = env.settings.UpdateSettings(ctx, &UpdateSettingsInput{NextQuoteNumber: &backward})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.NextQuoteNumber != 5000 {
		t.Fatalf("expected counter to stay at 5000, got %d", updated.NextQuoteNumber)
	}
}

func TestUpdateSettingsValidatesVATRate(t *testing.T) {
	env := newTestEnv(t)

	bad := decimal.NewFromInt(2)
	if _, err := env.settings.UpdateSettings(t.Context(), &UpdateSettingsInput{VATRate: &bad}); err == nil {
		t.Fatal("expected VAT rate above 1 to be rejected")
	}
}
