package service

import (
	"testing"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/pkg/zatca"
	"github.com/shopspring/decimal"
)

func TestGenerateRequiresCompletedJob(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	job, err := env.jobs.CreateJob(ctx, &CreateJobInput{
		CreatedByID: env.user.ID,
		Title:       "Pending work",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	if _, err := env.invoices.GenerateFromJob(ctx, &GenerateInvoiceInput{JobID: job.ID}); err == nil {
		t.Fatal("expected invoicing a scheduled job to fail")
	}

	var count int64
	if err := env.db.Model(&entity.Invoice{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no invoice rows got %d", count)
	}
}

func TestGenerateDerivations(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	job := env.completedJob(t, decimal.NewFromInt(1000), []ChecklistItemInput{
		{Text: "Replace compressor", Required: true},
		{Text: "Vacuum and recharge", Required: true},
		{Text: "Wipe down unit", Required: false},
	})

	if _, err := env.jobs.AddPart(ctx, job.ID, &AddPartInput{
		Name:         "Run capacitor",
		UnitCost:     decimal.NewFromInt(50),
		QuantityUsed: decimal.NewFromInt(2),
	}); err != nil {
		t.Fatalf("add part: %v", err)
	}

	invoice, err := env.invoices.GenerateFromJob(ctx, &GenerateInvoiceInput{
		JobID:             job.ID,
		AdditionalCharges: decimal.NewFromInt(25),
		DiscountAmount:    decimal.NewFromInt(25),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if invoice.InvoiceNumber != "INV-1000" {
		t.Fatalf("expected INV-1000 got %s", invoice.InvoiceNumber)
	}
	// 60% of the 1000 estimate spread over 2 required items, both completed.
	if !invoice.LaborCost.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected labor 600 got %s", invoice.LaborCost)
	}
	if !invoice.PartsCost.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected parts 100 got %s", invoice.PartsCost)
	}
	if !invoice.Subtotal.Equal(decimal.NewFromInt(725)) {
		t.Fatalf("expected subtotal 725 got %s", invoice.Subtotal)
	}
	// (725 - 25) * 0.15
	if !invoice.VATAmount.Equal(decimal.NewFromInt(105)) {
		t.Fatalf("expected VAT 105 got %s", invoice.VATAmount)
	}
	if !invoice.TotalAmount.Equal(decimal.NewFromInt(805)) {
		t.Fatalf("expected total 805 got %s", invoice.TotalAmount)
	}

	// labor x2 + part + fee
	if len(invoice.Items) != 4 {
		t.Fatalf("expected 4 line items got %d", len(invoice.Items))
	}

	fields, err := zatca.DecodeQR(invoice.ZATCAQRCode)
	if err != nil {
		t.Fatalf("decode QR: %v", err)
	}
	if fields[zatca.TagSellerName] != "Atlas Field Services" {
		t.Fatalf("unexpected seller %q", fields[zatca.TagSellerName])
	}
	if fields[zatca.TagTotal] != "805.00" {
		t.Fatalf("unexpected QR total %q", fields[zatca.TagTotal])
	}
	if fields[zatca.TagVATAmount] != "105.00" {
		t.Fatalf("unexpected QR VAT %q", fields[zatca.TagVATAmount])
	}
}

func TestGenerateEmptyJobUsesAdditionalCharges(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	job := env.completedJob(t, decimal.Zero, nil)

	invoice, err := env.invoices.GenerateFromJob(ctx, &GenerateInvoiceInput{
		JobID:             job.ID,
		AdditionalCharges: decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !invoice.LaborCost.IsZero() || !invoice.PartsCost.IsZero() {
		t.Fatalf("expected zero labor and parts, got %s / %s", invoice.LaborCost, invoice.PartsCost)
	}
	if !invoice.Subtotal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected subtotal 200 got %s", invoice.Subtotal)
	}
	// 200 * 0.15
	if !invoice.VATAmount.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected VAT 30 got %s", invoice.VATAmount)
	}
}

func TestGenerateTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	job := env.completedJob(t, decimal.Zero, nil)

	if _, err := env.invoices.GenerateFromJob(ctx, &GenerateInvoiceInput{JobID: job.ID}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := env.invoices.GenerateFromJob(ctx, &GenerateInvoiceInput{JobID: job.ID}); err == nil {
		t.Fatal("expected second invoice for the same job to fail")
	}
}

func TestVoidedInvoiceCanBeRegenerated(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	job := env.completedJob(t, decimal.Zero, nil)

	first, err := env.invoices.GenerateFromJob(ctx, &GenerateInvoiceInput{
		JobID:             job.ID,
		AdditionalCharges: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := env.invoices.VoidInvoice(ctx, first.ID); err != nil {
		t.Fatalf("void: %v", err)
	}

	second, err := env.invoices.GenerateFromJob(ctx, &GenerateInvoiceInput{
		JobID:             job.ID,
		AdditionalCharges: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("regenerate after void: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("expected a new invoice row")
	}
	if second.InvoiceNumber == first.InvoiceNumber {
		t.Fatalf("expected a fresh invoice number, got %s twice", second.InvoiceNumber)
	}
}

func TestMarkPaid(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	job := env.completedJob(t, decimal.Zero, nil)
	invoice, err := env.invoices.GenerateFromJob(ctx, &GenerateInvoiceInput{
		JobID:             job.ID,
		AdditionalCharges: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	paid, err := env.invoices.MarkPaid(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.Status != enum.InvoiceStatusPaid || paid.PaidAt == nil {
		t.Fatal("expected invoice to be paid with a timestamp")
	}

	if _, err := env.invoices.MarkPaid(ctx, invoice.ID); err == nil {
		t.Fatal("expected paying twice to fail")
	}
}

func TestZATCADisabledSkipsQR(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if err := env.db.Model(&entity.CompanySettings{}).Where("1 = 1").
		Update("zatca_enabled", false).Error; err != nil {
		t.Fatalf("disable zatca: %v", err)
	}

	job := env.completedJob(t, decimal.Zero, nil)
	invoice, err := env.invoices.GenerateFromJob(ctx, &GenerateInvoiceInput{
		JobID:             job.ID,
		AdditionalCharges: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if invoice.ZATCAQRCode != "" {
		t.Fatal("expected no QR payload when disabled")
	}
}
