package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/pkg/apperror"
	"github.com/fieldsync/fieldsync-api/pkg/email"
	"github.com/fieldsync/fieldsync-api/pkg/printer"
	"github.com/fieldsync/fieldsync-api/pkg/zatca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// laborShare is the fraction of a job's estimated cost attributed to labor
// when deriving per-item labor rates.
var laborShare = decimal.NewFromFloat(0.6)

// InvoiceService generates invoices from completed jobs and handles the
// payment lifecycle, register export and thermal printing.
type InvoiceService struct {
	invoiceRepo   repository.InvoiceRepository
	jobRepo       repository.JobRepository
	checklistRepo repository.ChecklistRepository
	jobPartRepo   repository.JobPartRepository
	customerRepo  repository.CustomerRepository
	settingsRepo  repository.SettingsRepository
	numbering     *NumberingService
	emailService  *email.EmailService
	printer       printer.Printer
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	jobRepo repository.JobRepository,
	checklistRepo repository.ChecklistRepository,
	jobPartRepo repository.JobPartRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
	numbering *NumberingService,
	emailService *email.EmailService,
	prn printer.Printer,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:   invoiceRepo,
		jobRepo:       jobRepo,
		checklistRepo: checklistRepo,
		jobPartRepo:   jobPartRepo,
		customerRepo:  customerRepo,
		settingsRepo:  settingsRepo,
		numbering:     numbering,
		emailService:  emailService,
		printer:       prn,
	}
}

// GenerateInvoiceInput represents the input for generating an invoice from a
// completed job.
type GenerateInvoiceInput struct {
	JobID             uuid.UUID
	DueDays           *int
	AdditionalCharges decimal.Decimal
	DiscountAmount    decimal.Decimal
}

// GenerateFromJob creates the invoice for a completed job. Labor is derived
// from completed required checklist items, parts from recorded usage; the
// monetary fields and the ZATCA QR payload are written with the line items in
// a single transaction and never recomputed afterwards.
func (s *InvoiceService) GenerateFromJob(ctx context.Context, input *GenerateInvoiceInput) (*entity.Invoice, error) {
	job, err := s.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}
	if job.Status != enum.JobStatusCompleted {
		return nil, apperror.NewInvalidTransitionError("Job must be completed before invoicing")
	}

	existing, err := s.invoiceRepo.GetByJobID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Job already has an invoice " + existing.InvoiceNumber)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Company settings")
	}

	checklist, err := s.checklistRepo.GetByJobID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	parts, err := s.jobPartRepo.GetByJobID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	number, err := s.numbering.NextNumber(ctx, enum.DocumentTypeInvoice)
	if err != nil {
		return nil, err
	}

	var items []entity.InvoiceItem

	laborCost := decimal.Zero
	if checklist != nil {
		rate := laborRate(job.EstimatedCost, checklist, settings.DefaultHourlyRate)
		for _, item := range checklist.Items {
			if !item.Required || !item.Completed {
				continue
			}
			laborCost = laborCost.Add(rate)
			items = append(items, entity.InvoiceItem{
				Description: item.Text,
				ItemType:    enum.ItemTypeLabor,
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   rate,
				TotalPrice:  rate,
			})
		}
	}
	laborCost = laborCost.Round(2)

	partsCost := decimal.Zero
	for _, part := range parts {
		total := part.TotalCost().Round(2)
		partsCost = partsCost.Add(total)
		items = append(items, entity.InvoiceItem{
			Description: part.Name,
			ItemType:    enum.ItemTypePart,
			Quantity:    part.QuantityUsed,
			UnitPrice:   part.UnitCost,
			TotalPrice:  total,
		})
	}

	if input.AdditionalCharges.IsPositive() {
		items = append(items, entity.InvoiceItem{
			Description: "Additional charges",
			ItemType:    enum.ItemTypeFee,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   input.AdditionalCharges,
			TotalPrice:  input.AdditionalCharges,
		})
	}
	for i := range items {
		items[i].SortOrder = i
	}

	subtotal := laborCost.Add(partsCost).Add(input.AdditionalCharges).Round(2)
	taxable := subtotal.Sub(input.DiscountAmount)
	vatAmount := taxable.Mul(settings.VATRate).Round(2)
	totalAmount := taxable.Add(vatAmount).Round(2)

	dueDays := settings.DefaultDueDays
	if input.DueDays != nil && *input.DueDays > 0 {
		dueDays = *input.DueDays
	}
	issuedAt := time.Now().UTC()

	invoice := &entity.Invoice{
		InvoiceNumber:     number,
		JobID:             job.ID,
		CustomerID:        job.CustomerID,
		Status:            enum.InvoiceStatusIssued,
		LaborCost:         laborCost,
		PartsCost:         partsCost,
		AdditionalCharges: input.AdditionalCharges,
		Subtotal:          subtotal,
		DiscountAmount:    input.DiscountAmount,
		VATRate:           settings.VATRate,
		VATAmount:         vatAmount,
		TotalAmount:       totalAmount,
		IssuedAt:          issuedAt,
		DueAt:             issuedAt.AddDate(0, 0, dueDays),
	}

	if settings.ZATCAEnabled {
		qr, err := zatca.EncodeQR(zatca.Invoice{
			SellerName: settings.CompanyName,
			VATNumber:  settings.VATRegistration,
			Timestamp:  issuedAt,
			Total:      totalAmount.StringFixed(2),
			VATAmount:  vatAmount.StringFixed(2),
		})
		if err != nil {
			return nil, err
		}
		invoice.ZATCAQRCode = qr
	}

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice, items); err != nil {
		return nil, err
	}
	invoice.Items = items

	s.notifyCustomer(ctx, invoice, settings.CompanyName)

	return invoice, nil
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices retrieves invoices with pagination and filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return s.invoiceRepo.List(ctx, params)
}

// MarkPaid records payment on an issued or overdue invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.InvoiceStatusIssued && invoice.Status != enum.InvoiceStatusOverdue {
		return nil, apperror.NewInvalidTransitionError("Only issued or overdue invoices can be marked paid")
	}

	now := time.Now().UTC()
	invoice.Status = enum.InvoiceStatusPaid
	invoice.PaidAt = &now

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// VoidInvoice voids an issued or overdue invoice
func (s *InvoiceService) VoidInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.InvoiceStatusIssued && invoice.Status != enum.InvoiceStatusOverdue {
		return nil, apperror.NewInvalidTransitionError("Only issued or overdue invoices can be voided")
	}

	invoice.Status = enum.InvoiceStatusVoid

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// MarkOverdueInvoices flips issued invoices past their due date to overdue.
// Run periodically from the background sweeper.
func (s *InvoiceService) MarkOverdueInvoices(ctx context.Context) (int64, error) {
	return s.invoiceRepo.MarkOverdue(ctx, time.Now().UTC())
}

// ExportRegister writes the full invoice register to an .xlsx workbook and
// returns its bytes.
func (s *InvoiceService) ExportRegister(ctx context.Context) ([]byte, error) {
	invoices, err := s.invoiceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoices"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice #", "Customer", "Status", "Issued", "Due",
		"Labor", "Parts", "Subtotal", "Discount", "VAT", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, inv := range invoices {
		customerName := ""
		if inv.Customer != nil {
			customerName = inv.Customer.Name
		}
		values := []interface{}{
			inv.InvoiceNumber,
			customerName,
			inv.Status.String(),
			inv.IssuedAt.Format("2006-01-02"),
			inv.DueAt.Format("2006-01-02"),
			inv.LaborCost.InexactFloat64(),
			inv.PartsCost.InexactFloat64(),
			inv.Subtotal.InexactFloat64(),
			inv.DiscountAmount.InexactFloat64(),
			inv.VATAmount.InexactFloat64(),
			inv.TotalAmount.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write invoice register: %w", err)
	}
	return buf.Bytes(), nil
}

// PrintInvoice renders the invoice as an ESC/POS receipt, including the
// ZATCA QR when present, and sends it to the configured printer.
func (s *InvoiceService) PrintInvoice(ctx context.Context, id uuid.UUID) error {
	if s.printer == nil {
		return apperror.NewBadRequestError("No printer configured")
	}

	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}

	doc := printer.NewDocument(32).Init()

	doc.SetAlign(printer.AlignCenter).SetBold(true).SetFontSize(printer.FontDouble)
	if settings != nil {
		doc.Text(settings.CompanyName)
	}
	doc.SetFontSize(printer.FontNormal).SetBold(false)
	if settings != nil && settings.VATRegistration != "" {
		doc.Text("VAT: " + settings.VATRegistration)
	}
	doc.FeedLines(1)

	doc.SetAlign(printer.AlignLeft)
	doc.KeyValue("Invoice", invoice.InvoiceNumber)
	doc.KeyValue("Date", invoice.IssuedAt.Format("2006-01-02"))
	if invoice.Customer != nil {
		doc.KeyValue("Customer", invoice.Customer.Name)
	}
	doc.Separator('-')

	for _, item := range invoice.Items {
		doc.ItemLine(int(item.Quantity.IntPart()), item.Description, item.TotalPrice.StringFixed(2))
	}

	doc.Separator('-')
	doc.KeyValue("Subtotal", invoice.Subtotal.StringFixed(2))
	if invoice.DiscountAmount.IsPositive() {
		doc.KeyValue("Discount", "-"+invoice.DiscountAmount.StringFixed(2))
	}
	doc.KeyValue("VAT", invoice.VATAmount.StringFixed(2))
	doc.SetBold(true)
	doc.KeyValue("TOTAL", invoice.TotalAmount.StringFixed(2))
	doc.SetBold(false)

	if invoice.ZATCAQRCode != "" {
		doc.FeedLines(1)
		doc.SetAlign(printer.AlignCenter)
		doc.QRCode(invoice.ZATCAQRCode, 4)
	}

	doc.FeedLines(2).Cut()

	return s.printer.Print(doc.Bytes())
}

func (s *InvoiceService) notifyCustomer(ctx context.Context, invoice *entity.Invoice, companyName string) {
	if s.emailService == nil || invoice.CustomerID == nil {
		return
	}
	customer, err := s.customerRepo.GetByID(ctx, *invoice.CustomerID)
	if err != nil || customer == nil || customer.Email == nil {
		return
	}
	data := email.InvoiceEmailData{
		CustomerName:  customer.Name,
		InvoiceNumber: invoice.InvoiceNumber,
		TotalAmount:   invoice.TotalAmount.StringFixed(2),
		DueDate:       invoice.DueAt.Format("2006-01-02"),
		CompanyName:   companyName,
	}
	if err := s.emailService.SendInvoiceEmail(*customer.Email, data); err != nil {
		log.Printf("Failed to send invoice email for %s: %v", invoice.InvoiceNumber, err)
	}
}

// laborRate picks the per-item labor rate: a 60% share of the job's estimate
// spread across required checklist items when an estimate exists, otherwise
// the default hourly rate.
func laborRate(estimatedCost decimal.Decimal, checklist *entity.JobChecklist, defaultRate decimal.Decimal) decimal.Decimal {
	required := 0
	for _, item := range checklist.Items {
		if item.Required {
			required++
		}
	}
	if estimatedCost.IsPositive() && required > 0 {
		return estimatedCost.Mul(laborShare).Div(decimal.NewFromInt(int64(required))).Round(2)
	}
	return defaultRate
}
