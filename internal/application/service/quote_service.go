package service

import (
	"context"
	"log"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/pkg/apperror"
	"github.com/fieldsync/fieldsync-api/pkg/email"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteService handles the quote lifecycle: drafting, sending, customer
// sign-off and expiry. Conversion to a job lives in ConversionService.
type QuoteService struct {
	quoteRepo     repository.QuoteRepository
	quoteItemRepo repository.QuoteItemRepository
	customerRepo  repository.CustomerRepository
	settingsRepo  repository.SettingsRepository
	numbering     *NumberingService
	emailService  *email.EmailService
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	quoteItemRepo repository.QuoteItemRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
	numbering *NumberingService,
	emailService *email.EmailService,
) *QuoteService {
	return &QuoteService{
		quoteRepo:     quoteRepo,
		quoteItemRepo: quoteItemRepo,
		customerRepo:  customerRepo,
		settingsRepo:  settingsRepo,
		numbering:     numbering,
		emailService:  emailService,
	}
}

// QuoteItemInput represents a line item input
type QuoteItemInput struct {
	Name        string
	Description *string
	ItemType    enum.ItemType
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// CreateQuoteInput represents the input for creating a quote
type CreateQuoteInput struct {
	CreatedByID    uuid.UUID
	CustomerID     *uuid.UUID
	Title          string
	Description    *string
	DiscountAmount decimal.Decimal
	Items          []QuoteItemInput
}

// UpdateQuoteInput represents the input for updating a quote. Items replace
// the existing set wholesale.
type UpdateQuoteInput struct {
	Title          *string
	Description    *string
	CustomerID     *uuid.UUID
	DiscountAmount *decimal.Decimal
	Items          []QuoteItemInput
}

// CreateQuote creates a new draft quote, allocating its number and computing
// totals from the items.
func (s *QuoteService) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
	if input.Title == "" {
		return nil, apperror.NewBadRequestError("Title is required")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Company settings")
	}

	number, err := s.numbering.NextNumber(ctx, enum.DocumentTypeQuote)
	if err != nil {
		return nil, err
	}

	items := buildQuoteItems(input.Items)
	subtotal, taxAmount, total := quoteTotals(items, input.DiscountAmount, settings.VATRate)

	expiresAt := time.Now().UTC().AddDate(0, 0, settings.QuoteValidityDays)

	quote := &entity.Quote{
		QuoteNumber:    number,
		CustomerID:     input.CustomerID,
		CreatedByID:    input.CreatedByID,
		Title:          input.Title,
		Description:    input.Description,
		Status:         enum.QuoteStatusDraft,
		Subtotal:       subtotal,
		TaxRate:        settings.VATRate,
		TaxAmount:      taxAmount,
		DiscountAmount: input.DiscountAmount,
		TotalAmount:    total,
		ExpiresAt:      &expiresAt,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].QuoteID = quote.ID
	}
	if len(items) > 0 {
		if err := s.quoteItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}
	quote.Items = items

	return quote, nil
}

// GetQuote retrieves a quote with its items
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotes retrieves quotes with pagination and filtering
func (s *QuoteService) ListQuotes(ctx context.Context, params *repository.QuoteFilterParams) ([]entity.Quote, int64, error) {
	return s.quoteRepo.List(ctx, params)
}

// UpdateQuote updates a draft or sent quote, replacing its items wholesale
// and recomputing totals.
func (s *QuoteService) UpdateQuote(ctx context.Context, id uuid.UUID, input *UpdateQuoteInput) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Status != enum.QuoteStatusDraft && quote.Status != enum.QuoteStatusSent {
		return nil, apperror.NewInvalidTransitionError("Only draft or sent quotes can be edited")
	}

	if input.Title != nil {
		quote.Title = *input.Title
	}
	if input.Description != nil {
		quote.Description = input.Description
	}
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		quote.CustomerID = input.CustomerID
	}
	if input.DiscountAmount != nil {
		quote.DiscountAmount = *input.DiscountAmount
	}

	items := quote.Items
	if input.Items != nil {
		items = buildQuoteItems(input.Items)
		for i := range items {
			items[i].QuoteID = quote.ID
		}
	}

	quote.Subtotal, quote.TaxAmount, quote.TotalAmount = quoteTotals(items, quote.DiscountAmount, quote.TaxRate)

	// Item replacement and the totals update commit together, so a failed
	// insert never leaves a quote without its items.
	if input.Items != nil {
		if err := s.quoteRepo.UpdateWithItems(ctx, quote, items); err != nil {
			return nil, err
		}
	} else if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	quote.Items = items

	return quote, nil
}

// DeleteQuote removes a quote. Only drafts can be deleted.
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}
	if quote.Status != enum.QuoteStatusDraft {
		return apperror.NewInvalidTransitionError("Only draft quotes can be deleted")
	}
	return s.quoteRepo.Delete(ctx, id)
}

// SendQuote marks a draft quote as sent and emails the customer when they
// have an email address on file. A mail failure does not roll back the
// status change.
func (s *QuoteService) SendQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.transition(ctx, id, enum.QuoteStatusSent)
	if err != nil {
		return nil, err
	}

	if s.emailService != nil && quote.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *quote.CustomerID)
		if err == nil && customer != nil && customer.Email != nil {
			settings, _ := s.settingsRepo.Get(ctx)
			companyName := ""
			if settings != nil {
				companyName = settings.CompanyName
			}
			expires := ""
			if quote.ExpiresAt != nil {
				expires = quote.ExpiresAt.Format("2006-01-02")
			}
			data := email.QuoteEmailData{
				CustomerName: customer.Name,
				QuoteNumber:  quote.QuoteNumber,
				Title:        quote.Title,
				TotalAmount:  quote.TotalAmount.StringFixed(2),
				ExpiresAt:    expires,
				CompanyName:  companyName,
			}
			if err := s.emailService.SendQuoteEmail(*customer.Email, data); err != nil {
				log.Printf("Failed to send quote email for %s: %v", quote.QuoteNumber, err)
			}
		}
	}

	return quote, nil
}

// MarkViewed records that the customer opened the quote
func (s *QuoteService) MarkViewed(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	return s.transition(ctx, id, enum.QuoteStatusViewed)
}

// ApproveQuoteInput carries the optional customer sign-off captured on
// approval.
type ApproveQuoteInput struct {
	Signature *string
	SignedBy  *string
}

// ApproveQuote marks the quote approved, recording the signature when given
func (s *QuoteService) ApproveQuote(ctx context.Context, id uuid.UUID, input *ApproveQuoteInput) (*entity.Quote, error) {
	quote, err := s.loadForTransition(ctx, id, enum.QuoteStatusApproved)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote.Status = enum.QuoteStatusApproved
	quote.ApprovedAt = &now
	if input != nil && input.Signature != nil {
		quote.CustomerSignature = input.Signature
		quote.SignedBy = input.SignedBy
		quote.SignedAt = &now
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// DeclineQuote marks the quote declined
func (s *QuoteService) DeclineQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	return s.transition(ctx, id, enum.QuoteStatusDeclined)
}

// ExpireStaleQuotes moves sent and viewed quotes past their expiry to
// expired. Run periodically from the background sweeper.
func (s *QuoteService) ExpireStaleQuotes(ctx context.Context) (int64, error) {
	return s.quoteRepo.ExpireStale(ctx, time.Now().UTC())
}

func (s *QuoteService) loadForTransition(ctx context.Context, id uuid.UUID, next enum.QuoteStatus) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if !quote.Status.CanTransitionTo(next) {
		return nil, apperror.NewInvalidTransitionError(
			"Quote cannot move from " + quote.Status.String() + " to " + next.String())
	}
	return quote, nil
}

func (s *QuoteService) transition(ctx context.Context, id uuid.UUID, next enum.QuoteStatus) (*entity.Quote, error) {
	quote, err := s.loadForTransition(ctx, id, next)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote.Status = next
	switch next {
	case enum.QuoteStatusSent:
		quote.SentAt = &now
	case enum.QuoteStatusViewed:
		quote.ViewedAt = &now
	case enum.QuoteStatusDeclined:
		quote.DeclinedAt = &now
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func buildQuoteItems(inputs []QuoteItemInput) []entity.QuoteItem {
	items := make([]entity.QuoteItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, entity.QuoteItem{
			Name:        in.Name,
			Description: in.Description,
			ItemType:    in.ItemType,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  in.Quantity.Mul(in.UnitPrice).Round(2),
			SortOrder:   i,
		})
	}
	return items
}

// quoteTotals computes subtotal, tax and total. Discount-type items reduce
// the subtotal; tax applies after the order-level discount.
func quoteTotals(items []entity.QuoteItem, discount, taxRate decimal.Decimal) (subtotal, taxAmount, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		if item.ItemType == enum.ItemTypeDiscount {
			subtotal = subtotal.Sub(item.TotalPrice)
		} else {
			subtotal = subtotal.Add(item.TotalPrice)
		}
	}
	taxable := subtotal.Sub(discount)
	taxAmount = taxable.Mul(taxRate).Round(2)
	total = taxable.Add(taxAmount)
	return subtotal.Round(2), taxAmount, total.Round(2)
}
