package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/pkg/apperror"
)

// casRetries bounds the allocation loop under writer contention.
const casRetries = 5

// NumberingService allocates document numbers for quotes, invoices and jobs
// from the counters on the settings row. Allocation is a compare-and-swap
// loop, so two concurrent requests can never receive the same number, and the
// counter is reconciled against the highest number already persisted for the
// prefix before each allocation.
type NumberingService struct {
	settingsRepo repository.SettingsRepository
	quoteRepo    repository.QuoteRepository
	invoiceRepo  repository.InvoiceRepository
	jobRepo      repository.JobRepository
}

// NewNumberingService creates a new numbering service
func NewNumberingService(
	settingsRepo repository.SettingsRepository,
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	jobRepo repository.JobRepository,
) *NumberingService {
	return &NumberingService{
		settingsRepo: settingsRepo,
		quoteRepo:    quoteRepo,
		invoiceRepo:  invoiceRepo,
		jobRepo:      jobRepo,
	}
}

// NextNumber allocates and returns the next formatted number for docType,
// e.g. "QUO-1000". The counter advance and the returned number come from the
// same CAS round, so a number handed out is never handed out again.
func (s *NumberingService) NextNumber(ctx context.Context, docType enum.DocumentType) (string, error) {
	if !docType.Valid() {
		return "", apperror.NewBadRequestError("Unknown document type")
	}

	for attempt := 0; attempt < casRetries; attempt++ {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return "", err
		}
		if settings == nil {
			return "", apperror.NewNotFoundError("Company settings")
		}

		prefix, counter := s.prefixAndCounter(settings, docType)

		// Reconciliation is best-effort; the CAS below still guards
		// uniqueness, so a failed lookup falls back to the counter alone.
		candidate := counter
		latest, found, err := s.latestExisting(ctx, docType, prefix)
		if err != nil {
			log.Printf("Number reconciliation for %s failed, using counter: %v", docType, err)
		} else if found {
			if n, ok := parseNumber(latest, prefix); ok && n+1 > candidate {
				candidate = n + 1
			}
		}

		swapped, err := s.settingsRepo.CompareAndSwapNextNumber(ctx, docType, counter, candidate+1)
		if err != nil {
			return "", err
		}
		if swapped {
			return FormatNumber(prefix, candidate), nil
		}
	}

	return "", apperror.NewConflictError("Could not allocate a document number, please retry")
}

func (s *NumberingService) prefixAndCounter(settings *entity.CompanySettings, docType enum.DocumentType) (string, int) {
	switch docType {
	case enum.DocumentTypeInvoice:
		return settings.InvoicePrefix, settings.NextInvoiceNumber
	case enum.DocumentTypeJob:
		return settings.JobPrefix, settings.NextJobNumber
	default:
		return settings.QuotePrefix, settings.NextQuoteNumber
	}
}

func (s *NumberingService) latestExisting(ctx context.Context, docType enum.DocumentType, prefix string) (string, bool, error) {
	switch docType {
	case enum.DocumentTypeInvoice:
		return s.invoiceRepo.LatestNumberWithPrefix(ctx, prefix)
	case enum.DocumentTypeJob:
		return s.jobRepo.LatestNumberWithPrefix(ctx, prefix)
	default:
		return s.quoteRepo.LatestNumberWithPrefix(ctx, prefix)
	}
}

// FormatNumber renders a document number as prefix plus the zero-padded
// sequence value, e.g. ("QUO-", 1000) -> "QUO-1000".
func FormatNumber(prefix string, n int) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}

func parseNumber(number, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(number, prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
