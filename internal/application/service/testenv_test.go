package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	infra "github.com/fieldsync/fieldsync-api/internal/infrastructure/repository"
	"github.com/fieldsync/fieldsync-api/pkg/printer"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	numbering  *NumberingService
	quotes     *QuoteService
	jobs       *JobService
	conversion *ConversionService
	invoices   *InvoiceService
	sync       *SyncService
	settings   *SettingsService
	user       *entity.User
	customer   *entity.Customer
}

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&entity.User{},
		&entity.Customer{},
		&entity.Technician{},
		&entity.CompanySettings{},
		&entity.Quote{},
		&entity.QuoteItem{},
		&entity.Job{},
		&entity.JobChecklist{},
		&entity.ChecklistItem{},
		&entity.JobPart{},
		&entity.JobNote{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.SyncAction{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t, t.Name())

	settings := &entity.CompanySettings{
		CompanyName:       "Atlas Field Services",
		VATRegistration:   "311111111111113",
		QuotePrefix:       "QUO-",
		InvoicePrefix:     "INV-",
		JobPrefix:         "JOB-",
		NextQuoteNumber:   1000,
		NextInvoiceNumber: 1000,
		NextJobNumber:     1000,
		VATRate:           decimal.RequireFromString("0.15"),
		DefaultHourlyRate: decimal.NewFromInt(150),
		DefaultDueDays:    30,
		QuoteValidityDays: 30,
		ZATCAEnabled:      true,
	}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	user := &entity.User{
		FirstName: "Dina",
		Email:     fmt.Sprintf("%s@example.com", t.Name()),
		Password:  "hash",
		Role:      entity.RoleDispatcher,
		Active:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	customer := &entity.Customer{Name: "Najd Trading Co"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	settingsRepo := infra.NewSettingsRepository(db)
	quoteRepo := infra.NewQuoteRepository(db)
	quoteItemRepo := infra.NewQuoteItemRepository(db)
	jobRepo := infra.NewJobRepository(db)
	checklistRepo := infra.NewChecklistRepository(db)
	jobPartRepo := infra.NewJobPartRepository(db)
	jobNoteRepo := infra.NewJobNoteRepository(db)
	invoiceRepo := infra.NewInvoiceRepository(db)
	customerRepo := infra.NewCustomerRepository(db)
	technicianRepo := infra.NewTechnicianRepository(db)
	syncRepo := infra.NewSyncRepository(db)

	numbering := NewNumberingService(settingsRepo, quoteRepo, invoiceRepo, jobRepo)
	quotes := NewQuoteService(quoteRepo, quoteItemRepo, customerRepo, settingsRepo, numbering, nil)
	jobs := NewJobService(jobRepo, checklistRepo, jobPartRepo, jobNoteRepo, customerRepo, technicianRepo, numbering)
	conversion := NewConversionService(quoteRepo, jobRepo, numbering)
	invoices := NewInvoiceService(invoiceRepo, jobRepo, checklistRepo, jobPartRepo, customerRepo, settingsRepo, numbering, nil, printer.NewNullPrinter())
	syncSvc := NewSyncService(syncRepo, jobs, 10, 3, 5*time.Second)

	return &testEnv{
		db:         db,
		numbering:  numbering,
		quotes:     quotes,
		jobs:       jobs,
		conversion: conversion,
		invoices:   invoices,
		sync:       syncSvc,
		settings:   NewSettingsService(settingsRepo),
		user:       user,
		customer:   customer,
	}
}

// completedJob creates a job with the given checklist items, walks it to
// completed and returns it.
func (e *testEnv) completedJob(t *testing.T, estimated decimal.Decimal, items []ChecklistItemInput) *entity.Job {
	t.Helper()
	ctx := t.Context()

	job, err := e.jobs.CreateJob(ctx, &CreateJobInput{
		CreatedByID:    e.user.ID,
		CustomerID:     &e.customer.ID,
		Title:          "AC maintenance",
		EstimatedCost:  estimated,
		ChecklistItems: items,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if _, err := e.jobs.StartJob(ctx, job.ID); err != nil {
		t.Fatalf("start job: %v", err)
	}
	for _, item := range job.Checklist.Items {
		if _, err := e.jobs.ToggleChecklistItem(ctx, item.ID, true); err != nil {
			t.Fatalf("toggle item: %v", err)
		}
	}
	job, err = e.jobs.CompleteJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("complete job: %v", err)
	}
	return job
}
