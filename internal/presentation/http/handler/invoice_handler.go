package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/application/service"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/dto/request"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/dto/response"
	"github.com/fieldsync/fieldsync-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Generate creates an invoice from a completed job
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req request.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	invoice, err := h.invoiceService.GenerateFromJob(c.Request.Context(), &service.GenerateInvoiceInput{
		JobID:             jobID,
		DueDays:           req.DueDays,
		AdditionalCharges: req.AdditionalCharges,
		DiscountAmount:    req.DiscountAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice generated", invoice)
}

// Get handles retrieving a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved", invoice)
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &repository.InvoiceFilterParams{
		Pagination: QueryPagination(c),
		Search:     c.Query("search"),
		CustomerID: ParseOptionalUUID(queryPtr(c, "customer_id")),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if status, ok := parseInvoiceStatus(c.Query("status")); ok {
		params.Status = &status
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved", invoices,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
}

// MarkPaid records payment on an invoice
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice marked paid", invoice)
}

// Void voids an invoice
func (h *InvoiceHandler) Void(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.VoidInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice voided", invoice)
}

// Export streams the invoice register as an .xlsx download
func (h *InvoiceHandler) Export(c *gin.Context) {
	data, err := h.invoiceService.ExportRegister(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Print sends the invoice to the configured thermal printer
func (h *InvoiceHandler) Print(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.PrintInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice sent to printer", nil)
}

func parseInvoiceStatus(s string) (enum.InvoiceStatus, bool) {
	switch s {
	case "issued":
		return enum.InvoiceStatusIssued, true
	case "paid":
		return enum.InvoiceStatusPaid, true
	case "overdue":
		return enum.InvoiceStatusOverdue, true
	case "void":
		return enum.InvoiceStatusVoid, true
	}
	return enum.InvoiceStatusIssued, false
}
