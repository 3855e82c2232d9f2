package handler

import (
	"github.com/fieldsync/fieldsync-api/internal/application/service"
	"github.com/fieldsync/fieldsync-api/internal/domain/enum"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/dto/request"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/dto/response"
	"github.com/fieldsync/fieldsync-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService      *service.QuoteService
	conversionService *service.ConversionService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, conversionService *service.ConversionService) *QuoteHandler {
	return &QuoteHandler{
		quoteService:      quoteService,
		conversionService: conversionService,
	}
}

// Create handles quote creation
func (h *QuoteHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &service.CreateQuoteInput{
		CreatedByID:    *userID,
		CustomerID:     ParseOptionalUUID(req.CustomerID),
		Title:          req.Title,
		Description:    req.Description,
		DiscountAmount: req.DiscountAmount,
		Items:          quoteItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created", quote)
}

// Get handles retrieving a single quote
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved", quote)
}

// List handles listing quotes
func (h *QuoteHandler) List(c *gin.Context) {
	params := &repository.QuoteFilterParams{
		Pagination: QueryPagination(c),
		Search:     c.Query("search"),
		CustomerID: ParseOptionalUUID(queryPtr(c, "customer_id")),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if status, ok := parseQuoteStatus(c.Query("status")); ok {
		params.Status = &status
	}

	quotes, total, err := h.quoteService.ListQuotes(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved", quotes,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
}

// Update handles quote updates
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateQuoteInput{
		Title:          req.Title,
		Description:    req.Description,
		CustomerID:     ParseOptionalUUID(req.CustomerID),
		DiscountAmount: req.DiscountAmount,
	}
	if req.Items != nil {
		input.Items = quoteItemInputs(req.Items)
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated", quote)
}

// Delete handles quote deletion
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Send marks the quote sent and emails the customer
func (h *QuoteHandler) Send(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.SendQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote sent", quote)
}

// MarkViewed records that the customer opened the quote
func (h *QuoteHandler) MarkViewed(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.MarkViewed(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote marked viewed", quote)
}

// Approve handles quote approval with optional signature
func (h *QuoteHandler) Approve(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.ApproveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quoteService.ApproveQuote(c.Request.Context(), id, &service.ApproveQuoteInput{
		Signature: req.Signature,
		SignedBy:  req.SignedBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote approved", quote)
}

// Decline handles quote decline
func (h *QuoteHandler) Decline(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.DeclineQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote declined", quote)
}

// Convert turns an approved quote into a job
func (h *QuoteHandler) Convert(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, job, err := h.conversionService.ConvertQuoteToJob(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote converted", gin.H{
		"quote": quote,
		"job":   job,
	})
}

func quoteItemInputs(items []request.QuoteItemRequest) []service.QuoteItemInput {
	inputs := make([]service.QuoteItemInput, 0, len(items))
	for _, item := range items {
		itemType, _ := enum.ParseItemType(item.ItemType)
		inputs = append(inputs, service.QuoteItemInput{
			Name:        item.Name,
			Description: item.Description,
			ItemType:    itemType,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return inputs
}

func parseQuoteStatus(s string) (enum.QuoteStatus, bool) {
	switch s {
	case "draft":
		return enum.QuoteStatusDraft, true
	case "sent":
		return enum.QuoteStatusSent, true
	case "viewed":
		return enum.QuoteStatusViewed, true
	case "approved":
		return enum.QuoteStatusApproved, true
	case "declined":
		return enum.QuoteStatusDeclined, true
	case "expired":
		return enum.QuoteStatusExpired, true
	case "converted":
		return enum.QuoteStatusConverted, true
	}
	return enum.QuoteStatusDraft, false
}

func queryPtr(c *gin.Context, name string) *string {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	return &v
}
