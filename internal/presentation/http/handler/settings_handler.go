package handler

import (
	"github.com/fieldsync/fieldsync-api/internal/application/service"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/dto/request"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles company settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the company settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved", settings)
}

// Update handles partial updates to the company settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		CompanyName:       req.CompanyName,
		VATRegistration:   req.VATRegistration,
		Address:           req.Address,
		Phone:             req.Phone,
		Currency:          req.Currency,
		QuotePrefix:       req.QuotePrefix,
		InvoicePrefix:     req.InvoicePrefix,
		JobPrefix:         req.JobPrefix,
		NextQuoteNumber:   req.NextQuoteNumber,
		NextInvoiceNumber: req.NextInvoiceNumber,
		NextJobNumber:     req.NextJobNumber,
		VATRate:           req.VATRate,
		DefaultHourlyRate: req.DefaultHourlyRate,
		DefaultDueDays:    req.DefaultDueDays,
		QuoteValidityDays: req.QuoteValidityDays,
		ZATCAEnabled:      req.ZATCAEnabled,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated", settings)
}
