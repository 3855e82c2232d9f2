package handler

import (
	"github.com/fieldsync/fieldsync-api/internal/application/service"
	"github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/dto/request"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/dto/response"
	"github.com/fieldsync/fieldsync-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// TechnicianHandler handles technician-related HTTP requests
type TechnicianHandler struct {
	technicianService *service.TechnicianService
}

// NewTechnicianHandler creates a new technician handler
func NewTechnicianHandler(technicianService *service.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{technicianService: technicianService}
}

// Create handles technician creation
func (h *TechnicianHandler) Create(c *gin.Context) {
	var req request.TechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	technician, err := h.technicianService.CreateTechnician(c.Request.Context(), &service.TechnicianInput{
		UserID:         ParseOptionalUUID(req.UserID),
		Name:           req.Name,
		Phone:          req.Phone,
		EmployeeNumber: req.EmployeeNumber,
		Specialty:      req.Specialty,
		Active:         req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Technician created", technician)
}

// Get handles retrieving a single technician
func (h *TechnicianHandler) Get(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid technician ID")
		return
	}

	technician, err := h.technicianService.GetTechnician(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Technician retrieved", technician)
}

// List handles listing technicians
func (h *TechnicianHandler) List(c *gin.Context) {
	params := &repository.TechnicianFilterParams{
		Pagination: QueryPagination(c),
		Search:     c.Query("search"),
		ActiveOnly: c.Query("active") == "true",
	}

	technicians, total, err := h.technicianService.ListTechnicians(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Technicians retrieved", technicians,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
}

// Update handles updating a technician
func (h *TechnicianHandler) Update(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid technician ID")
		return
	}

	var req request.UpdateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	technician, err := h.technicianService.UpdateTechnician(c.Request.Context(), id, &service.TechnicianInput{
		UserID:         ParseOptionalUUID(req.UserID),
		Name:           req.Name,
		Phone:          req.Phone,
		EmployeeNumber: req.EmployeeNumber,
		Specialty:      req.Specialty,
		Active:         req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Technician updated", technician)
}

// Delete handles deleting a technician
func (h *TechnicianHandler) Delete(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid technician ID")
		return
	}

	if err := h.technicianService.DeleteTechnician(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
