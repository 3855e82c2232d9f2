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

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	jobService *service.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Create handles direct job creation
func (h *JobHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items := make([]service.ChecklistItemInput, 0, len(req.ChecklistItems))
	for _, item := range req.ChecklistItems {
		items = append(items, service.ChecklistItemInput{Text: item.Text, Required: item.Required})
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), &service.CreateJobInput{
		CreatedByID:    *userID,
		CustomerID:     ParseOptionalUUID(req.CustomerID),
		TechnicianID:   ParseOptionalUUID(req.TechnicianID),
		Title:          req.Title,
		Description:    req.Description,
		EstimatedCost:  req.EstimatedCost,
		ScheduledAt:    req.ScheduledAt,
		ChecklistItems: items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Job created", job)
}

// Get handles retrieving a single job with details
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job retrieved", job)
}

// List handles listing jobs
func (h *JobHandler) List(c *gin.Context) {
	params := &repository.JobFilterParams{
		Pagination:   QueryPagination(c),
		Search:       c.Query("search"),
		CustomerID:   ParseOptionalUUID(queryPtr(c, "customer_id")),
		TechnicianID: ParseOptionalUUID(queryPtr(c, "technician_id")),
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	}
	if status, ok := parseJobStatus(c.Query("status")); ok {
		params.Status = &status
	}

	jobs, total, err := h.jobService.ListJobs(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Jobs retrieved", jobs,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
}

// Update handles job updates
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	var req request.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), id, &service.UpdateJobInput{
		Title:         req.Title,
		Description:   req.Description,
		TechnicianID:  ParseOptionalUUID(req.TechnicianID),
		EstimatedCost: req.EstimatedCost,
		ScheduledAt:   req.ScheduledAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job updated", job)
}

// Start moves a job to in progress
func (h *JobHandler) Start(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.jobService.StartJob(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job started", job)
}

// Complete marks a job completed
func (h *JobHandler) Complete(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.jobService.CompleteJob(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job completed", job)
}

// Cancel cancels a job
func (h *JobHandler) Cancel(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.jobService.CancelJob(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job cancelled", job)
}

// ToggleChecklistItem sets a checklist item's completion state
func (h *JobHandler) ToggleChecklistItem(c *gin.Context) {
	itemID, ok := PathUUID(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid checklist item ID")
		return
	}

	var req request.ToggleChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.jobService.ToggleChecklistItem(c.Request.Context(), itemID, req.Completed)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Checklist item updated", item)
}

// AddPart records part usage on a job
func (h *JobHandler) AddPart(c *gin.Context) {
	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	var req request.AddPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	part, err := h.jobService.AddPart(c.Request.Context(), id, &service.AddPartInput{
		Name:         req.Name,
		PartNumber:   req.PartNumber,
		UnitCost:     req.UnitCost,
		QuantityUsed: req.QuantityUsed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Part recorded", part)
}

// RemovePart deletes a part usage record
func (h *JobHandler) RemovePart(c *gin.Context) {
	partID, ok := PathUUID(c, "partId")
	if !ok {
		response.BadRequest(c, "Invalid part ID")
		return
	}

	if err := h.jobService.RemovePart(c.Request.Context(), partID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddNote attaches a note to a job
func (h *JobHandler) AddNote(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := PathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	var req request.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	note, err := h.jobService.AddNote(c.Request.Context(), id, *userID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Note added", note)
}

func parseJobStatus(s string) (enum.JobStatus, bool) {
	switch s {
	case "scheduled":
		return enum.JobStatusScheduled, true
	case "in_progress":
		return enum.JobStatusInProgress, true
	case "completed":
		return enum.JobStatusCompleted, true
	case "cancelled":
		return enum.JobStatusCancelled, true
	}
	return enum.JobStatusScheduled, false
}
