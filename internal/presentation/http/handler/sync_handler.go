package handler

import (
	"github.com/fieldsync/fieldsync-api/internal/application/service"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/dto/request"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SyncHandler handles offline sync queue HTTP requests
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Enqueue accepts an action recorded offline. Identical re-submissions are
// acknowledged without creating a second row, so clients can retry freely.
func (h *SyncHandler) Enqueue(c *gin.Context) {
	var req request.EnqueueSyncActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	input := &service.EnqueueInput{
		ActionType:    req.ActionType,
		Payload:       req.Payload,
		JobID:         ParseOptionalUUID(req.JobID),
		SubmittedByID: *userID,
	}
	if req.Timestamp != nil {
		input.Timestamp = *req.Timestamp
	}

	action, created, err := h.syncService.Enqueue(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if created {
		response.Created(c, "Action queued", action)
		return
	}
	response.OK(c, "Action already queued", action)
}

// ListPending returns actions waiting to be applied
func (h *SyncHandler) ListPending(c *gin.Context) {
	actions, err := h.syncService.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pending actions retrieved", actions)
}

// ListFailed returns actions that exhausted their retries
func (h *SyncHandler) ListFailed(c *gin.Context) {
	actions, err := h.syncService.ListFailed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Failed actions retrieved", actions)
}

// Drain triggers an immediate replay of due pending actions
func (h *SyncHandler) Drain(c *gin.Context) {
	applied, err := h.syncService.Drain(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Queue drained", gin.H{"applied": applied})
}
