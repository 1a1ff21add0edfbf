package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/repository"
	"github.com/formaplace/formaplace-backend/internal/response"
	"github.com/formaplace/formaplace-backend/internal/service"
	"github.com/formaplace/formaplace-backend/internal/validator"
)

// ReviewHandler handles the expert review endpoints.
type ReviewHandler struct {
	formationService *service.FormationService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(formationService *service.FormationService) *ReviewHandler {
	return &ReviewHandler{formationService: formationService}
}

// ListPending godoc
// GET /api/v1/expert/formations/pending
// Formations waiting for expert approval.
func (h *ReviewHandler) ListPending(c *gin.Context) {
	formations, err := h.formationService.ListPendingExpert(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"formations": formations})
}

// GetFormation godoc
// GET /api/v1/expert/formations/:id
// Full content hierarchy for review, regardless of publication state.
func (h *ReviewHandler) GetFormation(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	formation, err := h.formationService.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrFormationNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"formation": formation})
}

// Approve godoc
// POST /api/v1/expert/formations/:id/approve
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.formationService.ApproveByExpert(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrFormationNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ReviewChapter godoc
// POST /api/v1/expert/chapters/:id/review
// Records an accept/reject verdict with an optional comment for the trainer.
func (h *ReviewHandler) ReviewChapter(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReviewChapterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.formationService.ReviewChapter(c.Request.Context(), id, &req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
