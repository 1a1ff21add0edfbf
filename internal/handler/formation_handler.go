package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formaplace/formaplace-backend/internal/middleware"
	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/repository"
	"github.com/formaplace/formaplace-backend/internal/response"
	"github.com/formaplace/formaplace-backend/internal/service"
	"github.com/formaplace/formaplace-backend/internal/validator"
)

// FormationHandler handles the trainer-facing formation and content
// hierarchy endpoints. Every operation is scoped to the caller's own
// formations.
type FormationHandler struct {
	formationService *service.FormationService
}

// NewFormationHandler creates a new FormationHandler.
func NewFormationHandler(formationService *service.FormationService) *FormationHandler {
	return &FormationHandler{formationService: formationService}
}

// List godoc
// GET /api/v1/trainer/formations
func (h *FormationHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	formations, err := h.formationService.ListByTrainer(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"formations": formations})
}

// Create godoc
// POST /api/v1/trainer/formations
func (h *FormationHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpsertFormationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	formation, err := h.formationService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"formation": formation})
}

// Get godoc
// GET /api/v1/trainer/formations/:id
// Returns the formation with its full chapter/part/resource hierarchy.
func (h *FormationHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	formation, err := h.formationService.GetOwnedDetail(c.Request.Context(), claims.UserID, id)
	if err != nil {
		h.failOwned(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"formation": formation})
}

// Update godoc
// PUT /api/v1/trainer/formations/:id
// Editing resets both approval flags; the formation must be re-reviewed.
func (h *FormationHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpsertFormationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	formation, err := h.formationService.Update(c.Request.Context(), claims.UserID, id, &req)
	if err != nil {
		h.failOwned(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"formation": formation})
}

// Delete godoc
// DELETE /api/v1/trainer/formations/:id
func (h *FormationHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.formationService.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		h.failOwned(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// AddChapter godoc
// POST /api/v1/trainer/formations/:id/chapters
func (h *FormationHandler) AddChapter(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	formationID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpsertChapterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	chapter, err := h.formationService.AddChapter(c.Request.Context(), claims.UserID, formationID, &req)
	if err != nil {
		h.failOwned(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"chapter": chapter})
}

// UpdateChapter godoc
// PUT /api/v1/trainer/chapters/:id
func (h *FormationHandler) UpdateChapter(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	chapterID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpsertChapterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	chapter, err := h.formationService.UpdateChapter(c.Request.Context(), claims.UserID, chapterID, &req)
	if err != nil {
		h.failOwned(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"chapter": chapter})
}

// DeleteChapter godoc
// DELETE /api/v1/trainer/chapters/:id
func (h *FormationHandler) DeleteChapter(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	chapterID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.formationService.DeleteChapter(c.Request.Context(), claims.UserID, chapterID); err != nil {
		h.failOwned(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// AddPart godoc
// POST /api/v1/trainer/chapters/:id/parts
func (h *FormationHandler) AddPart(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	chapterID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpsertPartRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	part, err := h.formationService.AddPart(c.Request.Context(), claims.UserID, chapterID, &req)
	if err != nil {
		h.failOwned(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"part": part})
}

// DeletePart godoc
// DELETE /api/v1/trainer/parts/:id
func (h *FormationHandler) DeletePart(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	partID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.formationService.DeletePart(c.Request.Context(), claims.UserID, partID); err != nil {
		h.failOwned(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// AddResource godoc
// POST /api/v1/trainer/parts/:id/resources
func (h *FormationHandler) AddResource(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	partID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddResourceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resource, err := h.formationService.AddResource(c.Request.Context(), claims.UserID, partID, &req)
	if err != nil {
		h.failOwned(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"resource": resource})
}

// DeleteResource godoc
// DELETE /api/v1/trainer/resources/:id
func (h *FormationHandler) DeleteResource(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	resourceID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.formationService.DeleteResource(c.Request.Context(), claims.UserID, resourceID); err != nil {
		h.failOwned(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// failOwned maps the shared error cases of owned-formation operations.
func (h *FormationHandler) failOwned(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrFormationNotFound)
	case errors.Is(err, service.ErrNotFormationOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotFormationOwner)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
