package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/repository"
	"github.com/formaplace/formaplace-backend/internal/response"
	"github.com/formaplace/formaplace-backend/internal/service"
	"github.com/formaplace/formaplace-backend/internal/validator"
)

// DemandeHandler handles trainer-onboarding requests: public submission
// plus admin review.
type DemandeHandler struct {
	demandeService *service.DemandeService
	log            zerolog.Logger
}

// NewDemandeHandler creates a new DemandeHandler.
func NewDemandeHandler(demandeService *service.DemandeService, log zerolog.Logger) *DemandeHandler {
	return &DemandeHandler{demandeService: demandeService, log: log}
}

// Submit godoc
// POST /api/v1/public/demandes
func (h *DemandeHandler) Submit(c *gin.Context) {
	var req model.SubmitDemandeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	demande, err := h.demandeService.Submit(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"demande": demande})
}

// List godoc
// GET /api/v1/admin/demandes
func (h *DemandeHandler) List(c *gin.Context) {
	demandes, err := h.demandeService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"demandes": demandes})
}

// Accept godoc
// POST /api/v1/admin/demandes/:id/accept
// Creates the trainer account and mails the generated credentials. When the
// mail fails the demande survives so the admin can retry.
func (h *DemandeHandler) Accept(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	trainer, err := h.demandeService.Accept(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicateEmail):
			response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
		default:
			h.log.Error().Err(err).Int("demande_id", id).Msg("Demande acceptance failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"trainer": trainer})
}

// Refuse godoc
// POST /api/v1/admin/demandes/:id/refuse
func (h *DemandeHandler) Refuse(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.demandeService.Refuse(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		// The demande is gone either way; a failed refusal mail only warrants
		// a warning.
		h.log.Warn().Err(err).Int("demande_id", id).Msg("Refusal mail failed")
	}
	response.Success(c, http.StatusOK, gin.H{})
}
