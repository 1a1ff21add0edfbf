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

// AdminHandler handles admin account management and formation moderation.
type AdminHandler struct {
	trainerService   *service.TrainerService
	expertService    *service.ExpertService
	formationService *service.FormationService
	log              zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	trainerService *service.TrainerService,
	expertService *service.ExpertService,
	formationService *service.FormationService,
	log zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		trainerService:   trainerService,
		expertService:    expertService,
		formationService: formationService,
		log:              log,
	}
}

// ListTrainers godoc
// GET /api/v1/admin/trainers
func (h *AdminHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.trainerService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if trainers == nil {
		trainers = []model.Trainer{}
	}
	response.Success(c, http.StatusOK, gin.H{"trainers": trainers})
}

// ActivateTrainer godoc
// POST /api/v1/admin/trainers/:id/activate
// Activating twice is rejected rather than silently absorbed.
func (h *AdminHandler) ActivateTrainer(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	trainer, err := h.trainerService.Activate(c.Request.Context(), id)
	if err != nil {
		switch {
		case trainer != nil:
			// Activation persisted; only the notification mail failed.
			h.log.Warn().Err(err).Int("trainer_id", id).Msg("Activation mail failed")
			response.Success(c, http.StatusOK, gin.H{"trainer": trainer})
			return
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrAlreadyActive):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyActive)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"trainer": trainer})
}

// CreateExpert godoc
// POST /api/v1/admin/experts
// The expert's initial password is generated server-side and mailed.
func (h *AdminHandler) CreateExpert(c *gin.Context) {
	var req model.CreateExpertRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	expert, err := h.expertService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case expert != nil:
			// Account exists; the credentials mail failed and must be retried
			// out of band.
			h.log.Warn().Err(err).Str("email", req.Email).Msg("Expert welcome mail failed")
			response.Success(c, http.StatusCreated, gin.H{"expert": expert})
			return
		case errors.Is(err, repository.ErrDuplicateEmail):
			response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"expert": expert})
}

// ListFormations godoc
// GET /api/v1/admin/formations
// Every formation, published or not, for moderation.
func (h *AdminHandler) ListFormations(c *gin.Context) {
	formations, err := h.formationService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"formations": formations})
}

// ApproveFormation godoc
// POST /api/v1/admin/formations/:id/approve
func (h *AdminHandler) ApproveFormation(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.formationService.ApproveByAdmin(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrFormationNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
