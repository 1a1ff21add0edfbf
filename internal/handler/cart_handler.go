package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/formaplace/formaplace-backend/internal/middleware"
	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/repository"
	"github.com/formaplace/formaplace-backend/internal/response"
	"github.com/formaplace/formaplace-backend/internal/service"
	"github.com/formaplace/formaplace-backend/internal/validator"
)

// CartHandler handles the learner cart and checkout endpoints.
type CartHandler struct {
	cartService    *service.CartService
	learnerService *service.LearnerService
	log            zerolog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *service.CartService, learnerService *service.LearnerService, log zerolog.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, learnerService: learnerService, log: log}
}

// GetCart godoc
// GET /api/v1/learner/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrCartNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cart": cart})
}

// AddItem godoc
// POST /api/v1/learner/cart/items
// Re-adding a formation already in the cart is a no-op, not an error.
func (h *CartHandler) AddItem(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.AddCartItemRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cart, already, err := h.cartService.AddItem(c.Request.Context(), claims.UserID, req.FormationID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrFormationNotFound)
		case errors.Is(err, service.ErrNotPublished):
			response.Fail(c, http.StatusConflict, response.ErrFormationNotPublished)
		case errors.Is(err, repository.ErrCartPaid):
			response.Fail(c, http.StatusConflict, response.ErrCartAlreadyPaid)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	status := http.StatusCreated
	if already {
		status = http.StatusOK
	}
	response.Success(c, status, gin.H{"cart": cart})
}

// RemoveItem godoc
// DELETE /api/v1/learner/cart/items/:formationId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	formationID, ok := uuidParam(c, "formationId")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), claims.UserID, formationID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrCartNotFound)
		case errors.Is(err, repository.ErrCartItemNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrCartItemMissing)
		case errors.Is(err, repository.ErrCartPaid):
			response.Fail(c, http.StatusConflict, response.ErrCartAlreadyPaid)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cart": cart})
}

// Checkout godoc
// POST /api/v1/learner/cart/checkout
// Marks the cart paid. The payment itself succeeded by the time the
// receipt mail runs, so a mail failure degrades to a warning.
func (h *CartHandler) Checkout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	learner, err := h.learnerService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	cart, err := h.cartService.Checkout(c.Request.Context(), claims.UserID, learner.Email, learner.Prenom)
	if err != nil {
		if cart != nil {
			// Payment committed; only the receipt mail failed.
			h.log.Warn().Err(err).Int("learner_id", claims.UserID).Msg("Receipt mail failed")
			response.Success(c, http.StatusOK, gin.H{"cart": cart})
			return
		}
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrCartNotFound)
		case errors.Is(err, repository.ErrCartPaid):
			response.Fail(c, http.StatusConflict, response.ErrCartAlreadyPaid)
		case errors.Is(err, repository.ErrCartEmpty):
			response.Fail(c, http.StatusConflict, response.ErrCartEmpty)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cart": cart})
}
