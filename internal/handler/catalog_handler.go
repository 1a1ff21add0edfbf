package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/formaplace/formaplace-backend/internal/repository"
	"github.com/formaplace/formaplace-backend/internal/response"
	"github.com/formaplace/formaplace-backend/internal/service"
)

// CatalogHandler serves the public, unauthenticated catalog.
type CatalogHandler struct {
	categoryService  *service.CategoryService
	formationService *service.FormationService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(categoryService *service.CategoryService, formationService *service.FormationService) *CatalogHandler {
	return &CatalogHandler{categoryService: categoryService, formationService: formationService}
}

// ListCategories godoc
// GET /api/v1/public/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

// ListFormations godoc
// GET /api/v1/public/formations?category_id=N
// Only formations approved by both an expert and an admin are listed.
func (h *CatalogHandler) ListFormations(c *gin.Context) {
	var categoryID *int
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		categoryID = &id
	}

	formations, err := h.formationService.ListPublished(c.Request.Context(), categoryID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"formations": formations})
}

// GetFormation godoc
// GET /api/v1/public/formations/:id
// Unpublished formations are indistinguishable from missing ones.
func (h *CatalogHandler) GetFormation(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	formation, err := h.formationService.GetPublishedDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, service.ErrNotPublished) {
			response.Fail(c, http.StatusNotFound, response.ErrFormationNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"formation": formation})
}
