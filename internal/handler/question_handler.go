package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/response"
	"github.com/formaplace/formaplace-backend/internal/service"
	"github.com/formaplace/formaplace-backend/internal/validator"
)

// QuestionHandler handles admin quiz question management.
type QuestionHandler struct {
	quizService *service.QuizService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(quizService *service.QuizService) *QuestionHandler {
	return &QuestionHandler{quizService: quizService}
}

// Add godoc
// POST /api/v1/admin/questions
// A question carries exactly four answers with exactly one correct.
func (h *QuestionHandler) Add(c *gin.Context) {
	var req model.AddQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.quizService.AddQuestion(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAnswerSet) {
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidAnswerSet)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// ListByCategory godoc
// GET /api/v1/public/questions/:category (also mounted under /admin)
// A category with no questions is reported, not returned empty.
func (h *QuestionHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.quizService.ListByCategory(c.Request.Context(), category)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(questions) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}
