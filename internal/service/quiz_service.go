package service

import (
	"context"
	"errors"

	"github.com/formaplace/formaplace-backend/internal/model"
)

// ErrInvalidAnswerSet is returned when a question does not carry exactly
// four answers with exactly one marked correct.
var ErrInvalidAnswerSet = errors.New("question must have exactly 4 answers with exactly 1 correct")

// QuestionStore is the persistence surface QuizService needs.
type QuestionStore interface {
	CreateWithAnswers(ctx context.Context, q *model.Question) error
	ListByCategory(ctx context.Context, category string) ([]model.Question, error)
}

// QuizService handles quiz questions.
type QuizService struct {
	store QuestionStore
}

// NewQuizService creates a new QuizService.
func NewQuizService(store QuestionStore) *QuizService {
	return &QuizService{store: store}
}

// AddQuestion validates the answer set and persists the question with its
// four answers atomically. No partial question is ever visible.
func (s *QuizService) AddQuestion(ctx context.Context, req *model.AddQuestionRequest) (*model.Question, error) {
	if len(req.Answers) != 4 {
		return nil, ErrInvalidAnswerSet
	}
	correct := 0
	for _, a := range req.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return nil, ErrInvalidAnswerSet
	}

	question := &model.Question{
		Text:     req.QuestionText,
		Category: req.Category,
		Answers:  make([]model.Answer, 0, len(req.Answers)),
	}
	for _, a := range req.Answers {
		question.Answers = append(question.Answers, model.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
	}

	if err := s.store.CreateWithAnswers(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListByCategory retrieves all questions of a category with their answers.
// An empty result is returned as-is; the handler decides how to report it.
func (s *QuizService) ListByCategory(ctx context.Context, category string) ([]model.Question, error) {
	return s.store.ListByCategory(ctx, category)
}
