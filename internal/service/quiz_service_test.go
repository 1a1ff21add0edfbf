package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formaplace/formaplace-backend/internal/model"
)

type fakeQuestionStore struct {
	created []*model.Question
}

func (f *fakeQuestionStore) CreateWithAnswers(_ context.Context, q *model.Question) error {
	f.created = append(f.created, q)
	return nil
}

func (f *fakeQuestionStore) ListByCategory(_ context.Context, category string) ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.created {
		if q.Category == category {
			out = append(out, *q)
		}
	}
	return out, nil
}

func validQuestionRequest() *model.AddQuestionRequest {
	return &model.AddQuestionRequest{
		QuestionText: "Capitale de la France ?",
		Category:     "geo",
		Answers: []model.AnswerInput{
			{Text: "Paris", IsCorrect: true},
			{Text: "Lyon"},
			{Text: "Lille"},
			{Text: "Nice"},
		},
	}
}

func TestAddQuestionValid(t *testing.T) {
	store := &fakeQuestionStore{}
	s := NewQuizService(store)

	q, err := s.AddQuestion(context.Background(), validQuestionRequest())
	require.NoError(t, err)
	assert.Len(t, q.Answers, 4)
	assert.Len(t, store.created, 1)
}

func TestAddQuestionWrongAnswerCount(t *testing.T) {
	store := &fakeQuestionStore{}
	s := NewQuizService(store)

	req := validQuestionRequest()
	req.Answers = req.Answers[:3]

	_, err := s.AddQuestion(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidAnswerSet)
	assert.Empty(t, store.created)
}

func TestAddQuestionNoCorrectAnswer(t *testing.T) {
	store := &fakeQuestionStore{}
	s := NewQuizService(store)

	req := validQuestionRequest()
	req.Answers[0].IsCorrect = false

	_, err := s.AddQuestion(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidAnswerSet)
}

func TestAddQuestionTwoCorrectAnswers(t *testing.T) {
	store := &fakeQuestionStore{}
	s := NewQuizService(store)

	req := validQuestionRequest()
	req.Answers[1].IsCorrect = true

	_, err := s.AddQuestion(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidAnswerSet)
	assert.Empty(t, store.created)
}

func TestListByCategoryEmpty(t *testing.T) {
	s := NewQuizService(&fakeQuestionStore{})

	questions, err := s.ListByCategory(context.Background(), "vide")
	require.NoError(t, err)
	assert.Empty(t, questions)
}
