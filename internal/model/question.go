package model

import (
	"time"

	"github.com/google/uuid"
)

// Question is a quiz question. Every question carries exactly four answers,
// exactly one of which is correct; the invariant is enforced at creation.
type Question struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	Answers   []Answer  `json:"answers"`
	CreatedAt time.Time `json:"created_at"`
}

// Answer is one of a question's four choices.
type Answer struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	IsCorrect  bool      `json:"is_correct"`
}

// AnswerInput is one answer choice in an AddQuestionRequest.
type AnswerInput struct {
	Text      string `json:"text" binding:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

// AddQuestionRequest is the admin payload for creating a quiz question.
// The len=4 binding catches the wrong answer count early; the single
// correct-answer rule lives in the quiz service.
type AddQuestionRequest struct {
	QuestionText string        `json:"question_text" binding:"required,max=1000"`
	Category     string        `json:"category" binding:"required,max=100"`
	Answers      []AnswerInput `json:"answers" binding:"required,len=4,dive"`
}
