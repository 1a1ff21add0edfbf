package repository

import (
	"context"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles quiz question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// CreateWithAnswers inserts a question and its answers in one transaction,
// so a failure can never leave an orphaned question behind.
func (r *QuestionRepository) CreateWithAnswers(ctx context.Context, q *model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx,
		`INSERT INTO questions (text, category) VALUES ($1, $2)
		 RETURNING id, created_at`,
		q.Text, q.Category,
	).Scan(&q.ID, &q.CreatedAt); err != nil {
		return err
	}

	for i := range q.Answers {
		a := &q.Answers[i]
		a.QuestionID = q.ID
		if err := tx.QueryRow(ctx,
			`INSERT INTO answers (question_id, text, is_correct)
			 VALUES ($1, $2, $3) RETURNING id`,
			a.QuestionID, a.Text, a.IsCorrect,
		).Scan(&a.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListByCategory retrieves all questions of a category with their answers
// resolved. Returns an empty slice when nothing matches.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category string) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, text, category, created_at
		 FROM questions WHERE category = $1 ORDER BY created_at`, category)
	if err != nil {
		return nil, err
	}

	var questions []model.Question
	idx := map[string]int{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Category, &q.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		q.Answers = []model.Answer{}
		idx[q.ID.String()] = len(questions)
		questions = append(questions, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}

	ansRows, err := r.pool.Query(ctx,
		`SELECT a.id, a.question_id, a.text, a.is_correct
		 FROM answers a JOIN questions q ON q.id = a.question_id
		 WHERE q.category = $1 ORDER BY a.id`, category)
	if err != nil {
		return nil, err
	}
	defer ansRows.Close()

	for ansRows.Next() {
		var a model.Answer
		if err := ansRows.Scan(&a.ID, &a.QuestionID, &a.Text, &a.IsCorrect); err != nil {
			return nil, err
		}
		if i, ok := idx[a.QuestionID.String()]; ok {
			questions[i].Answers = append(questions[i].Answers, a)
		}
	}
	return questions, ansRows.Err()
}
