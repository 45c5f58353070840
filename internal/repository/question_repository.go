package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/azeem30/aptipro-student-backend/internal/database"
	"github.com/azeem30/aptipro-student-backend/internal/model"
)

// QuestionRepository handles MCQ data access.
type QuestionRepository struct {
	q database.Querier
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(q database.Querier) *QuestionRepository {
	return &QuestionRepository{q: q}
}

// ListBySubjectAndDifficulty returns at most limit questions matching both
// subject and difficulty.
func (r *QuestionRepository) ListBySubjectAndDifficulty(ctx context.Context, subject, difficulty string, limit int) ([]model.Question, error) {
	if limit <= 0 {
		return nil, nil
	}

	query, args, err := psql.
		Select("id", "question", "optiona", "optionb", "optionc", "optiond", "correct_option", "subject", "difficulty").
		From("mcq").
		Where(sq.Eq{"subject": subject, "difficulty": difficulty}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build questions query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var m model.Question
		if err := rows.Scan(&m.ID, &m.Question, &m.OptionA, &m.OptionB, &m.OptionC, &m.OptionD,
			&m.CorrectOption, &m.Subject, &m.Difficulty); err != nil {
			return nil, err
		}
		questions = append(questions, m)
	}
	return questions, rows.Err()
}

// Create inserts a question and sets its generated id.
func (r *QuestionRepository) Create(ctx context.Context, m *model.Question) error {
	return r.q.QueryRow(ctx,
		`INSERT INTO mcq (question, optiona, optionb, optionc, optiond, correct_option, subject, difficulty)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		m.Question, m.OptionA, m.OptionB, m.OptionC, m.OptionD, m.CorrectOption, m.Subject, m.Difficulty,
	).Scan(&m.ID)
}
