package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/azeem30/aptipro-student-backend/internal/database"
	"github.com/azeem30/aptipro-student-backend/internal/model"
)

// TestRepository handles access to published tests.
type TestRepository struct {
	q database.Querier
}

// NewTestRepository creates a new TestRepository.
func NewTestRepository(q database.Querier) *TestRepository {
	return &TestRepository{q: q}
}

// ListByDepartment returns every test of department, ordered by id.
func (r *TestRepository) ListByDepartment(ctx context.Context, department string) ([]model.Test, error) {
	query, args, err := psql.
		Select("id", "dept_name", "name", "subject", "marks", "difficulty", "teacher_email").
		From("tests").
		Where(sq.Eq{"dept_name": department}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tests query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		var t model.Test
		if err := rows.Scan(&t.ID, &t.Department, &t.Name, &t.Subject, &t.Marks, &t.Difficulty, &t.Teacher); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// Create inserts a test with a caller-chosen id.
func (r *TestRepository) Create(ctx context.Context, t model.Test) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO tests (id, dept_name, name, subject, marks, difficulty, teacher_email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		t.ID, t.Department, t.Name, t.Subject, t.Marks, t.Difficulty, t.Teacher)
	return err
}
