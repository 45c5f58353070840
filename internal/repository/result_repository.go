package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/azeem30/aptipro-student-backend/internal/database"
	"github.com/azeem30/aptipro-student-backend/internal/model"
)

var resultColumns = []string{
	"id", "test_id", "name", "marks", "total_marks", "difficulty", "subject",
	"student_email", "teacher_email", "data", "submitted_at",
}

// ResultRepository handles graded submissions.
type ResultRepository struct {
	q database.Querier
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(q database.Querier) *ResultRepository {
	return &ResultRepository{q: q}
}

// Create inserts a result. A second result with the same id fails with
// ErrDuplicateResult.
func (r *ResultRepository) Create(ctx context.Context, res *model.Result) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO results
		 (id, name, marks, total_marks, difficulty, subject, student_email, teacher_email, data, test_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING submitted_at`,
		res.ID, res.Name, res.Marks, res.TotalMarks, res.Difficulty, res.Subject,
		res.StudentEmail, res.TeacherEmail, res.Data, res.TestID,
	).Scan(&res.SubmittedAt)
	return translate(err)
}

// ListByStudent returns every result of the student, newest first.
func (r *ResultRepository) ListByStudent(ctx context.Context, email string) ([]model.Result, error) {
	return r.list(ctx, psql.Select(resultColumns...).From("results").
		Where(sq.Eq{"student_email": email}).
		OrderBy("submitted_at DESC", "id ASC"))
}

// Recent returns the n newest results of the student.
func (r *ResultRepository) Recent(ctx context.Context, email string, n int) ([]model.Result, error) {
	if n <= 0 {
		return []model.Result{}, nil
	}
	return r.list(ctx, psql.Select(resultColumns...).From("results").
		Where(sq.Eq{"student_email": email}).
		OrderBy("submitted_at DESC", "id ASC").
		Limit(uint64(n)))
}

func (r *ResultRepository) list(ctx context.Context, b sq.SelectBuilder) ([]model.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build results query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.Result{}
	for rows.Next() {
		var res model.Result
		if err := rows.Scan(&res.ID, &res.TestID, &res.Name, &res.Marks, &res.TotalMarks, &res.Difficulty,
			&res.Subject, &res.StudentEmail, &res.TeacherEmail, &res.Data, &res.SubmittedAt); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Stats returns how many tests the student submitted and the sum of marks.
func (r *ResultRepository) Stats(ctx context.Context, email string) (count int, totalMarks int64, err error) {
	query, args, err := psql.Select("COUNT(*)", "COALESCE(SUM(marks), 0)").From("results").
		Where(sq.Eq{"student_email": email}).ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("build stats query: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&count, &totalMarks); err != nil {
		return 0, 0, err
	}
	return count, totalMarks, nil
}
