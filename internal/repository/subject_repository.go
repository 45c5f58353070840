package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/azeem30/aptipro-student-backend/internal/database"
	"github.com/azeem30/aptipro-student-backend/internal/model"
)

type SubjectRepository struct {
	q database.Querier
}

func NewSubjectRepository(q database.Querier) *SubjectRepository {
	return &SubjectRepository{q: q}
}

// ListNamesByDepartment returns the subject names taught in department.
func (r *SubjectRepository) ListNamesByDepartment(ctx context.Context, department string) ([]string, error) {
	query, args, err := psql.Select("subject_name").From("subjects").
		Where(sq.Eq{"dept_name": department}).
		OrderBy("subject_name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build subjects query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *SubjectRepository) Create(ctx context.Context, s model.Subject) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO subjects (subject_name, dept_name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		s.Name, s.Department)
	return err
}
