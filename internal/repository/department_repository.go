package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/azeem30/aptipro-student-backend/internal/database"
	"github.com/azeem30/aptipro-student-backend/internal/model"
)

// DepartmentRepository handles department lookups.
type DepartmentRepository struct {
	q database.Querier
}

// NewDepartmentRepository creates a new DepartmentRepository.
func NewDepartmentRepository(q database.Querier) *DepartmentRepository {
	return &DepartmentRepository{q: q}
}

// Exists reports whether a department with name exists.
func (r *DepartmentRepository) Exists(ctx context.Context, name string) (bool, error) {
	query, args, err := psql.Select("1").From("department").
		Where(sq.Eq{"department_name": name}).Limit(1).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build department query: %w", err)
	}

	var found bool
	if err := r.q.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// Create inserts a department, ignoring duplicates.
func (r *DepartmentRepository) Create(ctx context.Context, d model.Department) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO department (department_name) VALUES ($1) ON CONFLICT DO NOTHING`, d.Name)
	return err
}
