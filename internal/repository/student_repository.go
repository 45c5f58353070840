package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/azeem30/aptipro-student-backend/internal/database"
	"github.com/azeem30/aptipro-student-backend/internal/model"
)

var studentColumns = []string{"id", "email", "name", "dept_name", "password", "verified", "created_at"}

// StudentRepository handles student data access.
type StudentRepository struct {
	q database.Querier
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(q database.Querier) *StudentRepository {
	return &StudentRepository{q: q}
}

// ExistsByEmail reports whether a student uses email.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, sq.Eq{"email": email})
}

// ExistsByID reports whether a student has the given id.
func (r *StudentRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, sq.Eq{"id": id})
}

func (r *StudentRepository) exists(ctx context.Context, pred sq.Eq) (bool, error) {
	query, args, err := psql.Select("1").From("students").Where(pred).Limit(1).Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var found bool
	if err := r.q.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// GetByEmail retrieves a student by email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	query, args, err := psql.Select(studentColumns...).From("students").Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student query: %w", err)
	}

	s := &model.Student{}
	err = r.q.QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.Email, &s.Name, &s.Department, &s.Password, &s.Verified, &s.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// Create inserts a new, unverified student. s.Password must already be
// encrypted.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO students (id, email, name, dept_name, password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING verified, created_at`,
		s.ID, s.Email, s.Name, s.Department, s.Password,
	).Scan(&s.Verified, &s.CreatedAt)
	return translate(err)
}

// MarkVerified sets verified for the student with email. It returns
// ErrNotFound when no row matches.
func (r *StudentRepository) MarkVerified(ctx context.Context, email string) error {
	tag, err := r.q.Exec(ctx, `UPDATE students SET verified = TRUE WHERE email = $1`, email)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile overwrites name, email, department and password of the
// student with s.ID. It returns ErrNotFound when no row matches.
func (r *StudentRepository) UpdateProfile(ctx context.Context, s *model.Student) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE students SET name = $1, email = $2, dept_name = $3, password = $4
		 WHERE id = $5`,
		s.Name, s.Email, s.Department, s.Password, s.ID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// StoredPassword pairs a student id with its encrypted password.
type StoredPassword struct {
	ID       int64
	Password string
}

// ListPasswords returns every stored password, locking the rows for the
// rest of the surrounding transaction.
func (r *StudentRepository) ListPasswords(ctx context.Context) ([]StoredPassword, error) {
	rows, err := r.q.Query(ctx, `SELECT id, password FROM students ORDER BY id FOR UPDATE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredPassword
	for rows.Next() {
		var p StoredPassword
		if err := rows.Scan(&p.ID, &p.Password); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdatePassword replaces the encrypted password of one student.
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, password string) error {
	_, err := r.q.Exec(ctx, `UPDATE students SET password = $1 WHERE id = $2`, password, id)
	return translate(err)
}
