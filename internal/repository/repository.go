// Package repository implements PostgreSQL data access. Every repository is
// built over a database.Querier, so the same code runs on a pooled
// connection or inside a transaction.
package repository

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("student with this email already exists")
	ErrDuplicateID       = errors.New("student with this id already exists")
	ErrDuplicateResult   = errors.New("result with this id already exists")
	ErrUnknownDepartment = errors.New("department does not exist")
)

// Constraint names as created by migrations/000001_init.up.sql.
const (
	studentsPkey     = "students_pkey"
	studentsEmailKey = "students_email_key"
	studentsDeptFkey = "students_dept_name_fkey"
	resultsPkey      = "results_pkey"
)

// psql builds statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// pgError extracts the PostgreSQL error carried by err, if any.
func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// translate maps driver errors to repository sentinels. Errors it does not
// recognise are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	pgErr, ok := pgError(err)
	if !ok {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case studentsEmailKey:
			return ErrDuplicateEmail
		case studentsPkey:
			return ErrDuplicateID
		case resultsPkey:
			return errors.Join(ErrDuplicateResult, err)
		}
	case pgerrcode.ForeignKeyViolation:
		if pgErr.ConstraintName == studentsDeptFkey {
			return ErrUnknownDepartment
		}
	}
	return err
}
