package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/azeem30/aptipro-student-backend/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Querier is the statement surface shared by pooled connections and
// transactions. Repositories are built on top of it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Scope hands out one pooled connection per unit of work and always gives
// it back, whatever the outcome of the work.
type Scope struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewScope creates a Scope over pool.
func NewScope(pool *pgxpool.Pool, log zerolog.Logger) *Scope {
	return &Scope{
		pool: pool,
		log:  logger.Component(log, "db_scope"),
	}
}

// Conn runs fn on a dedicated connection without a transaction.
func (s *Scope) Conn(ctx context.Context, fn func(q Querier) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(conn)
}

// Tx runs fn inside a transaction on a dedicated connection. The transaction
// is committed when fn returns nil and rolled back otherwise (panics
// included).
func (s *Scope) Tx(ctx context.Context, fn func(q Querier) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// The request context may already be cancelled; rollback must still run.
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.log.Error().Err(rbErr).Msg("rollback failed")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
