package service

import (
	"context"

	"github.com/azeem30/aptipro-student-backend/internal/database"
	"github.com/azeem30/aptipro-student-backend/internal/repository"
)

// pgStore is the PostgreSQL-backed Store.
type pgStore struct {
	scope *database.Scope
}

// NewStore binds repositories to connections handed out by scope.
func NewStore(scope *database.Scope) Store {
	return &pgStore{scope: scope}
}

func (s *pgStore) Read(ctx context.Context, fn func(r Repositories) error) error {
	return s.scope.Conn(ctx, func(q database.Querier) error {
		return fn(newRepositories(q))
	})
}

func (s *pgStore) Write(ctx context.Context, fn func(r Repositories) error) error {
	return s.scope.Tx(ctx, func(q database.Querier) error {
		return fn(newRepositories(q))
	})
}

func newRepositories(q database.Querier) Repositories {
	return Repositories{
		Students:    repository.NewStudentRepository(q),
		Departments: repository.NewDepartmentRepository(q),
		Subjects:    repository.NewSubjectRepository(q),
		Tests:       repository.NewTestRepository(q),
		Questions:   repository.NewQuestionRepository(q),
		Results:     repository.NewResultRepository(q),
	}
}
