package service

import (
	"context"

	"github.com/azeem30/aptipro-student-backend/internal/model"
)

// ResultService reads graded submissions.
type ResultService struct {
	store Store
}

// NewResultService creates a new ResultService.
func NewResultService(store Store) *ResultService {
	return &ResultService{store: store}
}

// ListResults returns every result of the student with email.
func (s *ResultService) ListResults(ctx context.Context, email string) ([]model.Result, error) {
	var results []model.Result
	err := s.store.Read(ctx, func(r Repositories) error {
		var err error
		results, err = r.Results.ListByStudent(ctx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}
