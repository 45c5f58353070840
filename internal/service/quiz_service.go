package service

import (
	"context"

	"github.com/azeem30/aptipro-student-backend/internal/grading"
	"github.com/azeem30/aptipro-student-backend/internal/logger"
	"github.com/azeem30/aptipro-student-backend/internal/model"
	"github.com/rs/zerolog"
)

// QuizService serves tests and questions and grades submissions.
type QuizService struct {
	store Store
	log   zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(store Store, log zerolog.Logger) *QuizService {
	return &QuizService{
		store: store,
		log:   logger.Component(log, "quiz_service"),
	}
}

// ListTests returns the tests published for department.
func (s *QuizService) ListTests(ctx context.Context, department string) ([]model.Test, error) {
	var tests []model.Test
	err := s.store.Read(ctx, func(r Repositories) error {
		var err error
		tests, err = r.Tests.ListByDepartment(ctx, department)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(tests) == 0 {
		return nil, ErrNoTests
	}
	return tests, nil
}

// ListQuestions returns at most limit questions of subject and difficulty.
func (s *QuizService) ListQuestions(ctx context.Context, q model.QuestionsQuery) ([]model.Question, error) {
	var questions []model.Question
	err := s.store.Read(ctx, func(r Repositories) error {
		var err error
		questions, err = r.Questions.ListBySubjectAndDifficulty(ctx, q.Subject, q.Difficulty, q.Limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// Submit grades a submission and stores the result.
//
// The result id is derived from the test id, so a second submission for
// the same test collides with the first one and fails.
func (s *QuizService) Submit(ctx context.Context, req model.SubmitRequest) (*model.Result, error) {
	responseID, testID, err := grading.ResponseID(string(req.Test.ID))
	if err != nil {
		return nil, err
	}

	res := &model.Result{
		ID:           responseID,
		TestID:       testID,
		Name:         req.Test.Name,
		Marks:        grading.CalculateMarks(req.Responses.Items),
		TotalMarks:   *req.Test.Marks,
		Difficulty:   req.Test.Difficulty,
		Subject:      req.Test.Subject,
		StudentEmail: req.User.Email,
		TeacherEmail: req.Test.Teacher,
		Data:         string(req.Responses.Raw),
	}
	if res.Data == "" {
		res.Data = "[]"
	}

	err = s.store.Write(ctx, func(r Repositories) error {
		return r.Results.Create(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("result_id", res.ID).
		Int64("test_id", res.TestID).
		Int("marks", res.Marks).
		Msg("test submitted")
	return res, nil
}
