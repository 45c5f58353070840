package handler

import (
	"errors"
	"net/http"

	"github.com/azeem30/aptipro-student-backend/internal/logger"
	"github.com/azeem30/aptipro-student-backend/internal/model"
	"github.com/azeem30/aptipro-student-backend/internal/response"
	"github.com/azeem30/aptipro-student-backend/internal/service"
	"github.com/azeem30/aptipro-student-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// QuizHandler handles test listing, question fetching and submission.
type QuizHandler struct {
	quizzes QuizService
	log     zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizzes QuizService, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizzes: quizzes,
		log:     logger.Component(log, "quiz_handler"),
	}
}

// ListTests godoc
// GET /tests?department=
func (h *QuizHandler) ListTests(c *gin.Context) {
	var q model.TestsQuery
	if errs := validator.BindQuery(c, &q); errs != nil {
		validationFailed(c, errs)
		return
	}

	tests, err := h.quizzes.ListTests(c.Request.Context(), q.Department)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, "Tests fetched successfully", gin.H{"tests": tests})
	case errors.Is(err, service.ErrNoTests):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, "No tests found for this department")
	default:
		internalError(c, h.log, "An error occurred fetching tests", err)
	}
}

// ListQuestions godoc
// GET /questions?subject=&difficulty=&limit=
func (h *QuizHandler) ListQuestions(c *gin.Context) {
	var q model.QuestionsQuery
	if errs := validator.BindQuery(c, &q); errs != nil {
		validationFailed(c, errs)
		return
	}

	questions, err := h.quizzes.ListQuestions(c.Request.Context(), q)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, "Questions fetched successfully", gin.H{"mcq": questions})
	case errors.Is(err, service.ErrNoQuestions):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, "No questions found for this subject and difficulty")
	default:
		internalError(c, h.log, "An error occurred fetching questions", err)
	}
}

// Submit godoc
// POST /submit
// Grades the responses and stores the result. Invalid test ids and
// duplicate submissions surface as 500.
func (h *QuizHandler) Submit(c *gin.Context) {
	var req model.SubmitRequest
	if errs := validator.Bind(c, &req); errs != nil {
		validationFailed(c, errs)
		return
	}

	if _, err := h.quizzes.Submit(c.Request.Context(), req); err != nil {
		internalError(c, h.log, "An error occurred during test submission", err)
		return
	}
	response.Success(c, http.StatusCreated, "Test submitted successfully", nil)
}
