package handler

import (
	"context"
	"net/http"

	"github.com/azeem30/aptipro-student-backend/internal/model"
	"github.com/azeem30/aptipro-student-backend/internal/response"
	"github.com/azeem30/aptipro-student-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AccountService is the account logic the handlers depend on.
type AccountService interface {
	Signup(ctx context.Context, req model.SignupRequest) error
	Verify(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) error
}

// QuizService is the quiz logic the handlers depend on.
type QuizService interface {
	ListTests(ctx context.Context, department string) ([]model.Test, error)
	ListQuestions(ctx context.Context, q model.QuestionsQuery) ([]model.Question, error)
	Submit(ctx context.Context, req model.SubmitRequest) (*model.Result, error)
}

// ResultService is the result lookup the handlers depend on.
type ResultService interface {
	ListResults(ctx context.Context, email string) ([]model.Result, error)
}

// validationFailed answers 400 with every rejected field. Requests that
// could not be decoded are tagged INVALID_PAYLOAD instead of VALIDATION_ERROR.
func validationFailed(c *gin.Context, errs validator.Errors) {
	code := response.ErrValidation
	if errs.Malformed() {
		code = response.ErrInvalidPayload
	}
	response.FailWithFields(c, code, errs.Error(), errs.Map())
}

// internalError logs err and answers 500 carrying the raw error text.
func internalError(c *gin.Context, log zerolog.Logger, message string, err error) {
	log.Error().
		Err(err).
		Str("request_id", response.RequestID(c)).
		Str("path", c.FullPath()).
		Msg(message)
	response.FailWithError(c, http.StatusInternalServerError, message, err)
}
