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

// ResultHandler serves a student's results.
type ResultHandler struct {
	results ResultService
	log     zerolog.Logger
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(results ResultService, log zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		results: results,
		log:     logger.Component(log, "result_handler"),
	}
}

// ListResults godoc
// GET /results?email=
func (h *ResultHandler) ListResults(c *gin.Context) {
	var q model.ResultsQuery
	if errs := validator.BindQuery(c, &q); errs != nil {
		validationFailed(c, errs)
		return
	}

	results, err := h.results.ListResults(c.Request.Context(), q.Email)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, "Results fetched successfully", gin.H{"results": results})
	case errors.Is(err, service.ErrNoResults):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, "No results found for this email")
	default:
		internalError(c, h.log, "An error occurred fetching results", err)
	}
}
