package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/azeem30/aptipro-student-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// HealthHandler reports liveness of the service and its database.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		response.FailWithError(c, http.StatusServiceUnavailable, "database unreachable", err)
		return
	}
	response.Success(c, http.StatusOK, "ok", nil)
}
