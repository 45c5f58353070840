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

// AccountHandler handles signup, verification, login and profile endpoints.
type AccountHandler struct {
	accounts AccountService
	log      zerolog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts AccountService, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		log:      logger.Component(log, "account_handler"),
	}
}

// Signup godoc
// POST /signup
// Creates an unverified student account.
func (h *AccountHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if errs := validator.Bind(c, &req); errs != nil {
		validationFailed(c, errs)
		return
	}

	err := h.accounts.Signup(c.Request.Context(), req)
	switch {
	case err == nil:
		response.Success(c, http.StatusCreated, "student account created successfully", nil)
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusBadRequest, response.ErrConflict, "Email already exists")
	case errors.Is(err, service.ErrIDTaken):
		response.Fail(c, http.StatusBadRequest, response.ErrConflict, "ID already exists")
	case errors.Is(err, service.ErrInvalidDepartment):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, "Invalid department")
	default:
		internalError(c, h.log, "An error occurred during signup", err)
	}
}

// Verify godoc
// POST /verify
// Marks the account with the given email as verified.
func (h *AccountHandler) Verify(c *gin.Context) {
	var req model.VerifyRequest
	if errs := validator.Bind(c, &req); errs != nil {
		validationFailed(c, errs)
		return
	}

	err := h.accounts.Verify(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, "Account verified successfully", nil)
	case errors.Is(err, service.ErrStudentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, "Email not found")
	default:
		internalError(c, h.log, "An error occurred during verification", err)
	}
}

// Login godoc
// POST /login
// Checks credentials and returns the student's profile with result stats.
func (h *AccountHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if errs := validator.Bind(c, &req); errs != nil {
		validationFailed(c, errs)
		return
	}

	profile, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, "Login successful", gin.H{"user": profile})
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials, "Invalid email or password")
	case errors.Is(err, service.ErrNotVerified):
		response.Fail(c, http.StatusForbidden, response.ErrNotVerified, "Account not verified. Please check your email.")
	default:
		internalError(c, h.log, "An error occurred during login", err)
	}
}

// UpdateProfile godoc
// POST /update_profile
// Overwrites name, email, department and password of a student.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if errs := validator.Bind(c, &req); errs != nil {
		validationFailed(c, errs)
		return
	}

	err := h.accounts.UpdateProfile(c.Request.Context(), req)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, "Profile updated successfully", nil)
	case errors.Is(err, service.ErrStudentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, "Student not found")
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusBadRequest, response.ErrConflict, "Email already exists")
	case errors.Is(err, service.ErrInvalidDepartment):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, "Invalid department")
	default:
		internalError(c, h.log, "An error occurred updating profile", err)
	}
}
