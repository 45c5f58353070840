package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrIDTaken            = errors.New("id already exists")
	ErrInvalidDepartment  = errors.New("invalid department")
	ErrStudentNotFound    = errors.New("student not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account not verified")
	ErrNoTests            = errors.New("no tests found")
	ErrNoQuestions        = errors.New("no questions found")
	ErrNoResults          = errors.New("no results found")
)
