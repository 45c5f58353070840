package model

import "time"

// Student represents a student account.
type Student struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Password   string    `json:"-"` // Fernet token, never plaintext
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// SignupRequest is the payload for creating a student account.
type SignupRequest struct {
	ID         int64  `json:"id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Department string `json:"department" binding:"required"`
}

// VerifyRequest is the payload for marking an account as verified.
type VerifyRequest struct {
	Email string `json:"email" binding:"required"`
}

// LoginRequest is the payload for student authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest overwrites every profile field of the student with
// the given id.
type UpdateProfileRequest struct {
	ID         int64  `json:"id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Department string `json:"department" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Profile is returned after a successful login.
type Profile struct {
	ID            int64    `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Department    string   `json:"department"`
	Verified      bool     `json:"verified"`
	Subjects      []string `json:"subjects"`
	TestsDone     int      `json:"tests_done"`
	AverageScore  float64  `json:"average_score"`
	RecentResults []Result `json:"recent_results"`
}
