package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/azeem30/aptipro-student-backend/internal/logger"
	"github.com/azeem30/aptipro-student-backend/internal/model"
	"github.com/azeem30/aptipro-student-backend/internal/repository"
	"github.com/rs/zerolog"
)

// AccountService handles signup, verification, login and profile updates.
type AccountService struct {
	store         Store
	cipher        Cipher
	recentResults int
	log           zerolog.Logger
}

// NewAccountService creates a new AccountService. recentResults is the
// number of results attached to a login profile.
func NewAccountService(store Store, cipher Cipher, recentResults int, log zerolog.Logger) *AccountService {
	return &AccountService{
		store:         store,
		cipher:        cipher,
		recentResults: recentResults,
		log:           logger.Component(log, "account_service"),
	}
}

// Signup creates an unverified student account.
//
// Uniqueness of email and id is checked before the insert; the unique
// constraints catch the remaining race between concurrent signups.
func (s *AccountService) Signup(ctx context.Context, req model.SignupRequest) error {
	encrypted, err := s.cipher.Encrypt(req.Password)
	if err != nil {
		return err
	}

	err = s.store.Write(ctx, func(r Repositories) error {
		taken, err := r.Students.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken {
			return ErrEmailTaken
		}

		taken, err = r.Students.ExistsByID(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("check id: %w", err)
		}
		if taken {
			return ErrIDTaken
		}

		ok, err := r.Departments.Exists(ctx, req.Department)
		if err != nil {
			return fmt.Errorf("check department: %w", err)
		}
		if !ok {
			return ErrInvalidDepartment
		}

		return r.Students.Create(ctx, &model.Student{
			ID:         req.ID,
			Email:      req.Email,
			Name:       req.Name,
			Department: req.Department,
			Password:   encrypted,
		})
	})

	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrDuplicateID):
		return ErrIDTaken
	case errors.Is(err, repository.ErrUnknownDepartment):
		return ErrInvalidDepartment
	case err != nil:
		return err
	}

	s.log.Info().Int64("student_id", req.ID).Str("department", req.Department).Msg("student signed up")
	return nil
}

// Verify marks the account with email as verified.
func (s *AccountService) Verify(ctx context.Context, email string) error {
	err := s.store.Write(ctx, func(r Repositories) error {
		return r.Students.MarkVerified(ctx, email)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStudentNotFound
	}
	return err
}

// Login checks the credentials of a verified student and assembles the
// profile shown after login.
//
// An unverified account is rejected before its password is looked at.
func (s *AccountService) Login(ctx context.Context, email, password string) (*model.Profile, error) {
	var profile *model.Profile

	err := s.store.Read(ctx, func(r Repositories) error {
		student, err := r.Students.GetByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCredentials
		}
		if err != nil {
			return fmt.Errorf("find student: %w", err)
		}

		if !student.Verified {
			return ErrNotVerified
		}

		stored, err := s.cipher.Decrypt(student.Password)
		if err != nil {
			return err
		}
		if stored != password {
			return ErrInvalidCredentials
		}

		subjects, err := r.Subjects.ListNamesByDepartment(ctx, student.Department)
		if err != nil {
			return fmt.Errorf("list subjects: %w", err)
		}

		count, total, err := r.Results.Stats(ctx, student.Email)
		if err != nil {
			return fmt.Errorf("result stats: %w", err)
		}

		recent, err := r.Results.Recent(ctx, student.Email, s.recentResults)
		if err != nil {
			return fmt.Errorf("recent results: %w", err)
		}

		profile = &model.Profile{
			ID:            student.ID,
			Email:         student.Email,
			Name:          student.Name,
			Department:    student.Department,
			Verified:      student.Verified,
			Subjects:      subjects,
			TestsDone:     count,
			AverageScore:  AverageScore(total, count),
			RecentResults: recent,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// AverageScore is the mean marks per submitted test, times 100. It is 0
// when nothing was submitted.
func AverageScore(totalMarks int64, testsDone int) float64 {
	if testsDone == 0 {
		return 0
	}
	return float64(totalMarks) / float64(testsDone) * 100
}

// UpdateProfile overwrites the profile of the student with req.ID. The
// new email is only checked by the unique constraint.
func (s *AccountService) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) error {
	encrypted, err := s.cipher.Encrypt(req.Password)
	if err != nil {
		return err
	}

	err = s.store.Write(ctx, func(r Repositories) error {
		return r.Students.UpdateProfile(ctx, &model.Student{
			ID:         req.ID,
			Email:      req.Email,
			Name:       req.Name,
			Department: req.Department,
			Password:   encrypted,
		})
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrStudentNotFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrUnknownDepartment):
		return ErrInvalidDepartment
	}
	return err
}

// RotateKeys re-encrypts every stored password with the cipher's primary
// key in a single transaction and returns the number of rows rewritten.
func (s *AccountService) RotateKeys(ctx context.Context) (int, error) {
	rotated := 0
	err := s.store.Write(ctx, func(r Repositories) error {
		stored, err := r.Students.ListPasswords(ctx)
		if err != nil {
			return fmt.Errorf("list passwords: %w", err)
		}

		for _, p := range stored {
			fresh, err := s.cipher.Reencrypt(p.Password)
			if err != nil {
				return fmt.Errorf("student %d: %w", p.ID, err)
			}
			if err := r.Students.UpdatePassword(ctx, p.ID, fresh); err != nil {
				return fmt.Errorf("student %d: %w", p.ID, err)
			}
			rotated++
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("key rotation rolled back")
		return 0, err
	}

	s.log.Info().Int("students", rotated).Msg("passwords re-encrypted")
	return rotated, nil
}
