package service

import (
	"context"

	"github.com/azeem30/aptipro-student-backend/internal/model"
	"github.com/azeem30/aptipro-student-backend/internal/repository"
)

// StudentRepository is the student storage used by the services.
type StudentRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	MarkVerified(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, s *model.Student) error
	ListPasswords(ctx context.Context) ([]repository.StoredPassword, error)
	UpdatePassword(ctx context.Context, id int64, password string) error
}

// DepartmentRepository answers department existence checks.
type DepartmentRepository interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// SubjectRepository lists the subjects of a department.
type SubjectRepository interface {
	ListNamesByDepartment(ctx context.Context, department string) ([]string, error)
}

// TestRepository lists published tests.
type TestRepository interface {
	ListByDepartment(ctx context.Context, department string) ([]model.Test, error)
}

// QuestionRepository lists MCQ questions.
type QuestionRepository interface {
	ListBySubjectAndDifficulty(ctx context.Context, subject, difficulty string, limit int) ([]model.Question, error)
}

// ResultRepository stores and reads graded submissions.
type ResultRepository interface {
	Create(ctx context.Context, res *model.Result) error
	ListByStudent(ctx context.Context, email string) ([]model.Result, error)
	Recent(ctx context.Context, email string, n int) ([]model.Result, error)
	Stats(ctx context.Context, email string) (count int, totalMarks int64, err error)
}

// Repositories is the set of repositories bound to one connection or
// transaction.
type Repositories struct {
	Students    StudentRepository
	Departments DepartmentRepository
	Subjects    SubjectRepository
	Tests       TestRepository
	Questions   QuestionRepository
	Results     ResultRepository
}

// Store runs units of work. Each call holds exactly one database connection
// for its duration.
type Store interface {
	// Read runs fn on a connection without a transaction.
	Read(ctx context.Context, fn func(r Repositories) error) error
	// Write runs fn in a transaction that commits only when fn returns nil.
	Write(ctx context.Context, fn func(r Repositories) error) error
}

// Cipher encrypts and decrypts stored passwords.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(token string) (string, error)
	Reencrypt(token string) (string, error)
}
