package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/azeem30/aptipro-student-backend/internal/model"
	"github.com/azeem30/aptipro-student-backend/internal/repository"
)

// memDB is an in-memory Store. Write applies fn to a copy and swaps it in
// only when fn succeeds.
type memDB struct {
	mu          sync.Mutex
	students    map[int64]model.Student
	departments map[string]bool
	subjects    map[string][]string
	tests       []model.Test
	questions   []model.Question
	results     map[int64]model.Result
	readErr     error
	reads       int
	writes      int
}

func newMemDB() *memDB {
	return &memDB{
		students:    map[int64]model.Student{},
		departments: map[string]bool{},
		subjects:    map[string][]string{},
		results:     map[int64]model.Result{},
	}
}

func (db *memDB) Read(ctx context.Context, fn func(r Repositories) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.reads++
	if db.readErr != nil {
		return db.readErr
	}
	return fn(db.repos(db))
}

func (db *memDB) Write(ctx context.Context, fn func(r Repositories) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.writes++

	tx := db.clone()
	if err := fn(db.repos(tx)); err != nil {
		return err
	}
	db.students, db.results = tx.students, tx.results
	return nil
}

func (db *memDB) clone() *memDB {
	c := &memDB{
		students:    make(map[int64]model.Student, len(db.students)),
		departments: db.departments,
		subjects:    db.subjects,
		tests:       db.tests,
		questions:   db.questions,
		results:     make(map[int64]model.Result, len(db.results)),
	}
	for k, v := range db.students {
		c.students[k] = v
	}
	for k, v := range db.results {
		c.results[k] = v
	}
	return c
}

func (db *memDB) repos(state *memDB) Repositories {
	return Repositories{
		Students:    &memStudents{db: state},
		Departments: &memDepartments{db: state},
		Subjects:    &memSubjects{db: state},
		Tests:       &memTests{db: state},
		Questions:   &memQuestions{db: state},
		Results:     &memResults{db: state},
	}
}

type memStudents struct{ db *memDB }

func (m *memStudents) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memStudents) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := m.db.students[id]
	return ok, nil
}

func (m *memStudents) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	for _, s := range m.db.students {
		if s.Email == email {
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStudents) Create(ctx context.Context, s *model.Student) error {
	if _, ok := m.db.students[s.ID]; ok {
		return repository.ErrDuplicateID
	}
	if ok, _ := m.ExistsByEmail(ctx, s.Email); ok {
		return repository.ErrDuplicateEmail
	}
	if !m.db.departments[s.Department] {
		return repository.ErrUnknownDepartment
	}
	m.db.students[s.ID] = *s
	return nil
}

func (m *memStudents) MarkVerified(ctx context.Context, email string) error {
	s, err := m.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	s.Verified = true
	m.db.students[s.ID] = *s
	return nil
}

func (m *memStudents) UpdateProfile(ctx context.Context, s *model.Student) error {
	cur, ok := m.db.students[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if !m.db.departments[s.Department] {
		return repository.ErrUnknownDepartment
	}
	cur.Name, cur.Email, cur.Department, cur.Password = s.Name, s.Email, s.Department, s.Password
	m.db.students[s.ID] = cur
	return nil
}

func (m *memStudents) ListPasswords(ctx context.Context) ([]repository.StoredPassword, error) {
	out := make([]repository.StoredPassword, 0, len(m.db.students))
	for _, s := range m.db.students {
		out = append(out, repository.StoredPassword{ID: s.ID, Password: s.Password})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStudents) UpdatePassword(ctx context.Context, id int64, password string) error {
	s, ok := m.db.students[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Password = password
	m.db.students[id] = s
	return nil
}

type memDepartments struct{ db *memDB }

func (m *memDepartments) Exists(ctx context.Context, name string) (bool, error) {
	return m.db.departments[name], nil
}

type memSubjects struct{ db *memDB }

func (m *memSubjects) ListNamesByDepartment(ctx context.Context, department string) ([]string, error) {
	return append([]string{}, m.db.subjects[department]...), nil
}

type memTests struct{ db *memDB }

func (m *memTests) ListByDepartment(ctx context.Context, department string) ([]model.Test, error) {
	var out []model.Test
	for _, t := range m.db.tests {
		if t.Department == department {
			out = append(out, t)
		}
	}
	return out, nil
}

type memQuestions struct{ db *memDB }

func (m *memQuestions) ListBySubjectAndDifficulty(ctx context.Context, subject, difficulty string, limit int) ([]model.Question, error) {
	var out []model.Question
	for _, q := range m.db.questions {
		if len(out) == limit {
			break
		}
		if q.Subject == subject && q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out, nil
}

type memResults struct{ db *memDB }

func (m *memResults) Create(ctx context.Context, res *model.Result) error {
	if _, ok := m.db.results[res.ID]; ok {
		return errors.Join(repository.ErrDuplicateResult,
			errors.New(`duplicate key value violates unique constraint "results_pkey"`))
	}
	m.db.results[res.ID] = *res
	return nil
}

func (m *memResults) ListByStudent(ctx context.Context, email string) ([]model.Result, error) {
	out := []model.Result{}
	for _, r := range m.db.results {
		if r.StudentEmail == email {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memResults) Recent(ctx context.Context, email string, n int) ([]model.Result, error) {
	all, _ := m.ListByStudent(ctx, email)
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (m *memResults) Stats(ctx context.Context, email string) (int, int64, error) {
	all, _ := m.ListByStudent(ctx, email)
	var total int64
	for _, r := range all {
		total += int64(r.Marks)
	}
	return len(all), total, nil
}

// plainCipher is a reversible Cipher for tests. Tokens are "enc:" + text.
type plainCipher struct {
	failDecrypt bool
}

var errBadToken = errors.New("bad token")

func (plainCipher) Encrypt(plaintext string) (string, error) { return "enc:" + plaintext, nil }

func (c plainCipher) Decrypt(token string) (string, error) {
	if c.failDecrypt || !strings.HasPrefix(token, "enc:") {
		return "", errBadToken
	}
	return strings.TrimPrefix(token, "enc:"), nil
}

func (c plainCipher) Reencrypt(token string) (string, error) {
	p, err := c.Decrypt(token)
	if err != nil {
		return "", err
	}
	return "enc2:" + p, nil
}
