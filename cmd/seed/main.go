package main

import (
	"context"
	"fmt"
	"time"

	"github.com/azeem30/aptipro-student-backend/internal/config"
	"github.com/azeem30/aptipro-student-backend/internal/database"
	"github.com/azeem30/aptipro-student-backend/internal/logger"
	"github.com/azeem30/aptipro-student-backend/internal/model"
	"github.com/azeem30/aptipro-student-backend/internal/repository"
)

const department = "Computer Engineering"

var subjects = []string{"DBMS", "Operating Systems", "Computer Networks"}

var tests = []model.Test{
	{ID: 101, Department: department, Name: "DBMS Basics", Subject: "DBMS", Marks: 5, Difficulty: "easy", Teacher: "teacher@aptipro.dev"},
	{ID: 102, Department: department, Name: "Scheduling", Subject: "Operating Systems", Marks: 5, Difficulty: "medium", Teacher: "teacher@aptipro.dev"},
	{ID: 103, Department: department, Name: "Routing", Subject: "Computer Networks", Marks: 5, Difficulty: "hard", Teacher: "teacher@aptipro.dev"},
}

var questions = []model.Question{
	{Question: "Which normal form removes transitive dependencies?", OptionA: "1NF", OptionB: "2NF", OptionC: "3NF", OptionD: "BCNF", CorrectOption: "C", Subject: "DBMS", Difficulty: "easy"},
	{Question: "Which SQL clause filters grouped rows?", OptionA: "WHERE", OptionB: "HAVING", OptionC: "ORDER BY", OptionD: "LIMIT", CorrectOption: "B", Subject: "DBMS", Difficulty: "easy"},
	{Question: "A primary key column may contain:", OptionA: "NULLs", OptionB: "Duplicates", OptionC: "Unique non-null values", OptionD: "Anything", CorrectOption: "C", Subject: "DBMS", Difficulty: "easy"},
	{Question: "Which property does the I in ACID stand for?", OptionA: "Integrity", OptionB: "Isolation", OptionC: "Indexing", OptionD: "Identity", CorrectOption: "B", Subject: "DBMS", Difficulty: "easy"},
	{Question: "Which join returns only matching rows?", OptionA: "INNER", OptionB: "LEFT", OptionC: "RIGHT", OptionD: "FULL", CorrectOption: "A", Subject: "DBMS", Difficulty: "easy"},
	{Question: "Round robin scheduling is:", OptionA: "Non-preemptive", OptionB: "Preemptive", OptionC: "Priority only", OptionD: "Batch only", CorrectOption: "B", Subject: "Operating Systems", Difficulty: "medium"},
	{Question: "Which condition is not required for deadlock?", OptionA: "Mutual exclusion", OptionB: "Hold and wait", OptionC: "Preemption", OptionD: "Circular wait", CorrectOption: "C", Subject: "Operating Systems", Difficulty: "medium"},
	{Question: "Thrashing is caused by:", OptionA: "Too many page faults", OptionB: "Fast disks", OptionC: "Large caches", OptionD: "Few processes", CorrectOption: "A", Subject: "Operating Systems", Difficulty: "medium"},
	{Question: "Which protocol uses distance vectors?", OptionA: "OSPF", OptionB: "RIP", OptionC: "IS-IS", OptionD: "BGP", CorrectOption: "B", Subject: "Computer Networks", Difficulty: "hard"},
	{Question: "Which layer does a router operate at?", OptionA: "Data link", OptionB: "Transport", OptionC: "Network", OptionD: "Session", CorrectOption: "C", Subject: "Computer Networks", Difficulty: "hard"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	scope := database.NewScope(pool, log)

	fmt.Println("=== Seeding demo quiz data ===")

	created := 0
	err = scope.Tx(ctx, func(q database.Querier) error {
		if err := repository.NewDepartmentRepository(q).Create(ctx, model.Department{Name: department}); err != nil {
			return fmt.Errorf("department: %w", err)
		}

		subjectRepo := repository.NewSubjectRepository(q)
		for _, s := range subjects {
			if err := subjectRepo.Create(ctx, model.Subject{Name: s, Department: department}); err != nil {
				return fmt.Errorf("subject %s: %w", s, err)
			}
		}

		testRepo := repository.NewTestRepository(q)
		for _, t := range tests {
			if err := testRepo.Create(ctx, t); err != nil {
				return fmt.Errorf("test %d: %w", t.ID, err)
			}
		}

		// Questions have generated ids; skip them when the bank is already filled.
		var existing int
		if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM mcq`).Scan(&existing); err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		if existing > 0 {
			return nil
		}

		questionRepo := repository.NewQuestionRepository(q)
		for i := range questions {
			if err := questionRepo.Create(ctx, &questions[i]); err != nil {
				return fmt.Errorf("question %d: %w", i+1, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	fmt.Printf("\nSeed completed! Department %q with %d subjects, %d tests and %d new questions.\n",
		department, len(subjects), len(tests), created)
}
