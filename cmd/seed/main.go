package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/skillmate/skillmate-api/config"
	"github.com/skillmate/skillmate-api/internal/application"
	"github.com/skillmate/skillmate-api/internal/domain/entity"
	pginfra "github.com/skillmate/skillmate-api/internal/infrastructure/postgres"
	"github.com/skillmate/skillmate-api/pkg/apperr"
	"github.com/skillmate/skillmate-api/pkg/helpers"
)

// Seeds a small demo catalog through the catalog service so local
// environments have data to click through. Safe to run repeatedly;
// existing rows are skipped.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	catalog := application.NewCatalogService(
		pginfra.NewCourseRepository(pool),
		pginfra.NewLessonRepository(pool),
		pginfra.NewQuestionRepository(pool),
		logger,
	)

	courses := []entity.Course{
		{CourseID: "go-basics", Name: "Go Basics", Description: "Syntax, tooling, and the standard library", Category: "programming"},
		{CourseID: "sql-foundations", Name: "SQL Foundations", Description: "Relational modeling and queries", Category: "data"},
	}
	lessons := []entity.Lesson{
		{LessonID: "goroutines", Name: "Goroutines", Keywords: []string{"concurrency", "scheduler"}},
		{LessonID: "channels", Name: "Channels", Keywords: []string{"concurrency", "sync"}},
		{LessonID: "joins", Name: "Joins", Keywords: []string{"sql", "relations"}},
	}
	questions := []entity.Question{
		{
			QuestionID: "q-goroutine-start",
			Question:   "Which keyword starts a goroutine?",
			Options:    []string{"go", "run", "spawn", "async"},
			Answer:     1,
			Solution:   "The go statement starts a new goroutine running the given call.",
		},
		{
			QuestionID: "q-channel-zero",
			Question:   "What is the zero value of a channel?",
			Options:    []string{"an empty channel", "nil", "a closed channel", "a buffered channel"},
			Answer:     2,
		},
		{
			QuestionID: "q-inner-join",
			Question:   "Which join returns only rows with matches in both tables?",
			Options:    []string{"LEFT JOIN", "FULL JOIN", "INNER JOIN", "CROSS JOIN"},
			Answer:     3,
		},
	}

	for i := range courses {
		if _, err := catalog.CreateCourse(ctx, &courses[i]); err != nil && !apperr.IsCode(err, apperr.CodeConflict) {
			log.Fatalf("seed course %s: %v", courses[i].CourseID, err)
		}
	}
	for i := range lessons {
		if _, err := catalog.CreateLesson(ctx, &lessons[i]); err != nil && !apperr.IsCode(err, apperr.CodeConflict) {
			log.Fatalf("seed lesson %s: %v", lessons[i].LessonID, err)
		}
	}
	for i := range questions {
		if _, err := catalog.CreateQuestion(ctx, &questions[i]); err != nil && !apperr.IsCode(err, apperr.CodeConflict) {
			log.Fatalf("seed question %s: %v", questions[i].QuestionID, err)
		}
	}

	edges := []struct{ course, lesson string }{
		{"go-basics", "goroutines"},
		{"go-basics", "channels"},
		{"sql-foundations", "joins"},
	}
	for _, e := range edges {
		if _, err := catalog.AddLessonToCourse(ctx, e.course, e.lesson); err != nil && !apperr.IsCode(err, apperr.CodeInvalid) {
			log.Fatalf("link %s -> %s: %v", e.course, e.lesson, err)
		}
	}
	questionEdges := []struct{ lesson, question string }{
		{"goroutines", "q-goroutine-start"},
		{"channels", "q-channel-zero"},
		{"joins", "q-inner-join"},
	}
	for _, e := range questionEdges {
		if _, err := catalog.AddQuestionToLesson(ctx, e.lesson, e.question); err != nil && !apperr.IsCode(err, apperr.CodeInvalid) {
			log.Fatalf("link %s -> %s: %v", e.lesson, e.question, err)
		}
	}

	fmt.Println("seeded demo catalog: 2 courses, 3 lessons, 3 questions")
}
