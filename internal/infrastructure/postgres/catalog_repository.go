package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	"github.com/skillmate/skillmate-api/internal/domain/repository"
)

// Catalog repositories. Courses, lessons, and questions are keyed by their
// business ids; lesson/question id lists are stored as text arrays in
// insertion order.

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	if c.LessonIDs == nil {
		c.LessonIDs = []string{}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO courses (course_id, name, description, category, enrollment_count, lesson_ids)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.CourseID, c.Name, c.Description, c.Category, c.EnrollmentCount, c.LessonIDs)
	return mapWriteErr(err)
}

func (r *CourseRepository) FindByID(ctx context.Context, courseID string) (*entity.Course, error) {
	c := &entity.Course{}
	row := r.pool.QueryRow(ctx, `
		SELECT course_id, name, description, category, enrollment_count, lesson_ids
		FROM courses WHERE course_id = $1`, courseID)
	if err := row.Scan(&c.CourseID, &c.Name, &c.Description, &c.Category,
		&c.EnrollmentCount, &c.LessonIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) FindAll(ctx context.Context) ([]entity.Course, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT course_id, name, description, category, enrollment_count, lesson_ids
		FROM courses ORDER BY course_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []entity.Course{}
	for rows.Next() {
		c := entity.Course{}
		if err := rows.Scan(&c.CourseID, &c.Name, &c.Description, &c.Category,
			&c.EnrollmentCount, &c.LessonIDs); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	if c.LessonIDs == nil {
		c.LessonIDs = []string{}
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE courses
		SET name = $1, description = $2, category = $3, enrollment_count = $4, lesson_ids = $5
		WHERE course_id = $6
	`, c.Name, c.Description, c.Category, c.EnrollmentCount, c.LessonIDs, c.CourseID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, courseID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE course_id = $1`, courseID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) SaveLessonIDs(ctx context.Context, courseID string, lessonIDs []string) error {
	if lessonIDs == nil {
		lessonIDs = []string{}
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE courses SET lesson_ids = $1 WHERE course_id = $2`, lessonIDs, courseID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

func (r *LessonRepository) Create(ctx context.Context, l *entity.Lesson) error {
	if l.Keywords == nil {
		l.Keywords = []string{}
	}
	if l.QuestionIDs == nil {
		l.QuestionIDs = []string{}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lessons (lesson_id, name, keywords, question_ids)
		VALUES ($1, $2, $3, $4)
	`, l.LessonID, l.Name, l.Keywords, l.QuestionIDs)
	return mapWriteErr(err)
}

func (r *LessonRepository) FindByID(ctx context.Context, lessonID string) (*entity.Lesson, error) {
	l := &entity.Lesson{}
	row := r.pool.QueryRow(ctx, `
		SELECT lesson_id, name, keywords, question_ids
		FROM lessons WHERE lesson_id = $1`, lessonID)
	if err := row.Scan(&l.LessonID, &l.Name, &l.Keywords, &l.QuestionIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *LessonRepository) FindAll(ctx context.Context) ([]entity.Lesson, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lesson_id, name, keywords, question_ids
		FROM lessons ORDER BY lesson_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []entity.Lesson{}
	for rows.Next() {
		l := entity.Lesson{}
		if err := rows.Scan(&l.LessonID, &l.Name, &l.Keywords, &l.QuestionIDs); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LessonRepository) Update(ctx context.Context, l *entity.Lesson) error {
	if l.Keywords == nil {
		l.Keywords = []string{}
	}
	if l.QuestionIDs == nil {
		l.QuestionIDs = []string{}
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE lessons SET name = $1, keywords = $2, question_ids = $3
		WHERE lesson_id = $4
	`, l.Name, l.Keywords, l.QuestionIDs, l.LessonID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *LessonRepository) Delete(ctx context.Context, lessonID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE lesson_id = $1`, lessonID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *LessonRepository) SaveQuestionIDs(ctx context.Context, lessonID string, questionIDs []string) error {
	if questionIDs == nil {
		questionIDs = []string{}
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE lessons SET question_ids = $1 WHERE lesson_id = $2`, questionIDs, lessonID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

func (r *QuestionRepository) Create(ctx context.Context, q *entity.Question) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO questions (question_id, question, options, answer, solution)
		VALUES ($1, $2, $3, $4, $5)
	`, q.QuestionID, q.Question, q.Options, q.Answer, q.Solution)
	return mapWriteErr(err)
}

func (r *QuestionRepository) FindByID(ctx context.Context, questionID string) (*entity.Question, error) {
	q := &entity.Question{}
	row := r.pool.QueryRow(ctx, `
		SELECT question_id, question, options, answer, solution
		FROM questions WHERE question_id = $1`, questionID)
	if err := row.Scan(&q.QuestionID, &q.Question, &q.Options, &q.Answer, &q.Solution); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]entity.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT question_id, question, options, answer, solution
		FROM questions ORDER BY question_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []entity.Question{}
	for rows.Next() {
		q := entity.Question{}
		if err := rows.Scan(&q.QuestionID, &q.Question, &q.Options, &q.Answer, &q.Solution); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *QuestionRepository) Update(ctx context.Context, q *entity.Question) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE questions SET question = $1, options = $2, answer = $3, solution = $4
		WHERE question_id = $5
	`, q.Question, q.Options, q.Answer, q.Solution, q.QuestionID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, questionID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE question_id = $1`, questionID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var (
	_ repository.CourseRepository   = (*CourseRepository)(nil)
	_ repository.LessonRepository   = (*LessonRepository)(nil)
	_ repository.QuestionRepository = (*QuestionRepository)(nil)
)
