package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	repo "github.com/skillmate/skillmate-api/internal/domain/repository"
	"github.com/skillmate/skillmate-api/pkg/apperr"
)

const questionOptionCount = 4

// CatalogService owns the course/lesson/question catalog and the containment
// edges between them. Edge lists keep insertion order; adding a present id or
// removing an absent one is rejected.
type CatalogService struct {
	Courses   repo.CourseRepository
	Lessons   repo.LessonRepository
	Questions repo.QuestionRepository
	Logger    *logrus.Logger
}

func NewCatalogService(courses repo.CourseRepository, lessons repo.LessonRepository, questions repo.QuestionRepository, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Courses: courses, Lessons: lessons, Questions: questions, Logger: logger}
}

// Courses

func (s *CatalogService) CreateCourse(ctx context.Context, c *entity.Course) (*entity.Course, error) {
	if err := s.Courses.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Newf(apperr.CodeConflict, "course with ID %s already exists", c.CourseID)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to create course")
	}
	return c, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "course with ID %s not found", id)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to find course")
	}
	return c, nil
}

func (s *CatalogService) ListCourses(ctx context.Context) ([]entity.Course, error) {
	out, err := s.Courses.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to list courses")
	}
	return out, nil
}

// UpdateCourseInput carries partial-update fields for a course.
type UpdateCourseInput struct {
	Name            *string
	Description     *string
	Category        *string
	EnrollmentCount *int
}

func (s *CatalogService) UpdateCourse(ctx context.Context, id string, in UpdateCourseInput) (*entity.Course, error) {
	c, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Category != nil {
		c.Category = *in.Category
	}
	if in.EnrollmentCount != nil {
		c.EnrollmentCount = *in.EnrollmentCount
	}
	if err := s.Courses.Update(ctx, c); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to update course")
	}
	return c, nil
}

func (s *CatalogService) DeleteCourse(ctx context.Context, id string) error {
	if err := s.Courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.Newf(apperr.CodeNotFound, "course with ID %s not found", id)
		}
		return apperr.Wrap(err, apperr.CodeInternal, "failed to delete course")
	}
	return nil
}

// Lessons

func (s *CatalogService) CreateLesson(ctx context.Context, l *entity.Lesson) (*entity.Lesson, error) {
	if err := s.Lessons.Create(ctx, l); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Newf(apperr.CodeConflict, "lesson with ID %s already exists", l.LessonID)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to create lesson")
	}
	return l, nil
}

func (s *CatalogService) GetLesson(ctx context.Context, id string) (*entity.Lesson, error) {
	l, err := s.Lessons.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "lesson with ID %s not found", id)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to find lesson")
	}
	return l, nil
}

func (s *CatalogService) ListLessons(ctx context.Context) ([]entity.Lesson, error) {
	out, err := s.Lessons.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to list lessons")
	}
	return out, nil
}

// UpdateLessonInput carries partial-update fields for a lesson.
type UpdateLessonInput struct {
	Name     *string
	Keywords []string
}

func (s *CatalogService) UpdateLesson(ctx context.Context, id string, in UpdateLessonInput) (*entity.Lesson, error) {
	l, err := s.GetLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Keywords != nil {
		l.Keywords = in.Keywords
	}
	if err := s.Lessons.Update(ctx, l); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to update lesson")
	}
	return l, nil
}

func (s *CatalogService) DeleteLesson(ctx context.Context, id string) error {
	if err := s.Lessons.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.Newf(apperr.CodeNotFound, "lesson with ID %s not found", id)
		}
		return apperr.Wrap(err, apperr.CodeInternal, "failed to delete lesson")
	}
	return nil
}

// Questions

// ValidateQuestion checks the option/answer constraints shared by create
// and update.
func ValidateQuestion(q *entity.Question) error {
	if len(q.Options) != questionOptionCount {
		return apperr.Newf(apperr.CodeInvalid, "question must have exactly %d options", questionOptionCount)
	}
	if q.Answer < 1 || q.Answer > questionOptionCount {
		return apperr.Newf(apperr.CodeInvalid, "answer must be between 1 and %d", questionOptionCount)
	}
	return nil
}

func (s *CatalogService) CreateQuestion(ctx context.Context, q *entity.Question) (*entity.Question, error) {
	if err := ValidateQuestion(q); err != nil {
		return nil, err
	}
	if err := s.Questions.Create(ctx, q); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Newf(apperr.CodeConflict, "question with ID %s already exists", q.QuestionID)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to create question")
	}
	return q, nil
}

func (s *CatalogService) GetQuestion(ctx context.Context, id string) (*entity.Question, error) {
	q, err := s.Questions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "question with ID %s not found", id)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to find question")
	}
	return q, nil
}

func (s *CatalogService) ListQuestions(ctx context.Context) ([]entity.Question, error) {
	out, err := s.Questions.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to list questions")
	}
	return out, nil
}

// UpdateQuestionInput carries partial-update fields for a question.
type UpdateQuestionInput struct {
	Question *string
	Options  []string
	Answer   *int
	Solution *string
}

func (s *CatalogService) UpdateQuestion(ctx context.Context, id string, in UpdateQuestionInput) (*entity.Question, error) {
	q, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Question != nil {
		q.Question = *in.Question
	}
	if in.Options != nil {
		q.Options = in.Options
	}
	if in.Answer != nil {
		q.Answer = *in.Answer
	}
	if in.Solution != nil {
		q.Solution = *in.Solution
	}
	if err := ValidateQuestion(q); err != nil {
		return nil, err
	}
	if err := s.Questions.Update(ctx, q); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to update question")
	}
	return q, nil
}

func (s *CatalogService) DeleteQuestion(ctx context.Context, id string) error {
	if err := s.Questions.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.Newf(apperr.CodeNotFound, "question with ID %s not found", id)
		}
		return apperr.Wrap(err, apperr.CodeInternal, "failed to delete question")
	}
	return nil
}

// Edges

// AddLessonToCourse appends the lesson id to the course's list. Both sides
// must exist; a duplicate edge is rejected as invalid input.
func (s *CatalogService) AddLessonToCourse(ctx context.Context, courseID, lessonID string) (*entity.Course, error) {
	c, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetLesson(ctx, lessonID); err != nil {
		return nil, err
	}
	if entity.ContainsID(c.LessonIDs, lessonID) {
		return nil, apperr.Newf(apperr.CodeInvalid, "lesson with ID %s is already in the course", lessonID)
	}
	c.LessonIDs = append(c.LessonIDs, lessonID)
	if err := s.Courses.SaveLessonIDs(ctx, courseID, c.LessonIDs); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to update course")
	}
	return c, nil
}

// RemoveLessonFromCourse removes the lesson id by value; an absent edge is
// rejected as invalid input.
func (s *CatalogService) RemoveLessonFromCourse(ctx context.Context, courseID, lessonID string) (*entity.Course, error) {
	c, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !entity.ContainsID(c.LessonIDs, lessonID) {
		return nil, apperr.Newf(apperr.CodeInvalid, "lesson with ID %s is not in the course", lessonID)
	}
	c.LessonIDs = entity.RemoveID(c.LessonIDs, lessonID)
	if err := s.Courses.SaveLessonIDs(ctx, courseID, c.LessonIDs); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to update course")
	}
	return c, nil
}

// AddQuestionToLesson mirrors AddLessonToCourse for the lesson→question edge.
func (s *CatalogService) AddQuestionToLesson(ctx context.Context, lessonID, questionID string) (*entity.Lesson, error) {
	l, err := s.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	if entity.ContainsID(l.QuestionIDs, questionID) {
		return nil, apperr.Newf(apperr.CodeInvalid, "question with ID %s is already in the lesson", questionID)
	}
	l.QuestionIDs = append(l.QuestionIDs, questionID)
	if err := s.Lessons.SaveQuestionIDs(ctx, lessonID, l.QuestionIDs); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to update lesson")
	}
	return l, nil
}

// RemoveQuestionFromLesson mirrors RemoveLessonFromCourse.
func (s *CatalogService) RemoveQuestionFromLesson(ctx context.Context, lessonID, questionID string) (*entity.Lesson, error) {
	l, err := s.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !entity.ContainsID(l.QuestionIDs, questionID) {
		return nil, apperr.Newf(apperr.CodeInvalid, "question with ID %s is not in the lesson", questionID)
	}
	l.QuestionIDs = entity.RemoveID(l.QuestionIDs, questionID)
	if err := s.Lessons.SaveQuestionIDs(ctx, lessonID, l.QuestionIDs); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to update lesson")
	}
	return l, nil
}
