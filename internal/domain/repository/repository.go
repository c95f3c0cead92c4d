package repository

import (
	"context"
	"errors"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
)

// Sentinel errors returned by repository implementations. Services translate
// these into the API error taxonomy.
var (
	ErrNotFound  = errors.New("repository: not found")
	ErrDuplicate = errors.New("repository: duplicate key")
)

// CredentialRepository stores authentication records. There is no update
// operation; DeleteByAccountID exists only as the signup compensating action.
type CredentialRepository interface {
	Create(ctx context.Context, c *entity.Credential) error
	FindByEmail(ctx context.Context, local, domain string) (*entity.Credential, error)
	DeleteByAccountID(ctx context.Context, accountID string) error
}

// ProfileRepository stores profiles. Every read and update excludes
// soft-deleted rows; SoftDelete flips the flag and reports ErrNotFound when
// the profile is absent or already deleted. Update matches the row by
// accountID; p.AccountID may differ, which re-keys the profile.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	FindByAccountID(ctx context.Context, accountID string) (*entity.Profile, error)
	FindAll(ctx context.Context) ([]entity.Profile, error)
	Update(ctx context.Context, accountID string, p *entity.Profile) error
	SoftDelete(ctx context.Context, accountID string) error
	SaveSkills(ctx context.Context, accountID string, skills []entity.Skill) error
	SearchBySkillName(ctx context.Context, name string) ([]entity.Profile, error)
}

// ExperienceRepository stores work-experience records with hard delete.
type ExperienceRepository interface {
	Create(ctx context.Context, e *entity.Experience) error
	FindByID(ctx context.Context, id string) (*entity.Experience, error)
	FindAll(ctx context.Context) ([]entity.Experience, error)
	FindByAccountID(ctx context.Context, accountID string) ([]entity.Experience, error)
	Update(ctx context.Context, e *entity.Experience) error
	Delete(ctx context.Context, id string) error
}

// CourseRepository stores courses keyed by business id.
type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	FindByID(ctx context.Context, courseID string) (*entity.Course, error)
	FindAll(ctx context.Context) ([]entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, courseID string) error
	SaveLessonIDs(ctx context.Context, courseID string, lessonIDs []string) error
}

// LessonRepository stores lessons keyed by business id.
type LessonRepository interface {
	Create(ctx context.Context, l *entity.Lesson) error
	FindByID(ctx context.Context, lessonID string) (*entity.Lesson, error)
	FindAll(ctx context.Context) ([]entity.Lesson, error)
	Update(ctx context.Context, l *entity.Lesson) error
	Delete(ctx context.Context, lessonID string) error
	SaveQuestionIDs(ctx context.Context, lessonID string, questionIDs []string) error
}

// QuestionRepository stores questions keyed by business id.
type QuestionRepository interface {
	Create(ctx context.Context, q *entity.Question) error
	FindByID(ctx context.Context, questionID string) (*entity.Question, error)
	FindAll(ctx context.Context) ([]entity.Question, error)
	Update(ctx context.Context, q *entity.Question) error
	Delete(ctx context.Context, questionID string) error
}
