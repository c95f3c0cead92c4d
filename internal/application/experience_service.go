package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	repo "github.com/skillmate/skillmate-api/internal/domain/repository"
	"github.com/skillmate/skillmate-api/pkg/apperr"
)

// ExperienceService owns work-experience CRUD. The account reference on a
// record is caller input, so a dangling reference is reported as invalid,
// not as a missing resource.
type ExperienceService struct {
	Experiences repo.ExperienceRepository
	Profiles    repo.ProfileRepository
	Logger      *logrus.Logger
}

func NewExperienceService(experiences repo.ExperienceRepository, profiles repo.ProfileRepository, logger *logrus.Logger) *ExperienceService {
	return &ExperienceService{Experiences: experiences, Profiles: profiles, Logger: logger}
}

// requireProfile confirms the referenced profile exists and is active.
func (s *ExperienceService) requireProfile(ctx context.Context, accountID string) error {
	if _, err := s.Profiles.FindByAccountID(ctx, accountID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.Newf(apperr.CodeInvalid, "user with ID %s not found", accountID)
		}
		return apperr.Wrap(err, apperr.CodeInternal, "profile lookup failed")
	}
	return nil
}

func (s *ExperienceService) Create(ctx context.Context, e *entity.Experience) (*entity.Experience, error) {
	if err := s.requireProfile(ctx, e.AccountID); err != nil {
		return nil, err
	}
	if err := s.Experiences.Create(ctx, e); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to create experience")
	}
	return e, nil
}

func (s *ExperienceService) Get(ctx context.Context, id string) (*entity.Experience, error) {
	e, err := s.Experiences.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "experience with ID %s not found", id)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to find experience")
	}
	return e, nil
}

func (s *ExperienceService) List(ctx context.Context) ([]entity.Experience, error) {
	out, err := s.Experiences.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to list experiences")
	}
	return out, nil
}

func (s *ExperienceService) ListByAccount(ctx context.Context, accountID string) ([]entity.Experience, error) {
	if err := s.requireProfile(ctx, accountID); err != nil {
		return nil, err
	}
	out, err := s.Experiences.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to list experiences")
	}
	return out, nil
}

// UpdateExperienceInput carries partial-update fields; nil pointers are
// left untouched.
type UpdateExperienceInput struct {
	AccountID   *string
	StartAt     *time.Time
	EndAt       *time.Time
	JobRole     *string
	Description *string
}

func (s *ExperienceService) Update(ctx context.Context, id string, in UpdateExperienceInput) (*entity.Experience, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.AccountID != nil && *in.AccountID != e.AccountID {
		// Re-pointing at another account revalidates the reference.
		if err := s.requireProfile(ctx, *in.AccountID); err != nil {
			return nil, err
		}
		e.AccountID = *in.AccountID
	}
	if in.StartAt != nil {
		e.StartAt = *in.StartAt
	}
	if in.EndAt != nil {
		e.EndAt = *in.EndAt
	}
	if in.JobRole != nil {
		e.JobRole = *in.JobRole
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if err := s.Experiences.Update(ctx, e); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "experience with ID %s not found", id)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to update experience")
	}
	return e, nil
}

func (s *ExperienceService) Delete(ctx context.Context, id string) error {
	if err := s.Experiences.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.Newf(apperr.CodeNotFound, "experience with ID %s not found", id)
		}
		return apperr.Wrap(err, apperr.CodeInternal, "failed to delete experience")
	}
	return nil
}
