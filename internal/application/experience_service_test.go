package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	"github.com/skillmate/skillmate-api/pkg/apperr"
)

func newTestExperienceService(experiences *fakeExperienceRepo, profiles *fakeProfileRepo) *ExperienceService {
	return NewExperienceService(experiences, profiles, testLogger())
}

func TestExperienceCreateRequiresProfile(t *testing.T) {
	experiences := newFakeExperienceRepo()
	profiles := newFakeProfileRepo()
	svc := newTestExperienceService(experiences, profiles)
	ctx := context.Background()

	// A dangling account reference is rejected as bad input.
	_, err := svc.Create(ctx, &entity.Experience{AccountID: "ghost", JobRole: "dev"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalid))

	seedProfile(t, newTestProfileService(profiles), "acc-1")
	e, err := svc.Create(ctx, &entity.Experience{
		AccountID:   "acc-1",
		StartAt:     time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
		EndAt:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		JobRole:     "backend engineer",
		Description: "built the billing service",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
}

func TestExperienceCreateRejectsDeletedProfile(t *testing.T) {
	experiences := newFakeExperienceRepo()
	profiles := newFakeProfileRepo()
	psvc := newTestProfileService(profiles)
	svc := newTestExperienceService(experiences, profiles)
	ctx := context.Background()

	seedProfile(t, psvc, "acc-1")
	require.NoError(t, psvc.SoftDelete(ctx, "acc-1"))

	_, err := svc.Create(ctx, &entity.Experience{AccountID: "acc-1"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalid))
}

func TestExperienceGetAndDelete(t *testing.T) {
	experiences := newFakeExperienceRepo()
	profiles := newFakeProfileRepo()
	svc := newTestExperienceService(experiences, profiles)
	ctx := context.Background()
	seedProfile(t, newTestProfileService(profiles), "acc-1")

	created, err := svc.Create(ctx, &entity.Experience{AccountID: "acc-1", JobRole: "dev"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "dev", got.JobRole)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	err = svc.Delete(ctx, created.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestExperienceListByAccount(t *testing.T) {
	experiences := newFakeExperienceRepo()
	profiles := newFakeProfileRepo()
	svc := newTestExperienceService(experiences, profiles)
	ctx := context.Background()
	seedProfile(t, newTestProfileService(profiles), "acc-1")
	seedProfile(t, newTestProfileService(profiles), "acc-2")

	_, err := svc.Create(ctx, &entity.Experience{AccountID: "acc-1", JobRole: "dev"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &entity.Experience{AccountID: "acc-1", JobRole: "lead"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &entity.Experience{AccountID: "acc-2", JobRole: "pm"})
	require.NoError(t, err)

	mine, err := svc.ListByAccount(ctx, "acc-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = svc.ListByAccount(ctx, "ghost")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalid))
}

func TestExperienceUpdate(t *testing.T) {
	experiences := newFakeExperienceRepo()
	profiles := newFakeProfileRepo()
	svc := newTestExperienceService(experiences, profiles)
	ctx := context.Background()
	seedProfile(t, newTestProfileService(profiles), "acc-1")

	created, err := svc.Create(ctx, &entity.Experience{AccountID: "acc-1", JobRole: "dev", Description: "old"})
	require.NoError(t, err)

	role := "senior dev"
	updated, err := svc.Update(ctx, created.ID, UpdateExperienceInput{JobRole: &role})
	require.NoError(t, err)
	assert.Equal(t, "senior dev", updated.JobRole)
	assert.Equal(t, "old", updated.Description)

	// Re-pointing at an unknown account is rejected and leaves the record
	// unchanged.
	ghost := "ghost"
	_, err = svc.Update(ctx, created.ID, UpdateExperienceInput{AccountID: &ghost})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalid))
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", got.AccountID)
}
