package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	"github.com/skillmate/skillmate-api/pkg/apperr"
)

func newTestProfileService(profiles *fakeProfileRepo) *ProfileService {
	return NewProfileService(profiles, testLogger(), nil, "", nil, "")
}

func seedProfile(t *testing.T, svc *ProfileService, accountID string) *entity.Profile {
	t.Helper()
	p, err := svc.Create(context.Background(), &entity.Profile{
		AccountID: accountID,
		Name:      "Jane",
		AvatarURL: "https://cdn.example.com/jane.png",
		JobRole:   "backend engineer",
	})
	require.NoError(t, err)
	return p
}

func TestProfileCreateDuplicate(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := newTestProfileService(profiles)
	ctx := context.Background()

	seedProfile(t, svc, "acc-1")
	_, err := svc.Create(ctx, &entity.Profile{AccountID: "acc-1", Name: "Clone"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestProfileGetMissing(t *testing.T) {
	svc := newTestProfileService(newFakeProfileRepo())
	_, err := svc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestProfileUpdatePartial(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := newTestProfileService(profiles)
	ctx := context.Background()
	seedProfile(t, svc, "acc-1")

	role := "platform engineer"
	p, err := svc.Update(ctx, "acc-1", UpdateProfileInput{JobRole: &role})
	require.NoError(t, err)
	assert.Equal(t, "platform engineer", p.JobRole)
	// Untouched fields survive.
	assert.Equal(t, "Jane", p.Name)
	assert.Equal(t, "https://cdn.example.com/jane.png", p.AvatarURL)
}

func TestProfileUpdateRekey(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := newTestProfileService(profiles)
	ctx := context.Background()
	seedProfile(t, svc, "acc-old")
	_, err := svc.AddSkill(ctx, "acc-old", entity.Skill{Name: "Go"})
	require.NoError(t, err)

	next := "acc-new"
	p, err := svc.Update(ctx, "acc-old", UpdateProfileInput{AccountID: &next})
	require.NoError(t, err)
	assert.Equal(t, "acc-new", p.AccountID)

	// The old id is gone; the new id carries the full profile.
	_, err = svc.Get(ctx, "acc-old")
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	moved, err := svc.Get(ctx, "acc-new")
	require.NoError(t, err)
	assert.Equal(t, "Jane", moved.Name)
	require.Len(t, moved.Skills, 1)
	assert.Equal(t, "Go", moved.Skills[0].Name)
}

func TestProfileUpdateRekeyConflict(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := newTestProfileService(profiles)
	ctx := context.Background()
	seedProfile(t, svc, "acc-1")
	seedProfile(t, svc, "acc-2")

	taken := "acc-2"
	_, err := svc.Update(ctx, "acc-1", UpdateProfileInput{AccountID: &taken})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestProfileSoftDelete(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := newTestProfileService(profiles)
	ctx := context.Background()
	seedProfile(t, svc, "acc-1")

	require.NoError(t, svc.SoftDelete(ctx, "acc-1"))

	// Reads and lists no longer see the profile.
	_, err := svc.Get(ctx, "acc-1")
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// The row itself is retained, only flagged.
	raw, ok := profiles.rawByAccount("acc-1")
	require.True(t, ok)
	assert.True(t, raw.Deleted)

	// A second delete is not_found, not a silent no-op.
	err = svc.SoftDelete(ctx, "acc-1")
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestSkillAddAndRemove(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := newTestProfileService(profiles)
	ctx := context.Background()
	seedProfile(t, svc, "acc-1")

	goSkill := entity.Skill{Name: "Go", Description: "services and tooling", Expertise: entity.Expertise{ExpertiseID: "exp-3", LevelName: "advanced"}}
	p, err := svc.AddSkill(ctx, "acc-1", goSkill)
	require.NoError(t, err)
	require.Len(t, p.Skills, 1)
	assert.Equal(t, "Go", p.Skills[0].Name)

	// Same name again is a conflict, even with different details.
	_, err = svc.AddSkill(ctx, "acc-1", entity.Skill{Name: "Go"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	_, err = svc.AddSkill(ctx, "acc-1", entity.Skill{Name: "SQL"})
	require.NoError(t, err)

	skills, err := svc.GetSkills(ctx, "acc-1")
	require.NoError(t, err)
	assert.Len(t, skills, 2)

	p, err = svc.RemoveSkill(ctx, "acc-1", "Go")
	require.NoError(t, err)
	require.Len(t, p.Skills, 1)
	assert.Equal(t, "SQL", p.Skills[0].Name)

	// Removing an absent skill is not_found.
	_, err = svc.RemoveSkill(ctx, "acc-1", "Go")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestSearchBySkillNameExcludesDeleted(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := newTestProfileService(profiles)
	ctx := context.Background()
	seedProfile(t, svc, "acc-1")
	seedProfile(t, svc, "acc-2")

	_, err := svc.AddSkill(ctx, "acc-1", entity.Skill{Name: "Go"})
	require.NoError(t, err)
	_, err = svc.AddSkill(ctx, "acc-2", entity.Skill{Name: "Go"})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, "acc-2"))

	hits, err := svc.SearchBySkillName(ctx, "Go")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "acc-1", hits[0].AccountID)

	// Exact match only.
	hits, err = svc.SearchBySkillName(ctx, "go")
	require.NoError(t, err)
	assert.Empty(t, hits)
}
