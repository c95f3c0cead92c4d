package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmate/skillmate-api/internal/application"
	"github.com/skillmate/skillmate-api/internal/domain/entity"
	repo "github.com/skillmate/skillmate-api/internal/domain/repository"
)

type stubProfileRepo struct {
	byAccount map[string]entity.Profile
}

func (s *stubProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	s.byAccount[p.AccountID] = *p
	return nil
}

func (s *stubProfileRepo) FindByAccountID(ctx context.Context, accountID string) (*entity.Profile, error) {
	p, ok := s.byAccount[accountID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &p, nil
}

func (s *stubProfileRepo) FindAll(ctx context.Context) ([]entity.Profile, error) { return nil, nil }

func (s *stubProfileRepo) Update(ctx context.Context, accountID string, p *entity.Profile) error {
	return nil
}

func (s *stubProfileRepo) SoftDelete(ctx context.Context, accountID string) error { return nil }

func (s *stubProfileRepo) SaveSkills(ctx context.Context, accountID string, skills []entity.Skill) error {
	return nil
}

func (s *stubProfileRepo) SearchBySkillName(ctx context.Context, name string) ([]entity.Profile, error) {
	return nil, nil
}

type stubExperienceRepo struct {
	created []entity.Experience
}

func (s *stubExperienceRepo) Create(ctx context.Context, e *entity.Experience) error {
	e.ID = "exp-1"
	s.created = append(s.created, *e)
	return nil
}

func (s *stubExperienceRepo) FindByID(ctx context.Context, id string) (*entity.Experience, error) {
	return nil, repo.ErrNotFound
}

func (s *stubExperienceRepo) FindAll(ctx context.Context) ([]entity.Experience, error) {
	return nil, nil
}

func (s *stubExperienceRepo) FindByAccountID(ctx context.Context, accountID string) ([]entity.Experience, error) {
	return nil, nil
}

func (s *stubExperienceRepo) Update(ctx context.Context, e *entity.Experience) error { return nil }

func (s *stubExperienceRepo) Delete(ctx context.Context, id string) error { return nil }

var (
	_ repo.ProfileRepository    = (*stubProfileRepo)(nil)
	_ repo.ExperienceRepository = (*stubExperienceRepo)(nil)
)

func newExperienceTestRouter(experiences *stubExperienceRepo, profiles *stubProfileRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := application.NewExperienceService(experiences, profiles, logger)
	h := NewExperienceHandler(svc, logger)
	r := gin.New()
	r.POST("/experience", h.Create)
	return r
}

func TestCreateExperienceJobRoleOptional(t *testing.T) {
	experiences := &stubExperienceRepo{}
	profiles := &stubProfileRepo{byAccount: map[string]entity.Profile{
		"acc-1": {AccountID: "acc-1", Name: "Jane"},
	}}
	r := newExperienceTestRouter(experiences, profiles)

	body := `{"account_id":"acc-1","start_at":"2024-01-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/experience", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, experiences.created, 1)
	assert.Empty(t, experiences.created[0].JobRole)
}

func TestCreateExperienceRequiresAccountAndStart(t *testing.T) {
	r := newExperienceTestRouter(&stubExperienceRepo{}, &stubProfileRepo{byAccount: map[string]entity.Profile{}})

	for _, body := range []string{
		`{"start_at":"2024-01-01T00:00:00Z"}`,
		`{"account_id":"acc-1"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/experience", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}
