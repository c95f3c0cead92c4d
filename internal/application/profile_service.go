package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	repo "github.com/skillmate/skillmate-api/internal/domain/repository"
	"github.com/skillmate/skillmate-api/pkg/apperr"
	"github.com/skillmate/skillmate-api/pkg/helpers"
)

// ProfileService owns profile CRUD, the embedded skill set, and the
// Elasticsearch read model used for free-text search. The SQL store is
// authoritative; indexing failures are logged and do not fail the write.
type ProfileService struct {
	Profiles repo.ProfileRepository
	Logger   *logrus.Logger

	GCS       *storage.Client
	GCSBucket string

	ES              *elasticsearch.Client
	ESProfilesIndex string
}

func NewProfileService(profiles repo.ProfileRepository, logger *logrus.Logger, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string) *ProfileService {
	return &ProfileService{
		Profiles:        profiles,
		Logger:          logger,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
		ES:              es,
		ESProfilesIndex: esIndex,
	}
}

func profileNotFound(accountID string) *apperr.Error {
	return apperr.Newf(apperr.CodeNotFound, "user with ID %s not found", accountID)
}

func (s *ProfileService) Create(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	if p.Skills == nil {
		p.Skills = []entity.Skill{}
	}
	if err := s.Profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Newf(apperr.CodeConflict, "user with ID %s already exists", p.AccountID)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to create user")
	}
	s.indexProfile(ctx, p)
	return p, nil
}

func (s *ProfileService) Get(ctx context.Context, accountID string) (*entity.Profile, error) {
	p, err := s.Profiles.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, profileNotFound(accountID)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to find user")
	}
	return p, nil
}

func (s *ProfileService) List(ctx context.Context) ([]entity.Profile, error) {
	out, err := s.Profiles.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to list users")
	}
	return out, nil
}

// UpdateProfileInput carries the partial-update fields; nil pointers are
// left untouched.
type UpdateProfileInput struct {
	AccountID *string
	Name      *string
	Avatar    *string
	JobRole   *string
	Skills    []entity.Skill
}

// Update applies only the provided fields. Re-keying the account id keeps
// the original behavior of the user update endpoint; the new id must be free.
func (s *ProfileService) Update(ctx context.Context, accountID string, in UpdateProfileInput) (*entity.Profile, error) {
	p, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if in.AccountID != nil && *in.AccountID != accountID {
		if _, err := s.Profiles.FindByAccountID(ctx, *in.AccountID); err == nil {
			return nil, apperr.Newf(apperr.CodeConflict, "user with ID %s already exists", *in.AccountID)
		}
		p.AccountID = *in.AccountID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Avatar != nil {
		p.AvatarURL = *in.Avatar
	}
	if in.JobRole != nil {
		p.JobRole = *in.JobRole
	}
	if in.Skills != nil {
		p.Skills = in.Skills
	}
	if err := s.Profiles.Update(ctx, accountID, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, profileNotFound(accountID)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to update user")
	}
	if p.AccountID != accountID {
		// Re-keyed: the search index document lives under the old id.
		s.deleteProfileDoc(ctx, accountID)
	}
	s.indexProfile(ctx, p)
	return p, nil
}

// SoftDelete flags the profile as deleted. The row remains in storage and
// the search index entry is removed.
func (s *ProfileService) SoftDelete(ctx context.Context, accountID string) error {
	if err := s.Profiles.SoftDelete(ctx, accountID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return profileNotFound(accountID)
		}
		return apperr.Wrap(err, apperr.CodeInternal, "failed to delete user")
	}
	s.deleteProfileDoc(ctx, accountID)
	return nil
}

func (s *ProfileService) GetSkills(ctx context.Context, accountID string) ([]entity.Skill, error) {
	p, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if p.Skills == nil {
		return []entity.Skill{}, nil
	}
	return p.Skills, nil
}

// AddSkill appends a skill; a second skill with the same name is rejected.
func (s *ProfileService) AddSkill(ctx context.Context, accountID string, skill entity.Skill) (*entity.Profile, error) {
	p, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if p.HasSkill(skill.Name) {
		return nil, apperr.Newf(apperr.CodeConflict, "skill with name %s already exists for this user", skill.Name)
	}
	p.Skills = append(p.Skills, skill)
	if err := s.Profiles.SaveSkills(ctx, accountID, p.Skills); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, profileNotFound(accountID)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to add skill")
	}
	s.indexProfile(ctx, p)
	return p, nil
}

// RemoveSkill removes the named skill by value; absence is not_found.
func (s *ProfileService) RemoveSkill(ctx context.Context, accountID, name string) (*entity.Profile, error) {
	p, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !p.HasSkill(name) {
		return nil, apperr.Newf(apperr.CodeNotFound, "skill with name %s not found", name)
	}
	kept := make([]entity.Skill, 0, len(p.Skills)-1)
	for _, sk := range p.Skills {
		if sk.Name != name {
			kept = append(kept, sk)
		}
	}
	p.Skills = kept
	if err := s.Profiles.SaveSkills(ctx, accountID, p.Skills); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, profileNotFound(accountID)
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to remove skill")
	}
	s.indexProfile(ctx, p)
	return p, nil
}

// SearchBySkillName returns active profiles carrying a skill with the exact
// name, straight from the SQL store.
func (s *ProfileService) SearchBySkillName(ctx context.Context, name string) ([]entity.Profile, error) {
	out, err := s.Profiles.SearchBySkillName(ctx, name)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to search users by skill")
	}
	return out, nil
}

// UploadAvatar stores the image in GCS and points the profile at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, accountID string, r io.Reader, filename, contentType string) (string, error) {
	p, err := s.Get(ctx, accountID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.New(apperr.CodeInternal, "avatar storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", accountID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeInternal, "avatar upload failed")
	}
	p.AvatarURL = url
	if err := s.Profiles.Update(ctx, accountID, p); err != nil {
		return "", apperr.Wrap(err, apperr.CodeInternal, "failed to update user")
	}
	s.indexProfile(ctx, p)
	return url, nil
}

// indexProfile mirrors the profile into Elasticsearch, best effort.
func (s *ProfileService) indexProfile(ctx context.Context, p *entity.Profile) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return
	}
	skillNames := make([]string, 0, len(p.Skills))
	for _, sk := range p.Skills {
		skillNames = append(skillNames, sk.Name)
	}
	doc := map[string]any{
		"account_id": p.AccountID,
		"name":       p.Name,
		"avatar_url": p.AvatarURL,
		"job_role":   p.JobRole,
		"skills":     skillNames,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProfilesIndex, DocumentID: p.AccountID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", p.AccountID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("account_id", p.AccountID).Warn("es index response error")
	}
}

func (s *ProfileService) deleteProfileDoc(ctx context.Context, accountID string) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESProfilesIndex, DocumentID: accountID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", accountID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchProfiles performs a multi_match free-text search over name, job role,
// and skill names in the Elasticsearch read model.
func (s *ProfileService) SearchProfiles(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "job_role", "skills"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESProfilesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "search failed")
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "search failed")
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
