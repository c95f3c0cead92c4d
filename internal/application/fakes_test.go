package application

import (
	"context"
	"fmt"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	repo "github.com/skillmate/skillmate-api/internal/domain/repository"
)

// In-memory repository fakes. Each keeps deep-enough copies that tests do
// not observe aliasing through returned pointers.

type fakeCredentialRepo struct {
	byAccount map[string]entity.Credential
	failOn    map[string]error // method name -> error to inject
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{byAccount: map[string]entity.Credential{}, failOn: map[string]error{}}
}

func (f *fakeCredentialRepo) Create(ctx context.Context, c *entity.Credential) error {
	if err := f.failOn["Create"]; err != nil {
		return err
	}
	for _, existing := range f.byAccount {
		if existing.EmailLocal == c.EmailLocal && existing.EmailDomain == c.EmailDomain {
			return repo.ErrDuplicate
		}
	}
	f.byAccount[c.AccountID] = *c
	return nil
}

func (f *fakeCredentialRepo) FindByEmail(ctx context.Context, local, domain string) (*entity.Credential, error) {
	for _, c := range f.byAccount {
		if c.EmailLocal == local && c.EmailDomain == domain {
			cp := c
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeCredentialRepo) DeleteByAccountID(ctx context.Context, accountID string) error {
	if err := f.failOn["DeleteByAccountID"]; err != nil {
		return err
	}
	delete(f.byAccount, accountID)
	return nil
}

type fakeProfileRepo struct {
	byAccount map[string]entity.Profile
	failOn    map[string]error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byAccount: map[string]entity.Profile{}, failOn: map[string]error{}}
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	if err := f.failOn["Create"]; err != nil {
		return err
	}
	if _, ok := f.byAccount[p.AccountID]; ok {
		return repo.ErrDuplicate
	}
	f.byAccount[p.AccountID] = clone(*p)
	return nil
}

func (f *fakeProfileRepo) FindByAccountID(ctx context.Context, accountID string) (*entity.Profile, error) {
	p, ok := f.byAccount[accountID]
	if !ok || p.Deleted {
		return nil, repo.ErrNotFound
	}
	cp := clone(p)
	return &cp, nil
}

func (f *fakeProfileRepo) FindAll(ctx context.Context) ([]entity.Profile, error) {
	out := []entity.Profile{}
	for _, p := range f.byAccount {
		if !p.Deleted {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, accountID string, p *entity.Profile) error {
	existing, ok := f.byAccount[accountID]
	if !ok || existing.Deleted {
		return repo.ErrNotFound
	}
	if p.AccountID != accountID {
		delete(f.byAccount, accountID)
	}
	f.byAccount[p.AccountID] = clone(*p)
	return nil
}

func (f *fakeProfileRepo) SoftDelete(ctx context.Context, accountID string) error {
	p, ok := f.byAccount[accountID]
	if !ok || p.Deleted {
		return repo.ErrNotFound
	}
	p.Deleted = true
	f.byAccount[accountID] = p
	return nil
}

func (f *fakeProfileRepo) SaveSkills(ctx context.Context, accountID string, skills []entity.Skill) error {
	p, ok := f.byAccount[accountID]
	if !ok || p.Deleted {
		return repo.ErrNotFound
	}
	p.Skills = append([]entity.Skill(nil), skills...)
	f.byAccount[accountID] = p
	return nil
}

func (f *fakeProfileRepo) SearchBySkillName(ctx context.Context, name string) ([]entity.Profile, error) {
	out := []entity.Profile{}
	for _, p := range f.byAccount {
		if p.Deleted {
			continue
		}
		if (&p).HasSkill(name) {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

// rawByAccount exposes the stored row including soft-deleted ones.
func (f *fakeProfileRepo) rawByAccount(accountID string) (entity.Profile, bool) {
	p, ok := f.byAccount[accountID]
	return p, ok
}

func clone(p entity.Profile) entity.Profile {
	p.Skills = append([]entity.Skill(nil), p.Skills...)
	return p
}

type fakeExperienceRepo struct {
	byID map[string]entity.Experience
	seq  int
}

func newFakeExperienceRepo() *fakeExperienceRepo {
	return &fakeExperienceRepo{byID: map[string]entity.Experience{}}
}

func (f *fakeExperienceRepo) Create(ctx context.Context, e *entity.Experience) error {
	f.seq++
	e.ID = fmt.Sprintf("exp-%d", f.seq)
	f.byID[e.ID] = *e
	return nil
}

func (f *fakeExperienceRepo) FindByID(ctx context.Context, id string) (*entity.Experience, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := e
	return &cp, nil
}

func (f *fakeExperienceRepo) FindAll(ctx context.Context) ([]entity.Experience, error) {
	out := []entity.Experience{}
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeExperienceRepo) FindByAccountID(ctx context.Context, accountID string) ([]entity.Experience, error) {
	out := []entity.Experience{}
	for _, e := range f.byID {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExperienceRepo) Update(ctx context.Context, e *entity.Experience) error {
	if _, ok := f.byID[e.ID]; !ok {
		return repo.ErrNotFound
	}
	f.byID[e.ID] = *e
	return nil
}

func (f *fakeExperienceRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCourseRepo struct {
	byID map[string]entity.Course
}

func newFakeCourseRepo() *fakeCourseRepo { return &fakeCourseRepo{byID: map[string]entity.Course{}} }

func (f *fakeCourseRepo) Create(ctx context.Context, c *entity.Course) error {
	if _, ok := f.byID[c.CourseID]; ok {
		return repo.ErrDuplicate
	}
	f.byID[c.CourseID] = cloneCourse(*c)
	return nil
}

func (f *fakeCourseRepo) FindByID(ctx context.Context, id string) (*entity.Course, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := cloneCourse(c)
	return &cp, nil
}

func (f *fakeCourseRepo) FindAll(ctx context.Context) ([]entity.Course, error) {
	out := []entity.Course{}
	for _, c := range f.byID {
		out = append(out, cloneCourse(c))
	}
	return out, nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, c *entity.Course) error {
	if _, ok := f.byID[c.CourseID]; !ok {
		return repo.ErrNotFound
	}
	f.byID[c.CourseID] = cloneCourse(*c)
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCourseRepo) SaveLessonIDs(ctx context.Context, id string, lessonIDs []string) error {
	c, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	c.LessonIDs = append([]string(nil), lessonIDs...)
	f.byID[id] = c
	return nil
}

func cloneCourse(c entity.Course) entity.Course {
	c.LessonIDs = append([]string(nil), c.LessonIDs...)
	return c
}

type fakeLessonRepo struct {
	byID map[string]entity.Lesson
}

func newFakeLessonRepo() *fakeLessonRepo { return &fakeLessonRepo{byID: map[string]entity.Lesson{}} }

func (f *fakeLessonRepo) Create(ctx context.Context, l *entity.Lesson) error {
	if _, ok := f.byID[l.LessonID]; ok {
		return repo.ErrDuplicate
	}
	f.byID[l.LessonID] = cloneLesson(*l)
	return nil
}

func (f *fakeLessonRepo) FindByID(ctx context.Context, id string) (*entity.Lesson, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := cloneLesson(l)
	return &cp, nil
}

func (f *fakeLessonRepo) FindAll(ctx context.Context) ([]entity.Lesson, error) {
	out := []entity.Lesson{}
	for _, l := range f.byID {
		out = append(out, cloneLesson(l))
	}
	return out, nil
}

func (f *fakeLessonRepo) Update(ctx context.Context, l *entity.Lesson) error {
	if _, ok := f.byID[l.LessonID]; !ok {
		return repo.ErrNotFound
	}
	f.byID[l.LessonID] = cloneLesson(*l)
	return nil
}

func (f *fakeLessonRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeLessonRepo) SaveQuestionIDs(ctx context.Context, id string, questionIDs []string) error {
	l, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	l.QuestionIDs = append([]string(nil), questionIDs...)
	f.byID[id] = l
	return nil
}

func cloneLesson(l entity.Lesson) entity.Lesson {
	l.Keywords = append([]string(nil), l.Keywords...)
	l.QuestionIDs = append([]string(nil), l.QuestionIDs...)
	return l
}

type fakeQuestionRepo struct {
	byID map[string]entity.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{byID: map[string]entity.Question{}}
}

func (f *fakeQuestionRepo) Create(ctx context.Context, q *entity.Question) error {
	if _, ok := f.byID[q.QuestionID]; ok {
		return repo.ErrDuplicate
	}
	f.byID[q.QuestionID] = *q
	return nil
}

func (f *fakeQuestionRepo) FindByID(ctx context.Context, id string) (*entity.Question, error) {
	q, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := q
	return &cp, nil
}

func (f *fakeQuestionRepo) FindAll(ctx context.Context) ([]entity.Question, error) {
	out := []entity.Question{}
	for _, q := range f.byID {
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeQuestionRepo) Update(ctx context.Context, q *entity.Question) error {
	if _, ok := f.byID[q.QuestionID]; !ok {
		return repo.ErrNotFound
	}
	f.byID[q.QuestionID] = *q
	return nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

var (
	_ repo.CredentialRepository = (*fakeCredentialRepo)(nil)
	_ repo.ProfileRepository    = (*fakeProfileRepo)(nil)
	_ repo.ExperienceRepository = (*fakeExperienceRepo)(nil)
	_ repo.CourseRepository     = (*fakeCourseRepo)(nil)
	_ repo.LessonRepository     = (*fakeLessonRepo)(nil)
	_ repo.QuestionRepository   = (*fakeQuestionRepo)(nil)
)
