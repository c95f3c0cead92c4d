package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	repo "github.com/skillmate/skillmate-api/internal/domain/repository"
	"github.com/skillmate/skillmate-api/pkg/apperr"
	"github.com/skillmate/skillmate-api/pkg/helpers"
	"github.com/skillmate/skillmate-api/pkg/mailer"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so callers cannot distinguish the two cases.
var ErrInvalidCredentials = apperr.New(apperr.CodeUnauthorized, "invalid credentials")

// fallbackDisplayName is used when a credential has no readable profile.
const fallbackDisplayName = "User"

// AccountService orchestrates signup and login across the credential and
// profile stores. Signup is a two-step saga with a compensating credential
// delete; there is no transaction spanning both stores.
type AccountService struct {
	Credentials repo.CredentialRepository
	Profiles    repo.ProfileRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger

	AppName          string
	DefaultAvatarURL string
	MailSendEnabled  bool
}

func NewAccountService(creds repo.CredentialRepository, profiles repo.ProfileRepository, jwt *helpers.JWTManager, rdb *redis.Client, pub *helpers.RabbitPublisher, logger *logrus.Logger, appName, defaultAvatarURL string, mailEnabled bool) *AccountService {
	return &AccountService{
		Credentials:      creds,
		Profiles:         profiles,
		JWT:              jwt,
		Redis:            rdb,
		Pub:              pub,
		Logger:           logger,
		AppName:          appName,
		DefaultAvatarURL: defaultAvatarURL,
		MailSendEnabled:  mailEnabled,
	}
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Avatar   string
}

type AuthResult struct {
	AccountID string
	Name      string
	Tokens    TokenPair
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// SplitEmail splits an address at its first '@' into local part and domain.
func SplitEmail(email string) (local, domain string, err error) {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return "", "", apperr.New(apperr.CodeInvalid, "invalid email address")
	}
	return local, domain, nil
}

func sessionKey(accountID string) string {
	return "account:session:" + accountID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Signup creates a credential and its profile. If the profile step fails the
// credential is deleted again; a failed compensation leaves an orphaned
// credential and is logged, never silently dropped.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	local, domain, err := SplitEmail(in.Email)
	if err != nil {
		return nil, err
	}

	if _, err := s.Credentials.FindByEmail(ctx, local, domain); err == nil {
		return nil, apperr.New(apperr.CodeConflict, "user with this email already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "credential lookup failed")
	}

	accountID := uuid.NewString()
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "password hashing failed")
	}

	cred := &entity.Credential{
		AccountID:    accountID,
		EmailLocal:   local,
		EmailDomain:  domain,
		PasswordHash: hash,
	}
	if err := s.Credentials.Create(ctx, cred); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.New(apperr.CodeConflict, "user with this email already exists")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to store credential")
	}

	avatar := in.Avatar
	if avatar == "" {
		avatar = s.DefaultAvatarURL
	}
	profile := &entity.Profile{
		AccountID: accountID,
		Name:      in.Name,
		AvatarURL: avatar,
		Skills:    []entity.Skill{},
	}
	if err := s.Profiles.Create(ctx, profile); err != nil {
		s.compensateCredential(ctx, accountID)
		return nil, apperr.Wrap(err, apperr.CodeInvalid, "failed to create user")
	}

	pair, err := s.issueTokens(ctx, accountID, profile.Name, local+"@"+domain, profile.AvatarURL)
	if err != nil {
		return nil, err
	}

	s.enqueueEmail(ctx, local+"@"+domain, mailer.TemplateWelcome, map[string]any{
		"AppName": s.AppName,
		"Name":    profile.Name,
	})

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"account_id": accountID}).Info("account created")
	}
	return &AuthResult{AccountID: accountID, Name: profile.Name, Tokens: pair}, nil
}

// compensateCredential deletes the credential created earlier in the saga.
// The delete is idempotent; zero rows affected is success.
func (s *AccountService) compensateCredential(ctx context.Context, accountID string) {
	if err := s.Credentials.DeleteByAccountID(ctx, accountID); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", accountID).
				Error("signup compensation failed, credential orphaned")
		}
		return
	}
	if s.Logger != nil {
		s.Logger.WithField("account_id", accountID).Warn("signup rolled back")
	}
}

// Login verifies the credential and returns a fresh token pair. Unknown email
// and wrong password produce the same error. A missing profile does not fail
// the login; the display name degrades to a placeholder.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	local, domain, err := SplitEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	cred, err := s.Credentials.FindByEmail(ctx, local, domain)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CheckPassword(cred.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	name := fallbackDisplayName
	avatar := ""
	if p, err := s.Profiles.FindByAccountID(ctx, cred.AccountID); err == nil {
		name = p.Name
		avatar = p.AvatarURL
	} else if s.Logger != nil {
		s.Logger.WithError(err).WithField("account_id", cred.AccountID).
			Warn("profile lookup failed during login, using placeholder name")
	}

	pair, err := s.issueTokens(ctx, cred.AccountID, name, email, avatar)
	if err != nil {
		return nil, err
	}

	s.enqueueEmail(ctx, email, mailer.TemplateLoginNotification, map[string]any{
		"AppName": s.AppName,
		"Name":    name,
		"Time":    nowRFC3339(),
	})

	return &AuthResult{AccountID: cred.AccountID, Name: name, Tokens: pair}, nil
}

// Refresh validates the refresh token against the stored session, then
// rotates the session id and issues a new pair.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(claims.AccountID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return nil, ErrInvalidCredentials
		}
	}

	name := fallbackDisplayName
	avatar := ""
	if p, err := s.Profiles.FindByAccountID(ctx, claims.AccountID); err == nil {
		name = p.Name
		avatar = p.AvatarURL
	}

	// The refresh claims carry the login email, so the rebuilt session
	// keeps it across rotations.
	pair, err := s.issueTokens(ctx, claims.AccountID, name, claims.Email, avatar)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccountID: claims.AccountID, Name: name, Tokens: pair}, nil
}

// issueTokens generates an access/refresh pair and records the session in
// Redis under a fresh session id.
func (s *AccountService) issueTokens(ctx context.Context, accountID, name, email, avatar string) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(accountID, email, sid)
	if err != nil {
		return TokenPair{}, apperr.Wrap(err, apperr.CodeInternal, "token generation failed")
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(accountID, email, sid)
	if err != nil {
		return TokenPair{}, apperr.Wrap(err, apperr.CodeInternal, "token generation failed")
	}

	if s.Redis != nil {
		key := sessionKey(accountID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"account_id": accountID,
			"email":      email,
			"name":       name,
			"avatar_url": avatar,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// enqueueEmail publishes a templated email job, best effort.
func (s *AccountService) enqueueEmail(ctx context.Context, to, template string, data map[string]any) {
	if s.Pub == nil || !s.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", template).Warn("email enqueue failed")
	}
}
