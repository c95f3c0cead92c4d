package application

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmate/skillmate-api/pkg/apperr"
	"github.com/skillmate/skillmate-api/pkg/helpers"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestAccountService(creds *fakeCredentialRepo, profiles *fakeProfileRepo) *AccountService {
	jwt := helpers.NewJWTManager("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewAccountService(creds, profiles, jwt, nil, nil, testLogger(), "skillmate", "https://via.placeholder.com/150", false)
}

func TestSplitEmail(t *testing.T) {
	local, domain, err := SplitEmail("jane.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", local)
	assert.Equal(t, "example.com", domain)

	// Only the first '@' splits.
	local, domain, err = SplitEmail("odd@name@example.com")
	require.NoError(t, err)
	assert.Equal(t, "odd", local)
	assert.Equal(t, "name@example.com", domain)

	for _, bad := range []string{"", "no-at-sign", "@example.com", "jane@"} {
		_, _, err := SplitEmail(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestSignupThenLogin(t *testing.T) {
	creds := newFakeCredentialRepo()
	profiles := newFakeProfileRepo()
	svc := newTestAccountService(creds, profiles)
	ctx := context.Background()

	res, err := svc.Signup(ctx, SignupInput{Email: "jane@example.com", Password: "hunter22", Name: "Jane"})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccountID)
	assert.Equal(t, "Jane", res.Name)
	assert.NotEmpty(t, res.Tokens.AccessToken)
	assert.NotEmpty(t, res.Tokens.RefreshToken)

	// The profile picked up the default avatar.
	p, ok := profiles.rawByAccount(res.AccountID)
	require.True(t, ok)
	assert.Equal(t, "https://via.placeholder.com/150", p.AvatarURL)

	// Password is stored hashed, never verbatim.
	cred, err := creds.FindByEmail(ctx, "jane", "example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", cred.PasswordHash)

	login, err := svc.Login(ctx, "jane@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, res.AccountID, login.AccountID)
	assert.Equal(t, "Jane", login.Name)
}

func TestSignupDuplicateEmail(t *testing.T) {
	creds := newFakeCredentialRepo()
	profiles := newFakeProfileRepo()
	svc := newTestAccountService(creds, profiles)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Email: "jane@example.com", Password: "hunter22", Name: "Jane"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Email: "jane@example.com", Password: "other-pass", Name: "Impostor"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	// Only the first profile exists.
	all, err := profiles.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSignupRollsBackCredentialOnProfileFailure(t *testing.T) {
	creds := newFakeCredentialRepo()
	profiles := newFakeProfileRepo()
	profiles.failOn["Create"] = errors.New("store unavailable")
	svc := newTestAccountService(creds, profiles)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Email: "jane@example.com", Password: "hunter22", Name: "Jane"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalid))

	// The compensating delete removed the credential, so the email is free
	// for a retry.
	_, err = creds.FindByEmail(ctx, "jane", "example.com")
	assert.Error(t, err)

	profiles.failOn = map[string]error{}
	_, err = svc.Signup(ctx, SignupInput{Email: "jane@example.com", Password: "hunter22", Name: "Jane"})
	assert.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	creds := newFakeCredentialRepo()
	profiles := newFakeProfileRepo()
	svc := newTestAccountService(creds, profiles)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Email: "jane@example.com", Password: "hunter22", Name: "Jane"})
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "hunter22")
	_, wrongErr := svc.Login(ctx, "jane@example.com", "wrong-pass")
	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.True(t, apperr.IsCode(unknownErr, apperr.CodeUnauthorized))
	assert.True(t, apperr.IsCode(wrongErr, apperr.CodeUnauthorized))
}

func TestLoginFallsBackWhenProfileMissing(t *testing.T) {
	creds := newFakeCredentialRepo()
	profiles := newFakeProfileRepo()
	svc := newTestAccountService(creds, profiles)
	ctx := context.Background()

	res, err := svc.Signup(ctx, SignupInput{Email: "jane@example.com", Password: "hunter22", Name: "Jane"})
	require.NoError(t, err)

	// Soft-deleting the profile must not lock the account out.
	require.NoError(t, profiles.SoftDelete(ctx, res.AccountID))

	login, err := svc.Login(ctx, "jane@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "User", login.Name)
}

func TestRefreshRotatesTokens(t *testing.T) {
	creds := newFakeCredentialRepo()
	profiles := newFakeProfileRepo()
	svc := newTestAccountService(creds, profiles)
	ctx := context.Background()

	res, err := svc.Signup(ctx, SignupInput{Email: "jane@example.com", Password: "hunter22", Name: "Jane"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, res.AccountID, refreshed.AccountID)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)

	_, err = svc.Refresh(ctx, "not-a-token")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	// An access token must not pass as a refresh token.
	_, err = svc.Refresh(ctx, res.Tokens.AccessToken)
	assert.Error(t, err)
}

func TestRefreshKeepsEmail(t *testing.T) {
	creds := newFakeCredentialRepo()
	profiles := newFakeProfileRepo()
	svc := newTestAccountService(creds, profiles)
	ctx := context.Background()

	res, err := svc.Signup(ctx, SignupInput{Email: "jane@example.com", Password: "hunter22", Name: "Jane"})
	require.NoError(t, err)

	// Two rotations; the email claim must survive both, since the session
	// hash is rebuilt from it.
	refreshed, err := svc.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	refreshed, err = svc.Refresh(ctx, refreshed.Tokens.RefreshToken)
	require.NoError(t, err)

	jwt := helpers.NewJWTManager("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
	claims, err := jwt.ParseRefreshToken(refreshed.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
}
