package application

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rzkmak/auth-service/internal/infrastructure/memory"
	"github.com/rzkmak/auth-service/pkg/helpers"
)

func newTestService(t *testing.T) (*Service, *memory.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	jwtm := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(repo, jwtm, &helpers.Hasher{Cost: bcrypt.MinCost}, logger), repo
}

func signUp(t *testing.T, svc *Service) SignUpInput {
	t.Helper()
	in := SignUpInput{Email: "a@b.com", FirstName: "A", LastName: "B", Password: "Str0ng!Pass"}
	_, err := svc.SignUp(context.Background(), in)
	require.NoError(t, err)
	return in
}

func TestSignUpThenValidateCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	in := signUp(t, svc)

	u, err := svc.ValidateCredentials(context.Background(), in.Email, in.Password)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "A", u.FirstName)
	assert.NotEqual(t, in.Password, u.Password, "password must be stored hashed")
}

func TestValidateCredentialsUniformError(t *testing.T) {
	svc, _ := newTestService(t)
	signUp(t, svc)

	// Unknown email and wrong password yield the identical error.
	_, errUnknown := svc.ValidateCredentials(context.Background(), "nobody@b.com", "Str0ng!Pass")
	_, errWrongPwd := svc.ValidateCredentials(context.Background(), "a@b.com", "Wr0ng!Pass")
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPwd, ErrInvalidCredentials)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, repo := newTestService(t)
	in := signUp(t, svc)

	_, err := svc.SignUp(context.Background(), in)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, repo.Count(), "conflicting sign-up must not create a second record")
}

func TestEmailCaseNormalization(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email: "Test@X.com", FirstName: "A", LastName: "B", Password: "Str0ng!Pass",
	})
	require.NoError(t, err)

	u, err := svc.ValidateCredentials(context.Background(), "test@x.com", "Str0ng!Pass")
	require.NoError(t, err)
	assert.Equal(t, "test@x.com", u.Email)

	_, err = svc.SignUp(context.Background(), SignUpInput{
		Email: "TEST@x.COM", FirstName: "A", LastName: "B", Password: "Str0ng!Pass",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSignUpOversizedPassword(t *testing.T) {
	svc, repo := newTestService(t)
	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email: "a@b.com", FirstName: "A", LastName: "B",
		Password: strings.Repeat("x", 73),
	})
	assert.ErrorIs(t, err, ErrSecretTooLong)
	assert.Equal(t, 0, repo.Count())
}

func TestGenerateAndSaveTokensPersistsFingerprint(t *testing.T) {
	svc, repo := newTestService(t)
	in := signUp(t, svc)
	u, err := svc.ValidateCredentials(context.Background(), in.Email, in.Password)
	require.NoError(t, err)

	pair, err := svc.GenerateAndSaveTokens(context.Background(), u)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	stored, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshTokenHash)

	// Only a hash of the signature segment is persisted, never the token.
	seg, ok := helpers.SignatureSegment(pair.RefreshToken)
	require.True(t, ok)
	assert.NotContains(t, *stored.RefreshTokenHash, seg)
	assert.True(t, svc.Hasher.Compare(*stored.RefreshTokenHash, seg))
}

func TestRefreshRotation(t *testing.T) {
	svc, _ := newTestService(t)
	in := signUp(t, svc)
	u, err := svc.ValidateCredentials(context.Background(), in.Email, in.Password)
	require.NoError(t, err)

	first, err := svc.GenerateAndSaveTokens(context.Background(), u)
	require.NoError(t, err)

	// the freshly returned refresh token rotates successfully
	u1, err := svc.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)
	second, err := svc.RefreshTokens(context.Background(), u1, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)

	// the now-stale token is unusable
	u2, err := svc.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)
	_, err = svc.RefreshTokens(context.Background(), u2, first.RefreshToken)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// while the rotated one still works
	u3, err := svc.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)
	_, err = svc.RefreshTokens(context.Background(), u3, second.RefreshToken)
	assert.NoError(t, err)
}

func TestConcurrentRefreshSingleWinner(t *testing.T) {
	svc, _ := newTestService(t)
	in := signUp(t, svc)
	u, err := svc.ValidateCredentials(context.Background(), in.Email, in.Password)
	require.NoError(t, err)

	pair, err := svc.GenerateAndSaveTokens(context.Background(), u)
	require.NoError(t, err)

	// Two requests read the same stored fingerprint before either writes.
	uA, err := svc.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)
	uB, err := svc.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)

	_, err = svc.RefreshTokens(context.Background(), uA, pair.RefreshToken)
	require.NoError(t, err)

	// The loser's compare-and-swap fails even though its in-memory copy
	// still matched the presented token.
	_, err = svc.RefreshTokens(context.Background(), uB, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	svc, repo := newTestService(t)
	in := signUp(t, svc)
	u, err := svc.ValidateCredentials(context.Background(), in.Email, in.Password)
	require.NoError(t, err)

	pair, err := svc.GenerateAndSaveTokens(context.Background(), u)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), u.ID))

	stored, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshTokenHash)

	_, err = svc.RefreshTokens(context.Background(), stored, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestTamperedRefreshToken(t *testing.T) {
	svc, _ := newTestService(t)
	in := signUp(t, svc)
	u, err := svc.ValidateCredentials(context.Background(), in.Email, in.Password)
	require.NoError(t, err)

	_, err = svc.GenerateAndSaveTokens(context.Background(), u)
	require.NoError(t, err)

	stored, err := svc.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)
	_, err = svc.RefreshTokens(context.Background(), stored, "aaaa.bbbb.cccc")
	assert.ErrorIs(t, err, ErrAccessDenied)
}
