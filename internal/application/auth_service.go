package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rzkmak/auth-service/internal/domain/entity"
	repo "github.com/rzkmak/auth-service/internal/domain/repository"
	"github.com/rzkmak/auth-service/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password
	// so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccessDenied means the presented refresh token does not match the
	// stored fingerprint. Callers should treat it as a reuse signal.
	ErrAccessDenied = errors.New("access denied")
	// ErrDuplicateEmail is returned on sign-up conflicts.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserNotFound is returned when a token references a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrSecretTooLong is returned for passwords over the hasher's limit.
	ErrSecretTooLong = errors.New("secret too long")
)

// Service orchestrates credential validation and the refresh-token
// lifecycle: issuance, fingerprint persistence, rotation and logout.
type Service struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Hasher *helpers.Hasher
	Logger *logrus.Logger
}

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, hasher *helpers.Hasher, logger *logrus.Logger) *Service {
	return &Service{Repo: repo, JWT: jwt, Hasher: hasher, Logger: logger}
}

// TokenPair is a freshly issued access/refresh token pair. Neither token is
// persisted; only a hash of the refresh token's signature segment is stored
// against the user.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type SignUpInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates a new user with a hashed password. The email is
// case-normalized before the uniqueness check so Test@X.com and test@x.com
// are the same account.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*entity.User, error) {
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, helpers.ErrSecretTooLong) {
			return nil, ErrSecretTooLong
		}
		return nil, err
	}

	u := &entity.User{
		Email:     normalizeEmail(in.Email),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// ValidateCredentials checks email/password against the stored record and
// returns the full user for downstream token issuance.
func (s *Service) ValidateCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.Hasher.Compare(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GenerateAndSaveTokens signs a new token pair and persists the fingerprint
// of the refresh token against the user. Because validity is coupled to the
// current fingerprint, issuing a pair invalidates every previously issued
// refresh token for that user.
func (s *Service) GenerateAndSaveTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	pair, fp, err := s.issueTokens(u)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.Repo.UpdateRefreshFingerprint(ctx, u.ID, &fp); err != nil {
		return TokenPair{}, err
	}
	u.RefreshTokenHash = &fp
	return pair, nil
}

// RefreshTokens validates a presented refresh token against the stored
// fingerprint and rotates the pair. The fingerprint write is a
// compare-and-swap on the previous value, so of two concurrent refreshes
// with the same token exactly one wins; the loser gets ErrAccessDenied.
func (s *Service) RefreshTokens(ctx context.Context, u *entity.User, refreshToken string) (TokenPair, error) {
	seg, ok := helpers.SignatureSegment(refreshToken)
	if !ok || u.RefreshTokenHash == nil || !s.Hasher.Compare(*u.RefreshTokenHash, seg) {
		s.Logger.WithField("user_id", u.ID).Warn("refresh token fingerprint mismatch")
		return TokenPair{}, ErrAccessDenied
	}

	pair, fp, err := s.issueTokens(u)
	if err != nil {
		return TokenPair{}, err
	}
	swapped, err := s.Repo.SwapRefreshFingerprint(ctx, u.ID, u.RefreshTokenHash, &fp)
	if err != nil {
		return TokenPair{}, err
	}
	if !swapped {
		s.Logger.WithField("user_id", u.ID).Warn("refresh token rotated concurrently")
		return TokenPair{}, ErrAccessDenied
	}
	u.RefreshTokenHash = &fp
	return pair, nil
}

// Logout clears the stored fingerprint, invalidating any outstanding
// refresh token unconditionally.
func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.Repo.UpdateRefreshFingerprint(ctx, userID, nil)
}

// GetProfile loads a user by id for profile retrieval.
func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) issueTokens(u *entity.User) (TokenPair, string, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, "", err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, "", err
	}

	// The fingerprint hashes only the signature segment: the signer already
	// re-validates expiry and claims, and the segment alone is unforgeable.
	seg, ok := helpers.SignatureSegment(refresh)
	if !ok {
		return TokenPair{}, "", errors.New("malformed refresh token")
	}
	fp, err := s.Hasher.Hash(seg)
	if err != nil {
		return TokenPair{}, "", err
	}

	pair := TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}
	return pair, fp, nil
}
