package helpers

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager handles generation and validation of JWT tokens. Access and
// refresh tokens are signed with independent secrets and TTLs.
type JWTManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

var defaultManager *JWTManager

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	m := &JWTManager{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

// Claims carry the user id as the registered subject plus the email. The
// jti is unique per issuance so two pairs minted within the same second
// still differ.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateAccessToken(userID, email string) (string, time.Time, error) {
	return generateToken(m.AccessSecret, m.AccessTTL, userID, email)
}

func (m *JWTManager) GenerateRefreshToken(userID, email string) (string, time.Time, error) {
	return generateToken(m.RefreshSecret, m.RefreshTTL, userID, email)
}

func generateToken(secret []byte, ttl time.Duration, userID, email string) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

// VerifyAccessToken returns the claims of a valid access token, or nil for
// any failure: bad signature, expiry, malformed input, wrong secret. Callers
// treat nil uniformly as an authentication failure.
func (m *JWTManager) VerifyAccessToken(tokenStr string) *Claims {
	return verifyToken(tokenStr, m.AccessSecret)
}

// VerifyRefreshToken is VerifyAccessToken for the refresh secret.
func (m *JWTManager) VerifyRefreshToken(tokenStr string) *Claims {
	return verifyToken(tokenStr, m.RefreshSecret)
}

func verifyToken(tokenStr string, secret []byte) *Claims {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil
	}
	return claims
}

// SignatureSegment extracts the third dot-separated segment of a compact
// JWS. The segment is unique per issuance and unforgeable without the
// secret, which makes it a safe compact fingerprint of the whole token.
func SignatureSegment(token string) (string, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
