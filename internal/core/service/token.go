package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teamhub/identity-service/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// tokenClaims is the JWT payload. Subject carries the username; the rest of
// the principal rides in private claims.
type tokenClaims struct {
	UserID string   `json:"uid"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 bearer tokens. It depends only on
// the signing secret, the token lifetime, and a clock; it never touches
// storage. Validation recomputes the signature before any claim is trusted.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService from the shared signing secret and
// configured lifetime. A non-positive ttl falls back to 24h.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue encodes a principal into a signed token valid from now until
// now+ttl.
func (s *TokenService) Issue(principal domain.Principal) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		UserID: principal.ID,
		Email:  principal.Email,
		Roles:  principal.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate verifies a token and recovers the principal it carries.
// Expiry is exclusive: a token is already invalid at its exact expiry
// instant. No clock-skew leeway is applied.
func (s *TokenService) Validate(token string) (domain.Principal, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return domain.Principal{}, mapTokenError(err)
	}
	if !parsed.Valid {
		return domain.Principal{}, domain.ErrTokenMalformed
	}

	return domain.Principal{
		ID:       claims.UserID,
		Username: claims.Subject,
		Email:    claims.Email,
		Roles:    claims.Roles,
	}, nil
}

// mapTokenError collapses jwt/v5's error set into the domain taxonomy.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenBadSignature
	default:
		return domain.ErrTokenMalformed
	}
}
