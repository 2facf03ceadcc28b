package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teamhub/identity-service/internal/core/domain"
	"github.com/teamhub/identity-service/internal/core/ports"
)

// AuthService verifies credentials against stored hashes and issues tokens.
type AuthService struct {
	users  ports.UserRepository
	hasher *PasswordHasher
	issuer ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher *PasswordHasher, issuer ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, issuer: issuer, log: log}
}

// SignIn authenticates username+password and returns a bearer token plus the
// authenticated principal. Unknown usernames and wrong passwords are
// indistinguishable from the outside: both return ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, domain.Principal, error) {
	if username == "" || password == "" {
		return "", domain.Principal{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("username", username).Msg("sign-in for unknown username")
			return "", domain.Principal{}, domain.ErrInvalidCredentials
		}
		return "", domain.Principal{}, fmt.Errorf("sign in: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Debug().Str("username", username).Msg("sign-in with wrong password")
		return "", domain.Principal{}, domain.ErrInvalidCredentials
	}

	principal := domain.NewPrincipal(user)
	token, err := s.issuer.Issue(principal)
	if err != nil {
		return "", domain.Principal{}, fmt.Errorf("issue token: %w", err)
	}

	return token, principal, nil
}
