package ports

import "github.com/teamhub/identity-service/internal/core/domain"

// TokenIssuer encodes a principal into a signed, time-bounded bearer token.
type TokenIssuer interface {
	Issue(principal domain.Principal) (string, error)
}

// TokenValidator verifies a bearer token and recovers the principal it
// carries. Failures are domain.ErrTokenMalformed, domain.ErrTokenBadSignature
// or domain.ErrTokenExpired; claims are never trusted before the signature
// has been verified.
type TokenValidator interface {
	Validate(token string) (domain.Principal, error)
}
