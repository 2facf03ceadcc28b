package domain

import "errors"

// Token validation failures. The boundary surfaces all three to clients as a
// single "unauthenticated" signal; the distinction exists for diagnostics
// and metrics only.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
)
