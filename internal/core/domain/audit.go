package domain

import "time"

// AuditKind classifies an entry in the auth audit trail.
type AuditKind string

const (
	AuditLoginSuccess AuditKind = "login_success"
	AuditLoginFailure AuditKind = "login_failure"
	AuditSignup       AuditKind = "signup"
	AuditPromotion    AuditKind = "promotion"
)

// AuthEvent is one record in the auth audit trail. Events are written
// asynchronously and best-effort; they never influence request outcomes.
type AuthEvent struct {
	Username  string    `json:"username"`
	Kind      AuditKind `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
