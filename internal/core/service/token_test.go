package service

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/teamhub/identity-service/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testPrincipal() domain.Principal {
	return domain.Principal{
		ID:       "user_1",
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []string{"ADMIN", "USER"},
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	want := testPrincipal()

	token, err := svc.Issue(want)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(strings.Split(token, ".")) != 3 {
		t.Fatalf("expected three dot-separated segments, got %q", token)
	}

	got, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("principal mismatch: got %+v want %+v", got, want)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour

	svc := NewTokenService("secret", ttl)
	svc.now = fixedClock(issuedAt)

	token, err := svc.Issue(testPrincipal())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Accepted at any instant strictly before expiry.
	svc.now = fixedClock(issuedAt.Add(ttl - time.Second))
	if _, err := svc.Validate(token); err != nil {
		t.Fatalf("expected valid just before expiry, got %v", err)
	}

	// Expiry is exclusive: rejected at the exact expiry instant.
	svc.now = fixedClock(issuedAt.Add(ttl))
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at expiry instant, got %v", err)
	}

	svc.now = fixedClock(issuedAt.Add(48 * time.Hour))
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired well past expiry, got %v", err)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testPrincipal())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Change the first character of the signature segment, keeping it valid
	// base64url so the failure is cryptographic, not syntactic.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Validate(tampered); !errors.Is(err, domain.ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	validator := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(testPrincipal())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := validator.Validate(token); !errors.Is(err, domain.ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "!!!.???.###"} {
		if _, err := svc.Validate(raw); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("expected ErrTokenMalformed for %q, got %v", raw, err)
		}
	}
}
