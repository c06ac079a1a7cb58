package impl

import (
	"context"
	"testing"
	"time"

	"campusevents/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

func newTokenService(ttl time.Duration) *TokenServiceImpl {
	return NewTokenServiceHS256(TokenConfig{
		Issuer:     "campusevents",
		TTL:        ttl,
		SigningKey: []byte("unit-test-secret"),
	})
}

func TestTokenIssueAndSubjectRoundTrip(t *testing.T) {
	svc := newTokenService(time.Hour)

	token, err := svc.Issue(context.Background(), &domain.User{Email: "alice@aub.edu.lb"})
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	email, err := svc.Subject(token)
	if err != nil {
		t.Fatalf("subject returned error: %v", err)
	}
	if email != "alice@aub.edu.lb" {
		t.Fatalf("unexpected subject: %q", email)
	}
}

func TestTokenSubjectRejectsExpired(t *testing.T) {
	svc := newTokenService(-time.Minute)

	token, err := svc.Issue(context.Background(), &domain.User{Email: "alice@aub.edu.lb"})
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}
	if _, err := svc.Subject(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestTokenSubjectRejectsWrongKey(t *testing.T) {
	issuer := newTokenService(time.Hour)
	token, err := issuer.Issue(context.Background(), &domain.User{Email: "alice@aub.edu.lb"})
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	verifier := NewTokenServiceHS256(TokenConfig{Issuer: "campusevents", TTL: time.Hour, SigningKey: []byte("other-secret")})
	if _, err := verifier.Subject(token); err == nil {
		t.Fatalf("expected signature mismatch to be rejected")
	}
}

func TestTokenSubjectRejectsUnsignedAlgorithm(t *testing.T) {
	claims := AccessClaims{
		Email: "mallory@aub.edu.lb",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory@aub.edu.lb",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing none token: %v", err)
	}

	svc := newTokenService(time.Hour)
	if _, err := svc.Subject(token); err == nil {
		t.Fatalf("alg=none token must be rejected")
	}
}

func TestTokenSubjectFallsBackToRegisteredSubject(t *testing.T) {
	// Tokens minted by older builds carry only the registered subject.
	svc := newTokenService(time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "legacy@aub.edu.lb",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	email, err := svc.Subject(token)
	if err != nil {
		t.Fatalf("subject returned error: %v", err)
	}
	if email != "legacy@aub.edu.lb" {
		t.Fatalf("unexpected subject: %q", email)
	}
}
