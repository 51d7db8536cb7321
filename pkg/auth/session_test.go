package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testAddress = "0x1111111111111111111111111111111111111111"

func newManager(t *testing.T, secret string, ttl time.Duration) *SessionManager {
	t.Helper()

	m, err := NewSessionManager([]byte(secret), ttl)
	if err != nil {
		t.Fatalf("NewSessionManager() failed: %v", err)
	}
	return m
}

func TestNewSessionManager_RejectsEmptySecret(t *testing.T) {
	if _, err := NewSessionManager(nil, time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewSessionManager([]byte("secret"), 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestSessionManager_RoundTrip(t *testing.T) {
	m := newManager(t, "secret", time.Hour)

	token, err := m.Issue(42, testAddress)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	session, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if session.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", session.UserID)
	}
	if session.Address != testAddress {
		t.Fatalf("expected address %s, got %s", testAddress, session.Address)
	}
}

func TestSessionManager_RejectsExpiredToken(t *testing.T) {
	m := newManager(t, "secret", time.Hour)

	issuedAt := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue(42, testAddress)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	m.now = time.Now
	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessionManager_RejectsWrongSecret(t *testing.T) {
	issuer := newManager(t, "secret-one", time.Hour)
	verifier := newManager(t, "secret-two", time.Hour)

	token, err := issuer.Issue(42, testAddress)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessionManager_RejectsUnsignedAlgorithm(t *testing.T) {
	m := newManager(t, "secret", time.Hour)

	// A token asserting alg=none must be rejected no matter what it claims.
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:  42,
		Address: testAddress,
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() failed: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessionManager_RejectsGarbage(t *testing.T) {
	m := newManager(t, "secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("Verify(%q): expected ErrInvalidSession, got %v", token, err)
		}
	}
}

func TestSessionManager_RejectsEmptyIdentity(t *testing.T) {
	m := newManager(t, "secret", time.Hour)

	// A correctly signed token whose identity claims are missing is still
	// unusable.
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString() failed: %v", err)
	}

	if _, err := m.Verify(signed); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}
