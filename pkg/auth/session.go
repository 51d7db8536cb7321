package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned for any token that does not verify: missing,
// malformed, wrong algorithm, bad signature, or expired. Callers must not
// distinguish between these causes.
var ErrInvalidSession = errors.New("invalid session token")

// Session is the identity carried by a verified session token.
type Session struct {
	UserID  int64
	Address string
}

// sessionClaims is the fixed shape of session token claims. An open claim map
// would allow unexpected claims to ride along; only these fields exist.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID  int64  `json:"app.user_id"`
	Address string `json:"app.address"`
}

// SessionManager mints and verifies signed session tokens. The signing secret
// is process-wide, loaded once at startup, and immutable afterwards.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager creates a SessionManager with the given symmetric secret
// and session lifetime.
func NewSessionManager(secret []byte, ttl time.Duration) (*SessionManager, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("session secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &SessionManager{secret: secret, ttl: ttl, now: time.Now}, nil
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue mints an HS256-signed token embedding the user id and address, issued
// now and expiring after the configured lifetime. No side effects: the server
// never stores the token.
func (m *SessionManager) Issue(userID int64, address string) (string, error) {
	now := m.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID:  userID,
		Address: address,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and expiry and returns the embedded
// identity. The signing algorithm is pinned: a token asserting anything other
// than HS256 is rejected before its signature is even checked, so algorithm
// confusion is not possible.
func (m *SessionManager) Verify(tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	if claims.UserID == 0 || claims.Address == "" {
		return nil, ErrInvalidSession
	}

	return &Session{UserID: claims.UserID, Address: claims.Address}, nil
}
