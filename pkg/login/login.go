// Package login defines the wallet sign-in domain types.
package login

import (
	"time"

	"github.com/foresightlabs/market-api/pkg/user"
)

// ChallengeResponse carries a freshly issued sign-in nonce.
type ChallengeResponse struct {
	Nonce     string    `json:"nonce"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifyRequest is the signed challenge a wallet submits to authenticate.
// Message must be the exact string that was signed.
type VerifyRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// VerifyResponse is returned on successful authentication. The same token is
// also set as the session cookie.
type VerifyResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}
