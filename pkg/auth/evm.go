// Package auth implements wallet-based authentication primitives: EIP-191
// signature recovery and symmetric session tokens.
package auth

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

// RecoverAddress recovers the account that produced an EIP-191 personal_sign
// signature over message. The message must be the exact string the wallet
// signed; any reformatting between presentation and verification yields a
// different (wrong) address rather than an error.
//
// The recovered address is returned lowercased, matching how addresses are
// stored everywhere else in this service.
func RecoverAddress(message, signature string) (string, error) {
	sigBytes, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil {
		return "", fmt.Errorf("invalid signature hex: %w", err)
	}

	if len(sigBytes) != 65 {
		return "", fmt.Errorf("invalid signature length: expected 65, got %d", len(sigBytes))
	}

	// Recovery id (v) can be 0, 1, 27, or 28 - normalize to 0 or 1
	if sigBytes[64] >= 27 {
		sigBytes[64] -= 27
	}

	prefixedMsg := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	msgHash := crypto.Keccak256Hash([]byte(prefixedMsg))

	pubKey, err := crypto.SigToPub(msgHash.Bytes(), sigBytes)
	if err != nil {
		return "", fmt.Errorf("failed to recover public key: %w", err)
	}

	addr := crypto.PubkeyToAddress(*pubKey)
	return NormalizeAddress(addr.Hex()), nil
}

// NormalizeAddress lowercases an account address. Addresses are
// case-insensitive but commonly rendered mixed-case (EIP-55); every
// comparison and every stored row uses the lowercase form.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// ValidateAddress checks that address is a lowercase 0x-prefixed 40-hex-digit
// account identifier. Callers normalize first.
func ValidateAddress(address string) bool {
	return addressPattern.MatchString(address)
}
