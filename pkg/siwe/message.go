// Package siwe handles the plain-text sign-in challenge message exchanged
// with wallets (EIP-4361 style).
//
// The server never re-renders a structured message object: verification
// requires the literal string the wallet signed, because recovery over any
// other byte sequence silently yields a wrong address instead of failing.
package siwe

import (
	"fmt"
	"regexp"
	"time"
)

var noncePattern = regexp.MustCompile(`(?m)^[ \t]*Nonce:[ \t]*([a-zA-Z0-9]+)[ \t]*$`)

// ExtractNonce pulls the nonce out of a signed challenge message. Returns an
// empty string when the message carries no Nonce line.
func ExtractNonce(message string) string {
	match := noncePattern.FindStringSubmatch(message)
	if match == nil {
		return ""
	}
	return match[1]
}

// BuildMessage renders a sign-in challenge for the given domain, address and
// nonce. Clients may render their own message; the server only requires that
// whatever was signed is submitted verbatim and contains a Nonce line.
func BuildMessage(domain, address, nonce string, issuedAt time.Time) string {
	return fmt.Sprintf(
		"%s wants you to sign in with your Ethereum account:\n%s\n\nURI: https://%s\nVersion: 1\nChain ID: 1\nNonce: %s\nIssued At: %s",
		domain,
		address,
		domain,
		nonce,
		issuedAt.UTC().Format(time.RFC3339),
	)
}
