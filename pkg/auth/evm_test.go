package auth

import (
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func signMessage(t *testing.T, message string) (string, string) {
	t.Helper()

	privateKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() failed: %v", err)
	}

	prefixedMessage := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	hash := crypto.Keccak256Hash([]byte(prefixedMessage))

	signature, err := crypto.Sign(hash.Bytes(), privateKey)
	if err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}

	address := NormalizeAddress(crypto.PubkeyToAddress(privateKey.PublicKey).Hex())
	return address, "0x" + hex.EncodeToString(signature)
}

func TestRecoverAddress_RoundTrip(t *testing.T) {
	message := "sign in to the markets\nNonce: abc123"
	address, signature := signMessage(t, message)

	recovered, err := RecoverAddress(message, signature)
	if err != nil {
		t.Fatalf("RecoverAddress() failed: %v", err)
	}
	if recovered != address {
		t.Fatalf("expected %s, got %s", address, recovered)
	}
	if recovered != strings.ToLower(recovered) {
		t.Fatalf("recovered address not lowercased: %s", recovered)
	}
}

func TestRecoverAddress_LegacyVByte(t *testing.T) {
	message := "legacy v"
	address, signature := signMessage(t, message)

	// Wallets commonly emit v as 27/28 instead of 0/1.
	raw, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil {
		t.Fatalf("DecodeString() failed: %v", err)
	}
	raw[64] += 27
	legacy := "0x" + hex.EncodeToString(raw)

	recovered, err := RecoverAddress(message, legacy)
	if err != nil {
		t.Fatalf("RecoverAddress() failed: %v", err)
	}
	if recovered != address {
		t.Fatalf("expected %s, got %s", address, recovered)
	}
}

func TestRecoverAddress_DifferentMessageDifferentAddress(t *testing.T) {
	message := "original message"
	address, signature := signMessage(t, message)

	// A valid signature over a different message recovers, but to the wrong
	// address: tampering shifts identity rather than erroring.
	recovered, err := RecoverAddress(message+" tampered", signature)
	if err == nil && recovered == address {
		t.Fatal("tampered message recovered the original signer")
	}
}

func TestRecoverAddress_InvalidInput(t *testing.T) {
	for name, signature := range map[string]string{
		"not hex":     "0xzz",
		"too short":   "0xdeadbeef",
		"empty":       "",
		"wrong bytes": "0x" + strings.Repeat("ab", 64),
	} {
		if _, err := RecoverAddress("msg", signature); err == nil {
			t.Fatalf("%s: expected error, got nil", name)
		}
	}
}

func TestValidateAddress(t *testing.T) {
	valid := []string{
		"0x1111111111111111111111111111111111111111",
		"0xabcdef0123456789abcdef0123456789abcdef01",
	}
	for _, addr := range valid {
		if !ValidateAddress(addr) {
			t.Fatalf("expected %q to be valid", addr)
		}
	}

	invalid := []string{
		"",
		"0x",
		"1111111111111111111111111111111111111111",
		"0x111111111111111111111111111111111111111",   // 39 digits
		"0x11111111111111111111111111111111111111111", // 41 digits
		"0xABCDEF0123456789ABCDEF0123456789ABCDEF01",  // not normalized
		"0xg111111111111111111111111111111111111111",  // non-hex
	}
	for _, addr := range invalid {
		if ValidateAddress(addr) {
			t.Fatalf("expected %q to be invalid", addr)
		}
	}
}

func TestNormalizeAddress(t *testing.T) {
	mixed := "0xABCdef0123456789ABCDEF0123456789abcdef01"
	if got := NormalizeAddress(mixed); got != strings.ToLower(mixed) {
		t.Fatalf("expected lowercase, got %q", got)
	}
}
