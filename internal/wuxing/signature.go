package wuxing

import (
	"crypto/hmac"
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	"golang.org/x/crypto/sha3"
)

var (
	secretKeyOnce sync.Once
	secretKey     []byte
	secretKeyErr  error
)

// LoadSecretKey loads and caches the report signing key from the
// WUXING_SECRET_KEY environment variable. The key must be a hex string
// representing either 32 or 64 bytes. An unset variable is not an error —
// the report is simply left unsigned. The raw key material is never logged.
func LoadSecretKey() ([]byte, error) {
	secretKeyOnce.Do(func() {
		value := os.Getenv("WUXING_SECRET_KEY")
		if value == "" {
			return
		}

		decoded, err := hex.DecodeString(value)
		if err != nil {
			secretKeyErr = fmt.Errorf("invalid WUXING_SECRET_KEY hex encoding: %w", err)
			return
		}

		if l := len(decoded); l != 32 && l != 64 {
			secretKeyErr = fmt.Errorf("WUXING_SECRET_KEY must be 32 or 64 bytes, got %d bytes", l)
			return
		}

		secretKey = decoded
	})

	return secretKey, secretKeyErr
}

// SignReport computes the HMAC-SHA3-256 signature over the canonical report
// bytes. 256-bit symmetric constructions remain strong even under generic
// quantum attacks such as Grover's algorithm.
func SignReport(canonical, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("secret key must not be empty")
	}

	h := hmac.New(sha3.New256, secret)
	if _, err := h.Write(canonical); err != nil {
		return "", fmt.Errorf("failed to compute report signature: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
