package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"

	"github.com/google/uuid"
)

// ContainsString checks if a slice of strings contains a specific string.
func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}

func ToPointer[T any](value T) *T {
	return &value
}

// GoSafe runs the given function in a new goroutine and recovers from any panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

// NewReferralCode returns a short shareable code: the first 8 hex characters
// of a fresh UUID, uppercased.
func NewReferralCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// HashToken returns a hex digest of an opaque token, safe to use as a cache
// key without holding the raw credential in memory longer than needed.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
