package security

import (
	"crypto/subtle"
	"runtime"
	"strings"
)

// ZeroBytes overwrites a byte slice holding key material.
func ZeroBytes(data []byte) {
	if len(data) == 0 {
		return
	}

	for i := range data {
		data[i] = 0
	}

	runtime.KeepAlive(data)
}

// SecureCompare performs constant-time comparison of two byte slices.
// Slices of different lengths never compare equal.
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// MinSecretLength is the shortest HMAC secret not flagged as weak.
const MinSecretLength = 32

// IsWeakKey reports secrets that are too short, constant, sequential, or built from
// common words.
func IsWeakKey(key []byte) bool {
	if len(key) < MinSecretLength {
		return true
	}

	repeated := true
	for _, b := range key {
		if b != key[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return true
	}

	if hasLowEntropy(key) {
		return true
	}

	keyStr := strings.ToLower(string(key))
	for _, pattern := range weakPatterns {
		if strings.Contains(keyStr, pattern) {
			return true
		}
	}

	ascending, descending := true, true
	for i := 1; i < 8; i++ {
		if key[i] != key[i-1]+1 {
			ascending = false
		}
		if key[i] != key[i-1]-1 {
			descending = false
		}
	}
	return ascending || descending
}

var weakPatterns = [...]string{
	"12345678", "87654321", "qwerty", "asdfgh", "zxcvbn",
	"password", "secret", "letmein", "changeme", "example",
}

// hasLowEntropy flags keys where fewer than a quarter of the bytes are distinct.
// Past 256 bytes the byte alphabet is exhausted, so the ratio is capped.
func hasLowEntropy(key []byte) bool {
	var seen [256]bool
	unique := 0
	for _, b := range key {
		if !seen[b] {
			seen[b] = true
			unique++
		}
	}
	limit := len(key)
	if limit > len(seen) {
		limit = len(seen)
	}
	return unique*4 < limit
}
