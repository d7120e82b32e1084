package alg

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"

	"github.com/cybergodev/jwtcompact/internal/security"
)

// HS256 is HMAC with SHA-256.
type HS256 struct{}

// HS384 is HMAC with SHA-384.
type HS384 struct{}

// HS512 is HMAC with SHA-512.
type HS512 struct{}

// HS256Key is a symmetric key for HS256.
type HS256Key []byte

// HS384Key is a symmetric key for HS384.
type HS384Key []byte

// HS512Key is a symmetric key for HS512.
type HS512Key []byte

// HS256Signature is an HMAC-SHA256 tag.
type HS256Signature [sha256.Size]byte

// HS384Signature is an HMAC-SHA384 tag.
type HS384Signature [sha512.Size384]byte

// HS512Signature is an HMAC-SHA512 tag.
type HS512Signature [sha512.Size]byte

func (s HS256Signature) Bytes() []byte { return s[:] }
func (s HS384Signature) Bytes() []byte { return s[:] }
func (s HS512Signature) Bytes() []byte { return s[:] }

func (HS256) Name() string { return "HS256" }
func (HS384) Name() string { return "HS384" }
func (HS512) Name() string { return "HS512" }

func (HS256) Sign(key HS256Key, message []byte) HS256Signature {
	var sig HS256Signature
	copy(sig[:], hmacSum(sha256.New, key, message))
	return sig
}

func (HS384) Sign(key HS384Key, message []byte) HS384Signature {
	var sig HS384Signature
	copy(sig[:], hmacSum(sha512.New384, key, message))
	return sig
}

func (HS512) Sign(key HS512Key, message []byte) HS512Signature {
	var sig HS512Signature
	copy(sig[:], hmacSum(sha512.New, key, message))
	return sig
}

func (HS256) Verify(sig HS256Signature, key HS256Key, message []byte) bool {
	return hmacVerify(sha256.New, key, message, sig[:])
}

func (HS384) Verify(sig HS384Signature, key HS384Key, message []byte) bool {
	return hmacVerify(sha512.New384, key, message, sig[:])
}

func (HS512) Verify(sig HS512Signature, key HS512Key, message []byte) bool {
	return hmacVerify(sha512.New, key, message, sig[:])
}

func (HS256) ParseSignature(b []byte) (HS256Signature, error) {
	var sig HS256Signature
	err := parseFixed(sig[:], b)
	return sig, err
}

func (HS384) ParseSignature(b []byte) (HS384Signature, error) {
	var sig HS384Signature
	err := parseFixed(sig[:], b)
	return sig, err
}

func (HS512) ParseSignature(b []byte) (HS512Signature, error) {
	var sig HS512Signature
	err := parseFixed(sig[:], b)
	return sig, err
}

func hmacSum(h func() hash.Hash, key, message []byte) []byte {
	mac := hmac.New(h, key)
	mac.Write(message)
	return mac.Sum(nil)
}

func hmacVerify(h func() hash.Hash, key, message, sig []byte) bool {
	expected := hmacSum(h, key, message)
	defer security.ZeroBytes(expected)
	return security.SecureCompare(sig, expected)
}

// NewHS256Key reads a key of one hash block (64 bytes) from r, or from crypto/rand
// when r is nil.
func NewHS256Key(r io.Reader) (HS256Key, error) {
	return generateSecret(r, sha256.BlockSize)
}

// NewHS384Key reads a key of one hash block (128 bytes).
func NewHS384Key(r io.Reader) (HS384Key, error) {
	return generateSecret(r, sha512.BlockSize)
}

// NewHS512Key reads a key of one hash block (128 bytes).
func NewHS512Key(r io.Reader) (HS512Key, error) {
	return generateSecret(r, sha512.BlockSize)
}

func generateSecret(r io.Reader, size int) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	key := make([]byte, size)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("alg: generate HMAC key: %w", err)
	}
	return key, nil
}

// Clone returns a copy of k that shares no memory with it.
func (k HS256Key) Clone() HS256Key { return bytes.Clone(k) }

// Clone returns a copy of k that shares no memory with it.
func (k HS384Key) Clone() HS384Key { return bytes.Clone(k) }

// Clone returns a copy of k that shares no memory with it.
func (k HS512Key) Clone() HS512Key { return bytes.Clone(k) }

// Destroy zeroes the key material in place.
func (k HS256Key) Destroy() { security.ZeroBytes(k) }

// Destroy zeroes the key material in place.
func (k HS384Key) Destroy() { security.ZeroBytes(k) }

// Destroy zeroes the key material in place.
func (k HS512Key) Destroy() { security.ZeroBytes(k) }
