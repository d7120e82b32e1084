package alg

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// ES256K is ECDSA over secp256k1 with SHA-256. Signatures are the 64-byte
// concatenation r || s, produced with RFC 6979 nonces in low-S form.
type ES256K struct{}

// ES256KSignature is r || s, 32 bytes each, big-endian.
type ES256KSignature [64]byte

func (s ES256KSignature) Bytes() []byte { return s[:] }

func (ES256K) Name() string { return "ES256K" }

func (ES256K) Sign(key *secp256k1.PrivateKey, message []byte) ES256KSignature {
	digest := sha256.Sum256(message)
	// Compact form is a recovery byte followed by r and s.
	compact := ecdsa.SignCompact(key, digest[:], true)

	var sig ES256KSignature
	copy(sig[:], compact[1:])
	return sig
}

func (ES256K) Verify(sig ES256KSignature, key *secp256k1.PublicKey, message []byte) bool {
	if key == nil {
		return false
	}

	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(sig[:32]) || s.SetByteSlice(sig[32:]) {
		return false
	}
	if r.IsZero() || s.IsZero() {
		return false
	}

	digest := sha256.Sum256(message)
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], key)
}

// ParseSignature rejects signatures of the wrong length or with r or s not below
// the group order.
func (ES256K) ParseSignature(b []byte) (ES256KSignature, error) {
	var sig ES256KSignature
	if err := parseFixed(sig[:], b); err != nil {
		return sig, err
	}

	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(sig[:32]) || s.SetByteSlice(sig[32:]) {
		return sig, ErrScalarOverflow
	}
	return sig, nil
}

// GenerateES256KKey creates a private key from r, or crypto/rand when r is nil.
func GenerateES256KKey(r io.Reader) (*secp256k1.PrivateKey, error) {
	if r == nil {
		r = rand.Reader
	}

	var buf [32]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("alg: generate ES256K key: %w", err)
		}
		var k secp256k1.ModNScalar
		if overflow := k.SetByteSlice(buf[:]); overflow || k.IsZero() {
			continue
		}
		return secp256k1.NewPrivateKey(&k), nil
	}
}
