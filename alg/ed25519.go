package alg

import (
	"crypto/ed25519"
	"fmt"
	"io"
)

// Ed25519 is EdDSA over Curve25519, advertised as "EdDSA".
type Ed25519 struct{}

// Ed25519Signature is a detached Ed25519 signature.
type Ed25519Signature [ed25519.SignatureSize]byte

func (s Ed25519Signature) Bytes() []byte { return s[:] }

func (Ed25519) Name() string { return "EdDSA" }

// Sign signs message. The key must be a full ed25519.PrivateKeySize key, as returned
// by GenerateEd25519Key or ed25519.NewKeyFromSeed; any other key yields an all-zero
// signature instead of panicking.
func (Ed25519) Sign(key ed25519.PrivateKey, message []byte) Ed25519Signature {
	var sig Ed25519Signature
	if len(key) != ed25519.PrivateKeySize {
		return sig
	}
	copy(sig[:], ed25519.Sign(key, message))
	return sig
}

// Verify reports false for a public key of the wrong size instead of panicking.
func (Ed25519) Verify(sig Ed25519Signature, key ed25519.PublicKey, message []byte) bool {
	if len(key) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(key, message, sig[:])
}

func (Ed25519) ParseSignature(b []byte) (Ed25519Signature, error) {
	var sig Ed25519Signature
	err := parseFixed(sig[:], b)
	return sig, err
}

// GenerateEd25519Key creates a key pair using r, or crypto/rand when r is nil.
func GenerateEd25519Key(r io.Reader) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, nil, fmt.Errorf("alg: generate Ed25519 key: %w", err)
	}
	return pub, priv, nil
}
