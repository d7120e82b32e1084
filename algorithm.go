package jwtcompact

// Signature is a signature produced by an Algorithm. It must be representable as
// bytes for the wire format.
type Signature interface {
	Bytes() []byte
}

// Algorithm is a JWT signing algorithm bound to its own key and signature types.
//
// SK is the key used to issue tokens and VK the key used to verify them; the two
// coincide for symmetric algorithms. Because every operation in this package is
// parameterized by these types, a key of one algorithm cannot be handed to another.
//
// Implementations must be safe for concurrent use. Verify must return false, never
// panic, for any signature ParseSignature accepted.
type Algorithm[SK, VK any, S Signature] interface {
	// Name is the value written to and required in the "alg" header field.
	Name() string

	// Sign signs message with signingKey.
	Sign(signingKey SK, message []byte) S

	// Verify reports whether signature is valid for message under verifyingKey.
	Verify(signature S, verifyingKey VK, message []byte) bool

	// ParseSignature restores a signature from bytes. It fails only when the bytes
	// cannot structurally be a signature of this algorithm (such as a wrong length);
	// cryptographic validity is left to Verify.
	ParseSignature(b []byte) (S, error)
}
