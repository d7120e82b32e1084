package core

import "fmt"

// InlineSignatureSize is the largest signature kept without a heap allocation.
// It covers HMAC-SHA512, Ed25519 and secp256k1 signatures.
const InlineSignatureSize = 128

// SignatureBuffer holds decoded signature bytes inline and spills to the heap only
// for signatures longer than InlineSignatureSize.
type SignatureBuffer struct {
	inline [InlineSignatureSize]byte
	n      int
	heap   []byte
}

// Decode replaces the buffer contents with the decoded base64url segment.
func (b *SignatureBuffer) Decode(segment string) error {
	dst := b.inline[:]
	b.heap = nil
	b.n = 0
	if need := segmentEncoding.DecodedLen(len(segment)); need > len(dst) {
		b.heap = make([]byte, need)
		dst = b.heap
	}

	n, err := segmentEncoding.Decode(dst, []byte(segment))
	if err != nil {
		b.heap = nil
		return fmt.Errorf("failed to decode base64url: %w", err)
	}

	if b.heap != nil {
		b.heap = b.heap[:n]
	} else {
		b.n = n
	}
	return nil
}

// Bytes returns the decoded signature. The slice aliases the buffer.
func (b *SignatureBuffer) Bytes() []byte {
	if b.heap != nil {
		return b.heap
	}
	return b.inline[:b.n]
}

// Spilled reports whether the signature did not fit inline.
func (b *SignatureBuffer) Spilled() bool {
	return b.heap != nil
}
