package alg

import (
	"errors"
	"fmt"
)

var (
	// ErrSignatureLength is returned for a signature of the wrong size.
	ErrSignatureLength = errors.New("alg: invalid signature length")

	// ErrScalarOverflow is returned for an ECDSA signature whose r or s is not
	// below the group order.
	ErrScalarOverflow = errors.New("alg: signature scalar overflows group order")
)

func parseFixed(dst, src []byte) error {
	if len(src) != len(dst) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSignatureLength, len(src), len(dst))
	}
	copy(dst, src)
	return nil
}
