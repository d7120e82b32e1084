package jwtcompact

import (
	"github.com/cybergodev/jwtcompact/internal/core"
)

// Token is a token whose integrity has been verified. It can only be obtained from
// ValidateIntegrity and holds no reference to the parsed string.
type Token[T any] struct {
	header Header
	claims Claims[T]
}

// Header returns the verified token header.
func (t *Token[T]) Header() Header {
	return t.header
}

// Claims returns the verified claims. Time-based checks are separate: call
// ValidateExpiration and ValidateMaturity on the result.
func (t *Token[T]) Claims() *Claims[T] {
	return &t.claims
}

// ValidateIntegrity checks token against the algorithm and verifying key chosen by the
// caller and decodes its claims into T.
//
// The declared algorithm name is compared first, before the signature or claims are
// looked at, so a token can never select its own verification algorithm. Claims are
// decoded before the signature is verified because decoding is cheaper; the decoders
// are bounded, but the decoded values are not trusted until the signature check passes.
func ValidateIntegrity[T any, SK, VK any, S Signature](
	algorithm Algorithm[SK, VK, S],
	token *UntrustedToken,
	verifyingKey VK,
) (*Token[T], error) {
	if token == nil {
		return nil, validationError(ErrMissingToken, nil)
	}
	if token.algorithm != algorithm.Name() {
		return nil, validationError(ErrAlgorithmMismatch, nil)
	}

	signature, err := algorithm.ParseSignature(token.signature.Bytes())
	if err != nil {
		return nil, validationError(ErrMalformedSignature, err)
	}

	var claims Claims[T]
	switch token.contentType {
	case ContentTypeCBOR:
		if err := core.UnmarshalCBORMap(token.claims, &claims); err != nil {
			return nil, validationError(ErrMalformedCBORClaims, err)
		}
	default:
		if err := core.UnmarshalJSONObject(token.claims, &claims); err != nil {
			return nil, validationError(ErrMalformedClaims, err)
		}
	}

	if !algorithm.Verify(signature, verifyingKey, []byte(token.signedData)) {
		return nil, validationError(ErrInvalidSignature, nil)
	}

	return &Token[T]{
		header: token.header,
		claims: claims,
	}, nil
}
