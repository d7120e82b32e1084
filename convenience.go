package jwtcompact

import (
	"github.com/cybergodev/jwtcompact/alg"
)

// CreateHS256Token issues a JSON-claims HS256 token with an empty header.
// This is a convenience function for simple use cases; use Processor for key IDs,
// compact tokens or other algorithms.
func CreateHS256Token[T any](secret []byte, claims *Claims[T]) (string, error) {
	return CreateToken(alg.HS256{}, Header{}, claims, alg.HS256Key(secret))
}

// ValidateHS256Token parses an HS256 token, checks its integrity against secret and
// checks expiration and maturity with opts.
func ValidateHS256Token[T any](secret []byte, tokenString string, opts TimeOptions) (*Claims[T], error) {
	untrusted, err := ParseUntrusted(tokenString)
	if err != nil {
		return nil, err
	}

	token, err := ValidateIntegrity[T](alg.HS256{}, untrusted, alg.HS256Key(secret))
	if err != nil {
		return nil, err
	}

	claims, err := token.Claims().ValidateExpiration(opts)
	if err != nil {
		return nil, err
	}
	return claims.ValidateMaturity(opts)
}
