package jwtcompact

import (
	"errors"
	"fmt"
)

// Creation error kinds. Both originate from a claims or header type that cannot be
// represented and point at a bug in the caller, not a transient condition.
var (
	ErrHeaderSerialization     = errors.New("cannot serialize token header")
	ErrClaimsSerialization     = errors.New("cannot serialize claims as JSON")
	ErrCBORClaimsSerialization = errors.New("cannot serialize claims as CBOR")
)

// Parse error kinds, reported before any trust is placed in the token.
var (
	ErrInvalidTokenStructure  = errors.New("invalid token structure: expected three dot-separated segments")
	ErrBase64                 = errors.New("invalid base64url encoding")
	ErrMalformedHeader        = errors.New("malformed token header")
	ErrUnsupportedContentType = errors.New("unsupported content type")
)

// Validation error kinds.
var (
	ErrMissingToken        = errors.New("no token to validate")
	ErrAlgorithmMismatch   = errors.New("token algorithm does not match the expected algorithm")
	ErrMalformedSignature  = errors.New("malformed signature")
	ErrMalformedClaims     = errors.New("malformed JSON claims")
	ErrMalformedCBORClaims = errors.New("malformed CBOR claims")
	ErrInvalidSignature    = errors.New("signature verification failed")
	ErrExpired             = errors.New("token has expired")
	ErrNotMature           = errors.New("token is not yet valid")
)

var (
	errMissingAlgorithm = errors.New(`missing "alg" field`)
	errNilClaims        = errors.New("claims are nil")
)

// CreationError is returned when a token cannot be built.
// Kind is one of ErrHeaderSerialization, ErrClaimsSerialization or
// ErrCBORClaimsSerialization.
type CreationError struct {
	Kind error
	Err  error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("token creation failed: %v: %v", e.Kind, e.Err)
}

func (e *CreationError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// ParseError is returned when a token string is structurally invalid.
type ParseError struct {
	Kind error
	Err  error // Underlying cause, if any

	// ContentType carries the offending value for ErrUnsupportedContentType.
	ContentType string
}

func (e *ParseError) Error() string {
	switch {
	case e.ContentType != "":
		return fmt.Sprintf("token parsing failed: %v: %q", e.Kind, e.ContentType)
	case e.Err != nil:
		return fmt.Sprintf("token parsing failed: %v: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("token parsing failed: %v", e.Kind)
	}
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ValidationError is returned when a parsed token fails integrity or time checks.
type ValidationError struct {
	Kind error
	Err  error // Underlying cause, if any
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token validation failed: %v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("token validation failed: %v", e.Kind)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(kind, err error) *ValidationError {
	return &ValidationError{Kind: kind, Err: err}
}
