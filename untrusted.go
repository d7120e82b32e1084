package jwtcompact

import (
	"github.com/cybergodev/jwtcompact/internal/core"
)

// UntrustedToken is a token that has been parsed but whose integrity has not been
// checked. Only the header, the declared algorithm and the content type can be read;
// the claims stay opaque bytes until ValidateIntegrity is called with an algorithm and
// key chosen by the caller.
//
// The signed data is a substring of the parsed string and shares its memory, so no
// copy of the token is made. An UntrustedToken is immutable and safe for concurrent
// use.
type UntrustedToken struct {
	signedData  string
	header      Header
	algorithm   string
	contentType ContentType
	claims      []byte
	signature   core.SignatureBuffer
}

// ParseUntrusted splits and decodes a token string without verifying it.
func ParseUntrusted(token string) (*UntrustedToken, error) {
	segments, ok := core.Split(token)
	if !ok {
		return nil, &ParseError{Kind: ErrInvalidTokenStructure}
	}

	headerBytes, err := core.DecodeSegment(segments.Header)
	if err != nil {
		return nil, &ParseError{Kind: ErrBase64, Err: err}
	}
	claims, err := core.DecodeSegment(segments.Claims)
	if err != nil {
		return nil, &ParseError{Kind: ErrBase64, Err: err}
	}

	t := &UntrustedToken{
		signedData: segments.Signed,
		claims:     claims,
	}
	if err := t.signature.Decode(segments.Signature); err != nil {
		return nil, &ParseError{Kind: ErrBase64, Err: err}
	}

	var header completeHeader
	if err := core.UnmarshalJSON(headerBytes, &header); err != nil {
		return nil, &ParseError{Kind: ErrMalformedHeader, Err: err}
	}
	if header.Algorithm == nil {
		return nil, &ParseError{Kind: ErrMalformedHeader, Err: errMissingAlgorithm}
	}

	contentType, ok := parseContentType(header.ContentType)
	if !ok {
		return nil, &ParseError{Kind: ErrUnsupportedContentType, ContentType: *header.ContentType}
	}

	t.header = header.Header
	t.algorithm = *header.Algorithm
	t.contentType = contentType
	return t, nil
}

// Header returns the unverified token header, for example to choose the verifying key
// by KeyID.
func (t *UntrustedToken) Header() Header {
	return t.header
}

// Algorithm returns the algorithm name declared by the token. It is attacker
// controlled and must not be used to choose the verification algorithm.
func (t *UntrustedToken) Algorithm() string {
	return t.algorithm
}

// ContentType returns the declared claims encoding.
func (t *UntrustedToken) ContentType() ContentType {
	return t.contentType
}
