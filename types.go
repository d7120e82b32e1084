package jwtcompact

import "strings"

// Header is the JWT header as far as the caller controls it.
//
// Every field helps the verifier pick a key, and every field is supplied by the token
// bearer, so values read from an untrusted token need their own checks (for example
// matching a certificate against trusted authorities). The "alg" and "cty" fields are
// deliberately absent: they are written by this package during token creation and
// checked during validation.
type Header struct {
	// KeySetURL is the URL of the JSON Web Key Set containing the signing key.
	KeySetURL string `json:"jku,omitempty"`

	// KeyID identifies the key that signed the token.
	KeyID string `json:"kid,omitempty"`

	// CertificateURL is the URL of the X.509 certificate for the signing key.
	CertificateURL string `json:"x5u,omitempty"`

	// CertificateThumbprint is the thumbprint of that certificate.
	CertificateThumbprint string `json:"x5t,omitempty"`

	// Type is the application-specific token type.
	Type string `json:"typ,omitempty"`
}

// completeHeader is the header as it appears on the wire.
// Algorithm is a pointer so a missing or null "alg" can be told apart.
type completeHeader struct {
	Algorithm   *string `json:"alg"`
	ContentType *string `json:"cty,omitempty"`
	Header      `json:",inline"`
}

// ContentType is the encoding of the claims segment.
type ContentType int

const (
	// ContentTypeJSON marks claims encoded as a JSON object. It is the default when the
	// header has no "cty" field.
	ContentTypeJSON ContentType = iota

	// ContentTypeCBOR marks claims encoded as a CBOR map, as produced by
	// CreateCompactToken.
	ContentTypeCBOR
)

const cborContentType = "CBOR"

func (c ContentType) String() string {
	switch c {
	case ContentTypeJSON:
		return "JSON"
	case ContentTypeCBOR:
		return cborContentType
	default:
		return "unknown"
	}
}

// parseContentType maps the optional "cty" value, ignoring ASCII case.
func parseContentType(cty *string) (ContentType, bool) {
	switch {
	case cty == nil, strings.EqualFold(*cty, "json"):
		return ContentTypeJSON, true
	case strings.EqualFold(*cty, "cbor"):
		return ContentTypeCBOR, true
	default:
		return 0, false
	}
}
