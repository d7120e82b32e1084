package jwtcompact

import (
	"github.com/cybergodev/jwtcompact/internal/core"
)

// CreateToken issues a token with JSON-encoded claims.
func CreateToken[SK, VK any, S Signature, T any](
	algorithm Algorithm[SK, VK, S],
	header Header,
	claims *Claims[T],
	signingKey SK,
) (string, error) {
	return createToken(algorithm, header, claims, signingKey, ContentTypeJSON)
}

// CreateCompactToken issues a token with CBOR-encoded claims. The header carries
// "cty":"CBOR"; typical payloads come out tens of bytes shorter than CreateToken.
func CreateCompactToken[SK, VK any, S Signature, T any](
	algorithm Algorithm[SK, VK, S],
	header Header,
	claims *Claims[T],
	signingKey SK,
) (string, error) {
	return createToken(algorithm, header, claims, signingKey, ContentTypeCBOR)
}

func createToken[SK, VK any, S Signature, T any](
	algorithm Algorithm[SK, VK, S],
	header Header,
	claims *Claims[T],
	signingKey SK,
	contentType ContentType,
) (string, error) {
	if claims == nil {
		return "", &CreationError{Kind: ErrClaimsSerialization, Err: errNilClaims}
	}

	name := algorithm.Name()
	complete := completeHeader{
		Algorithm: &name,
		Header:    header,
	}
	if contentType == ContentTypeCBOR {
		cty := cborContentType
		complete.ContentType = &cty
	}

	headerBytes, err := core.MarshalJSON(&complete)
	if err != nil {
		return "", &CreationError{Kind: ErrHeaderSerialization, Err: err}
	}

	var claimsBytes []byte
	switch contentType {
	case ContentTypeCBOR:
		claimsBytes, err = core.MarshalCBOR(claims)
		if err != nil {
			return "", &CreationError{Kind: ErrCBORClaimsSerialization, Err: err}
		}
	default:
		claimsBytes, err = core.MarshalJSON(claims)
		if err != nil {
			return "", &CreationError{Kind: ErrClaimsSerialization, Err: err}
		}
	}

	buf := make([]byte, 0, 2*(len(headerBytes)+len(claimsBytes))+core.InlineSignatureSize)
	buf = core.AppendSegment(buf, headerBytes)
	buf = append(buf, core.Separator)
	buf = core.AppendSegment(buf, claimsBytes)

	// The signed message is exactly the bytes written so far.
	signature := algorithm.Sign(signingKey, buf)

	buf = append(buf, core.Separator)
	buf = core.AppendSegment(buf, signature.Bytes())
	return string(buf), nil
}
