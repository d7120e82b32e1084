// Package jwtcompact issues and verifies JSON Web Tokens with fully typed algorithms.
//
// Signature algorithms implement Algorithm, which binds each algorithm to its own
// signing key, verifying key and signature types (see package alg). The "alg" header
// field is not part of Header: it is written from Algorithm.Name during creation and
// compared against the algorithm the caller passes to ValidateIntegrity, which rules
// out algorithm substitution.
//
// Besides JSON claims, tokens may carry CBOR-encoded claims (CreateCompactToken), marked
// with "cty":"CBOR" in the header. Compact tokens are noticeably shorter for binary
// payloads such as hashes or public keys.
//
// # Lifecycle
//
//	key := alg.HS256Key(secret)
//	claims := jwtcompact.NewClaims(MyClaims{Subject: "alice"}).
//		SetDurationAndIssuance(jwtcompact.TimeOptions{}, 24*time.Hour)
//	tokenString, err := jwtcompact.CreateToken(alg.HS256{}, jwtcompact.Header{KeyID: "k1"}, claims, key)
//
//	untrusted, err := jwtcompact.ParseUntrusted(tokenString)
//	// untrusted.Header().KeyID may be used to look up the verifying key.
//	token, err := jwtcompact.ValidateIntegrity[MyClaims](alg.HS256{}, untrusted, key)
//	_, err = token.Claims().ValidateExpiration(jwtcompact.DefaultTimeOptions())
//
// Every operation is a pure function of its inputs and safe for concurrent use.
// Parse failures return *ParseError, creation failures *CreationError and
// validation failures *ValidationError; use errors.Is with the Err* kinds to tell
// them apart.
package jwtcompact
