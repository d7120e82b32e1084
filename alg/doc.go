// Package alg binds signature algorithms to the jwtcompact.Algorithm interface.
//
// Each algorithm is an empty struct with its own key and signature types:
//
//	Algorithm  "alg"   Signing key            Verifying key          Signature
//	HS256      HS256   HS256Key               HS256Key               32 bytes
//	HS384      HS384   HS384Key               HS384Key               48 bytes
//	HS512      HS512   HS512Key               HS512Key               64 bytes
//	Ed25519    EdDSA   ed25519.PrivateKey     ed25519.PublicKey      64 bytes
//	ES256K     ES256K  *secp256k1.PrivateKey  *secp256k1.PublicKey   64 bytes (r || s)
//
// HMAC key types are distinct per hash function, so an HS256 key cannot be used with
// HS512 by accident.
package alg
