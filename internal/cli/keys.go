package cli

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/rs/zerolog/log"

	"github.com/cybergodev/jwtcompact"
	"github.com/cybergodev/jwtcompact/alg"
	"github.com/cybergodev/jwtcompact/internal/security"
)

// claimsMap holds claims of any shape; the CLI does not know the claims type.
type claimsMap = map[string]any

// Algorithms lists the names accepted by --alg.
var Algorithms = []string{"HS256", "HS384", "HS512", "EdDSA", "ES256K"}

var (
	errNoKey          = errors.New("no key given: use --key or " + EnvPrefix + "KEY")
	errCannotSign     = errors.New("key can only verify: a private key is required to issue tokens")
	errUnsupportedAlg = errors.New("unsupported algorithm")
)

// keyring binds one algorithm to the key material given on the command line.
type keyring interface {
	Name() string
	Issue(header jwtcompact.Header, claims *jwtcompact.Claims[claimsMap], compact bool) (string, error)
	Verify(token *jwtcompact.UntrustedToken) (*jwtcompact.Token[claimsMap], error)
}

type binding[SK, VK any, S jwtcompact.Signature] struct {
	algorithm    jwtcompact.Algorithm[SK, VK, S]
	signingKey   SK
	verifyingKey VK
	canSign      bool
}

func newBinding[SK, VK any, S jwtcompact.Signature](
	algorithm jwtcompact.Algorithm[SK, VK, S],
	signingKey SK,
	verifyingKey VK,
	canSign bool,
) keyring {
	return &binding[SK, VK, S]{
		algorithm:    algorithm,
		signingKey:   signingKey,
		verifyingKey: verifyingKey,
		canSign:      canSign,
	}
}

func (b *binding[SK, VK, S]) Name() string {
	return b.algorithm.Name()
}

func (b *binding[SK, VK, S]) Issue(header jwtcompact.Header, claims *jwtcompact.Claims[claimsMap], compact bool) (string, error) {
	if !b.canSign {
		return "", errCannotSign
	}
	if compact {
		return jwtcompact.CreateCompactToken(b.algorithm, header, claims, b.signingKey)
	}
	return jwtcompact.CreateToken(b.algorithm, header, claims, b.signingKey)
}

func (b *binding[SK, VK, S]) Verify(token *jwtcompact.UntrustedToken) (*jwtcompact.Token[claimsMap], error) {
	return jwtcompact.ValidateIntegrity[claimsMap](b.algorithm, token, b.verifyingKey)
}

// loadKeyring decodes base64url key material for the named algorithm.
//
// HMAC algorithms take the shared secret. EdDSA takes a 64-byte private key or a
// 32-byte public key; ES256K takes a 32-byte private scalar or a compressed or
// uncompressed public key. Public keys can only verify.
func loadKeyring(name, encodedKey string) (keyring, error) {
	if encodedKey == "" {
		return nil, errNoKey
	}
	key, err := base64.RawURLEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("key must be base64url without padding: %w", err)
	}

	switch name {
	case "HS256":
		warnIfWeak(name, key)
		return newBinding(alg.HS256{}, alg.HS256Key(key), alg.HS256Key(key), true), nil
	case "HS384":
		warnIfWeak(name, key)
		return newBinding(alg.HS384{}, alg.HS384Key(key), alg.HS384Key(key), true), nil
	case "HS512":
		warnIfWeak(name, key)
		return newBinding(alg.HS512{}, alg.HS512Key(key), alg.HS512Key(key), true), nil

	case "EdDSA":
		switch len(key) {
		case ed25519.PrivateKeySize:
			priv := ed25519.PrivateKey(key)
			return newBinding(alg.Ed25519{}, priv, priv.Public().(ed25519.PublicKey), true), nil
		case ed25519.PublicKeySize:
			return newBinding(alg.Ed25519{}, ed25519.PrivateKey(nil), ed25519.PublicKey(key), false), nil
		default:
			return nil, fmt.Errorf("EdDSA key must be %d (private) or %d (public) bytes, got %d",
				ed25519.PrivateKeySize, ed25519.PublicKeySize, len(key))
		}

	case "ES256K":
		if len(key) == secp256k1.PrivKeyBytesLen {
			priv := secp256k1.PrivKeyFromBytes(key)
			return newBinding(alg.ES256K{}, priv, priv.PubKey(), true), nil
		}
		pub, err := secp256k1.ParsePubKey(key)
		if err != nil {
			return nil, fmt.Errorf("invalid ES256K key: %w", err)
		}
		return newBinding(alg.ES256K{}, (*secp256k1.PrivateKey)(nil), pub, false), nil

	default:
		return nil, fmt.Errorf("%w %q: expected one of %v", errUnsupportedAlg, name, Algorithms)
	}
}

func warnIfWeak(name string, secret []byte) {
	if security.IsWeakKey(secret) {
		log.Warn().
			Str("alg", name).
			Int("length", len(secret)).
			Msg("HMAC secret looks weak: use at least 32 random bytes, for example from keygen")
	}
}

func encodeKey(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
