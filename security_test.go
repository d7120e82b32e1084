package jwtcompact_test

import (
	"bytes"
	"encoding/base64"
	"strconv"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybergodev/jwtcompact"
	"github.com/cybergodev/jwtcompact/alg"
)

func TestSecurityNoneAlgorithm(t *testing.T) {
	claims := encodeSegment(`{"sub":"admin"}`)

	for _, name := range []string{"none", "None", "NONE", "", "hs256"} {
		t.Run(name, func(t *testing.T) {
			header := encodeSegment(`{"alg":"` + name + `"}`)
			untrusted, err := jwtcompact.ParseUntrusted(header + "." + claims + ".")
			require.NoError(t, err)
			assert.Equal(t, name, untrusted.Algorithm())

			_, err = jwtcompact.ValidateIntegrity[obj](alg.HS256{}, untrusted, alg.HS256Key(testSecretKey))
			assert.ErrorIs(t, err, jwtcompact.ErrAlgorithmMismatch)
		})
	}
}

func TestSecurityAlgorithmConfusionAttack(t *testing.T) {
	pub, priv, err := alg.GenerateEd25519Key(nil)
	require.NoError(t, err)
	claims := jwtcompact.NewClaims(obj{"sub": "admin"})

	legit, err := jwtcompact.CreateToken(alg.Ed25519{}, jwtcompact.Header{}, claims, priv)
	require.NoError(t, err)

	// Keep the payload, swap the header for HS256 and sign with the public key.
	parts := strings.Split(legit, ".")
	header := encodeSegment(`{"alg":"HS256"}`)
	signed := header + "." + parts[1]
	mac := alg.HS256{}.Sign(alg.HS256Key(pub), []byte(signed))
	forged := signed + "." + base64.RawURLEncoding.EncodeToString(mac.Bytes())

	untrusted, err := jwtcompact.ParseUntrusted(forged)
	require.NoError(t, err)
	_, err = jwtcompact.ValidateIntegrity[obj](alg.Ed25519{}, untrusted, pub)
	assert.ErrorIs(t, err, jwtcompact.ErrAlgorithmMismatch)

	// Keep the EdDSA header and present the HMAC as the signature.
	forged = parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(mac.Bytes())
	untrusted, err = jwtcompact.ParseUntrusted(forged)
	require.NoError(t, err)
	_, err = jwtcompact.ValidateIntegrity[obj](alg.Ed25519{}, untrusted, pub)
	assert.ErrorIs(t, err, jwtcompact.ErrMalformedSignature)
}

func TestSecurityCBORResourceLimits(t *testing.T) {
	key := alg.HS256Key(testSecretKey)
	compact, err := jwtcompact.CreateCompactToken(alg.HS256{}, jwtcompact.Header{}, jwtcompact.NewClaims(obj{}), key)
	require.NoError(t, err)
	headerSegment := compact[:strings.IndexByte(compact, '.')]

	deep := append([]byte{0xa1, 0x61, 'a'}, bytes.Repeat([]byte{0x81}, 32)...)
	deep = append(deep, 0x00)

	longArray, err := cbor.Marshal(map[string]any{"a": make([]int, 5000)})
	require.NoError(t, err)

	bigMap := make(map[string]int, 5000)
	for i := 0; i < 5000; i++ {
		bigMap["k"+strconv.Itoa(i)] = i
	}
	wideMap, err := cbor.Marshal(bigMap)
	require.NoError(t, err)

	tests := []struct {
		name   string
		claims []byte
	}{
		{"deep nesting", deep},
		{"long array", longArray},
		{"wide map", wideMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed := headerSegment + "." + base64.RawURLEncoding.EncodeToString(tt.claims)
			sig := alg.HS256{}.Sign(key, []byte(signed))
			token := signed + "." + base64.RawURLEncoding.EncodeToString(sig.Bytes())

			untrusted, err := jwtcompact.ParseUntrusted(token)
			require.NoError(t, err)
			_, err = jwtcompact.ValidateIntegrity[obj](alg.HS256{}, untrusted, key)
			assert.ErrorIs(t, err, jwtcompact.ErrMalformedCBORClaims)
		})
	}
}

func TestSecurityHeaderValuesAreOpaque(t *testing.T) {
	header := jwtcompact.Header{
		KeyID:          "../../etc/passwd",
		KeySetURL:      "javascript:alert(1)",
		CertificateURL: "http://169.254.169.254/latest/meta-data",
		Type:           "<script>",
	}
	key := alg.HS256Key(testSecretKey)
	tokenString, err := jwtcompact.CreateToken(alg.HS256{}, header, jwtcompact.NewClaims(obj{}), key)
	require.NoError(t, err)

	untrusted, err := jwtcompact.ParseUntrusted(tokenString)
	require.NoError(t, err)
	assert.Equal(t, header, untrusted.Header())
}

func TestSecurityUnverifiedClaimsAreOpaque(t *testing.T) {
	// A token with a bad signature never yields claims, whatever they contain.
	signed := hs256Token[:strings.LastIndexByte(hs256Token, '.')]
	forged := signed + "." + base64.RawURLEncoding.EncodeToString(make([]byte, 32))

	untrusted, err := jwtcompact.ParseUntrusted(forged)
	require.NoError(t, err)
	token, err := jwtcompact.ValidateIntegrity[obj](alg.HS256{}, untrusted, referenceKey(t))
	assert.ErrorIs(t, err, jwtcompact.ErrInvalidSignature)
	assert.Nil(t, token)
}
