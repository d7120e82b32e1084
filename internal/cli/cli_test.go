package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybergodev/jwtcompact"
)

func testEnvironment() Environment {
	return Environment{
		Algorithm: "HS256",
		Leeway:    time.Minute,
		LogLevel:  "debug",
		LogFormat: LogFormatJSON,
	}
}

// run executes the command tree and returns stdout and stderr.
func run(t *testing.T, e Environment, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(e)
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// keygen returns the keys printed by the keygen command by label.
func keygen(t *testing.T, algorithm string) map[string]string {
	t.Helper()
	out, _, err := run(t, testEnvironment(), "", "keygen", "--alg", algorithm)
	require.NoError(t, err)

	keys := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		label, key, ok := strings.Cut(line, ": ")
		require.True(t, ok, "unexpected keygen output %q", line)
		keys[label] = key
	}
	return keys
}

func TestIssueAndVerify(t *testing.T) {
	tests := []struct {
		algorithm string
		signKey   string
		verifyKey string
	}{
		{"HS256", "secret", "secret"},
		{"HS384", "secret", "secret"},
		{"HS512", "secret", "secret"},
		{"EdDSA", "private", "public"},
		{"ES256K", "private", "public"},
	}

	for _, tt := range tests {
		for _, compact := range []bool{false, true} {
			name := tt.algorithm
			if compact {
				name += "/compact"
			}
			t.Run(name, func(t *testing.T) {
				keys := keygen(t, tt.algorithm)
				require.NotEmpty(t, keys[tt.signKey])

				args := []string{"issue", "--alg", tt.algorithm, "--key", keys[tt.signKey],
					"--claims", `{"sub":"alice","admin":true}`, "--kid", "k1", "--jti"}
				if compact {
					args = append(args, "--compact")
				}
				out, _, err := run(t, testEnvironment(), "", args...)
				require.NoError(t, err)
				token := strings.TrimSpace(out)

				out, _, err = run(t, testEnvironment(), "", "verify", "--alg", tt.algorithm, "--key", keys[tt.verifyKey], token)
				require.NoError(t, err)

				var claims map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &claims))
				assert.Equal(t, "alice", claims["sub"])
				assert.Equal(t, true, claims["admin"])
				assert.NotEmpty(t, claims["jti"])
				assert.Contains(t, claims, "iat")
				assert.Contains(t, claims, "exp")
				assert.NotContains(t, claims, "nbf")
			})
		}
	}
}

func TestVerifyRejects(t *testing.T) {
	keys := keygen(t, "HS256")
	other := keygen(t, "HS256")
	e := testEnvironment()

	issue := func(extra ...string) string {
		args := append([]string{"issue", "--key", keys["secret"]}, extra...)
		out, _, err := run(t, e, "", args...)
		require.NoError(t, err)
		return strings.TrimSpace(out)
	}

	t.Run("wrong key", func(t *testing.T) {
		_, _, err := run(t, e, "", "verify", "--key", other["secret"], issue())
		assert.ErrorIs(t, err, jwtcompact.ErrInvalidSignature)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		_, _, err := run(t, e, "", "verify", "--alg", "HS512", "--key", keys["secret"], issue())
		assert.ErrorIs(t, err, jwtcompact.ErrAlgorithmMismatch)
	})

	t.Run("not yet valid", func(t *testing.T) {
		_, _, err := run(t, e, "", "verify", "--key", keys["secret"], issue("--not-before", "1h"))
		assert.ErrorIs(t, err, jwtcompact.ErrNotMature)
	})

	t.Run("not yet valid within leeway", func(t *testing.T) {
		_, _, err := run(t, e, "", "verify", "--key", keys["secret"], "--leeway", "2h", issue("--not-before", "1h"))
		assert.NoError(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		var opts verifyOptions
		opts.keys = keyFlags{algorithm: "HS256", key: keys["secret"]}
		opts.clock = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := opts.verify(issue("--ttl", "1h"))
		assert.ErrorIs(t, err, jwtcompact.ErrExpired)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, _, err := run(t, e, "", "verify", "--key", keys["secret"], "not.a-token")
		assert.ErrorIs(t, err, jwtcompact.ErrInvalidTokenStructure)
	})

	t.Run("public key cannot issue", func(t *testing.T) {
		ed := keygen(t, "EdDSA")
		_, _, err := run(t, e, "", "issue", "--alg", "EdDSA", "--key", ed["public"])
		assert.ErrorIs(t, err, errCannotSign)
	})
}

func TestIssueOptions(t *testing.T) {
	keys := keygen(t, "HS256")
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name    string
		opts    issueOptions
		wantErr string
	}{
		{"no key", issueOptions{claims: "{}"}, "no key given"},
		{"invalid claims", issueOptions{claims: "{"}, "claims must be a JSON object"},
		{"array claims", issueOptions{claims: "[1]"}, "claims must be a JSON object"},
		{"null claims", issueOptions{claims: "null"}, "claims must be a JSON object"},
		{"registered claim", issueOptions{claims: `{"exp":1}`}, `claim "exp" cannot be set`},
		{"negative ttl", issueOptions{claims: "{}", ttl: -time.Second}, "ttl cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.keys.algorithm = "HS256"
			if tt.name != "no key" {
				tt.opts.keys.key = keys["secret"]
			}
			_, err := tt.opts.issue(now)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("no expiration", func(t *testing.T) {
		opts := issueOptions{claims: "{}", keys: keyFlags{algorithm: "HS256", key: keys["secret"]}}
		token, err := opts.issue(now)
		require.NoError(t, err)

		verify := verifyOptions{keys: opts.keys, clock: func() time.Time { return now }}
		claims, err := verify.verify(token)
		require.NoError(t, err)
		assert.Nil(t, claims.Expiration)
		assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	})
}

func TestKeyFromEnvironment(t *testing.T) {
	keys := keygen(t, "EdDSA")
	e := testEnvironment()
	e.Algorithm = "EdDSA"
	e.Key = keys["private"]

	out, _, err := run(t, e, "", "issue", "--claims", `{"sub":"bob"}`)
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	_, _, err = run(t, e, "", "verify", "--key", keys["public"], token)
	require.NoError(t, err)

	_, _, err = run(t, e, "", "verify", token)
	require.NoError(t, err, "a private key can verify its own tokens")
}

func TestInspect(t *testing.T) {
	keys := keygen(t, "HS256")
	out, _, err := run(t, testEnvironment(), "", "issue", "--key", keys["secret"], "--kid", "k1", "--compact")
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	for _, input := range []struct{ arg, stdin string }{
		{token, ""},
		{"-", token + "\n"},
	} {
		out, _, err := run(t, testEnvironment(), input.stdin, "inspect", input.arg)
		require.NoError(t, err)

		var got inspection
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, inspection{
			Algorithm:   "HS256",
			ContentType: "CBOR",
			Header:      jwtcompact.Header{KeyID: "k1", Type: "JWT"},
		}, got)
	}

	_, _, err = run(t, testEnvironment(), "", "inspect", "garbage")
	assert.ErrorIs(t, err, jwtcompact.ErrInvalidTokenStructure)
}

func TestKeygenUnsupportedAlgorithm(t *testing.T) {
	_, _, err := run(t, testEnvironment(), "", "keygen", "--alg", "RS256")
	assert.ErrorIs(t, err, errUnsupportedAlg)
}

func TestLoadKeyring(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		key       string
		wantErr   bool
	}{
		{"empty key", "HS256", "", true},
		{"not base64url", "HS256", "a+b/", true},
		{"unknown algorithm", "none", "AAAA", true},
		{"short EdDSA key", "EdDSA", encodeKey(make([]byte, 16)), true},
		{"invalid ES256K public key", "ES256K", encodeKey(make([]byte, 33)), true},
		{"HMAC secret", "HS256", encodeKey([]byte("Kx9#mP2$vL8@nQ5!wR7&tY3^uI6*oE4%")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring, err := loadKeyring(tt.algorithm, tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.algorithm, ring.Name())
		})
	}
}

func TestWeakSecretWarning(t *testing.T) {
	weak := encodeKey([]byte("password"))
	_, stderr, err := run(t, testEnvironment(), "", "issue", "--key", weak)
	require.NoError(t, err)
	assert.Contains(t, stderr, "HMAC secret looks weak")

	strong := keygen(t, "HS256")
	_, stderr, err = run(t, testEnvironment(), "", "issue", "--key", strong["secret"])
	require.NoError(t, err)
	assert.NotContains(t, stderr, "looks weak")
}

func TestLogSettings(t *testing.T) {
	keys := keygen(t, "HS256")

	_, _, err := run(t, testEnvironment(), "", "--log-level", "verbose", "keygen")
	assert.Error(t, err)

	_, _, err = run(t, testEnvironment(), "", "--log-format", "xml", "keygen")
	assert.Error(t, err)

	_, stderr, err := run(t, testEnvironment(), "", "--log-format", "json", "issue", "--key", keys["secret"])
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"token issued"`)

	_, stderr, err = run(t, testEnvironment(), "", "--log-level", "warn", "issue", "--key", keys["secret"])
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestLoadEnvironment(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, name := range []string{"ALG", "KEY", "LEEWAY", "LOG_LEVEL", "LOG_FORMAT"} {
			t.Setenv(EnvPrefix+name, "")
			require.NoError(t, os.Unsetenv(EnvPrefix+name))
		}

		e, err := LoadEnvironment(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, Environment{
			Algorithm: "HS256",
			Leeway:    time.Minute,
			LogLevel:  "info",
			LogFormat: LogFormatConsole,
		}, e)
	})

	t.Run("process environment", func(t *testing.T) {
		t.Setenv(EnvPrefix+"ALG", "EdDSA")
		t.Setenv(EnvPrefix+"LEEWAY", "30s")

		e, err := LoadEnvironment(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "EdDSA", e.Algorithm)
		assert.Equal(t, 30*time.Second, e.Leeway)
	})

	t.Run("dotenv file", func(t *testing.T) {
		t.Setenv(EnvPrefix+"KEY", "")
		require.NoError(t, os.Unsetenv(EnvPrefix+"KEY"))
		t.Setenv(EnvPrefix+"LOG_LEVEL", "error")

		path := filepath.Join(t.TempDir(), ".env")
		content := EnvPrefix + "KEY=from-dotenv\n" + EnvPrefix + "LOG_LEVEL=debug\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		e, err := LoadEnvironment(path)
		require.NoError(t, err)
		assert.Equal(t, "from-dotenv", e.Key)
		assert.Equal(t, "error", e.LogLevel, "process environment wins over the dotenv file")
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv(EnvPrefix+"LEEWAY", "soon")
		_, err := LoadEnvironment(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}
