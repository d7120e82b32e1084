package cli

import (
	"fmt"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cybergodev/jwtcompact"
)

// registeredClaims are set through dedicated flags, never through --claims.
var registeredClaims = []string{"iat", "exp", "nbf"}

type issueOptions struct {
	keys      keyFlags
	claims    string
	ttl       time.Duration
	notBefore time.Duration
	keyID     string
	tokenType string
	compact   bool
	jti       bool
}

func newIssueCommand(e Environment) *cobra.Command {
	var opts issueOptions

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed token",
		Long: `Issue a signed token. Custom claims are given as a JSON object; "iat" and "exp"
are stamped from --ttl and "nbf" from --not-before.`,
		Example: `  jwtcompact issue --alg HS256 --key "$SECRET" --claims '{"sub":"alice"}' --ttl 1h
  jwtcompact issue --alg EdDSA --key "$PRIVATE" --compact --jti`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := opts.issue(time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	opts.keys.register(cmd, e)
	flags := cmd.Flags()
	flags.StringVarP(&opts.claims, "claims", "c", "{}", "Custom claims as a JSON object")
	flags.DurationVar(&opts.ttl, "ttl", 15*time.Minute, "Token lifetime; 0 issues a token without expiration")
	flags.DurationVar(&opts.notBefore, "not-before", 0, "Delay before the token becomes valid")
	flags.StringVar(&opts.keyID, "kid", "", "Key ID header")
	flags.StringVar(&opts.tokenType, "type", "JWT", "Token type header")
	flags.BoolVar(&opts.compact, "compact", false, "Encode claims as CBOR")
	flags.BoolVar(&opts.jti, "jti", false, "Add a random UUID \"jti\" claim")
	return cmd
}

func (o *issueOptions) issue(now time.Time) (string, error) {
	ring, err := o.keys.keyring()
	if err != nil {
		return "", err
	}
	if o.ttl < 0 {
		return "", fmt.Errorf("ttl cannot be negative: %s", o.ttl)
	}

	custom := claimsMap{}
	if err := json.Unmarshal([]byte(o.claims), &custom); err != nil {
		return "", fmt.Errorf("claims must be a JSON object: %w", err)
	}
	if custom == nil {
		return "", fmt.Errorf("claims must be a JSON object, got %s", o.claims)
	}
	for _, name := range registeredClaims {
		if _, ok := custom[name]; ok {
			return "", fmt.Errorf("claim %q cannot be set with --claims: use --ttl or --not-before", name)
		}
	}
	if o.jti {
		custom["jti"] = uuid.NewString()
	}

	claims := jwtcompact.NewClaims(custom)
	claims.IssuedAt = jwtcompact.NewNumericDate(now)
	if o.ttl > 0 {
		claims.Expiration = jwtcompact.NewNumericDate(now.Add(o.ttl))
	}
	if o.notBefore > 0 {
		claims.SetNotBefore(now.Add(o.notBefore))
	}

	header := jwtcompact.Header{KeyID: o.keyID, Type: o.tokenType}
	token, err := ring.Issue(header, claims, o.compact)
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("alg", ring.Name()).
		Str("kid", o.keyID).
		Bool("compact", o.compact).
		Int("length", len(token)).
		Msg("token issued")
	return token, nil
}
