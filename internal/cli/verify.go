package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cybergodev/jwtcompact"
)

type verifyOptions struct {
	keys   keyFlags
	leeway time.Duration
	clock  func() time.Time
}

func newVerifyCommand(e Environment) *cobra.Command {
	var opts verifyOptions

	cmd := &cobra.Command{
		Use:   "verify TOKEN",
		Short: "Verify a token and print its claims",
		Long: `Verify the signature of a token with the given algorithm and key, check its
expiration and not-before claims, then print the claims as JSON. The algorithm
declared by the token is never trusted: it must match --alg. Pass "-" to read the
token from stdin.`,
		Example: `  jwtcompact verify --alg EdDSA --key "$PUBLIC" "$TOKEN"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenString, err := tokenArgument(cmd, args)
			if err != nil {
				return err
			}
			claims, err := opts.verify(tokenString)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), claims)
		},
	}

	opts.keys.register(cmd, e)
	cmd.Flags().DurationVar(&opts.leeway, "leeway", e.Leeway, "Clock skew allowed for exp and nbf")
	return cmd
}

func (o *verifyOptions) verify(tokenString string) (*jwtcompact.Claims[claimsMap], error) {
	if o.leeway < 0 {
		return nil, fmt.Errorf("leeway cannot be negative: %s", o.leeway)
	}

	ring, err := o.keys.keyring()
	if err != nil {
		return nil, err
	}

	untrusted, err := jwtcompact.ParseUntrusted(tokenString)
	if err != nil {
		return nil, err
	}

	token, err := ring.Verify(untrusted)
	if err != nil {
		return nil, err
	}

	timeOpts := jwtcompact.TimeOptions{Leeway: o.leeway, Clock: o.clock}
	claims, err := token.Claims().ValidateExpiration(timeOpts)
	if err != nil {
		return nil, err
	}
	if claims, err = claims.ValidateMaturity(timeOpts); err != nil {
		return nil, err
	}

	log.Debug().
		Str("alg", ring.Name()).
		Str("kid", token.Header().KeyID).
		Stringer("cty", untrusted.ContentType()).
		Msg("token verified")
	return claims, nil
}
