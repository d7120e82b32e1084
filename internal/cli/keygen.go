package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cybergodev/jwtcompact/alg"
)

func newKeygenCommand(e Environment) *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate fresh key material",
		Long: `Generate key material for an algorithm. HMAC algorithms print one shared
secret; EdDSA and ES256K print a private key for issuing and a public key for
verifying. All keys are base64url without padding.`,
		Example: `  jwtcompact keygen --alg EdDSA`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateKey(cmd.OutOrStdout(), algorithm)
		},
	}
	cmd.Flags().StringVarP(&algorithm, "alg", "a", e.Algorithm, "Algorithm")
	return cmd
}

func generateKey(w io.Writer, algorithm string) error {
	switch algorithm {
	case "HS256":
		key, err := alg.NewHS256Key(nil)
		if err != nil {
			return err
		}
		return printKeys(w, labeledKey{"secret", key})
	case "HS384":
		key, err := alg.NewHS384Key(nil)
		if err != nil {
			return err
		}
		return printKeys(w, labeledKey{"secret", key})
	case "HS512":
		key, err := alg.NewHS512Key(nil)
		if err != nil {
			return err
		}
		return printKeys(w, labeledKey{"secret", key})
	case "EdDSA":
		pub, priv, err := alg.GenerateEd25519Key(nil)
		if err != nil {
			return err
		}
		return printKeys(w, labeledKey{"private", priv}, labeledKey{"public", pub})
	case "ES256K":
		priv, err := alg.GenerateES256KKey(nil)
		if err != nil {
			return err
		}
		return printKeys(w,
			labeledKey{"private", priv.Serialize()},
			labeledKey{"public", priv.PubKey().SerializeCompressed()})
	default:
		return fmt.Errorf("%w %q", errUnsupportedAlg, algorithm)
	}
}

type labeledKey struct {
	label string
	key   []byte
}

// printKeys writes one "label: key" line per key.
func printKeys(w io.Writer, keys ...labeledKey) error {
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s: %s\n", k.label, encodeKey(k.key)); err != nil {
			return err
		}
	}
	return nil
}
