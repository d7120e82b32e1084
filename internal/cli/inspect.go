package cli

import (
	"github.com/spf13/cobra"

	"github.com/cybergodev/jwtcompact"
)

// inspection is the unverified view of a token printed by inspect.
type inspection struct {
	Algorithm   string            `json:"alg"`
	ContentType string            `json:"cty"`
	Header      jwtcompact.Header `json:"header"`
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TOKEN",
		Short: "Print the unverified header of a token",
		Long: `Print the algorithm, claims content type and header of a token without
verifying it. The claims are not shown: use verify to read them. Pass "-" to read
the token from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenString, err := tokenArgument(cmd, args)
			if err != nil {
				return err
			}
			untrusted, err := jwtcompact.ParseUntrusted(tokenString)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), inspection{
				Algorithm:   untrusted.Algorithm(),
				ContentType: untrusted.ContentType().String(),
				Header:      untrusted.Header(),
			})
		},
	}
}
