// Package cli implements the jwtcompact command-line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// Execute loads the environment and runs the root command.
func Execute(ctx context.Context, args []string) error {
	e, err := LoadEnvironment()
	if err != nil {
		return err
	}
	root := NewRootCommand(e)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the command tree with defaults taken from e.
func NewRootCommand(e Environment) *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:   "jwtcompact",
		Short: fmt.Sprintf("Issue, inspect and verify JSON Web Tokens (version: %s)", Version),
		Long: `jwtcompact issues and verifies JSON Web Tokens with JSON claims or with
compact CBOR claims. Keys are base64url strings as printed by "jwtcompact keygen".

Defaults are read from ` + EnvPrefix + `* environment variables and an optional .env file.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), logLevel, logFormat)
			if err != nil {
				return err
			}
			log.Logger = logger
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", e.LogLevel, "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", e.LogFormat, "Log format (console, json)")

	root.AddCommand(
		newKeygenCommand(e),
		newIssueCommand(e),
		newInspectCommand(),
		newVerifyCommand(e),
	)
	return root
}

// keyFlags are shared by the commands that need key material.
type keyFlags struct {
	algorithm string
	key       string
	env       Environment
}

func (f *keyFlags) register(cmd *cobra.Command, e Environment) {
	f.env = e
	cmd.Flags().StringVarP(&f.algorithm, "alg", "a", e.Algorithm,
		"Algorithm ("+strings.Join(Algorithms, ", ")+")")
	cmd.Flags().StringVarP(&f.key, "key", "k", "",
		"Base64url key material (default $"+EnvPrefix+"KEY)")
}

func (f *keyFlags) keyring() (keyring, error) {
	key := f.key
	if key == "" {
		key = f.env.Key
	}
	return loadKeyring(f.algorithm, key)
}

// tokenArgument returns the token given as the only argument, reading it from stdin
// when the argument is "-".
func tokenArgument(cmd *cobra.Command, args []string) (string, error) {
	if args[0] != "-" {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read token from stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v, json.Deterministic(true), jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
