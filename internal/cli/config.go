package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable the CLI reads.
const EnvPrefix = "JWTCOMPACT_"

// Environment holds the defaults read from JWTCOMPACT_* variables.
// Command-line flags take precedence over these values.
type Environment struct {
	Algorithm string        `env:"ALG" envDefault:"HS256"`
	Key       string        `env:"KEY"`
	Leeway    time.Duration `env:"LEEWAY" envDefault:"1m"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string        `env:"LOG_FORMAT" envDefault:"console"`
}

// LoadEnvironment loads the given dotenv files (".env" when none are given) and parses
// the environment. Missing dotenv files are not an error; variables already set in the
// process environment are never overridden.
func LoadEnvironment(files ...string) (Environment, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Environment{}, fmt.Errorf("failed to load dotenv file: %w", err)
	}

	var e Environment
	if err := env.ParseWithOptions(&e, env.Options{Prefix: EnvPrefix}); err != nil {
		return Environment{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}
