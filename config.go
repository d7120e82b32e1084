package jwtcompact

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Config represents Processor configuration
type Config struct {
	// TokenTTL is the lifetime stamped into tokens created by Processor.CreateToken
	TokenTTL time.Duration `yaml:"token_ttl" json:"token_ttl"`

	// Leeway absorbs clock skew in expiration and maturity checks
	Leeway time.Duration `yaml:"leeway" json:"leeway"`

	// KeyID is written to the "kid" header of issued tokens and selects the verifying
	// key for tokens that carry no "kid"
	KeyID string `yaml:"key_id" json:"key_id"`

	// TokenType is written to the "typ" header of issued tokens
	TokenType string `yaml:"token_type" json:"token_type"`

	// Compact issues tokens with CBOR-encoded claims
	Compact bool `yaml:"compact" json:"compact"`

	// RequireKeyID rejects tokens without a "kid" header
	RequireKeyID bool `yaml:"require_key_id" json:"require_key_id"`

	// RequireExpiration rejects tokens without an "exp" claim
	RequireExpiration bool `yaml:"require_expiration" json:"require_expiration"`

	// MaxTokenSize bounds the accepted token length in bytes; zero disables the limit
	MaxTokenSize int `yaml:"max_token_size" json:"max_token_size"`

	// Clock overrides the time source; nil means time.Now
	Clock func() time.Time `yaml:"-" json:"-"`

	// Logger receives debug logs for rejected tokens; nil disables logging
	Logger *zerolog.Logger `yaml:"-" json:"-"`
}

// Configuration limits.
const (
	maxLeeway           = 5 * time.Minute
	defaultMaxTokenSize = 8192
)

// DefaultConfig returns a secure default configuration for production use
func DefaultConfig() Config {
	return Config{
		TokenTTL:          15 * time.Minute,
		Leeway:            DefaultLeeway,
		TokenType:         "JWT",
		RequireExpiration: true,
		MaxTokenSize:      defaultMaxTokenSize,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token TTL must be positive", ErrInvalidConfig)
	}

	if c.Leeway < 0 || c.Leeway > maxLeeway {
		return fmt.Errorf("%w: leeway must be between 0 and %s", ErrInvalidConfig, maxLeeway)
	}

	if c.MaxTokenSize < 0 {
		return fmt.Errorf("%w: max token size cannot be negative", ErrInvalidConfig)
	}

	return nil
}

// TimeOptions derives the options used for expiration and maturity checks.
func (c Config) TimeOptions() TimeOptions {
	return TimeOptions{Leeway: c.Leeway, Clock: c.Clock}
}
