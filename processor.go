package jwtcompact

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrProcessorClosed   = errors.New("processor is closed: cannot perform operations")
	ErrNoSigningKey      = errors.New("processor has no signing key")
	ErrUnknownKeyID      = errors.New("no verifying key for token key ID")
	ErrMissingKeyID      = errors.New("token has no key ID")
	ErrTokenTooLarge     = errors.New("token exceeds maximum size")
	ErrMissingExpiration = errors.New("token has no expiration claim")
)

// Processor issues and validates tokens for one algorithm and claims type.
//
// Verifying keys are selected by the "kid" header through a fixed map supplied at
// construction. The algorithm is fixed by the Processor, never by the token.
// A Processor is safe for concurrent use.
type Processor[T any, SK, VK any, S Signature] struct {
	algorithm     Algorithm[SK, VK, S]
	signingKey    SK
	canSign       bool
	ownsKey       bool
	verifyingKeys map[string]VK
	config        Config
	logger        zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewProcessor creates a Processor that can both issue and validate tokens.
// verifyingKeys maps key IDs to keys; the entry for cfg.KeyID (which may be the
// empty string) is used for tokens without a "kid" header.
func NewProcessor[T any, SK, VK any, S Signature](
	algorithm Algorithm[SK, VK, S],
	signingKey SK,
	verifyingKeys map[string]VK,
	cfg Config,
) (*Processor[T, SK, VK, S], error) {
	p, err := newProcessor[T](algorithm, verifyingKeys, cfg)
	if err != nil {
		return nil, err
	}
	p.signingKey = signingKey
	p.canSign = true
	if c, ok := any(signingKey).(interface{ Clone() SK }); ok {
		p.signingKey = c.Clone()
		p.ownsKey = true
	}
	return p, nil
}

// NewVerifyingProcessor creates a Processor that only validates tokens.
func NewVerifyingProcessor[T any, SK, VK any, S Signature](
	algorithm Algorithm[SK, VK, S],
	verifyingKeys map[string]VK,
	cfg Config,
) (*Processor[T, SK, VK, S], error) {
	return newProcessor[T](algorithm, verifyingKeys, cfg)
}

func newProcessor[T any, SK, VK any, S Signature](
	algorithm Algorithm[SK, VK, S],
	verifyingKeys map[string]VK,
	cfg Config,
) (*Processor[T, SK, VK, S], error) {
	if algorithm == nil {
		return nil, fmt.Errorf("%w: algorithm is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if len(verifyingKeys) == 0 {
		return nil, fmt.Errorf("%w: at least one verifying key is required", ErrInvalidConfig)
	}
	if _, ok := verifyingKeys[cfg.KeyID]; cfg.KeyID != "" && !ok {
		return nil, fmt.Errorf("%w: key ID %q is not present in verifying keys", ErrInvalidConfig, cfg.KeyID)
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("alg", algorithm.Name()).Logger()
	}

	return &Processor[T, SK, VK, S]{
		algorithm:     algorithm,
		verifyingKeys: maps.Clone(verifyingKeys),
		config:        cfg,
		logger:        logger,
	}, nil
}

// CreateToken issues a token for custom claims, stamping "iat" and "exp" from the
// configured TTL.
func (p *Processor[T, SK, VK, S]) CreateToken(ctx context.Context, custom T) (string, error) {
	claims := NewClaims(custom).SetDurationAndIssuance(p.config.TimeOptions(), p.config.TokenTTL)
	return p.CreateTokenWithClaims(ctx, claims)
}

// CreateTokenWithClaims issues a token for caller-built claims.
func (p *Processor[T, SK, VK, S]) CreateTokenWithClaims(ctx context.Context, claims *Claims[T]) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return "", err
	}
	if !p.canSign {
		return "", ErrNoSigningKey
	}

	header := Header{
		KeyID: p.config.KeyID,
		Type:  p.config.TokenType,
	}
	if p.config.Compact {
		return CreateCompactToken(p.algorithm, header, claims, p.signingKey)
	}
	return CreateToken(p.algorithm, header, claims, p.signingKey)
}

// ValidateToken parses tokenString, checks its integrity with the key selected by its
// "kid" header, then checks expiration and maturity.
func (p *Processor[T, SK, VK, S]) ValidateToken(ctx context.Context, tokenString string) (*Token[T], error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return nil, err
	}

	if p.config.MaxTokenSize > 0 && len(tokenString) > p.config.MaxTokenSize {
		return nil, p.reject(nil, ErrTokenTooLarge)
	}

	untrusted, err := ParseUntrusted(tokenString)
	if err != nil {
		return nil, p.reject(nil, err)
	}

	key, err := p.verifyingKey(untrusted.Header().KeyID)
	if err != nil {
		return nil, p.reject(untrusted, err)
	}

	token, err := ValidateIntegrity[T](p.algorithm, untrusted, key)
	if err != nil {
		return nil, p.reject(untrusted, err)
	}

	claims := token.Claims()
	if p.config.RequireExpiration && claims.Expiration == nil {
		return nil, p.reject(untrusted, ErrMissingExpiration)
	}

	opts := p.config.TimeOptions()
	if _, err := claims.ValidateExpiration(opts); err != nil {
		return nil, p.reject(untrusted, err)
	}
	if _, err := claims.ValidateMaturity(opts); err != nil {
		return nil, p.reject(untrusted, err)
	}

	return token, nil
}

func (p *Processor[T, SK, VK, S]) verifyingKey(kid string) (VK, error) {
	var zero VK
	if kid == "" {
		if p.config.RequireKeyID {
			return zero, ErrMissingKeyID
		}
		kid = p.config.KeyID
	}

	key, ok := p.verifyingKeys[kid]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrUnknownKeyID, kid)
	}
	return key, nil
}

// reject logs a rejected token without logging the token itself.
func (p *Processor[T, SK, VK, S]) reject(untrusted *UntrustedToken, err error) error {
	event := p.logger.Debug().Err(err)
	if untrusted != nil {
		event = event.Str("token_alg", untrusted.Algorithm()).Str("kid", untrusted.Header().KeyID)
	}
	event.Msg("token rejected")
	return err
}

// Algorithm returns the algorithm the Processor signs and verifies with.
func (p *Processor[T, SK, VK, S]) Algorithm() Algorithm[SK, VK, S] {
	return p.algorithm
}

// Close releases the Processor. A signing key the Processor copied on creation (the
// HMAC keys) is zeroed; the caller's key is left untouched.
func (p *Processor[T, SK, VK, S]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if d, ok := any(p.signingKey).(interface{ Destroy() }); ok && p.ownsKey {
		d.Destroy()
	}
	return nil
}

func (p *Processor[T, SK, VK, S]) checkClosed() error {
	if p.closed {
		return ErrProcessorClosed
	}
	return nil
}

// IsClosed reports whether Close has been called.
func (p *Processor[T, SK, VK, S]) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}
