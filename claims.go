package jwtcompact

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/cybergodev/jwtcompact/internal/core"
)

// Claims is the token payload: the registered temporal claims plus Custom, the
// caller's own claims. Custom is flattened into the same JSON object or CBOR map, so T
// must encode as an object; use a struct or a map with string keys.
//
// Each temporal claim is optional. A nil field imposes no constraint.
type Claims[T any] struct {
	IssuedAt   *NumericDate `json:"iat,omitempty"`
	Expiration *NumericDate `json:"exp,omitempty"`
	NotBefore  *NumericDate `json:"nbf,omitempty"`
	Custom     T            `json:",inline"`
}

// Registered claim names shared by both encodings.
const (
	claimIssuedAt   = "iat"
	claimExpiration = "exp"
	claimNotBefore  = "nbf"
)

// NewClaims wraps custom claims with no temporal claims set.
func NewClaims[T any](custom T) *Claims[T] {
	return &Claims[T]{Custom: custom}
}

// SetDurationAndIssuance sets the issue time to now and the expiration to now plus d,
// reading the clock from opts.
func (c *Claims[T]) SetDurationAndIssuance(opts TimeOptions, d time.Duration) *Claims[T] {
	now := opts.now()
	c.IssuedAt = NewNumericDate(now)
	c.Expiration = NewNumericDate(now.Add(d))
	return c
}

// SetNotBefore sets the time before which the token must not be accepted.
func (c *Claims[T]) SetNotBefore(t time.Time) *Claims[T] {
	c.NotBefore = NewNumericDate(t)
	return c
}

// ValidateExpiration fails with ErrExpired if an expiration is set and the current
// time minus the leeway has reached it.
func (c *Claims[T]) ValidateExpiration(opts TimeOptions) (*Claims[T], error) {
	if c.Expiration == nil {
		return c, nil
	}
	if !opts.now().Add(-opts.Leeway).Before(c.Expiration.Time) {
		return nil, validationError(ErrExpired, nil)
	}
	return c, nil
}

// ValidateMaturity fails with ErrNotMature if a not-before time is set and the
// current time plus the leeway is still before it.
func (c *Claims[T]) ValidateMaturity(opts TimeOptions) (*Claims[T], error) {
	if c.NotBefore == nil {
		return c, nil
	}
	if opts.now().Add(opts.Leeway).Before(c.NotBefore.Time) {
		return nil, validationError(ErrNotMature, nil)
	}
	return c, nil
}

// MarshalCBOR implements cbor.Marshaler. The custom claims are encoded first and the
// registered claims are merged into the resulting map.
func (c Claims[T]) MarshalCBOR() ([]byte, error) {
	custom, err := core.MarshalCBOR(c.Custom)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]cbor.RawMessage)
	if !core.IsCBORNull(custom) {
		if err := core.UnmarshalCBOR(custom, &fields); err != nil {
			return nil, fmt.Errorf("custom claims must encode as a CBOR map: %w", err)
		}
	}

	for name, date := range c.registered() {
		if date == nil {
			continue
		}
		raw, err := date.MarshalCBOR()
		if err != nil {
			return nil, err
		}
		fields[name] = raw
	}

	return core.MarshalCBOR(fields)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (c *Claims[T]) UnmarshalCBOR(data []byte) error {
	var fields map[string]cbor.RawMessage
	if err := core.UnmarshalCBOR(data, &fields); err != nil {
		return err
	}

	var decoded Claims[T]
	targets := decoded.registeredTargets()
	for name, target := range targets {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		delete(fields, name)
		if core.IsCBORNull(raw) {
			continue
		}
		date := new(NumericDate)
		if err := date.UnmarshalCBOR(raw); err != nil {
			return fmt.Errorf("claim %q: %w", name, err)
		}
		*target = date
	}

	rest, err := core.MarshalCBOR(fields)
	if err != nil {
		return err
	}
	if err := core.UnmarshalCBOR(rest, &decoded.Custom); err != nil {
		return err
	}

	*c = decoded
	return nil
}

func (c *Claims[T]) registered() map[string]*NumericDate {
	return map[string]*NumericDate{
		claimIssuedAt:   c.IssuedAt,
		claimExpiration: c.Expiration,
		claimNotBefore:  c.NotBefore,
	}
}

func (c *Claims[T]) registeredTargets() map[string]**NumericDate {
	return map[string]**NumericDate{
		claimIssuedAt:   &c.IssuedAt,
		claimExpiration: &c.Expiration,
		claimNotBefore:  &c.NotBefore,
	}
}
