package jwtcompact

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cybergodev/jwtcompact/internal/core"
)

// Bounds of a NumericDate: 0001-01-01T00:00:00Z to 9999-12-31T23:59:59Z.
const (
	minUnixSeconds int64 = -62135596800
	maxUnixSeconds int64 = 253402300799
)

// NumericDate is a JWT timestamp: whole seconds since the Unix epoch, in UTC.
// It encodes as an integer in both JSON and CBOR claims.
type NumericDate struct {
	time.Time
}

// NewNumericDate converts t to a NumericDate, dropping sub-second precision.
func NewNumericDate(t time.Time) *NumericDate {
	return &NumericDate{Time: t.Truncate(time.Second).UTC()}
}

func numericDateFromUnix(sec int64) (*NumericDate, error) {
	if sec < minUnixSeconds || sec > maxUnixSeconds {
		return nil, fmt.Errorf("timestamp %d out of range", sec)
	}
	return &NumericDate{Time: time.Unix(sec, 0).UTC()}, nil
}

// MarshalJSON implements json.Marshaler.
func (d NumericDate) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, d.Unix(), 10), nil
}

// UnmarshalJSON implements json.Unmarshaler. Only integers are accepted; quoted
// numbers, fractions and exponents are rejected.
func (d *NumericDate) UnmarshalJSON(b []byte) error {
	sec, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid unix timestamp %s: %w", b, err)
	}
	parsed, err := numericDateFromUnix(sec)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (d NumericDate) MarshalCBOR() ([]byte, error) {
	return core.MarshalCBOR(d.Unix())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (d *NumericDate) UnmarshalCBOR(b []byte) error {
	var sec int64
	if err := core.UnmarshalCBOR(b, &sec); err != nil {
		return fmt.Errorf("invalid unix timestamp: %w", err)
	}
	parsed, err := numericDateFromUnix(sec)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// DefaultLeeway absorbs clock skew between issuer and verifier.
const DefaultLeeway = time.Minute

// TimeOptions controls how strictly expiration and maturity are checked.
// The zero value uses the system clock and no leeway.
type TimeOptions struct {
	// Leeway widens the validity window on both ends.
	Leeway time.Duration

	// Clock returns the current time; nil means time.Now.
	Clock func() time.Time
}

// DefaultTimeOptions returns the system clock with DefaultLeeway.
func DefaultTimeOptions() TimeOptions {
	return TimeOptions{Leeway: DefaultLeeway}
}

func (o TimeOptions) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}
