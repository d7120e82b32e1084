package core

import (
	"encoding/base64"
	"fmt"
)

// Segments are base64url without padding. Strict decoding rejects non-zero trailing
// bits, so every segment has exactly one accepted spelling.
var segmentEncoding = base64.RawURLEncoding.Strict()

// AppendSegment base64url-encodes src and appends it to dst.
func AppendSegment(dst []byte, src []byte) []byte {
	return segmentEncoding.AppendEncode(dst, src)
}

// DecodeSegment decodes a base64url JWT segment.
func DecodeSegment(segment string) ([]byte, error) {
	buf := make([]byte, segmentEncoding.DecodedLen(len(segment)))
	n, err := segmentEncoding.Decode(buf, []byte(segment))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64url: %w", err)
	}
	return buf[:n], nil
}

// EncodeToString is a shorthand for encoding a whole value into a segment string.
func EncodeToString(src []byte) string {
	return segmentEncoding.EncodeToString(src)
}
