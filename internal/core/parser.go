package core

import "strings"

// Separator joins the three token segments.
const Separator = '.'

// Segments is a token split into its wire parts. Signed aliases the input string and
// spans the header segment through the end of the claims segment.
type Segments struct {
	Header    string
	Claims    string
	Signature string
	Signed    string
}

// Split splits a token into exactly three segments. It asks for at most four pieces so
// a fourth segment is reported as a structural error instead of being folded into the
// signature.
func Split(token string) (Segments, bool) {
	parts := strings.SplitN(token, string(Separator), 4)
	if len(parts) != 3 {
		return Segments{}, false
	}

	signedLen := len(parts[0]) + 1 + len(parts[1])
	return Segments{
		Header:    parts[0],
		Claims:    parts[1],
		Signature: parts[2],
		Signed:    token[:signedLen],
	}, true
}
