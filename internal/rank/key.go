package rank

import (
	"fmt"
	"strings"
)

// digits is the ordered key digit alphabet. The characters are in ASCII
// order, so bytewise comparison of keys equals numeric comparison of the
// values they encode.
const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// zeroDigit is the smallest digit in the alphabet.
const zeroDigit byte = '0'

// smallestInteger is the reserved minimum integer part: head 'A' followed
// by 26 zero digits. It serves as the left edge of the key space during
// midpoint computation and is not a valid key on its own.
var smallestInteger = "A" + strings.Repeat("0", 26)

// Key is an order key. Keys are produced by the allocator functions in
// this package, compared bytewise, and stored verbatim.
//
// The zero value Key("") is not a valid key; allocator functions accept
// it as an open bound (no key on that side).
type Key string

// IsZero reports whether k is the zero value, used as an open bound.
func (k Key) IsZero() bool {
	return k == ""
}

// String returns the key's stored form.
func (k Key) String() string {
	return string(k)
}

// Validate checks that k is structurally well formed: a head byte in
// 'A'..'Z' or 'a'..'z', an integer part at least as long as the head
// encodes, digits drawn from the key alphabet, a fraction that does not
// end in the zero digit, and not the reserved smallest integer.
func (k Key) Validate() error {
	if k == "" {
		return fmt.Errorf("empty key")
	}
	if string(k) == smallestInteger {
		return fmt.Errorf("key %q is the reserved minimum", string(k))
	}
	intLen, err := integerLength(k[0])
	if err != nil {
		return fmt.Errorf("key %q: %w", string(k), err)
	}
	if len(k) < intLen {
		return fmt.Errorf("key %q: integer part truncated, head %q encodes %d bytes", string(k), string(k[0]), intLen)
	}
	for i := 1; i < len(k); i++ {
		if !isDigit(k[i]) {
			return fmt.Errorf("key %q: byte %q at offset %d is not a key digit", string(k), string(k[i]), i)
		}
	}
	if len(k) > intLen && k[len(k)-1] == zeroDigit {
		return fmt.Errorf("key %q: fraction ends in the zero digit", string(k))
	}
	return nil
}

// Compare returns -1, 0, or 1 as a sorts before, equal to, or after b.
// The zero value sorts before every valid key.
func Compare(a, b Key) int {
	return strings.Compare(string(a), string(b))
}

// Less reports whether a sorts strictly before b.
func Less(a, b Key) bool {
	return a < b
}

// integerLength returns the byte length an integer part must have given
// its head byte.
func integerLength(head byte) (int, error) {
	switch {
	case head >= 'a' && head <= 'z':
		return int(head-'a') + 2, nil
	case head >= 'A' && head <= 'Z':
		return int('Z'-head) + 2, nil
	default:
		return 0, fmt.Errorf("invalid head byte %q", string(head))
	}
}

// split separates a validated key into integer part and fraction.
func split(k Key) (integer, fraction string) {
	n, _ := integerLength(k[0])
	return string(k[:n]), string(k[n:])
}

// isDigit reports whether b is in the key digit alphabet.
func isDigit(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= 'a' && b <= 'z':
		return true
	}
	return false
}

// digitIndex returns the position of b in the digit alphabet.
func digitIndex(b byte) int {
	return strings.IndexByte(digits, b)
}
