// Package value converts between user-supplied value literals and the
// 32-bit words carried on the wishbone bus.
//
// Accepted literal forms, in detection order:
//   - 0x-prefixed hexadecimal ("0xC0A80164")
//   - dotted-quad IPv4 ("192.168.1.100"), packed big-endian
//   - plain decimal ("42")
package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidValue indicates a literal that matches none of the accepted
// forms, or a dotted quad with an octet out of range.
var ErrInvalidValue = errors.New("invalid value")

// Parse converts a value literal to a 32-bit word.
func Parse(literal string) (uint32, error) {
	if rest, ok := strings.CutPrefix(literal, "0x"); ok {
		v, err := strconv.ParseUint(rest, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, literal)
		}
		return uint32(v), nil
	}

	if v, ok := parseDottedQuad(literal); ok {
		return v, nil
	}

	v, err := strconv.ParseUint(literal, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, literal)
	}
	return uint32(v), nil
}

// parseDottedQuad packs "a.b.c.d" into a word, first octet in the most
// significant byte. Returns false if the literal is not a dotted quad;
// a dotted quad with an out-of-range octet still counts as one and
// reports ok=false only through Parse's final fallthrough failing.
func parseDottedQuad(literal string) (uint32, bool) {
	parts := strings.Split(literal, ".")
	if len(parts) != 4 {
		return 0, false
	}
	var word uint32
	for _, p := range parts {
		if p == "" || len(p) > 3 {
			return 0, false
		}
		o, err := strconv.ParseUint(p, 10, 16)
		if err != nil || o > 255 {
			return 0, false
		}
		word = word<<8 | uint32(o)
	}
	return word, true
}

// FormatWord renders a word as 8-digit zero-padded lowercase hex.
func FormatWord(v uint32) string {
	return fmt.Sprintf("0x%08x", v)
}

// FormatIP renders a word as a dotted quad, most significant byte first.
// Inverse of the dotted-quad form accepted by Parse.
func FormatIP(v uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", v>>24&0xff, v>>16&0xff, v>>8&0xff, v&0xff)
}

// IsIPLike reports whether a register name follows the LiteX convention
// for registers holding an IPv4 address.
func IsIPLike(name string) bool {
	return strings.Contains(name, "ip_address")
}
