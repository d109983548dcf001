// Package ipkey converts user input into the 32-bit keys stored in the trie.
package ipkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrInvalidInput marks a query that contains letters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidKey marks a query that is neither a dotted quad nor a 32-bit decimal.
	ErrInvalidKey = errors.New("invalid key")
)

const octets = 4

// HasLetters reports whether s contains any letter.
func HasLetters(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// Parse converts a dotted quad ("10.0.0.1") or a decimal ("167772161") into a key.
// A dotted quad is packed big-endian; trailing octets that are missing are left zero,
// so "10.1" is 10.1.0.0.
func Parse(input string) (uint32, error) {
	s := strings.TrimSpace(input)
	if HasLetters(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidKey)
	}

	if strings.Contains(s, ".") {
		return parseDotted(s)
	}

	key, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a 32-bit decimal", ErrInvalidKey, s)
	}
	return uint32(key), nil
}

func parseDotted(s string) (uint32, error) {
	parts := strings.Split(s, ".")
	if len(parts) > octets {
		return 0, fmt.Errorf("%w: %q has more than %d octets", ErrInvalidKey, s, octets)
	}

	var key uint32
	for i, part := range parts {
		if part == "" && i == len(parts)-1 && i > 0 {
			// "10.0." reads as "10.0"
			break
		}
		octet, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: octet %q of %q", ErrInvalidKey, part, s)
		}
		key |= uint32(octet) << (8 * (octets - 1 - i))
	}
	return key, nil
}

// Bytes splits key into its four octets, most significant first.
func Bytes(key uint32) [octets]byte {
	return [octets]byte{byte(key >> 24), byte(key >> 16), byte(key >> 8), byte(key)}
}

// Format renders key as a dotted quad.
func Format(key uint32) string {
	b := Bytes(key)
	return fmt.Sprintf("%d.%d.%d.%d", b[0], b[1], b[2], b[3])
}
