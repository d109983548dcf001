package ipkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input    string
		expected uint32
	}{
		{"10.0.0.1", 167772161},
		{"167772161", 167772161},
		{"0.0.0.0", 0},
		{"255.255.255.255", 0xFFFFFFFF},
		{"4294967295", 0xFFFFFFFF},
		{"0", 0},
		{"1.0.0.0", 16777216},
		{"192.168.1.10", 0xC0A8010A},
		{"10.1", 0x0A010000},
		{"10.", 0x0A000000},
		{"  8.8.8.8\n", 0x08080808},
		{"123\n", 123},
	}

	for _, tc := range testCases {
		key, err := Parse(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.expected, key, "input %q", tc.input)
	}
}

func TestParseSameKey(t *testing.T) {
	dotted, err := Parse("10.0.0.1")
	require.NoError(t, err)
	decimal, err := Parse("167772161")
	require.NoError(t, err)
	assert.Equal(t, dotted, decimal)
}

func TestParseLetters(t *testing.T) {
	for _, input := range []string{"abc", "10.0.0.x", "0x10", "localhost"} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", input)
	}
}

func TestParseInvalidKey(t *testing.T) {
	for _, input := range []string{"", "   ", "256.0.0.1", "1.2.3.4.5", "4294967296", "-1", "1..2", "1.2.3.-4", "12 34"} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrInvalidKey, "input %q", input)
	}
}

func TestHasLetters(t *testing.T) {
	assert.True(t, HasLetters("a"))
	assert.True(t, HasLetters("1.2.3.Z"))
	assert.False(t, HasLetters("1.2.3.4"))
	assert.False(t, HasLetters(""))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "10.0.0.1", Format(167772161))
	assert.Equal(t, "0.0.0.0", Format(0))
	assert.Equal(t, "255.255.255.255", Format(0xFFFFFFFF))
	assert.Equal(t, [4]byte{192, 168, 1, 10}, Bytes(0xC0A8010A))
}
