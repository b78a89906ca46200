package codec

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseHex reads a payload written as hex. Whitespace, ':' and '-'
// separators and a leading 0x are ignored, so "05 81 28 14",
// "05:81:28:14" and "0x05812814" are equivalent.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':', '-':
			return -1
		}
		return r
	}, s)

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex payload: %w", err)
	}
	return data, nil
}
