//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"testing"
)

// FuzzFormat_RoundTrip checks that any buffer of the right width survives
// unpack-then-pack unchanged for every integer layout the records use.
func FuzzFormat_RoundTrip(f *testing.F) {
	formats := []Format{"HBiii", "IIh", "H", "BBBB", "HHHH"}

	f.Add(uint8(0), []byte{})
	f.Add(uint8(1), []byte{1, 0, 0, 0, 2, 0, 0, 0, 0xB0, 0xFF})
	f.Add(uint8(3), []byte{5, 0x81, 0x28, 20})

	f.Fuzz(func(t *testing.T, pick uint8, data []byte) {
		format := formats[int(pick)%len(formats)]
		if len(data) < format.Size() {
			t.Skip("Input shorter than format")
		}
		data = data[:format.Size()]

		values, err := format.Unpack(data)
		if err != nil {
			t.Fatalf("Unpack failed for %q: %v", format, err)
		}

		packed, err := format.Pack(values)
		if err != nil {
			t.Fatalf("Pack failed for %q values=%v: %v", format, values, err)
		}

		if !bytes.Equal(packed, data) {
			t.Errorf("Round trip mismatch for %q: got %x, want %x", format, packed, data)
		}
	})
}

// FuzzFormat_Unpack ensures arbitrary input never panics
func FuzzFormat_Unpack(f *testing.F) {
	f.Add("HBiii", []byte{})
	f.Add("f", []byte{0, 0, 0xC0, 0x7F})
	f.Add("zz", []byte{1, 2})

	f.Fuzz(func(t *testing.T, format string, data []byte) {
		_, _ = Format(format).Unpack(data)
	})
}
