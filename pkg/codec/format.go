package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownCode     = errors.New("unknown type code")
	ErrValueCount      = errors.New("value count does not match format")
	ErrSizeMismatch    = errors.New("buffer size does not match format")
	ErrValueOutOfRange = errors.New("value out of range for type code")
)

// Type codes understood by Format. All multi-byte fields are little-endian.
const (
	CodeInt8    byte = 'b'
	CodeUint8   byte = 'B'
	CodeInt16   byte = 'h'
	CodeUint16  byte = 'H'
	CodeInt32   byte = 'i'
	CodeUint32  byte = 'I'
	CodeFloat32 byte = 'f'
)

// codeWidth maps a type code to its width in bytes
func codeWidth(c byte) (int, bool) {
	switch c {
	case CodeInt8, CodeUint8:
		return 1, true
	case CodeInt16, CodeUint16:
		return 2, true
	case CodeInt32, CodeUint32, CodeFloat32:
		return 4, true
	}
	return 0, false
}

// codeRange returns the inclusive integer range of a code. ok is false for
// floating codes.
func codeRange(c byte) (lo, hi float64, ok bool) {
	switch c {
	case CodeInt8:
		return math.MinInt8, math.MaxInt8, true
	case CodeUint8:
		return 0, math.MaxUint8, true
	case CodeInt16:
		return math.MinInt16, math.MaxInt16, true
	case CodeUint16:
		return 0, math.MaxUint16, true
	case CodeInt32:
		return math.MinInt32, math.MaxInt32, true
	case CodeUint32:
		return 0, math.MaxUint32, true
	}
	return 0, 0, false
}

// Format is a compact type-code string, one code per field, e.g. "HBiii".
type Format string

// ParseFormat validates every code in s
func ParseFormat(s string) (Format, error) {
	for i := 0; i < len(s); i++ {
		if _, ok := codeWidth(s[i]); !ok {
			return "", fmt.Errorf("%w %q at position %d", ErrUnknownCode, s[i], i)
		}
	}
	return Format(s), nil
}

// MustParseFormat is ParseFormat for formats known at compile time.
func MustParseFormat(s string) Format {
	f, err := ParseFormat(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Repeat builds a format of n identical codes
func Repeat(code byte, n int) Format {
	if n <= 0 {
		return ""
	}
	return Format(strings.Repeat(string(code), n))
}

// Len returns the number of fields
func (f Format) Len() int {
	return len(f)
}

// Size returns the encoded width in bytes
func (f Format) Size() int {
	size := 0
	for i := 0; i < len(f); i++ {
		w, _ := codeWidth(f[i])
		size += w
	}
	return size
}

// Check reports the first value that cannot be stored under its code.
func (f Format) Check(values []float64) error {
	if len(values) != len(f) {
		return fmt.Errorf("%w: got %d values, format %q has %d", ErrValueCount, len(values), f, len(f))
	}
	for i, v := range values {
		c := f[i]
		if _, ok := codeWidth(c); !ok {
			return fmt.Errorf("%w %q at position %d", ErrUnknownCode, c, i)
		}
		lo, hi, isInt := codeRange(c)
		if !isInt {
			continue
		}
		if math.IsNaN(v) || v != math.Trunc(v) || v < lo || v > hi {
			return fmt.Errorf("%w: field %d (%c) = %v", ErrValueOutOfRange, i, c, v)
		}
	}
	return nil
}

// Pack encodes values into a freshly allocated buffer of Size() bytes.
func (f Format) Pack(values []float64) ([]byte, error) {
	if err := f.Check(values); err != nil {
		return nil, err
	}

	buf := make([]byte, f.Size())
	off := 0
	for i, v := range values {
		switch f[i] {
		case CodeInt8:
			buf[off] = byte(int8(v))
		case CodeUint8:
			buf[off] = uint8(v)
		case CodeInt16:
			binary.LittleEndian.PutUint16(buf[off:], uint16(int16(v)))
		case CodeUint16:
			binary.LittleEndian.PutUint16(buf[off:], uint16(v))
		case CodeInt32:
			binary.LittleEndian.PutUint32(buf[off:], uint32(int32(v)))
		case CodeUint32:
			binary.LittleEndian.PutUint32(buf[off:], uint32(v))
		case CodeFloat32:
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(v)))
		}
		w, _ := codeWidth(f[i])
		off += w
	}

	return buf, nil
}

// Unpack decodes data, which must be exactly Size() bytes long.
func (f Format) Unpack(data []byte) ([]float64, error) {
	if _, err := ParseFormat(string(f)); err != nil {
		return nil, err
	}
	if len(data) != f.Size() {
		return nil, fmt.Errorf("%w: got %d bytes, format %q needs %d", ErrSizeMismatch, len(data), f, f.Size())
	}

	values := make([]float64, len(f))
	off := 0
	for i := 0; i < len(f); i++ {
		switch f[i] {
		case CodeInt8:
			values[i] = float64(int8(data[off]))
		case CodeUint8:
			values[i] = float64(data[off])
		case CodeInt16:
			values[i] = float64(int16(binary.LittleEndian.Uint16(data[off:])))
		case CodeUint16:
			values[i] = float64(binary.LittleEndian.Uint16(data[off:]))
		case CodeInt32:
			values[i] = float64(int32(binary.LittleEndian.Uint32(data[off:])))
		case CodeUint32:
			values[i] = float64(binary.LittleEndian.Uint32(data[off:]))
		case CodeFloat32:
			values[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:])))
		}
		w, _ := codeWidth(f[i])
		off += w
	}

	return values, nil
}
