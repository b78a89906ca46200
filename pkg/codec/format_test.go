package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Run("valid codes", func(t *testing.T) {
		f, err := ParseFormat("bBhHiIf")
		require.NoError(t, err)
		assert.Equal(t, 7, f.Len())
		assert.Equal(t, 1+1+2+2+4+4+4, f.Size())
	})

	t.Run("empty format", func(t *testing.T) {
		f, err := ParseFormat("")
		require.NoError(t, err)
		assert.Equal(t, 0, f.Size())
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := ParseFormat("HBq")
		assert.ErrorIs(t, err, ErrUnknownCode)
		assert.Contains(t, err.Error(), "position 2")
	})
}

func TestFormatSize(t *testing.T) {
	testCases := []struct {
		format string
		size   int
	}{
		{"HBiii", 15},
		{"IIh", 10},
		{"H", 2},
		{"BBBB", 4},
		{"HHHH", 8},
	}

	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			assert.Equal(t, tc.size, MustParseFormat(tc.format).Size())
		})
	}
}

func TestRepeat(t *testing.T) {
	assert.Equal(t, Format("HHH"), Repeat(CodeUint16, 3))
	assert.Equal(t, Format(""), Repeat(CodeUint16, 0))
	assert.Equal(t, Format(""), Repeat(CodeUint16, -1))
}

func TestFormat_PackLayout(t *testing.T) {
	t.Run("little-endian anchor entry", func(t *testing.T) {
		buf, err := MustParseFormat("HBiii").Pack([]float64{0x1234, 1, -1, 256, 0})
		require.NoError(t, err)
		assert.Equal(t, []byte{
			0x34, 0x12,
			0x01,
			0xFF, 0xFF, 0xFF, 0xFF,
			0x00, 0x01, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00,
		}, buf)
	})

	t.Run("signed range rss", func(t *testing.T) {
		buf, err := MustParseFormat("IIh").Pack([]float64{1, 2, -80})
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 0, 0, 0, 2, 0, 0, 0, 0xB0, 0xFF}, buf)
	})

	t.Run("float32", func(t *testing.T) {
		buf, err := MustParseFormat("f").Pack([]float64{1.5})
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0x00, 0xC0, 0x3F}, buf)
	})
}

func TestFormat_RoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		format string
		values []float64
	}{
		{"int8 bounds", "bb", []float64{math.MinInt8, math.MaxInt8}},
		{"uint8 bounds", "BB", []float64{0, math.MaxUint8}},
		{"int16 bounds", "hh", []float64{math.MinInt16, math.MaxInt16}},
		{"uint16 bounds", "HH", []float64{0, math.MaxUint16}},
		{"int32 bounds", "ii", []float64{math.MinInt32, math.MaxInt32}},
		{"uint32 bounds", "II", []float64{0, math.MaxUint32}},
		{"float32", "ff", []float64{-2.25, 1024.5}},
		{"mixed", "HBiii", []float64{255, 3, 1000, -2000, 3000}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := MustParseFormat(tc.format)
			buf, err := f.Pack(tc.values)
			require.NoError(t, err)
			assert.Len(t, buf, f.Size())

			got, err := f.Unpack(buf)
			require.NoError(t, err)
			assert.Equal(t, tc.values, got)
		})
	}
}

func TestFormat_Check(t *testing.T) {
	f := MustParseFormat("Bh")

	testCases := []struct {
		name    string
		values  []float64
		wantErr error
	}{
		{"in range", []float64{255, -32768}, nil},
		{"too few values", []float64{1}, ErrValueCount},
		{"too many values", []float64{1, 2, 3}, ErrValueCount},
		{"uint8 overflow", []float64{256, 0}, ErrValueOutOfRange},
		{"negative unsigned", []float64{-1, 0}, ErrValueOutOfRange},
		{"int16 underflow", []float64{0, -32769}, ErrValueOutOfRange},
		{"fractional", []float64{1.5, 0}, ErrValueOutOfRange},
		{"nan", []float64{math.NaN(), 0}, ErrValueOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := f.Check(tc.values)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestFormat_UnpackSizeMismatch(t *testing.T) {
	f := MustParseFormat("IIh")

	_, err := f.Unpack(make([]byte, 9))
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = f.Unpack(make([]byte, 11))
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Format("Hz").Unpack(make([]byte, 3))
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestFormat_PackRejectsBadValues(t *testing.T) {
	_, err := MustParseFormat("H").Pack([]float64{70000})
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	_, err = MustParseFormat("HH").Pack([]float64{1})
	assert.ErrorIs(t, err, ErrValueCount)
}

func TestParseHex(t *testing.T) {
	want := []byte{0x05, 0x81, 0x28, 0x14}

	for _, in := range []string{"05812814", "05 81 28 14", "0x05812814", "05:81:28:14", " 05-81-28-14\n", "0X05812814"} {
		t.Run(in, func(t *testing.T) {
			got, err := ParseHex(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseHex("0581281")
	assert.Error(t, err)
	_, err = ParseHex("zz")
	assert.Error(t, err)

	empty, err := ParseHex("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
