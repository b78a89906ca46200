// Package codec provides the primitive binary codec for uwbwire records.
//
// A record's wire layout is described by a Format: a compact type-code
// string with one code per field. The codec packs an ordered sequence of
// numeric values into bytes and unpacks it again.
//
// # Type Codes
//
//	b  int8      1 byte
//	B  uint8     1 byte
//	h  int16     2 bytes
//	H  uint16    2 bytes
//	i  int32     4 bytes
//	I  uint32    4 bytes
//	f  float32   4 bytes
//
// All multi-byte fields are little-endian, the byte order used by the
// devices. Values are carried as float64, which holds every supported code
// exactly.
//
// # Usage
//
// Packing and unpacking a raw sequence:
//
//	f := codec.MustParseFormat("IIh")
//	buf, err := f.Pack([]float64{1000, 2500, -80})
//	if err != nil {
//	    return err
//	}
//	values, err := f.Unpack(buf) // [1000 2500 -80]
//
// Moving a whole record with RecordCodec:
//
//	c := codec.NewRecordCodec()
//	buf, err := c.Encode(settings)    // Synchronize, then Pack
//	err = c.Decode(buf, settings)     // Unpack, then Load
//
// # Error Handling
//
// The codec fails loudly on caller misuse:
//   - ErrUnknownCode for a type code outside the table above
//   - ErrValueCount when the value sequence and the format disagree in length
//   - ErrSizeMismatch when a buffer is not exactly the record's width
//   - ErrValueOutOfRange for a non-integral or out-of-range integer value
//
// Reconciliation failures raised by a record's Synchronize are passed
// through unchanged by RecordCodec.Encode.
//
// # Thread Safety
//
// Format and RecordCodec hold no mutable state and are safe for concurrent
// use. Structures are not.
package codec
