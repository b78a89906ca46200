package codec

import (
	"fmt"
)

// SyncResult reports what a Synchronize call did to the raw value sequence.
type SyncResult int

const (
	// SyncUnchanged means the derived sequence already matched the stored one.
	SyncUnchanged SyncResult = iota
	// SyncUpdated means the stored sequence was replaced.
	SyncUpdated
)

func (r SyncResult) String() string {
	switch r {
	case SyncUnchanged:
		return "unchanged"
	case SyncUpdated:
		return "updated"
	}
	return fmt.Sprintf("SyncResult(%d)", int(r))
}

// Structure is a fixed-layout record that can be moved to and from the wire
// through its raw value sequence.
type Structure interface {
	Format() Format
	ByteSize() int
	Values() []float64
	Load(values []float64) error
	Synchronize() (SyncResult, error)
}

// RecordCodec moves Structures to and from raw byte buffers
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Encode reconciles s with its named fields and serializes the raw sequence.
func (c *RecordCodec) Encode(s Structure) ([]byte, error) {
	if _, err := s.Synchronize(); err != nil {
		return nil, err
	}

	buf, err := s.Format().Pack(s.Values())
	if err != nil {
		return nil, fmt.Errorf("pack %T: %w", s, err)
	}
	return buf, nil
}

// Decode loads data into s. data must be exactly s.ByteSize() bytes.
func (c *RecordCodec) Decode(data []byte, s Structure) error {
	if len(data) != s.ByteSize() {
		return fmt.Errorf("%w: %T needs %d bytes, got %d", ErrSizeMismatch, s, s.ByteSize(), len(data))
	}

	values, err := s.Format().Unpack(data)
	if err != nil {
		return fmt.Errorf("unpack %T: %w", s, err)
	}

	return s.Load(values)
}
