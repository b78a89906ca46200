package capture

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/uwbwire/pkg/record"
)

// encMode uses Core Deterministic Encoding so the same entry always
// produces the same bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("capture: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("capture: CBOR decoder initialization failed: " + err.Error())
	}
}

// Entry is one raw record payload as it arrived from the transport.
type Entry struct {
	ID       ksuid.KSUID `json:"id"`
	Kind     record.Kind `json:"kind"`
	Captured time.Time   `json:"captured"`
	Payload  []byte      `json:"payload"`
	CRC      uint32      `json:"crc"`
}

// entryWire is the stored form. The ID is the key and is not repeated.
type entryWire struct {
	Kind     string `cbor:"1,keyasint"`
	Captured int64  `cbor:"2,keyasint"` // unix nanoseconds
	Payload  []byte `cbor:"3,keyasint"`
	CRC      uint32 `cbor:"4,keyasint"`
}

// NewEntry stamps payload with a fresh ID, the capture time and its CRC.
func NewEntry(kind record.Kind, payload []byte, captured time.Time) *Entry {
	e := &Entry{
		ID:       ksuid.New(),
		Kind:     kind,
		Captured: captured.UTC(),
		Payload:  append([]byte(nil), payload...),
	}
	e.CRC = e.calculateCRC32()
	return e
}

// Validate checks the integrity of an entry using CRC32
func (e *Entry) Validate() error {
	if e.CRC != e.calculateCRC32() {
		return fmt.Errorf("%w: entry %s: CRC32 %d != %d", ErrCorrupt, e.ID, e.CRC, e.calculateCRC32())
	}
	return nil
}

// Decode rebuilds the record the payload carries
func (e *Entry) Decode() (record.Structure, error) {
	return record.Decode(e.Kind, e.Payload)
}

// calculateCRC32 covers kind, capture time and payload
func (e *Entry) calculateCRC32() uint32 {
	crc := crc32.NewIEEE()

	_, _ = crc.Write([]byte(e.Kind))
	var ts [8]byte
	binary.LittleEndian.PutUint64(ts[:], uint64(e.Captured.UnixNano()))
	_, _ = crc.Write(ts[:])
	_, _ = crc.Write(e.Payload)

	return crc.Sum32()
}

func marshalEntry(e *Entry) ([]byte, error) {
	return encMode.Marshal(entryWire{
		Kind:     string(e.Kind),
		Captured: e.Captured.UnixNano(),
		Payload:  e.Payload,
		CRC:      e.CRC,
	})
}

func unmarshalEntry(id ksuid.KSUID, data []byte) (*Entry, error) {
	var w entryWire
	if err := decMode.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: entry %s: %v", ErrCorrupt, id, err)
	}
	e := &Entry{
		ID:       id,
		Kind:     record.Kind(w.Kind),
		Captured: time.Unix(0, w.Captured).UTC(),
		Payload:  w.Payload,
		CRC:      w.CRC,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
