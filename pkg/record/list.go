package record

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ssargent/uwbwire/pkg/codec"
)

// DeviceList is an ordered list of 16-bit device IDs whose length is fixed
// when the list is built.
type DeviceList struct {
	ids []uint16
	raw Data
}

// NewDeviceList builds a list holding a copy of ids. A nil or empty slice
// gives an empty list.
func NewDeviceList(ids []uint16) *DeviceList {
	l := &DeviceList{ids: make([]uint16, len(ids))}
	copy(l.ids, ids)
	values, _ := l.derive()
	l.raw = newData(values, l.Format())
	return l
}

// NewDeviceListSize builds a list of size zero-valued slots.
func NewDeviceListSize(size int) *DeviceList {
	if size < 0 {
		size = 0
	}
	return NewDeviceList(make([]uint16, size))
}

func (l *DeviceList) Kind() Kind { return KindDeviceList }

// Format is one 'H' per slot
func (l *DeviceList) Format() codec.Format { return codec.Repeat(codec.CodeUint16, len(l.ids)) }

func (l *DeviceList) ByteSize() int { return 2 * len(l.ids) }
func (l *DeviceList) Values() []float64 { return l.raw.Values() }
func (l *DeviceList) Len() int { return len(l.ids) }

// IDs returns a copy of the slots
func (l *DeviceList) IDs() []uint16 {
	out := make([]uint16, len(l.ids))
	copy(out, l.ids)
	return out
}

// ID returns slot i
func (l *DeviceList) ID(i int) (uint16, error) {
	if i < 0 || i >= len(l.ids) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(l.ids))
	}
	return l.ids[i], nil
}

// SetID replaces slot i. Call Synchronize before encoding.
func (l *DeviceList) SetID(i int, id uint16) error {
	if i < 0 || i >= len(l.ids) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(l.ids))
	}
	l.ids[i] = id
	return nil
}

func (l *DeviceList) derive() ([]float64, error) {
	values := make([]float64, len(l.ids))
	for i, id := range l.ids {
		values[i] = float64(id)
	}
	return values, nil
}

// Load overwrites slots positionally. A sequence shorter than the list
// leaves the trailing slots at their previous values; a longer one is
// rejected. The length of the list never changes.
func (l *DeviceList) Load(values []float64) error {
	if len(values) > len(l.ids) {
		return fmt.Errorf("%s: %w: list holds %d ids, got %d", KindDeviceList, ErrLength, len(l.ids), len(values))
	}
	if err := codec.Repeat(codec.CodeUint16, len(values)).Check(values); err != nil {
		return fmt.Errorf("%s: %w", KindDeviceList, err)
	}
	for i, v := range values {
		l.ids[i] = uint16(v)
	}
	derived, _ := l.derive()
	l.raw = newData(derived, l.Format())
	return nil
}

// Synchronize rebuilds the raw sequence from the slots
func (l *DeviceList) Synchronize() (codec.SyncResult, error) {
	return reconcile(&l.raw, l.Format(), l)
}

// Clone returns a copy that shares no storage with l
func (l *DeviceList) Clone() *DeviceList {
	c := NewDeviceList(l.ids)
	c.raw = newData(l.raw.values, l.raw.format)
	return c
}

func (l *DeviceList) String() string {
	var b strings.Builder
	b.WriteString("IDs: ")
	for i, id := range l.ids {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "0x%04x", id)
	}
	return b.String()
}

type deviceListJSON struct {
	IDs []uint16 `json:"ids"`
}

func (l *DeviceList) MarshalJSON() ([]byte, error) {
	return json.Marshal(deviceListJSON{IDs: l.IDs()})
}

// UnmarshalJSON builds the list from {"ids": [...]}. Unlike Load it sets the
// length.
func (l *DeviceList) UnmarshalJSON(data []byte) error {
	var v deviceListJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = *NewDeviceList(v.IDs)
	return nil
}
