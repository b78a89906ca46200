package record

import (
	"fmt"

	"github.com/ssargent/uwbwire/pkg/codec"
)

// Kind names a record type
type Kind string

const (
	KindCoordinates Kind = "coordinates"
	KindRange       Kind = "range"
	KindNetworkID   Kind = "network-id"
	KindDeviceList  Kind = "device-list"
	KindUWBSettings Kind = "uwb-settings"
)

// Structure is a named-field record: the wire contract plus a kind and a
// human-readable rendering.
type Structure interface {
	codec.Structure
	fmt.Stringer
	Kind() Kind
}

var (
	_ Structure = (*DeviceCoordinates)(nil)
	_ Structure = (*DeviceRange)(nil)
	_ Structure = (*NetworkID)(nil)
	_ Structure = (*DeviceList)(nil)
	_ Structure = (*UWBSettings)(nil)

	_ codec.Structure = (*Data)(nil)
)

// Kinds lists every registered kind in a stable order
func Kinds() []Kind {
	return []Kind{KindCoordinates, KindRange, KindNetworkID, KindDeviceList, KindUWBSettings}
}

// ParseKind validates a kind name
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New returns an empty record of the given kind, ready for Load or
// RecordCodec.Decode. size is the number of IDs for a device list and is
// ignored for every other kind.
func New(kind Kind, size int) (Structure, error) {
	switch kind {
	case KindCoordinates:
		return NewDeviceCoordinates(0, 0, Coordinates{}), nil
	case KindRange:
		return NewDeviceRange(0, 0, 0), nil
	case KindNetworkID:
		return NewNetworkID(0), nil
	case KindDeviceList:
		if size < 0 {
			return nil, fmt.Errorf("%w: negative device list size %d", ErrLength, size)
		}
		return NewDeviceListSize(size), nil
	case KindUWBSettings:
		s, err := NewUWBSettings(0, 0, 0, 0, 0)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// ForPayload returns an empty record sized for payload. Device lists take
// their length from the payload, which must hold whole IDs.
func ForPayload(kind Kind, payload []byte) (Structure, error) {
	size := 0
	if kind == KindDeviceList {
		if len(payload)%2 != 0 {
			return nil, fmt.Errorf("%w: device list payload of %d bytes is not a whole number of ids", codec.ErrSizeMismatch, len(payload))
		}
		size = len(payload) / 2
	}
	return New(kind, size)
}

// Decode builds a record of the given kind from its wire bytes
func Decode(kind Kind, payload []byte) (Structure, error) {
	s, err := ForPayload(kind, payload)
	if err != nil {
		return nil, err
	}
	if err := codec.NewRecordCodec().Decode(payload, s); err != nil {
		return nil, err
	}
	return s, nil
}

// DecodeSized decodes a device list payload into a list of size IDs. A
// payload holding fewer IDs than size leaves the trailing IDs zero. Other
// kinds, and a size of zero, behave like Decode.
func DecodeSized(kind Kind, payload []byte, size int) (Structure, error) {
	if kind != KindDeviceList || size == 0 {
		return Decode(kind, payload)
	}
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: device list payload of %d bytes is not a whole number of ids", codec.ErrSizeMismatch, len(payload))
	}

	values, err := codec.Repeat(codec.CodeUint16, len(payload)/2).Unpack(payload)
	if err != nil {
		return nil, err
	}
	s, err := New(kind, size)
	if err != nil {
		return nil, err
	}
	if err := s.Load(values); err != nil {
		return nil, err
	}
	return s, nil
}
