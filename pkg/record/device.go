package record

import (
	"fmt"

	"github.com/ssargent/uwbwire/pkg/codec"
)

// Wire widths in bytes
const (
	DeviceCoordinatesSize = 15
	DeviceRangeSize       = 10
	NetworkIDSize         = 2
)

var (
	deviceCoordinatesFormat = codec.MustParseFormat("HBiii")
	deviceRangeFormat       = codec.MustParseFormat("IIh")
	networkIDFormat         = codec.MustParseFormat("H")
)

// Coordinates is a position in millimeters
type Coordinates struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
	Z int32 `json:"z" yaml:"z"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("X: %d, Y: %d, Z: %d", c.X, c.Y, c.Z)
}

// DeviceCoordinates is an anchor entry: the anchor's network ID, a flag
// byte and its position.
type DeviceCoordinates struct {
	NetworkID uint16      `json:"network_id"`
	Flag      uint8       `json:"flag"`
	Pos       Coordinates `json:"pos"`

	raw Data
}

// NewDeviceCoordinates creates a synchronized anchor entry
func NewDeviceCoordinates(networkID uint16, flag uint8, pos Coordinates) *DeviceCoordinates {
	d := &DeviceCoordinates{NetworkID: networkID, Flag: flag, Pos: pos}
	values, _ := d.derive()
	d.raw = newData(values, deviceCoordinatesFormat)
	return d
}

func (d *DeviceCoordinates) Kind() Kind { return KindCoordinates }
func (d *DeviceCoordinates) Format() codec.Format { return deviceCoordinatesFormat }
func (d *DeviceCoordinates) ByteSize() int { return DeviceCoordinatesSize }
func (d *DeviceCoordinates) Values() []float64 { return d.raw.Values() }
func (d *DeviceCoordinates) derive() ([]float64, error) {
	return []float64{
		float64(d.NetworkID), float64(d.Flag),
		float64(d.Pos.X), float64(d.Pos.Y), float64(d.Pos.Z),
	}, nil
}

// Load overwrites every field from a decoded raw sequence
func (d *DeviceCoordinates) Load(values []float64) error {
	if err := checkLoad(deviceCoordinatesFormat, values); err != nil {
		return fmt.Errorf("%s: %w", KindCoordinates, err)
	}
	d.NetworkID = uint16(values[0])
	d.Flag = uint8(values[1])
	d.Pos = Coordinates{X: int32(values[2]), Y: int32(values[3]), Z: int32(values[4])}
	d.raw = newData(values, deviceCoordinatesFormat)
	return nil
}

// Synchronize rebuilds the raw sequence from the named fields
func (d *DeviceCoordinates) Synchronize() (codec.SyncResult, error) {
	return reconcile(&d.raw, deviceCoordinatesFormat, d)
}

func (d *DeviceCoordinates) String() string {
	return fmt.Sprintf("ID: 0x%x, flag: %d, %s", d.NetworkID, d.Flag, d.Pos)
}

// DeviceRange is a single range measurement between two devices.
type DeviceRange struct {
	Timestamp uint32 `json:"timestamp"` // ms
	Distance  uint32 `json:"distance"`  // mm
	RSS       int16  `json:"rss"`       // dB

	raw Data
}

// NewDeviceRange creates a synchronized range measurement
func NewDeviceRange(timestamp, distance uint32, rss int16) *DeviceRange {
	r := &DeviceRange{Timestamp: timestamp, Distance: distance, RSS: rss}
	values, _ := r.derive()
	r.raw = newData(values, deviceRangeFormat)
	return r
}

func (r *DeviceRange) Kind() Kind { return KindRange }
func (r *DeviceRange) Format() codec.Format { return deviceRangeFormat }
func (r *DeviceRange) ByteSize() int { return DeviceRangeSize }
func (r *DeviceRange) Values() []float64 { return r.raw.Values() }
func (r *DeviceRange) derive() ([]float64, error) {
	return []float64{float64(r.Timestamp), float64(r.Distance), float64(r.RSS)}, nil
}

// Load overwrites every field from a decoded raw sequence
func (r *DeviceRange) Load(values []float64) error {
	if err := checkLoad(deviceRangeFormat, values); err != nil {
		return fmt.Errorf("%s: %w", KindRange, err)
	}
	r.Timestamp = uint32(values[0])
	r.Distance = uint32(values[1])
	r.RSS = int16(values[2])
	r.raw = newData(values, deviceRangeFormat)
	return nil
}

// Synchronize rebuilds the raw sequence from the named fields
func (r *DeviceRange) Synchronize() (codec.SyncResult, error) {
	return reconcile(&r.raw, deviceRangeFormat, r)
}

func (r *DeviceRange) String() string {
	return fmt.Sprintf("%dms, %dmm, %ddB", r.Timestamp, r.Distance, r.RSS)
}

// NetworkID is a single 16-bit device identifier.
type NetworkID struct {
	ID uint16 `json:"id"`

	raw Data
}

// NewNetworkID creates a synchronized network ID
func NewNetworkID(id uint16) *NetworkID {
	n := &NetworkID{ID: id}
	n.raw = newData([]float64{float64(id)}, networkIDFormat)
	return n
}

func (n *NetworkID) Kind() Kind { return KindNetworkID }
func (n *NetworkID) Format() codec.Format { return networkIDFormat }
func (n *NetworkID) ByteSize() int { return NetworkIDSize }
func (n *NetworkID) Values() []float64 { return n.raw.Values() }
func (n *NetworkID) derive() ([]float64, error) { return []float64{float64(n.ID)}, nil }

// Load overwrites the ID from a decoded raw sequence
func (n *NetworkID) Load(values []float64) error {
	if err := checkLoad(networkIDFormat, values); err != nil {
		return fmt.Errorf("%s: %w", KindNetworkID, err)
	}
	n.ID = uint16(values[0])
	n.raw = newData(values, networkIDFormat)
	return nil
}

// Synchronize rebuilds the raw sequence from the ID
func (n *NetworkID) Synchronize() (codec.SyncResult, error) {
	return reconcile(&n.raw, networkIDFormat, n)
}

func (n *NetworkID) String() string {
	return fmt.Sprintf("0x%04x", n.ID)
}
