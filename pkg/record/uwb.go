package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ssargent/uwbwire/pkg/codec"
)

const (
	// UWBSettingsSize is the packed wire width: channel, rate byte,
	// preamble code, gain byte.
	UWBSettingsSize = 4
	// LegacyUWBSettingsSize is the width older firmware tables declare for
	// the settings register block.
	LegacyUWBSettingsSize = 7

	bitrateMask = 0x3F
	prfMask     = 0xC0
	prfShift    = 6
	gainScale   = 2.0 // wire units per dB
)

var uwbSettingsFormat = codec.MustParseFormat("BBBB")

var bitrates = map[uint8]string{
	0: "110kbit/s",
	1: "850kbit/s",
	2: "6.8Mbit/s",
}

var prfs = map[uint8]string{
	1: "16 MHz",
	2: "64 MHz",
}

var preambleLengths = map[uint8]string{
	0x0C: "4096 symbols",
	0x28: "2048 symbols",
	0x18: "1536 symbols",
	0x08: "1024 symbols",
	0x34: "512 symbols",
	0x24: "256 symbols",
	0x14: "128 symbols",
	0x04: "64 symbols",
}

// UWBSettings is the radio configuration of a device. On the wire the
// bitrate and PRF codes share one byte and the gain is stored in half-dB
// units.
type UWBSettings struct {
	Channel        uint8   `json:"channel"`
	Bitrate        uint8   `json:"bitrate"` // bits 0-5 of the rate byte
	PRF            uint8   `json:"prf"`     // bits 6-7 of the rate byte
	PreambleLength uint8   `json:"plen"`
	GainDB         float64 `json:"gain_db"`

	raw Data
}

// NewUWBSettings creates synchronized settings from field values. An
// unencodable field (for instance a gain above 127.5 dB) is reported as a
// *ReconcileError and no settings are returned.
func NewUWBSettings(channel, bitrate, prf, plen uint8, gainDB float64) (*UWBSettings, error) {
	s := &UWBSettings{
		Channel:        channel,
		Bitrate:        bitrate,
		PRF:            prf,
		PreambleLength: plen,
		GainDB:         gainDB,
	}
	if _, err := s.Synchronize(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *UWBSettings) Kind() Kind { return KindUWBSettings }
func (s *UWBSettings) Format() codec.Format { return uwbSettingsFormat }
func (s *UWBSettings) ByteSize() int { return UWBSettingsSize }
func (s *UWBSettings) Values() []float64 { return s.raw.Values() }

// Load decodes the packed wire values
func (s *UWBSettings) Load(values []float64) error {
	if err := checkLoad(uwbSettingsFormat, values); err != nil {
		return fmt.Errorf("%s: %w", KindUWBSettings, err)
	}
	rate := uint8(values[1])
	s.Channel = uint8(values[0])
	s.Bitrate = rate & bitrateMask
	s.PRF = (rate & prfMask) >> prfShift
	s.PreambleLength = uint8(values[2])
	s.GainDB = values[3] / gainScale
	s.raw = newData(values, uwbSettingsFormat)
	return nil
}

func (s *UWBSettings) derive() ([]float64, error) {
	if s.Bitrate > bitrateMask {
		return nil, fmt.Errorf("bitrate code %#x does not fit 6 bits", s.Bitrate)
	}
	if s.PRF > prfMask>>prfShift {
		return nil, fmt.Errorf("prf code %#x does not fit 2 bits", s.PRF)
	}
	gain := math.Round(s.GainDB * gainScale)
	if math.IsNaN(gain) || gain < 0 || gain > math.MaxUint8 {
		return nil, fmt.Errorf("gain %v dB outside 0..%v dB", s.GainDB, math.MaxUint8/gainScale)
	}
	return []float64{
		float64(s.Channel),
		float64(s.Bitrate | s.PRF<<prfShift),
		float64(s.PreambleLength),
		gain,
	}, nil
}

// Synchronize packs the fields back into wire values. The gain is quantized
// to the nearest half dB.
func (s *UWBSettings) Synchronize() (codec.SyncResult, error) {
	return reconcile(&s.raw, uwbSettingsFormat, s)
}

// BitrateText names the bitrate code
func (s *UWBSettings) BitrateText() string {
	if t, ok := bitrates[s.Bitrate]; ok {
		return t
	}
	return "invalid bitrate"
}

// PRFText names the pulse repetition frequency code
func (s *UWBSettings) PRFText() string {
	if t, ok := prfs[s.PRF]; ok {
		return t
	}
	return "invalid pulse repetitions frequency (PRF)"
}

// PreambleText names the preamble length code
func (s *UWBSettings) PreambleText() string {
	if t, ok := preambleLengths[s.PreambleLength]; ok {
		return t
	}
	return "invalid preamble length"
}

func (s *UWBSettings) String() string {
	return fmt.Sprintf("CH: %d, bitrate: %s, prf: %s, plen: %s, gain: %sdB",
		s.Channel, s.BitrateText(), s.PRFText(), s.PreambleText(), formatGain(s.GainDB))
}

// formatGain always keeps a fractional digit: 10 -> "10.0", 12.5 -> "12.5".
func formatGain(g float64) string {
	text := strconv.FormatFloat(g, 'f', -1, 64)
	if math.IsInf(g, 0) || math.IsNaN(g) || strings.Contains(text, ".") {
		return text
	}
	return text + ".0"
}
