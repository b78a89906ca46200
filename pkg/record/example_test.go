package record_test

import (
	"fmt"
	"log"

	"github.com/ssargent/uwbwire/pkg/codec"
	"github.com/ssargent/uwbwire/pkg/record"
)

// ExampleDecode decodes radio settings read from a device
func ExampleDecode() {
	s, err := record.Decode(record.KindUWBSettings, []byte{5, 0x81, 0x28, 20})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(s)

	// Output:
	// CH: 5, bitrate: 850kbit/s, prf: 64 MHz, plen: 2048 symbols, gain: 10.0dB
}

// ExampleUWBSettings_Synchronize changes one field and re-encodes
func ExampleUWBSettings_Synchronize() {
	s, err := record.NewUWBSettings(5, 1, 2, 0x28, 10)
	if err != nil {
		log.Fatal(err)
	}
	s.GainDB = 12.3

	res, err := s.Synchronize()
	if err != nil {
		log.Fatal(err)
	}

	buf, err := codec.NewRecordCodec().Encode(s)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res)
	fmt.Printf("% x\n", buf)

	// Output:
	// updated
	// 05 81 28 19
}

// ExampleDeviceList_Load shows that a short load keeps trailing slots
func ExampleDeviceList_Load() {
	l := record.NewDeviceList([]uint16{0x6001, 0x6002, 0x6003, 0x6004})
	if err := l.Load([]float64{0x7001, 0x7002}); err != nil {
		log.Fatal(err)
	}

	fmt.Println(l.Len())
	fmt.Println(l)

	// Output:
	// 4
	// IDs: 0x7001, 0x7002, 0x6003, 0x6004
}
