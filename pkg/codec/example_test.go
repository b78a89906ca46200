package codec_test

import (
	"fmt"
	"log"

	"github.com/ssargent/uwbwire/pkg/codec"
)

// ExampleFormat_Pack packs a range measurement layout
func ExampleFormat_Pack() {
	f := codec.MustParseFormat("IIh")

	buf, err := f.Pack([]float64{1000, 2500, -80})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoded %d bytes: % x\n", len(buf), buf)

	// Output:
	// Encoded 10 bytes: e8 03 00 00 c4 09 00 00 b0 ff
}

// ExampleFormat_Unpack decodes a raw anchor entry
func ExampleFormat_Unpack() {
	f := codec.MustParseFormat("HBiii")

	values, err := f.Unpack([]byte{
		0xff, 0x00, 0x01,
		0x0a, 0x00, 0x00, 0x00,
		0x14, 0x00, 0x00, 0x00,
		0xe2, 0xff, 0xff, 0xff,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(values)

	// Output:
	// [255 1 10 20 -30]
}
