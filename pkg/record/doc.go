// Package record implements the fixed-layout records exchanged with a UWB
// anchor network: anchor coordinates, range measurements, network IDs, ID
// lists and radio settings.
//
// Every record keeps two views of itself: named fields for application code
// and a raw value sequence for the wire, described by a codec.Format.
//
//   - Load overwrites the named fields from a decoded raw sequence.
//   - Synchronize derives the raw sequence from the named fields. It reports
//     codec.SyncUnchanged when nothing moved and returns a *ReconcileError
//     (matching ErrReconcile) when a field cannot be encoded, in which case
//     the raw sequence keeps its previous value.
//   - String renders the record for logs. It is never sent to a device.
//
// Decoding from bytes:
//
//	s, err := record.Decode(record.KindUWBSettings, []byte{5, 0x81, 0x28, 20})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(s) // CH: 5, bitrate: 850kbit/s, prf: 64 MHz, plen: 2048 symbols, gain: 10.0dB
//
// Records carry no locks. Share one between goroutines only behind your own
// mutex.
package record
