package record

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ssargent/uwbwire/pkg/codec"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrLength          = errors.New("wrong number of values")
	ErrReconcile       = errors.New("reconciliation failed")
	ErrUnknownKind     = errors.New("unknown record kind")
)

// ReconcileError reports that a record's named fields could not be turned
// back into a raw value sequence. The raw sequence is left as it was.
type ReconcileError struct {
	Kind Kind
	Err  error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, ErrReconcile, e.Err)
}

func (e *ReconcileError) Unwrap() []error {
	return []error{ErrReconcile, e.Err}
}

// Data is the generic record: an ordered sequence of numeric values and the
// type-code string that maps each of them to bytes.
type Data struct {
	values []float64
	format codec.Format
}

// NewData wraps values described by format. The format needs one code per
// value. values is copied.
func NewData(values []float64, format string) (*Data, error) {
	f, err := codec.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if f.Len() != len(values) {
		return nil, fmt.Errorf("%w: format %q describes %d values, got %d", ErrLength, f, f.Len(), len(values))
	}
	d := newData(values, f)
	return &d, nil
}

// NewEmptyData returns length zero values of a single repeated type code.
func NewEmptyData(length int, code byte) (*Data, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrLength, length)
	}
	f, err := codec.ParseFormat(string(codec.Repeat(code, length)))
	if err != nil {
		return nil, err
	}
	d := newData(make([]float64, length), f)
	return &d, nil
}

func newData(values []float64, format codec.Format) Data {
	return Data{values: cloneValues(values), format: format}
}

// Len returns the number of values
func (d *Data) Len() int {
	return len(d.values)
}

// Get returns the value at index i
func (d *Data) Get(i int) (float64, error) {
	if i < 0 || i >= len(d.values) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(d.values))
	}
	return d.values[i], nil
}

// Set replaces the value at index i
func (d *Data) Set(i int, v float64) error {
	if i < 0 || i >= len(d.values) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(d.values))
	}
	d.values[i] = v
	return nil
}

// Format returns the type-code string
func (d *Data) Format() codec.Format {
	return d.format
}

// ByteSize returns the encoded width of the record
func (d *Data) ByteSize() int {
	return d.format.Size()
}

// Values returns a copy of the raw value sequence
func (d *Data) Values() []float64 {
	return cloneValues(d.values)
}

// Load replaces every value. The length of a Data never changes.
func (d *Data) Load(values []float64) error {
	if err := checkLoad(d.format, values); err != nil {
		return err
	}
	d.values = cloneValues(values)
	return nil
}

// Synchronize is a no-op: a generic record has no named fields.
func (d *Data) Synchronize() (codec.SyncResult, error) {
	return codec.SyncUnchanged, nil
}

// Clone returns a copy that shares no storage with d
func (d *Data) Clone() *Data {
	c := newData(d.values, d.format)
	return &c
}

func (d *Data) String() string {
	parts := make([]string, len(d.values))
	for i, v := range d.values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "DATA: [" + strings.Join(parts, ", ") + "]"
}

// deriver is implemented by every named-field record. derive computes the
// raw sequence the current field values would produce.
type deriver interface {
	Kind() Kind
	derive() ([]float64, error)
}

// reconcile replaces raw with the sequence derived from r's fields, unless
// the two already agree. Any failure leaves raw untouched and is returned as
// a *ReconcileError.
func reconcile(raw *Data, format codec.Format, r deriver) (codec.SyncResult, error) {
	next, err := r.derive()
	if err == nil {
		err = format.Check(next)
	}
	if err != nil {
		return codec.SyncUnchanged, &ReconcileError{Kind: r.Kind(), Err: err}
	}

	raw.format = format
	if valuesEqual(raw.values, next) {
		return codec.SyncUnchanged, nil
	}
	raw.values = next
	return codec.SyncUpdated, nil
}

// checkLoad validates an incoming raw sequence against format
func checkLoad(format codec.Format, values []float64) error {
	if len(values) != format.Len() {
		return fmt.Errorf("%w: format %q needs %d, got %d", ErrLength, format, format.Len(), len(values))
	}
	return format.Check(values)
}

func valuesEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}

func cloneValues(values []float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}
