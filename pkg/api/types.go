package api

import (
	"github.com/segmentio/ksuid"

	"github.com/ssargent/uwbwire/pkg/capture"
	"github.com/ssargent/uwbwire/pkg/record"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string
}

// CaptureStore defines the capture operations the API needs
type CaptureStore interface {
	Put(kind record.Kind, payload []byte) (*capture.Entry, error)
	Get(id ksuid.KSUID) (*capture.Entry, error)
	List(kind record.Kind) ([]*capture.Entry, error)
	Delete(id ksuid.KSUID) error
}

// PayloadRequest carries a wire payload written as hex
type PayloadRequest struct {
	Hex string `json:"hex"`
}

// KindInfo describes one record kind. ByteSize is 0 for variable-width kinds.
type KindInfo struct {
	Kind     record.Kind `json:"kind"`
	ByteSize int         `json:"byte_size"`
	Format   string      `json:"format"`
}

// DecodeResponse is a decoded record
type DecodeResponse struct {
	Kind   record.Kind      `json:"kind"`
	Text   string           `json:"text"`
	Values []float64        `json:"values"`
	Fields record.Structure `json:"fields"`
}

// EncodeResponse is an encoded record
type EncodeResponse struct {
	Kind record.Kind `json:"kind"`
	Hex  string      `json:"hex"`
	Text string      `json:"text"`
	Sync string      `json:"sync"`
}

// CaptureResponse is a stored capture with its rendering
type CaptureResponse struct {
	ID       string      `json:"id"`
	Kind     record.Kind `json:"kind"`
	Captured string      `json:"captured"`
	Hex      string      `json:"hex"`
	Text     string      `json:"text,omitempty"`
}
