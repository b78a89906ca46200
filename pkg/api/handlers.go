package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/uwbwire/pkg/capture"
	"github.com/ssargent/uwbwire/pkg/codec"
	"github.com/ssargent/uwbwire/pkg/record"
)

// maxBodyBytes bounds request bodies. Records are tiny.
const maxBodyBytes = 64 << 10

// Server holds the API server state
type Server struct {
	store   CaptureStore
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server
func NewServer(store CaptureStore, config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleKinds lists the record kinds the service understands
func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	kinds := make([]KindInfo, 0, len(record.Kinds()))
	for _, k := range record.Kinds() {
		rec, err := record.New(k, 0)
		if err != nil {
			sendError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		info := KindInfo{Kind: k, ByteSize: rec.ByteSize(), Format: string(rec.Format())}
		if k == record.KindDeviceList {
			info.Format = "H..."
		}
		kinds = append(kinds, info)
	}
	sendSuccess(w, kinds)
}

// handleDecode decodes a hex payload as the kind named in the path
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindParam(w, r)
	if !ok {
		return
	}

	var req struct {
		PayloadRequest
		Size int `json:"size"`
	}
	if err := decodeBody(r, &req); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	payload, err := codec.ParseHex(req.Hex)
	if err != nil {
		s.recordCodec("decode", kind, false)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := record.DecodeSized(kind, payload, req.Size)
	if err != nil {
		s.recordCodec("decode", kind, false)
		sendError(w, err.Error(), statusForCodecError(err))
		return
	}

	s.recordCodec("decode", kind, true)
	s.logger.Debug("decoded record", "kind", kind, "bytes", len(payload))
	sendSuccess(w, DecodeResponse{
		Kind:   kind,
		Text:   rec.String(),
		Values: rec.Values(),
		Fields: rec,
	})
}

// handleEncode builds a record from its JSON fields and returns the wire bytes
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindParam(w, r)
	if !ok {
		return
	}

	rec, err := record.New(kind, 0)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := decodeBody(r, rec); err != nil {
		s.recordCodec("encode", kind, false)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := rec.Synchronize()
	if err != nil {
		s.recordCodec("encode", kind, false)
		s.recordReconcileFailure(err)
		sendError(w, err.Error(), statusForCodecError(err))
		return
	}
	buf, err := codec.NewRecordCodec().Encode(rec)
	if err != nil {
		s.recordCodec("encode", kind, false)
		sendError(w, err.Error(), statusForCodecError(err))
		return
	}

	// Render what the wire carries, after quantization
	wire, err := record.Decode(kind, buf)
	if err != nil {
		s.recordCodec("encode", kind, false)
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.recordCodec("encode", kind, true)
	sendSuccess(w, EncodeResponse{
		Kind: kind,
		Hex:  hex.EncodeToString(buf),
		Text: wire.String(),
		Sync: result.String(),
	})
}

// handlePutCapture stores a payload of the kind named in the path
func (s *Server) handlePutCapture(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindParam(w, r)
	if !ok {
		return
	}

	var req PayloadRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload, err := codec.ParseHex(req.Hex)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := s.store.Put(kind, payload)
	s.recordCapture("put", err == nil)
	if err != nil {
		sendError(w, err.Error(), statusForPutError(err))
		return
	}

	s.logger.Info("capture stored", "id", entry.ID, "kind", kind)
	sendSuccess(w, captureResponse(entry, true))
}

// handleGetCapture returns one capture with its rendering
func (s *Server) handleGetCapture(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	entry, err := s.store.Get(id)
	s.recordCapture("get", err == nil)
	if err != nil {
		sendError(w, err.Error(), statusForStoreError(err))
		return
	}
	sendSuccess(w, captureResponse(entry, true))
}

// handleListCaptures lists captures, optionally filtered by ?kind=
func (s *Server) handleListCaptures(w http.ResponseWriter, r *http.Request) {
	var kind record.Kind
	if q := r.URL.Query().Get("kind"); q != "" {
		k, err := record.ParseKind(q)
		if err != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		kind = k
	}

	entries, err := s.store.List(kind)
	s.recordCapture("list", err == nil)
	if err != nil {
		sendError(w, err.Error(), statusForStoreError(err))
		return
	}

	out := make([]CaptureResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, captureResponse(e, false))
	}
	sendSuccess(w, out)
}

// handleDeleteCapture removes one capture
func (s *Server) handleDeleteCapture(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	err := s.store.Delete(id)
	s.recordCapture("delete", err == nil)
	if err != nil {
		sendError(w, err.Error(), statusForStoreError(err))
		return
	}
	sendSuccess(w, map[string]string{"message": "Capture deleted successfully"})
}

func (s *Server) kindParam(w http.ResponseWriter, r *http.Request) (record.Kind, bool) {
	kind, err := record.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		sendError(w, err.Error(), http.StatusNotFound)
		return "", false
	}
	return kind, true
}

func idParam(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, fmt.Sprintf("Invalid capture id: %v", err), http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

func (s *Server) recordCodec(operation string, kind record.Kind, success bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordCodecOperation(operation, string(kind), success)
}

func (s *Server) recordCapture(operation string, success bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordCaptureOperation(operation, success)
}

func (s *Server) recordReconcileFailure(err error) {
	var re *record.ReconcileError
	if s.metrics != nil && errors.As(err, &re) {
		s.metrics.RecordReconcileFailure(string(re.Kind))
	}
}

// decodeBody reads a JSON body into v, rejecting unknown fields
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON in request body: %w", err)
	}
	return nil
}

// statusForCodecError maps record and codec failures to HTTP statuses.
// Fields that cannot be encoded are well-formed but unprocessable.
func statusForCodecError(err error) int {
	switch {
	case errors.Is(err, record.ErrReconcile), errors.Is(err, codec.ErrValueOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, record.ErrUnknownKind):
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// statusForPutError separates a payload the kind rejects from a store that
// failed to persist it.
func statusForPutError(err error) int {
	if isRecordError(err) {
		return statusForCodecError(err)
	}
	return http.StatusInternalServerError
}

func isRecordError(err error) bool {
	for _, target := range []error{
		record.ErrUnknownKind,
		record.ErrLength,
		record.ErrReconcile,
		record.ErrIndexOutOfRange,
		codec.ErrSizeMismatch,
		codec.ErrValueCount,
		codec.ErrValueOutOfRange,
		codec.ErrUnknownCode,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func statusForStoreError(err error) int {
	if errors.Is(err, capture.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func captureResponse(e *capture.Entry, render bool) CaptureResponse {
	resp := CaptureResponse{
		ID:       e.ID.String(),
		Kind:     e.Kind,
		Captured: e.Captured.Format(time.RFC3339Nano),
		Hex:      hex.EncodeToString(e.Payload),
	}
	if render {
		if rec, err := e.Decode(); err == nil {
			resp.Text = rec.String()
		}
	}
	return resp
}
