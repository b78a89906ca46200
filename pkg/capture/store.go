// Package capture persists raw record payloads so they can be replayed and
// rendered after the fact. Entries are keyed by KSUID and stored in pebble
// as deterministic CBOR.
package capture

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/uwbwire/pkg/record"
)

var (
	ErrNotFound = errors.New("capture not found")
	ErrCorrupt  = errors.New("capture corrupt")
)

var keyPrefix = []byte("capture/")

// Store is a capture store backed by pebble
type Store struct {
	db     *pebble.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens or creates the store in dir
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open capture store %s: %w", dir, err)
	}
	logger.Debug("capture store opened", "dir", dir)
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

func entryKey(id ksuid.KSUID) []byte {
	return append(append([]byte(nil), keyPrefix...), id.Bytes()...)
}

// Put records payload under kind. The payload must decode as that kind.
func (s *Store) Put(kind record.Kind, payload []byte) (*Entry, error) {
	if _, err := record.Decode(kind, payload); err != nil {
		return nil, fmt.Errorf("capture %s: %w", kind, err)
	}

	e := NewEntry(kind, payload, s.now())
	data, err := marshalEntry(e)
	if err != nil {
		return nil, fmt.Errorf("encode capture: %w", err)
	}
	if err := s.db.Set(entryKey(e.ID), data, pebble.Sync); err != nil {
		return nil, err
	}

	s.logger.Debug("capture stored", "id", e.ID.String(), "kind", kind, "bytes", len(payload))
	return e, nil
}

// Get returns the entry with the given ID
func (s *Store) Get(id ksuid.KSUID) (*Entry, error) {
	data, closer, err := s.db.Get(entryKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return unmarshalEntry(id, append([]byte(nil), data...))
}

// List returns the stored entries of kind, oldest first. An empty kind lists
// every entry.
func (s *Store) List(kind record.Kind) ([]*Entry, error) {
	upper := append([]byte(nil), keyPrefix...)
	upper[len(upper)-1]++

	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []*Entry
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(keyPrefix):])
		if err != nil {
			return nil, fmt.Errorf("%w: bad key %x: %v", ErrCorrupt, iter.Key(), err)
		}
		e, err := unmarshalEntry(id, append([]byte(nil), iter.Value()...))
		if err != nil {
			return nil, err
		}
		if kind != "" && e.Kind != kind {
			continue
		}
		entries = append(entries, e)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	// KSUIDs only order by the second; break ties on the capture time.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Captured.Before(entries[j].Captured)
	})
	return entries, nil
}

// Delete removes the entry with the given ID
func (s *Store) Delete(id ksuid.KSUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.Delete(entryKey(id), pebble.Sync)
}

// Close flushes and closes the store
func (s *Store) Close() error {
	return s.db.Close()
}
