package sink

import (
	"encoding/json"
	"fmt"

	"envgen/internal/fixture"
	"envgen/internal/store"
)

var (
	eventsBucket = []byte("events")
	metaBucket   = []byte("meta")
	columnsKey   = []byte("columns")
)

// BoltSink persists each record JSON-encoded into an events bucket keyed
// by eventId, with the column list kept in a meta bucket, for harnesses
// that read fixtures straight out of bbolt.
type BoltSink struct {
	backend store.Backend
}

// NewBolt opens (or creates) a bbolt fixture store at path.
func NewBolt(path string) (*BoltSink, error) {
	backend, err := store.NewBboltBackend(path)
	if err != nil {
		return nil, err
	}
	return newBoltSink(backend)
}

func newBoltSink(backend store.Backend) (*BoltSink, error) {
	for _, bucket := range [][]byte{eventsBucket, metaBucket} {
		if err := backend.CreateBucket(bucket); err != nil {
			backend.Close()
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}
	return &BoltSink{backend: backend}, nil
}

func (s *BoltSink) WriteHeader(fields []string) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return s.backend.Put(metaBucket, columnsKey, data)
}

func (s *BoltSink) WriteRecord(rec fixture.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.backend.Put(eventsBucket, []byte(rec.EventID), data)
}

func (s *BoltSink) Close() error {
	return s.backend.Close()
}
