package sink

import "envgen/internal/fixture"

// Sink receives the header exactly once, then every generated record in
// order, then Close. Close finalizes the output artifact; a sink that
// stages its output must not leave a completed artifact behind when an
// earlier write failed.
type Sink interface {
	WriteHeader(fields []string) error
	WriteRecord(rec fixture.Record) error
	Close() error
}

// aborter is implemented by sinks that stage their output and can
// discard it instead of finalizing.
type aborter interface{ Abort() }

// Multi fans every call out to several sinks, stopping at the first
// error. A failure in any member aborts the staged output of all of
// them. Close is attempted on all members regardless.
type Multi []Sink

func (m Multi) WriteHeader(fields []string) error {
	for _, s := range m {
		if err := s.WriteHeader(fields); err != nil {
			m.abort()
			return err
		}
	}
	return nil
}

func (m Multi) WriteRecord(rec fixture.Record) error {
	for _, s := range m {
		if err := s.WriteRecord(rec); err != nil {
			m.abort()
			return err
		}
	}
	return nil
}

func (m Multi) abort() {
	for _, s := range m {
		if a, ok := s.(aborter); ok {
			a.Abort()
		}
	}
}

func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
