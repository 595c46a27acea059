package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"envgen/internal/fixture"
)

// CSVSink writes comma-separated rows with standard quoting. Rows go to
// a temp file in the target directory; the file is renamed into place
// only on a clean Close, so an aborted run never leaves a completed
// artifact at the output path.
type CSVSink struct {
	path   string
	tmp    *os.File
	w      *csv.Writer
	failed bool
}

// NewCSV stages a CSV sink for path. The parent directory must exist and
// be writable.
func NewCSV(path string) (*CSVSink, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("cannot stage output file: %w", err)
	}
	return &CSVSink{path: path, tmp: tmp, w: csv.NewWriter(tmp)}, nil
}

func (s *CSVSink) WriteHeader(fields []string) error { return s.write(fields) }

func (s *CSVSink) WriteRecord(rec fixture.Record) error { return s.write(rec.Row()) }

// Abort marks the run failed so Close discards the staged file.
func (s *CSVSink) Abort() { s.failed = true }

func (s *CSVSink) write(row []string) error {
	if err := s.w.Write(row); err != nil {
		s.failed = true
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Close flushes and promotes the staged file to the output path, or
// discards it if any write failed.
func (s *CSVSink) Close() error {
	if s.failed {
		s.tmp.Close()
		os.Remove(s.tmp.Name())
		return nil
	}

	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.tmp.Close()
		os.Remove(s.tmp.Name())
		return fmt.Errorf("flush output file: %w", err)
	}

	if err := s.tmp.Close(); err != nil {
		os.Remove(s.tmp.Name())
		return fmt.Errorf("close output file: %w", err)
	}
	if err := os.Rename(s.tmp.Name(), s.path); err != nil {
		os.Remove(s.tmp.Name())
		return fmt.Errorf("finalize output file: %w", err)
	}
	return nil
}
