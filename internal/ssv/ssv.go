// package ssv writes the audit files of an anonymization run as
// semicolon-separated values. One file per record kind, all opened before the
// database work starts and flushed whatever the outcome, so an operator can
// always map placeholder identifiers back to the scrubbed rows.
package ssv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// File is one append-only audit file. The header row is written on creation.
type File struct {
	f *os.File
	w *csv.Writer
}

// Create opens the named audit file in dir, truncating any previous run's
// output, and writes the header.
func Create(dir, name string, header []string) (*File, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create audit file %s: %w", name, err)
	}

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write audit header of %s: %w", name, err)
	}

	return &File{f: f, w: w}, nil
}

// Write appends one record.
func (f *File) Write(record []string) error {
	if err := f.w.Write(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// Close flushes buffered records and closes the file.
func (f *File) Close() error {
	f.w.Flush()
	err := f.w.Error()
	if cerr := f.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to close audit file: %w", err)
	}
	return nil
}
