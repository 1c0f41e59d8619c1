package sample

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Store is the append-only tabular persistence for one dimension of one
// run. The column schema is fixed when the store is created and the header
// is the first row written; every Append flushes a whole row so an
// interrupted run leaves no partial rows behind.
//
// A store never merges with a previous run's file: opening an existing
// path truncates it. Callers keep historical runs apart with a directory
// per platform run.
type Store struct {
	f      *os.File
	w      *csv.Writer
	labels int
}

// NewStore creates the dimension's file and writes the header. The column
// schema is "iteration", the dimension's categorical label columns, the
// value column, and the validity flag.
func NewStore(path string, columns []string) (*Store, error) {
	if len(columns) < 3 {
		return nil, fmt.Errorf("schema needs iteration, value and valid columns, got %d", len(columns))
	}
	if columns[0] != "iteration" || columns[len(columns)-1] != "valid" {
		return nil, fmt.Errorf("schema must start with 'iteration' and end with 'valid'")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create store file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	w.Flush()

	return &Store{f: f, w: w, labels: len(columns) - 3}, nil
}

// Append writes one sample as one row and flushes it to the file.
func (s *Store) Append(smp Sample) error {
	if len(smp.Labels) != s.labels {
		return fmt.Errorf(
			"sample has %d labels, schema has %d label columns",
			len(smp.Labels), s.labels,
		)
	}

	row := make([]string, 0, s.labels+3)
	row = append(row, strconv.Itoa(smp.Iteration))
	row = append(row, smp.Labels...)
	row = append(row, formatValue(smp.M.Value))
	row = append(row, strconv.FormatBool(smp.M.Valid))

	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	s.w.Flush()

	return s.w.Error()
}

// Close flushes and closes the underlying file.
func (s *Store) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return fmt.Errorf("flush store: %w", err)
	}

	return s.f.Close()
}
