package library

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Record is one row of a collection, keyed by column name. The store does no
// type validation; callers parse field values themselves.
type Record map[string]string

// Store persists named collections as CSV files (header row plus one line
// per record) under a single data directory. Saves rewrite the whole file
// through a temp file and rename so a crash mid-write cannot leave a
// half-written collection behind.
//
// A single mutex serializes all access: the intended deployment is one
// interactive session, and there is no row-level concurrency control.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore opens (or creates) the data directory at dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing data directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".csv")
}

// Load reads every record of a collection. A collection that does not exist
// yet is an empty collection, not an error.
func (s *Store) Load(collection string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(collection)
}

func (s *Store) load(collection string) ([]Record, error) {
	f, err := os.Open(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", collection, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save overwrites the collection with records, writing columns in the given
// fixed order. The header row is always written, even for zero records.
func (s *Store) Save(collection string, records []Record, columns []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(collection, records, columns)
}

func (s *Store) save(collection string, records []Record, columns []string) error {
	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", collection, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s header: %w", collection, err)
	}
	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = rec[col]
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write %s: %w", collection, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", collection, err)
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}

// Append loads the collection, adds record, and saves. Not atomic across the
// load and save; acceptable for the single-user deployment.
func (s *Store) Append(collection string, record Record, columns []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(collection)
	if err != nil {
		return err
	}
	return s.save(collection, append(records, record), columns)
}

// Ensure creates the collection with a header-only file if it is absent.
func (s *Store) Ensure(collection string, columns []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(collection)); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", collection, err)
	}
	return s.save(collection, nil, columns)
}
