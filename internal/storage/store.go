package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/growth"
)

var ErrNotFound = errors.New("storage: tree not found")

const (
	metaFile = "metadata.json"
	artFile  = "tree.txt"
)

// Store keeps saved trees under a directory, one subdirectory per tree.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Record is enough to grow a saved tree again: the seed, which generation
// of the random stream it was, and how far it had grown.
type Record struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       uint64             `json:"seed"`
	Generation int                `json:"generation"`
	Branches   int                `json:"branches"`
	Counters   growth.Counters    `json:"counters"`
	Config     config.Config      `json:"config"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Save writes the record and the plain text art, assigning an ID when the
// record has none.
func (s *Store) Save(rec *Record, art string) (string, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("tree_%d_%d", rec.Seed, rec.Timestamp.UnixNano())
	}
	dir := filepath.Join(s.baseDir, rec.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("storage: create %s: %w", rec.ID, err)
	}

	f, err := os.Create(filepath.Join(dir, metaFile))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := ExportJSON(f, rec); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, artFile), []byte(art), 0644); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// List returns the saved trees, oldest first. Unreadable entries are
// skipped.
func (s *Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}

	recs := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		recs = append(recs, *rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Timestamp.Before(recs[j].Timestamp)
	})
	return recs, nil
}

func (s *Store) Load(id string) (*Record, error) {
	data, err := s.read(id, metaFile)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", id, err)
	}
	return &rec, nil
}

// LoadArt returns the plain text rendering saved with the tree.
func (s *Store) LoadArt(id string) (string, error) {
	data, err := s.read(id, artFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) read(id, name string) ([]byte, error) {
	if id == "" || filepath.Base(id) != id {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return data, err
}

// ExportJSON writes the record as indented JSON.
func ExportJSON(w io.Writer, rec *Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
