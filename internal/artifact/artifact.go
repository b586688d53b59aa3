package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store names and persists the files each pipeline stage hands to the next.
// Every run writes freshly timestamped files; nothing is mutated in place.
// The clock is injectable so naming is testable.
type Store struct {
	Dir string
	Now func() time.Time
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir, Now: time.Now}
}

// Path returns a timestamped artifact path under the data dir.
func (s *Store) Path(prefix, ext string) string {
	stamp := s.Now().Format("20060102_150405")
	return filepath.Join(s.Dir, prefix+"_"+stamp+ext)
}

// SaveJSON writes v as indented JSON and returns the handle for the next
// stage.
func (s *Store) SaveJSON(prefix string, v any) (string, error) {
	path := s.Path(prefix, ".json")
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// SaveJSONL writes one compact JSON document per line.
func (s *Store) SaveJSONL(prefix string, records []any) (string, error) {
	path := s.Path(prefix, ".jsonl")
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return "", err
		}
	}
	return path, nil
}

// CSVPath reserves a timestamped CSV handle, creating the data dir.
func (s *Store) CSVPath(prefix string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	return s.Path(prefix, ".csv"), nil
}

// ReadJSON loads a prior stage's JSON artifact.
func ReadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// WithSuffix derives a sibling artifact name: "x.csv" -> "x_with_images.csv".
func WithSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
