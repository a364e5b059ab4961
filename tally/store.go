package tally

import (
	"errors"
	"fmt"
	"os"

	"github.com/jamesainslie/go-wordrank/internal/atomicfile"
)

// Checkpointer durably records a tally. Builder calls Save after every book.
type Checkpointer interface {
	Save(t *Tally) error
}

// Store persists a tally to a single file. The codec is chosen from the file
// extension: ".pb" and ".binpb" use protobuf wire format, anything else JSON.
type Store struct {
	path  string
	codec Codec
}

// NewStore returns a Store for path.
func NewStore(path string) *Store {
	return &Store{path: path, codec: codecFor(path)}
}

// NewStoreWithCodec returns a Store for path using codec regardless of extension.
func NewStoreWithCodec(path string, codec Codec) *Store {
	return &Store{path: path, codec: codec}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted tally. A missing file is a fresh start, not an error.
func (s *Store) Load() (*Tally, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	t, err := s.codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.path, err)
	}
	return t, nil
}

// Save replaces the persisted tally atomically. On failure the previous
// state file is left as it was.
func (s *Store) Save(t *Tally) error {
	data, err := s.codec.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	if err := atomicfile.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}
