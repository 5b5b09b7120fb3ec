package clientcart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Storage persists the unauthenticated local cart between sessions. The
// store takes it as an injected dependency so tests can swap in memory.
type Storage interface {
	Load() ([]LocalEntry, error)
	Save(entries []LocalEntry) error
}

// FileStorage keeps the local cart as a JSON file, the closest analog of
// browser local storage for a CLI or desktop client.
type FileStorage struct {
	Path string
}

func (f *FileStorage) Load() ([]LocalEntry, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read local cart: %w", err)
	}

	var entries []LocalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode local cart: %w", err)
	}
	return entries, nil
}

func (f *FileStorage) Save(entries []LocalEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode local cart: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0o600); err != nil {
		return fmt.Errorf("write local cart: %w", err)
	}
	return nil
}
