package titles

import (
	"encoding/json"
	"fmt"
	"sort"

	"presencesync/internal/errors"
	"presencesync/internal/storage"
)

// Store persists Metadata for every known title in a single JSON file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

type library map[string]Metadata

func decodeLibrary(data []byte) (library, error) {
	lib := library{}
	if len(data) == 0 {
		return lib, nil
	}
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse library: %w", err)
	}
	return lib, nil
}

// LoadAndSave returns the metadata for id, creating an empty entry when the
// title is unknown. modify, when non-nil, is applied before the entry is
// written back.
func (s *Store) LoadAndSave(id string, modify func(*Metadata)) (Metadata, error) {
	key := NormalizeID(id)
	var result Metadata

	err := storage.Update(s.path, func(current []byte) ([]byte, error) {
		lib, err := decodeLibrary(current)
		if err != nil {
			return nil, err
		}

		meta := lib[key]
		if modify != nil {
			modify(&meta)
		}
		lib[key] = meta
		result = meta

		return json.MarshalIndent(lib, "", "  ")
	})
	if err != nil {
		return Metadata{}, errors.StoreError{Op: "load and save " + key, Err: err}
	}

	return result, nil
}

// Entry pairs a title id with its metadata.
type Entry struct {
	ID string
	Metadata
}

// All returns every stored title sorted by id. A missing library is empty.
func (s *Store) All() ([]Entry, error) {
	if !storage.Exists(s.path) {
		return nil, nil
	}

	data, err := storage.ReadLocked(s.path)
	if err != nil {
		return nil, errors.StoreError{Op: "read", Err: err}
	}

	lib, err := decodeLibrary(data)
	if err != nil {
		return nil, errors.StoreError{Op: "read", Err: err}
	}

	entries := make([]Entry, 0, len(lib))
	for id, meta := range lib {
		entries = append(entries, Entry{ID: id, Metadata: meta})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	return entries, nil
}
