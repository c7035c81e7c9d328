package titles

import (
	"time"
)

// Change describes a transition of the current title.
type Change struct {
	Old Optional
	New Optional
}

// Registry tracks which title is running and owns the metadata library.
// Subscribers are invoked synchronously, on the goroutine that changed the
// current title.
type Registry struct {
	store       *Store
	current     Optional
	subscribers []func(Change)
	now         func() time.Time
}

func NewRegistry(store *Store) *Registry {
	return &Registry{store: store, now: time.Now}
}

// SetClock overrides the time source used for play time accounting.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

// Subscribe registers fn to run after every change of the current title.
func (r *Registry) Subscribe(fn func(Change)) {
	r.subscribers = append(r.subscribers, fn)
}

// CurrentTitle returns the running title, if any.
func (r *Registry) CurrentTitle() Optional {
	return r.current
}

// LoadAndSaveMetadata reads the metadata for id, creating it when missing.
func (r *Registry) LoadAndSaveMetadata(id string) (Metadata, error) {
	return r.store.LoadAndSave(id, nil)
}

// Launch records a pre-game update for id and makes it the current title.
// title, when non-empty, refreshes the stored display name.
func (r *Registry) Launch(id, title string) error {
	_, err := r.store.LoadAndSave(id, func(m *Metadata) {
		if title != "" {
			m.Title = title
		}
		m.UpdatePreGame(r.now())
	})
	if err != nil {
		return err
	}

	r.set(Some(NormalizeID(id)))
	return nil
}

// Exit records the finished session for the current title and clears it.
// The current title is cleared even when the library cannot be written.
func (r *Registry) Exit() error {
	id, ok := r.current.Get()
	if !ok {
		return nil
	}

	_, err := r.store.LoadAndSave(id, func(m *Metadata) {
		m.UpdatePostGame(r.now())
	})

	r.set(None())
	return err
}

func (r *Registry) set(next Optional) {
	if next == r.current {
		return
	}
	change := Change{Old: r.current, New: next}
	r.current = next
	for _, fn := range r.subscribers {
		fn(change)
	}
}
