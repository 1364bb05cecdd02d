package terrain

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsavedChanges is returned by Reload when local edits would be lost.
var ErrUnsavedChanges = errors.New("terrain: catalog has unsaved changes")

// Session is the catalog the editor works on plus the file it came from.
type Session struct {
	Catalog *Catalog
	Path    string

	// FromDefaults is set when the file did not exist and the shipped
	// catalog was loaded instead.
	FromDefaults bool

	dirty   bool
	savedAt time.Time
}

// OpenSession loads path, falling back to the shipped catalog.
func OpenSession(path string) (*Session, error) {
	c, fallback, err := LoadCatalogOrDefault(path)
	if err != nil {
		return nil, err
	}
	s := &Session{Catalog: c, Path: path, FromDefaults: fallback}
	if t, ok := ModTime(path); ok {
		s.savedAt = t
	}
	return s, nil
}

// Apply stores a submitted entry. originalType is the type the entry had
// when the dialog opened ("" for a new entry).
func (s *Session) Apply(originalType string, t Terrain) int {
	s.dirty = true
	return s.Catalog.Upsert(originalType, t)
}

func (s *Session) Delete(typ string) bool {
	if !s.Catalog.Remove(typ) {
		return false
	}
	s.dirty = true
	return true
}

func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) Save() error {
	return s.SaveAs(s.Path)
}

// SaveAs writes the catalog to path and makes it the session's file.
func (s *Session) SaveAs(path string) error {
	if err := s.Catalog.Save(path); err != nil {
		return err
	}
	s.Path = path
	s.dirty = false
	s.FromDefaults = false
	if t, ok := ModTime(path); ok {
		s.savedAt = t
	}
	return nil
}

// ChangedOnDisk reports whether the file differs from what the session last
// loaded or saved. Watch events for the session's own writes return false.
func (s *Session) ChangedOnDisk() bool {
	t, ok := ModTime(s.Path)
	if !ok {
		return false
	}
	return !t.Equal(s.savedAt)
}

// Reload reads the file again. Unless force is set, it refuses to drop
// unsaved edits.
func (s *Session) Reload(force bool) error {
	if s.dirty && !force {
		return ErrUnsavedChanges
	}
	c, err := LoadCatalog(s.Path)
	if err != nil {
		return fmt.Errorf("terrain: reload: %w", err)
	}
	s.Catalog = c
	s.dirty = false
	s.FromDefaults = false
	if t, ok := ModTime(s.Path); ok {
		s.savedAt = t
	}
	return nil
}
