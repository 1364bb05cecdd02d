package terrain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSessionDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrains.yaml")
	s, err := OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if !s.FromDefaults || s.Dirty() || len(s.Catalog.Terrains) == 0 {
		t.Fatalf("unexpected session: defaults=%v dirty=%v", s.FromDefaults, s.Dirty())
	}
	if s.ChangedOnDisk() {
		t.Fatalf("missing file reported as changed")
	}

	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.FromDefaults || s.Dirty() {
		t.Fatalf("save should clear defaults and dirty flags")
	}
	if s.ChangedOnDisk() {
		t.Fatalf("own write reported as external change")
	}
}

func TestSessionApplyAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrains.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if s.FromDefaults || s.Dirty() {
		t.Fatalf("fresh session flags wrong")
	}

	idx := s.Apply("GRASS", Terrain{Type: "MEADOW", Cost: "1", Mask: "1"})
	if idx != 0 || !s.Dirty() {
		t.Fatalf("Apply idx=%d dirty=%v", idx, s.Dirty())
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Delete("NOPE") || s.Dirty() {
		t.Fatalf("deleting a missing type should not dirty the session")
	}
	if !s.Delete("MEADOW") || !s.Dirty() {
		t.Fatalf("delete failed")
	}
}

func TestSessionReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrains.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	external := "terrains:\n  - type: ice\n    cost: 6\n    mask: 1\n"
	if err := os.WriteFile(path, []byte(external), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	if !s.ChangedOnDisk() {
		t.Fatalf("external write not detected")
	}

	s.Apply("", Terrain{Type: "LOCAL"})
	if err := s.Reload(false); !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("Reload(false) with edits = %v", err)
	}
	if _, ok := s.Catalog.Find("LOCAL"); !ok {
		t.Fatalf("local edit dropped by refused reload")
	}

	if err := s.Reload(true); err != nil {
		t.Fatalf("Reload(true): %v", err)
	}
	if got := s.Catalog.Types(); len(got) != 1 || got[0] != "ICE" {
		t.Fatalf("types after reload = %v", got)
	}
	if s.Dirty() || s.ChangedOnDisk() {
		t.Fatalf("reload should sync state with disk")
	}
}

func TestSessionSaveAs(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenSession(filepath.Join(dir, "a.yaml"))
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	target := filepath.Join(dir, "out", "b.yaml")
	if err := s.SaveAs(target); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if s.Path != target {
		t.Fatalf("path = %s", s.Path)
	}
	if _, err := LoadCatalog(target); err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
}
