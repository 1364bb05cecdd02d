package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name the editor stores its data under.
const AppName = "mapski_editor"

const (
	prefsObject   = "editor"
	prefsProperty = "preferences"
)

// Preferences are the editor choices remembered between runs.
type Preferences struct {
	CatalogPath string `yaml:"catalogPath"`
	AssetsDir   string `yaml:"assetsDir"`
	LastType    string `yaml:"lastType"`
	Windowed    bool   `yaml:"windowed"`
	PreviewSize int    `yaml:"previewSize"`
}

func DefaultPreferences() *Preferences {
	return &Preferences{
		CatalogPath: "terrains.yaml",
		AssetsDir:   "assets",
		PreviewSize: 64,
	}
}

// Open opens the gdata storage for the editor.
func Open(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("settings: open storage %s: %w", appName, err)
	}
	return m, nil
}

// Manager loads and saves Preferences. With a nil gdata manager it keeps
// preferences in memory only.
type Manager struct {
	storage *gdata.Manager
	prefs   *Preferences
}

// NewManager loads stored preferences. A failed load is logged and the
// defaults are used.
func NewManager(storage *gdata.Manager) *Manager {
	m := &Manager{storage: storage, prefs: DefaultPreferences()}
	if err := m.Load(); err != nil {
		log.Printf("[Settings] Warning: %v (using defaults)", err)
	}
	return m
}

func (m *Manager) Load() error {
	if m.storage == nil {
		m.prefs = DefaultPreferences()
		return nil
	}
	if !m.storage.ObjectPropExists(prefsObject, prefsProperty) {
		m.prefs = DefaultPreferences()
		return nil
	}
	data, err := m.storage.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		m.prefs = DefaultPreferences()
		return fmt.Errorf("settings: load preferences: %w", err)
	}

	loaded := DefaultPreferences()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		m.prefs = DefaultPreferences()
		return fmt.Errorf("settings: unmarshal preferences: %w", err)
	}
	if loaded.PreviewSize <= 0 {
		loaded.PreviewSize = DefaultPreferences().PreviewSize
	}
	loaded.PreviewSize = clampPreviewSize(loaded.PreviewSize)
	m.prefs = loaded
	return nil
}

func (m *Manager) Save() error {
	if m.storage == nil {
		return nil
	}
	data, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("settings: marshal preferences: %w", err)
	}
	if err := m.storage.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("settings: save preferences: %w", err)
	}
	return nil
}

// Preferences returns a copy of the current preferences.
func (m *Manager) Preferences() Preferences { return *m.prefs }

// Persistent reports whether preferences survive a restart.
func (m *Manager) Persistent() bool { return m.storage != nil }

func (m *Manager) SetCatalogPath(path string) { m.prefs.CatalogPath = path }
func (m *Manager) SetAssetsDir(dir string)    { m.prefs.AssetsDir = dir }
func (m *Manager) SetLastType(typ string)     { m.prefs.LastType = typ }
func (m *Manager) SetWindowed(windowed bool)  { m.prefs.Windowed = windowed }

const (
	minPreviewSize = 16
	maxPreviewSize = 256
)

func clampPreviewSize(size int) int {
	return min(max(size, minPreviewSize), maxPreviewSize)
}

// SetPreviewSize sets the preview edge in pixels, clamped to [16, 256].
func (m *Manager) SetPreviewSize(size int) {
	m.prefs.PreviewSize = clampPreviewSize(size)
}
