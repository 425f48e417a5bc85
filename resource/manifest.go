package resource

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/milk9111/spriteplayer/component"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var defaultManifest []byte

// Entry is one sheet in the manifest.
type Entry struct {
	ID          int    `yaml:"id"`
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Columns     int    `yaml:"columns"`
	Rows        int    `yaml:"rows"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
	FrameDelay  int    `yaml:"frame_delay"`
}

// Info returns the animation metadata of the entry.
func (e Entry) Info() component.SheetInfo {
	return component.SheetInfo{
		Columns:     e.Columns,
		Rows:        e.Rows,
		FrameWidth:  e.FrameWidth,
		FrameHeight: e.FrameHeight,
		FrameDelay:  e.FrameDelay,
	}
}

// Selectable reports whether a key is bound to the entry.
func (e Entry) Selectable() bool { return e.Key != "" }

// Manifest is the fixed table of sheets loaded at startup.
type Manifest struct {
	DisplayWidth  int     `yaml:"display_width"`
	DisplayHeight int     `yaml:"display_height"`
	UpdateRate    int     `yaml:"update_rate"`
	Fallback      int     `yaml:"fallback"`
	Sheets        []Entry `yaml:"sheets"`
}

// DefaultManifest returns the embedded manifest.
func DefaultManifest() (*Manifest, error) {
	return ParseManifest(defaultManifest)
}

// LoadManifest reads a manifest file. An empty path returns the embedded
// default.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return DefaultManifest()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resource: load manifest %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("resource: %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that IDs and keys are unique, keys are single digits and
// the fallback ID is a selectable sheet.
func (m *Manifest) Validate() error {
	if m == nil {
		return errors.New("manifest: nil")
	}
	if len(m.Sheets) == 0 {
		return errors.New("manifest: no sheets")
	}
	if m.DisplayWidth <= 0 || m.DisplayHeight <= 0 {
		return fmt.Errorf("manifest: invalid display size %dx%d", m.DisplayWidth, m.DisplayHeight)
	}
	ids := make(map[int]bool, len(m.Sheets))
	keys := make(map[string]int, len(m.Sheets))
	fallbackOK := false
	for _, e := range m.Sheets {
		if ids[e.ID] {
			return fmt.Errorf("manifest: duplicate id %d", e.ID)
		}
		ids[e.ID] = true
		if e.Path == "" {
			return fmt.Errorf("manifest: sheet %d has no path", e.ID)
		}
		if !e.Info().Static() && (e.FrameWidth <= 0 || e.FrameHeight <= 0 || e.Columns < 0 || e.Rows < 0) {
			return fmt.Errorf("manifest: sheet %d has invalid frame grid", e.ID)
		}
		if e.Key == "" {
			continue
		}
		if len(e.Key) != 1 || e.Key[0] < '0' || e.Key[0] > '9' {
			return fmt.Errorf("manifest: sheet %d key %q is not a digit", e.ID, e.Key)
		}
		if other, ok := keys[e.Key]; ok {
			return fmt.Errorf("manifest: key %q bound to both %d and %d", e.Key, other, e.ID)
		}
		keys[e.Key] = e.ID
		if e.ID == m.Fallback {
			fallbackOK = true
		}
	}
	if !fallbackOK {
		return fmt.Errorf("manifest: fallback %d is not a selectable sheet", m.Fallback)
	}
	return nil
}

// Bindings maps each bound key to its sheet ID.
func (m *Manifest) Bindings() map[rune]int {
	out := make(map[rune]int)
	for _, e := range m.Sheets {
		if e.Selectable() {
			out[rune(e.Key[0])] = e.ID
		}
	}
	return out
}

// Selectable returns the keyed entries ordered by key.
func (m *Manifest) Selectable() []Entry {
	var out []Entry
	for _, e := range m.Sheets {
		if e.Selectable() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Resolve returns a copy of the sheets with relative paths joined to root.
func (m *Manifest) Resolve(root string) []Entry {
	out := make([]Entry, len(m.Sheets))
	for i, e := range m.Sheets {
		if root != "" && !filepath.IsAbs(e.Path) {
			e.Path = filepath.Join(root, filepath.FromSlash(e.Path))
		}
		out[i] = e
	}
	return out
}
