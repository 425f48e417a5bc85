package resource

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/spriteplayer/component"
)

// Table owns every loaded sheet and dispatches update/render by ID.
type Table struct {
	factory  TextureFactory
	displayW int
	displayH int
	sprites  map[int]*component.Sprite
	names    map[int]string
}

// NewTable creates an empty table drawing sheets at displayW x displayH.
func NewTable(factory TextureFactory, displayW, displayH int) *Table {
	return &Table{
		factory:  factory,
		displayW: displayW,
		displayH: displayH,
		sprites:  make(map[int]*component.Sprite),
		names:    make(map[int]string),
	}
}

// Load decodes every entry and adds it to the table. A sheet that fails to
// load is logged and left absent; the others still load. The returned error
// joins all failures.
func (t *Table) Load(entries []Entry) error {
	var errs []error
	for _, e := range entries {
		if err := t.loadEntry(e); err != nil {
			log.Printf("resource: load sheet %d (%s): %v", e.ID, e.Name, err)
			errs = append(errs, fmt.Errorf("sheet %d: %w", e.ID, err))
			continue
		}
		log.Printf("resource: loaded sheet %d (%s)", e.ID, e.Name)
	}
	return errors.Join(errs...)
}

func (t *Table) loadEntry(e Entry) error {
	if t.factory == nil {
		return errors.New("no texture factory")
	}
	img, err := DecodeImage(e.Path)
	if err != nil {
		return err
	}
	tex, err := t.factory.NewTexture(img)
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	if old, ok := t.sprites[e.ID]; ok {
		old.Release()
	}
	t.sprites[e.ID] = component.NewSprite(tex, e.Info(), t.displayW, t.displayH)
	t.names[e.ID] = e.Name
	return nil
}

// Update advances the sheet at id. Absent IDs are ignored.
func (t *Table) Update(id int) {
	if s, ok := t.sprites[id]; ok {
		s.Update()
	}
}

// Render draws the sheet at id to surface. Absent IDs draw nothing.
func (t *Table) Render(id int, surface component.Surface) {
	if s, ok := t.sprites[id]; ok {
		s.Render(surface)
	}
}

// Reset rewinds the sheet at id.
func (t *Table) Reset(id int) {
	if s, ok := t.sprites[id]; ok {
		s.ResetFrame()
	}
}

// Sprite returns the sheet at id.
func (t *Table) Sprite(id int) (*component.Sprite, bool) {
	s, ok := t.sprites[id]
	return s, ok
}

// Name returns the manifest name of a loaded sheet.
func (t *Table) Name(id int) string { return t.names[id] }

// Has reports whether id loaded successfully.
func (t *Table) Has(id int) bool {
	_, ok := t.sprites[id]
	return ok
}

// Len returns the number of loaded sheets.
func (t *Table) Len() int { return len(t.sprites) }

// IDs returns the loaded IDs in ascending order.
func (t *Table) IDs() []int {
	ids := make([]int, 0, len(t.sprites))
	for id := range t.sprites {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Destroy releases every texture and empties the table.
func (t *Table) Destroy() {
	for id, s := range t.sprites {
		s.Release()
		delete(t.sprites, id)
		delete(t.names, id)
	}
}
