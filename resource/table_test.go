package resource

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/spriteplayer/component"
	"golang.org/x/image/bmp"
)

type countingTextures struct {
	created  int
	released int
}

type countingTexture struct {
	owner  *countingTextures
	bounds image.Rectangle
	freed  bool
}

func (f *countingTextures) NewTexture(img image.Image) (component.Texture, error) {
	f.created++
	return &countingTexture{owner: f, bounds: img.Bounds()}, nil
}

func (t *countingTexture) Bounds() image.Rectangle { return t.bounds }

func (t *countingTexture) Release() {
	if t.freed {
		return
	}
	t.freed = true
	t.owner.released++
}

type recordingSurface struct {
	src, dst []image.Rectangle
}

func (s *recordingSurface) Blit(_ component.Texture, src, dst image.Rectangle) {
	s.src = append(s.src, src)
	s.dst = append(s.dst, dst)
}

func writeSheet(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), A: 0xff})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if filepath.Ext(path) == ".bmp" {
		err = bmp.Encode(f, img)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// writeManifestAssets creates every image the default manifest references
// under root, except the ones listed in skip.
func writeManifestAssets(t *testing.T, m *Manifest, root string, skip ...int) {
	t.Helper()
	skipped := map[int]bool{}
	for _, id := range skip {
		skipped[id] = true
	}
	for _, e := range m.Resolve(root) {
		if skipped[e.ID] {
			continue
		}
		w, h := 64, 64
		if !e.Info().Static() {
			w = (e.Columns + 1) * e.FrameWidth
			h = (e.Rows + 1) * e.FrameHeight
		}
		writeSheet(t, e.Path, w, h)
	}
}

func TestTableLoadSkipsMissingSheet(t *testing.T) {
	m, err := DefaultManifest()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	root := t.TempDir()
	writeManifestAssets(t, m, root, 3)

	textures := &countingTextures{}
	table := NewTable(textures, m.DisplayWidth, m.DisplayHeight)
	err = table.Load(m.Resolve(root))
	if err == nil {
		t.Fatalf("expected an error for the missing sheet")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error should wrap fs.ErrNotExist, got %v", err)
	}
	if table.Len() != 9 {
		t.Fatalf("loaded %d sheets, want 9", table.Len())
	}
	if table.Has(3) {
		t.Fatalf("missing sheet 3 should be absent")
	}
	want := []int{0, 1, 2, 4, 5, 6, 7, 8, 9}
	got := table.IDs()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}

	// absent IDs are inert
	surf := &recordingSurface{}
	table.Update(3)
	table.Reset(3)
	table.Render(3, surf)
	if len(surf.src) != 0 {
		t.Fatalf("absent sheet drew %d times", len(surf.src))
	}

	table.Destroy()
	if textures.released != textures.created || textures.created != 9 {
		t.Fatalf("created %d, released %d textures", textures.created, textures.released)
	}
	if table.Len() != 0 {
		t.Fatalf("table not empty after destroy")
	}
	table.Destroy()
	if textures.released != 9 {
		t.Fatalf("second destroy released again: %d", textures.released)
	}
}

func TestTableLoadCorruptImage(t *testing.T) {
	root := t.TempDir()
	bad := filepath.Join(root, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	good := filepath.Join(root, "good.bmp")
	writeSheet(t, good, 64, 16)

	table := NewTable(&countingTextures{}, 32, 32)
	err := table.Load([]Entry{
		{ID: 0, Name: "bad", Path: bad, Columns: 1, FrameWidth: 16, FrameHeight: 16},
		{ID: 1, Name: "good", Path: good, Columns: 3, FrameWidth: 16, FrameHeight: 16},
	})
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if table.Has(0) || !table.Has(1) {
		t.Fatalf("ids = %v, want [1]", table.IDs())
	}
	if table.Name(1) != "good" {
		t.Fatalf("name = %q", table.Name(1))
	}
}

func TestTableUpdateRender(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "walk.png")
	writeSheet(t, path, 4*16, 16)

	table := NewTable(&countingTextures{}, 64, 64)
	if err := table.Load([]Entry{{ID: 5, Name: "walk", Path: path, Columns: 3, FrameWidth: 16, FrameHeight: 16, FrameDelay: 0}}); err != nil {
		t.Fatalf("load: %v", err)
	}

	surf := &recordingSurface{}
	wantX := []int{0, 1, 2, 3, 0}
	for i, x := range wantX {
		table.Update(5)
		table.Render(5, surf)
		if got := surf.src[i]; got != image.Rect(x*16, 0, x*16+16, 16) {
			t.Fatalf("update %d: src = %v, want column %d", i, got, x)
		}
		if got := surf.dst[i]; got != image.Rect(0, 0, 64, 64) {
			t.Fatalf("update %d: dst = %v", i, got)
		}
	}

	sp, ok := table.Sprite(5)
	if !ok {
		t.Fatalf("sprite 5 missing")
	}
	table.Reset(5)
	if sp.State().FrameY != 0 {
		t.Fatalf("reset did not rewind row")
	}
}

func TestTableWithoutFactory(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.png")
	writeSheet(t, path, 16, 16)

	table := NewTable(nil, 16, 16)
	if err := table.Load([]Entry{{ID: 0, Path: path}}); err == nil {
		t.Fatalf("expected error without a texture factory")
	}
	if table.Len() != 0 {
		t.Fatalf("nothing should load without a factory")
	}
}

func TestImageTextures(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 20))
	tex, err := ImageTextures{}.NewTexture(img)
	if err != nil {
		t.Fatalf("new texture: %v", err)
	}
	if tex.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v", tex.Bounds())
	}
	tex.Release()
	if tex.Bounds() != (image.Rectangle{}) {
		t.Fatalf("released texture still has bounds %v", tex.Bounds())
	}
	if _, err := (ImageTextures{}).NewTexture(nil); err == nil {
		t.Fatalf("expected error for nil image")
	}
}
