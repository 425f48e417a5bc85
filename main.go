package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteplayer/resource"
)

func main() {
	manifestPath := flag.String("manifest", "", "sprite manifest yaml (embedded default when empty)")
	assetRoot := flag.String("assets", filepath.Join("..", "assets", "images"), "directory sheet paths are relative to")
	scale := flag.Int("scale", 4, "window pixels per display pixel")
	hud := flag.Bool("hud", false, "show the clickable sheet menu")
	unstable := flag.Bool("unstable", false, "run one update per rendered frame instead of a fixed step")
	watch := flag.Bool("watch", false, "report manifest and asset changes on disk")
	debug := flag.Bool("debug", false, "log update rate once per second")
	flag.Parse()

	manifest, err := resource.LoadManifest(*manifestPath)
	if err != nil {
		log.Fatal(err)
	}

	table := resource.NewTable(ebitenTextures{}, manifest.DisplayWidth, manifest.DisplayHeight)
	defer table.Destroy()
	entries := manifest.Resolve(*assetRoot)
	if err := table.Load(entries); err != nil {
		log.Printf("resource: %d of %d sheets loaded", table.Len(), len(entries))
	}

	var watcher *resource.Watcher
	if *watch {
		watcher, err = resource.NewWatcher(watchDirs(*manifestPath, entries)...)
		if err != nil {
			log.Printf("resource: watch: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	if *scale < 1 {
		*scale = 1
	}
	game := NewGame(Options{
		Manifest: manifest,
		Table:    table,
		Watcher:  watcher,
		Scale:    *scale,
		HUD:      *hud,
		Unstable: *unstable,
		Debug:    *debug,
	})

	ebiten.SetWindowSize(game.Layout(0, 0))
	ebiten.SetWindowTitle("sprite player")
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(game); err != nil {
		table.Destroy()
		if watcher != nil {
			watcher.Close()
		}
		log.Fatalf("run: %v", err)
	}
}

// watchDirs returns the manifest directory and every directory holding a
// sheet, without duplicates.
func watchDirs(manifestPath string, entries []resource.Entry) []string {
	seen := map[string]bool{}
	var dirs []string
	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	if manifestPath != "" {
		add(filepath.Dir(manifestPath))
	}
	for _, e := range entries {
		add(filepath.Dir(e.Path))
	}
	return dirs
}
