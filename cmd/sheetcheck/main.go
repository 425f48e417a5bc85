package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/milk9111/spriteplayer/resource"
)

// sheetcheck loads a manifest without opening a window and reports which
// sheets decode and how many frames each one cycles through.
func main() {
	manifestPath := flag.String("manifest", "", "sprite manifest yaml (embedded default when empty)")
	assetRoot := flag.String("assets", filepath.Join("..", "assets", "images"), "directory sheet paths are relative to")
	flag.Parse()

	log.SetFlags(0)
	manifest, err := resource.LoadManifest(*manifestPath)
	if err != nil {
		log.Fatal(err)
	}
	if failed := check(os.Stdout, manifest, *assetRoot); failed > 0 {
		log.Fatalf("%d sheet(s) failed to load", failed)
	}
}

func check(w io.Writer, m *resource.Manifest, root string) int {
	entries := m.Resolve(root)
	table := resource.NewTable(resource.ImageTextures{}, m.DisplayWidth, m.DisplayHeight)
	defer table.Destroy()

	// per-sheet failures are logged by Load and reported in the table below
	_ = table.Load(entries)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKEY\tNAME\tSIZE\tFRAMES\tSTATUS")
	failed := 0
	for _, e := range entries {
		key := e.Key
		if key == "" {
			key = "-"
		}
		sp, ok := table.Sprite(e.ID)
		if !ok {
			failed++
			fmt.Fprintf(tw, "%d\t%s\t%s\t-\t-\tmissing %s\n", e.ID, key, e.Name, e.Path)
			continue
		}
		size := sp.SheetBounds().Size()
		status := "ok"
		if !e.Info().Static() {
			need := image.Pt((e.Columns+1)*e.FrameWidth, (e.Rows+1)*e.FrameHeight)
			if size.X < need.X || size.Y < need.Y {
				status = fmt.Sprintf("last frame past edge (need %dx%d)", need.X, need.Y)
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%dx%d\t%d\t%s\n", e.ID, key, e.Name, size.X, size.Y, e.Info().FrameCount(), status)
	}
	tw.Flush()
	return failed
}
