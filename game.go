package main

import (
	"image/color"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spriteplayer/loop"
	"github.com/milk9111/spriteplayer/resource"
	"github.com/milk9111/spriteplayer/selection"
)

var clearColor = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}

// Options configures a Game.
type Options struct {
	Manifest *resource.Manifest
	Table    *resource.Table
	Watcher  *resource.Watcher
	Scale    int
	HUD      bool
	Unstable bool
	Debug    bool
}

// Game plays the selected sheet. Input, update and render run in that order
// on the ebiten game goroutine.
type Game struct {
	table   *resource.Table
	timer   *loop.FrameTimer
	sel     *selection.Dispatcher
	watcher *resource.Watcher
	ui      *ebitenui.UI

	// clicks holds menu selections made during ui.Update; they are fed to
	// the dispatcher on the next Update.
	clicks []selection.Event
	keys   []ebiten.Key

	width  int
	height int
	scale  int
}

func NewGame(opts Options) *Game {
	m := opts.Manifest
	menu := make(selection.Menu, 0, len(m.Sheets))
	for _, e := range m.Selectable() {
		menu = append(menu, selection.MenuItem{Key: rune(e.Key[0]), Name: e.Name})
	}

	timer := loop.NewFrameTimer(m.UpdateRate, loop.SystemClock{})
	timer.Unstable = opts.Unstable
	if opts.Debug {
		timer.Report = func(updates int, elapsed time.Duration) {
			log.Printf("loop: %d updates in %v", updates, elapsed.Round(time.Millisecond))
		}
	}

	g := &Game{
		table:   opts.Table,
		timer:   timer,
		sel:     selection.NewDispatcher(m.Bindings(), m.Fallback, menu),
		watcher: opts.Watcher,
		width:   m.DisplayWidth,
		height:  m.DisplayHeight,
		scale:   opts.Scale,
	}
	if opts.HUD {
		g.ui = NewMenuUI(g, menu)
	}
	g.sel.Prompt()
	return g
}

func (g *Game) Update() error {
	events := g.pollInput()
	res := g.sel.HandleAll(events)
	if res.Quit {
		return ebiten.Termination
	}
	if res.Changed {
		g.table.Reset(res.ID)
	}

	active := g.sel.Active()
	g.timer.Tick(func() {
		g.table.Update(active)
	})

	if g.ui != nil {
		g.ui.Update()
	}
	g.drainWatcher()
	return nil
}

// pollInput collects this frame's key presses, window close and menu clicks.
func (g *Game) pollInput() []selection.Event {
	events := g.clicks
	g.clicks = nil
	if ebiten.IsWindowBeingClosed() {
		events = append(events, selection.Close())
	}
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		events = append(events, selection.Key(keyRune(k)))
	}
	return events
}

func (g *Game) selectFromMenu(key rune) {
	g.clicks = append(g.clicks, selection.Key(key))
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		name, ok := g.watcher.Poll()
		if !ok {
			return
		}
		log.Printf("resource: %s changed on disk; restart to apply", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	g.table.Render(g.sel.Active(), &ebitenSurface{dst: screen, scale: float64(g.scale)})
	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width * g.scale, g.height * g.scale
}
