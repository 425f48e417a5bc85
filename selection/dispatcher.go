package selection

import (
	"fmt"
	"io"
	"log"
	"os"
)

// QuitKey ends the viewer.
const QuitKey = 'q'

// EventKind distinguishes input events.
type EventKind int

const (
	KeyPressed EventKind = iota
	CloseRequested
)

// Event is one discrete input event.
type Event struct {
	Kind EventKind
	Key  rune
}

// Key returns a key press event.
func Key(r rune) Event { return Event{Kind: KeyPressed, Key: r} }

// Close returns a window close event.
func Close() Event { return Event{Kind: CloseRequested} }

// Result describes what an event did to the selection.
type Result struct {
	Quit    bool
	Invalid bool
	Changed bool
	ID      int
}

// MenuItem is one line of the selection menu.
type MenuItem struct {
	Key  rune
	Name string
}

// Menu lists the selectable sheets.
type Menu []MenuItem

// Print writes the menu as shown at startup and after an invalid key.
func (m Menu) Print(w io.Writer) {
	fmt.Fprintln(w, "Please select a sprite:")
	for _, it := range m {
		fmt.Fprintf(w, "[%c] %s\n", it.Key, it.Name)
	}
}

// Dispatcher maps key presses to the active sheet ID.
type Dispatcher struct {
	// Out receives the menu; defaults to stdout.
	Out io.Writer

	bindings map[rune]int
	fallback int
	active   int
	menu     Menu
}

// NewDispatcher creates a dispatcher. The initial selection is the ID bound
// to the lowest key, or fallback when there are no bindings.
func NewDispatcher(bindings map[rune]int, fallback int, menu Menu) *Dispatcher {
	d := &Dispatcher{
		Out:      os.Stdout,
		bindings: make(map[rune]int, len(bindings)),
		fallback: fallback,
		active:   fallback,
		menu:     menu,
	}
	first := rune(-1)
	for k, id := range bindings {
		d.bindings[k] = id
		if first < 0 || k < first {
			first = k
			d.active = id
		}
	}
	return d
}

// Active returns the selected sheet ID.
func (d *Dispatcher) Active() int { return d.active }

// Fallback returns the ID selected by an unrecognized key.
func (d *Dispatcher) Fallback() int { return d.fallback }

// Prompt prints the menu.
func (d *Dispatcher) Prompt() {
	if d.Out != nil {
		d.menu.Print(d.Out)
	}
}

// Handle applies one input event.
func (d *Dispatcher) Handle(ev Event) Result {
	switch {
	case ev.Kind == CloseRequested:
		return Result{Quit: true, ID: d.active}
	case ev.Key == QuitKey:
		return Result{Quit: true, ID: d.active}
	}

	id, ok := d.bindings[ev.Key]
	invalid := !ok
	if invalid {
		log.Printf("selection: invalid key %q, falling back to %d", ev.Key, d.fallback)
		if d.Out != nil {
			fmt.Fprintln(d.Out)
			fmt.Fprintln(d.Out, ">>>>>>>>Invalid ID!<<<<<<<")
			fmt.Fprintln(d.Out)
		}
		d.Prompt()
		id = d.fallback
	}
	changed := id != d.active
	d.active = id
	return Result{Invalid: invalid, Changed: changed, ID: id}
}

// HandleAll applies events in order and stops at the first quit.
func (d *Dispatcher) HandleAll(events []Event) Result {
	res := Result{ID: d.active}
	for _, ev := range events {
		r := d.Handle(ev)
		r.Changed = r.Changed || res.Changed
		r.Invalid = r.Invalid || res.Invalid
		res = r
		if r.Quit {
			break
		}
	}
	return res
}
