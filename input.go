package main

import (
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// unknownKey stands in for keys that have no single-character name.
const unknownKey = '?'

// keyRune maps an ebiten key to the character the dispatcher binds.
// Top-row and keypad digits are the same digit.
func keyRune(k ebiten.Key) rune {
	name := k.String()
	for _, prefix := range []string{"Digit", "Numpad"} {
		if d, ok := strings.CutPrefix(name, prefix); ok && len(d) == 1 && d[0] >= '0' && d[0] <= '9' {
			return rune(d[0])
		}
	}
	if len(name) == 1 {
		return unicode.ToLower(rune(name[0]))
	}
	return unknownKey
}
