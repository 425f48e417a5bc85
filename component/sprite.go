package component

import (
	"image"
)

// Texture is a decoded sheet uploaded to the render backend. The holder
// owns it and must call Release exactly once.
type Texture interface {
	Bounds() image.Rectangle
	Release()
}

// Surface is a render target that can copy a rectangle of a texture into
// a rectangle of itself, scaling as needed.
type Surface interface {
	Blit(tex Texture, src, dst image.Rectangle)
}

// SheetInfo describes the frame grid of a sprite sheet. Columns and Rows are
// the highest column/row index that is played, not the count.
type SheetInfo struct {
	Columns     int
	Rows        int
	FrameWidth  int
	FrameHeight int
	FrameDelay  int
}

// Static reports whether the sheet is a single still image.
func (i SheetInfo) Static() bool {
	return i.Columns < 0 && i.Rows < 0
}

// FrameCount is the number of distinct frames Update cycles through.
func (i SheetInfo) FrameCount() int {
	if i.Static() {
		return 1
	}
	return (i.Columns + 1) * (i.Rows + 1)
}

// PlaybackState is the mutable cursor of a Sprite.
type PlaybackState struct {
	FrameX   int
	FrameY   int
	LagCount int
	X        int
	Y        int
}

// Sprite plays a sheet frame by frame. Frames are read left-to-right,
// top-to-bottom.
type Sprite struct {
	Info SheetInfo

	tex      Texture
	displayW int
	displayH int
	state    PlaybackState
	src      image.Rectangle
	dst      image.Rectangle
}

// NewSprite creates a Sprite drawing tex at displayW x displayH. A nil tex
// yields a sprite that updates but never draws.
func NewSprite(tex Texture, info SheetInfo, displayW, displayH int) *Sprite {
	s := &Sprite{
		Info:     info,
		tex:      tex,
		displayW: displayW,
		displayH: displayH,
	}
	if info.Static() && tex != nil {
		s.src = tex.Bounds()
	} else {
		s.recompute()
	}
	s.dst = image.Rect(0, 0, displayW, displayH)
	return s
}

// Update advances the animation by one logical tick. A frame is held for
// FrameDelay+1 ticks.
func (s *Sprite) Update() {
	if s == nil || s.Info.Static() {
		return
	}
	if s.state.LagCount > s.Info.FrameDelay {
		s.state.LagCount = 0
		s.state.FrameX++
	}
	if s.state.FrameX > s.Info.Columns {
		s.state.FrameX = 0
		s.state.FrameY++
	}
	if s.state.FrameY > s.Info.Rows {
		s.state.FrameY = 0
	}
	s.recompute()
	s.state.LagCount++
}

func (s *Sprite) recompute() {
	fw, fh := s.Info.FrameWidth, s.Info.FrameHeight
	sx := s.state.FrameX * fw
	sy := s.state.FrameY * fh
	s.src = image.Rect(sx, sy, sx+fw, sy+fh)
	s.dst = image.Rect(s.state.X, s.state.Y, s.state.X+s.displayW, s.state.Y+s.displayH)
}

// Render blits the current frame to the surface.
func (s *Sprite) Render(surface Surface) {
	if s == nil || s.tex == nil || surface == nil {
		return
	}
	surface.Blit(s.tex, s.src, s.dst)
}

// ResetFrame rewinds the animation to the first row. The column and lag
// counter are left as they are.
func (s *Sprite) ResetFrame() {
	if s == nil {
		return
	}
	s.state.FrameY = 0
}

// SetPosition moves the destination rectangle. It takes effect on the next
// Update for animated sheets.
func (s *Sprite) SetPosition(x, y int) {
	if s == nil {
		return
	}
	s.state.X = x
	s.state.Y = y
	if s.Info.Static() {
		s.dst = image.Rect(x, y, x+s.displayW, y+s.displayH)
	}
}

// State returns a copy of the playback cursor.
func (s *Sprite) State() PlaybackState { return s.state }

// Source returns the rectangle of the sheet drawn on the next Render.
func (s *Sprite) Source() image.Rectangle { return s.src }

// Destination returns the rectangle on the surface drawn on the next Render.
func (s *Sprite) Destination() image.Rectangle { return s.dst }

// SheetBounds returns the bounds of the whole sheet, or an empty rectangle
// once released.
func (s *Sprite) SheetBounds() image.Rectangle {
	if s == nil || s.tex == nil {
		return image.Rectangle{}
	}
	return s.tex.Bounds()
}

// Release frees the texture. Calling it again is a no-op.
func (s *Sprite) Release() {
	if s == nil || s.tex == nil {
		return
	}
	s.tex.Release()
	s.tex = nil
}
