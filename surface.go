package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteplayer/component"
)

// ebitenTextures uploads decoded sheets as ebiten images.
type ebitenTextures struct{}

func (ebitenTextures) NewTexture(img image.Image) (component.Texture, error) {
	return &ebitenTexture{img: ebiten.NewImageFromImage(img)}, nil
}

type ebitenTexture struct {
	img *ebiten.Image
}

func (t *ebitenTexture) Bounds() image.Rectangle {
	if t.img == nil {
		return image.Rectangle{}
	}
	return t.img.Bounds()
}

func (t *ebitenTexture) Release() {
	if t.img == nil {
		return
	}
	t.img.Deallocate()
	t.img = nil
}

// ebitenSurface draws into an ebiten image, multiplying destination
// coordinates by scale.
type ebitenSurface struct {
	dst   *ebiten.Image
	scale float64
}

func (s *ebitenSurface) Blit(tex component.Texture, src, dst image.Rectangle) {
	t, ok := tex.(*ebitenTexture)
	if !ok || t.img == nil {
		return
	}
	// the last column/row may lie past the edge of the sheet
	src = src.Intersect(t.img.Bounds())
	if src.Empty() || dst.Empty() {
		return
	}
	scale := s.scale
	if scale <= 0 {
		scale = 1
	}

	sub := t.img.SubImage(src).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx())*scale, float64(dst.Dy())/float64(src.Dy())*scale)
	op.GeoM.Translate(float64(dst.Min.X)*scale, float64(dst.Min.Y)*scale)
	op.Filter = ebiten.FilterNearest
	s.dst.DrawImage(sub, op)
}
