package resource

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/milk9111/spriteplayer/component"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// TextureFactory uploads decoded images to a render backend.
type TextureFactory interface {
	NewTexture(img image.Image) (component.Texture, error)
}

// DecodeImage reads and decodes an image file.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ImageTextures keeps decoded images in memory without a GPU.
type ImageTextures struct{}

// NewTexture wraps img.
func (ImageTextures) NewTexture(img image.Image) (component.Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	return &ImageTexture{Image: img}, nil
}

// ImageTexture is a Texture backed by an image.Image.
type ImageTexture struct {
	Image image.Image
}

func (t *ImageTexture) Bounds() image.Rectangle {
	if t.Image == nil {
		return image.Rectangle{}
	}
	return t.Image.Bounds()
}

func (t *ImageTexture) Release() { t.Image = nil }
