package canvas

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"callstrip/internal/icons"

	xdraw "golang.org/x/image/draw"
)

// ImageCanvas paints image icons onto an RGBA buffer.
type ImageCanvas struct {
	img *image.RGBA
}

// NewImage returns a w×h canvas filled with bg. A nil bg leaves it transparent.
func NewImage(w, h int, bg color.Color) *ImageCanvas {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	if bg != nil {
		xdraw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	}
	return &ImageCanvas{img: img}
}

// DrawIcon composites icon over the canvas at its intrinsic size. Icons
// without pixels are skipped.
func (c *ImageCanvas) DrawIcon(icon *icons.Icon, at image.Point) {
	if icon == nil || icon.Image == nil {
		return
	}
	r := image.Rect(at.X, at.Y, at.X+icon.Width, at.Y+icon.Height)
	xdraw.Draw(c.img, r, icon.Image, icon.Image.Bounds().Min, xdraw.Over)
}

func (c *ImageCanvas) Image() *image.RGBA { return c.img }

func (c *ImageCanvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
