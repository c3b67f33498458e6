package hillshade

import (
	"image"
	"image/color"
	"io"

	ximage "github.com/gogpu/hillshade/internal/image"
)

// NoDataColor is the default color written for no-data cells: transparent black.
var NoDataColor = color.NRGBA{}

// Pixmap is the output of a render pass: a rectangular RGBA pixel buffer.
//
// Channels are stored non-premultiplied, 4 bytes per pixel, row-major.
// A zero-sized Pixmap is the empty product returned when a pass has no input.
//
// Thread safety: concurrent writes to distinct pixels are safe; reads
// concurrent with writes to the same pixel are not.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a pixmap with the given dimensions.
// Non-positive dimensions produce an empty pixmap.
func NewPixmap(width, height int) *Pixmap {
	if width <= 0 || height <= 0 {
		return &Pixmap{}
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// IsEmpty reports whether the pixmap has no pixels.
func (p *Pixmap) IsEmpty() bool {
	return p.width == 0 || p.height == 0
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetGray writes an opaque neutral gray pixel.
func (p *Pixmap) SetGray(x, y int, v uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = v
	p.data[i+1] = v
	p.data[i+2] = v
	p.data[i+3] = 255
}

// SetColor writes a pixel.
func (p *Pixmap) SetColor(x, y int, c color.NRGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// NRGBAAt returns the pixel at (x, y), or transparent black when out of bounds.
func (p *Pixmap) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * 4
	return color.NRGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Gray returns the red channel at (x, y), which equals green and blue for
// every shaded pixel.
func (p *Pixmap) Gray(x, y int) uint8 {
	return p.NRGBAAt(x, y).R
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// ToImage copies the pixmap into an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(p.Bounds())
	copy(img.Pix, p.data)
	return img
}

// Encode writes the pixmap in the named format ("png", "jpeg", "tiff").
func (p *Pixmap) Encode(w io.Writer, format string) error {
	f, err := ximage.ParseFormat(format)
	if err != nil {
		return err
	}
	return ximage.Encode(w, p.ToImage(), f, ximage.EncodeOptions{})
}

// EncodeToBytes returns the pixmap encoded in the named format.
func (p *Pixmap) EncodeToBytes(format string) ([]byte, error) {
	f, err := ximage.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return ximage.EncodeToBytes(p.ToImage(), f, ximage.EncodeOptions{})
}

// Save writes the pixmap to path, choosing the format by extension.
func (p *Pixmap) Save(path string) error {
	return ximage.Save(path, p.ToImage(), ximage.EncodeOptions{})
}
