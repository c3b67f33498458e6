package hillshade

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	ximage "github.com/gogpu/hillshade/internal/image"
)

func TestNewPixmap_Empty(t *testing.T) {
	for _, sz := range [][2]int{{0, 0}, {0, 5}, {5, 0}, {-1, 3}} {
		pm := NewPixmap(sz[0], sz[1])
		if !pm.IsEmpty() || pm.Width() != 0 || pm.Height() != 0 || len(pm.Data()) != 0 {
			t.Errorf("NewPixmap(%d, %d) = %dx%d, want empty", sz[0], sz[1], pm.Width(), pm.Height())
		}
	}
}

func TestPixmap_SetGray(t *testing.T) {
	pm := NewPixmap(4, 3)
	pm.SetGray(2, 1, 180)

	i := (1*4 + 2) * 4
	data := pm.Data()
	if data[i] != 180 || data[i+1] != 180 || data[i+2] != 180 || data[i+3] != 255 {
		t.Errorf("raw data = %v, want (180, 180, 180, 255)", data[i:i+4])
	}
	if pm.Gray(2, 1) != 180 {
		t.Errorf("Gray(2, 1) = %d, want 180", pm.Gray(2, 1))
	}
	if got := pm.At(2, 1); got != (color.NRGBA{R: 180, G: 180, B: 180, A: 255}) {
		t.Errorf("At(2, 1) = %v", got)
	}
}

// TestPixmap_OutOfBounds verifies out-of-bounds writes are silently ignored.
func TestPixmap_OutOfBounds(t *testing.T) {
	pm := NewPixmap(5, 5)
	for _, c := range [][2]int{{-1, 2}, {5, 2}, {2, -1}, {2, 5}, {100, 100}} {
		pm.SetGray(c[0], c[1], 255)
		pm.SetColor(c[0], c[1], color.NRGBA{R: 1, A: 255})
		if got := pm.NRGBAAt(c[0], c[1]); got != (color.NRGBA{}) {
			t.Errorf("NRGBAAt(%d, %d) = %v, want zero", c[0], c[1], got)
		}
	}
	for i, v := range pm.Data() {
		if v != 0 {
			t.Fatalf("out-of-bounds write modified data at index %d", i)
		}
	}
}

func TestPixmap_ImageInterface(t *testing.T) {
	pm := NewPixmap(3, 2)
	pm.SetColor(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	if b := pm.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("Bounds() = %v", b)
	}
	if pm.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel() should be NRGBA")
	}

	img := pm.ToImage()
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("ToImage().NRGBAAt(1, 1) = %v", got)
	}
	img.Pix[0] = 99
	if pm.Data()[0] == 99 {
		t.Error("ToImage() should copy pixel data")
	}
}

func TestPixmap_EncodePNG(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.SetGray(0, 0, 128)
	pm.SetColor(3, 3, NoDataColor)

	var buf bytes.Buffer
	if err := pm.Encode(&buf, "png"); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 128 || g>>8 != 128 || b>>8 != 128 || a>>8 != 255 {
		t.Errorf("decoded (0,0) = (%d, %d, %d, %d)", r>>8, g>>8, b>>8, a>>8)
	}
	if _, _, _, a := img.At(3, 3).RGBA(); a != 0 {
		t.Errorf("no-data pixel alpha = %d, want 0", a)
	}
}

func TestPixmap_EncodeToBytes(t *testing.T) {
	pm := NewPixmap(3, 2)
	pm.SetGray(1, 1, 200)

	var buf bytes.Buffer
	if err := pm.Encode(&buf, "tif"); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	data, err := pm.EncodeToBytes("tif")
	if err != nil {
		t.Fatalf("EncodeToBytes() error = %v", err)
	}
	if !bytes.Equal(data, buf.Bytes()) {
		t.Error("EncodeToBytes() differs from Encode()")
	}

	if _, err := pm.EncodeToBytes("bmp"); !errors.Is(err, ximage.ErrUnsupportedFormat) {
		t.Errorf("EncodeToBytes(bmp) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := NewPixmap(0, 0).EncodeToBytes("png"); !errors.Is(err, ximage.ErrEmptyImage) {
		t.Errorf("EncodeToBytes(empty) error = %v, want ErrEmptyImage", err)
	}
}

func TestPixmap_EncodeErrors(t *testing.T) {
	pm := NewPixmap(2, 2)
	if err := pm.Encode(&bytes.Buffer{}, "bmp"); !errors.Is(err, ximage.ErrUnsupportedFormat) {
		t.Errorf("Encode(bmp) error = %v, want ErrUnsupportedFormat", err)
	}
	if err := NewPixmap(0, 0).Encode(&bytes.Buffer{}, "png"); !errors.Is(err, ximage.ErrEmptyImage) {
		t.Errorf("Encode(empty) error = %v, want ErrEmptyImage", err)
	}
}

func TestPixmap_Save(t *testing.T) {
	pm := NewPixmap(8, 8)
	for y := range 8 {
		for x := range 8 {
			pm.SetGray(x, y, uint8(x*y))
		}
	}

	dir := t.TempDir()
	for _, name := range []string{"relief.png", "relief.tif", "relief.jpg"} {
		path := filepath.Join(dir, name)
		if err := pm.Save(path); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Errorf("Save(%s) wrote nothing: %v", name, err)
		}
	}
	if err := pm.Save(filepath.Join(dir, "relief.gif")); err == nil {
		t.Error("Save(.gif) should fail")
	}
}
