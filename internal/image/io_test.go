package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := range 3 {
		for x := range 4 {
			v := uint8(x*60 + y*10)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	// one transparent no-data pixel
	img.SetNRGBA(3, 2, color.NRGBA{})
	return img
}

// =============================================================================
// Format table
// =============================================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"png", FormatPNG},
		{".PNG", FormatPNG},
		{"jpg", FormatJPEG},
		{"jpeg", FormatJPEG},
		{"tif", FormatTIFF},
		{"tiff", FormatTIFF},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = (%v, %v), want %v", tt.name, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("bmp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(bmp) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("/tmp/relief.tiff"); err != nil || f != FormatTIFF {
		t.Errorf("FormatFromPath(.tiff) = (%v, %v), want tiff", f, err)
	}
	if _, err := FormatFromPath("relief"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FormatFromPath(no ext) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormat_Info(t *testing.T) {
	if FormatJPEG.Info().HasAlpha {
		t.Error("JPEG should not report alpha")
	}
	if FormatPNG.MIMEType() != "image/png" {
		t.Errorf("MIMEType() = %q, want image/png", FormatPNG.MIMEType())
	}
	if Format(200).IsValid() || Format(200).String() != "unknown" {
		t.Error("out-of-range format should be invalid")
	}
}

// =============================================================================
// Encode
// =============================================================================

func TestEncode_Lossless(t *testing.T) {
	for _, f := range []Format{FormatPNG, FormatTIFF} {
		t.Run(f.String(), func(t *testing.T) {
			src := testImage()
			data, err := EncodeToBytes(src, f, EncodeOptions{})
			if err != nil {
				t.Fatalf("EncodeToBytes() error = %v", err)
			}

			img, name, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("image.Decode() error = %v", err)
			}
			if name != f.String() {
				t.Errorf("image.Decode() format = %q, want %q", name, f)
			}

			for y := range 3 {
				for x := range 4 {
					want := src.NRGBAAt(x, y)
					c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
					if c != want {
						t.Errorf("pixel (%d,%d) = %v, want %v", x, y, c, want)
					}
				}
			}
		})
	}
}

func TestEncode_JPEGFlattensAlpha(t *testing.T) {
	data, err := EncodeToBytes(testImage(), FormatJPEG, EncodeOptions{Background: color.White})
	if err != nil {
		t.Fatalf("EncodeToBytes(JPEG) error = %v", err)
	}
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil || name != "jpeg" {
		t.Fatalf("image.Decode() = (%q, %v)", name, err)
	}
	r, _, _, a := img.At(3, 2).RGBA()
	if a != 0xffff || r < 0xc000 {
		t.Errorf("transparent pixel should flatten to white, got r=%#x a=%#x", r, a)
	}
}

func TestEncode_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 0, 0)), FormatPNG, EncodeOptions{}); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Encode(empty) error = %v, want ErrEmptyImage", err)
	}
	if err := Encode(&buf, testImage(), Format(99), EncodeOptions{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(invalid format) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Save(path, testImage(), EncodeOptions{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("Save() wrote nothing: %v", err)
	}

	if err := Save(filepath.Join(t.TempDir(), "out.bmp"), testImage(), EncodeOptions{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.bmp) error = %v, want ErrUnsupportedFormat", err)
	}
}
