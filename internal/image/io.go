package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyImage is returned when encoding an image with no pixels.
	ErrEmptyImage = errors.New("image: empty image")
)

// DefaultJPEGQuality is used when EncodeOptions.Quality is zero.
const DefaultJPEGQuality = 90

// EncodeOptions tune the encoders.
type EncodeOptions struct {
	// Quality is the JPEG quality (1-100). Zero means DefaultJPEGQuality.
	Quality int

	// Background replaces transparency for formats without alpha.
	// Nil means black.
	Background color.Color
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format, opts EncodeOptions) error {
	if img.Bounds().Empty() {
		return ErrEmptyImage
	}

	switch f {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("image: encode PNG: %w", err)
		}
	case FormatJPEG:
		quality := opts.Quality
		if quality == 0 {
			quality = DefaultJPEGQuality
		}
		quality = min(max(quality, 1), 100)
		if err := jpeg.Encode(w, flatten(img, opts.Background), &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("image: encode JPEG: %w", err)
		}
	case FormatTIFF:
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
			return fmt.Errorf("image: encode TIFF: %w", err)
		}
	default:
		return &FormatError{Name: f.String()}
	}
	return nil
}

// EncodeToBytes encodes img in format f and returns the bytes.
func EncodeToBytes(img image.Image, f Format, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes img to path, choosing the format by extension.
func Save(path string, img image.Image, opts EncodeOptions) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := Encode(out, img, f, opts); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// flatten composites img over an opaque background.
func flatten(img image.Image, bg color.Color) image.Image {
	if bg == nil {
		bg = color.Black
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}
