// Package image encodes rendered relief images to files.
//
// It wraps the standard PNG and JPEG encoders and the TIFF encoder from
// golang.org/x/image behind a small format table.
package image

import (
	"path/filepath"
	"strings"
)

// Format represents an output file format.
type Format uint8

const (
	// FormatPNG is lossless PNG. It keeps the alpha channel used by no-data cells.
	FormatPNG Format = iota

	// FormatJPEG is lossy JPEG. Alpha is discarded.
	FormatJPEG

	// FormatTIFF is deflate-compressed TIFF.
	FormatTIFF

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about an output format.
type FormatInfo struct {
	// Name is the canonical lower-case name.
	Name string

	// Extensions lists recognized file extensions, including the dot.
	Extensions []string

	// MIMEType is the media type used when serving the format.
	MIMEType string

	// HasAlpha indicates if the format stores transparency.
	HasAlpha bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatPNG: {
		Name:       "png",
		Extensions: []string{".png"},
		MIMEType:   "image/png",
		HasAlpha:   true,
	},
	FormatJPEG: {
		Name:       "jpeg",
		Extensions: []string{".jpg", ".jpeg"},
		MIMEType:   "image/jpeg",
		HasAlpha:   false,
	},
	FormatTIFF: {
		Name:       "tiff",
		Extensions: []string{".tif", ".tiff"},
		MIMEType:   "image/tiff",
		HasAlpha:   true,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	return f.Info().MIMEType
}

// String returns the canonical name of the format.
func (f Format) String() string {
	if !f.IsValid() {
		return "unknown"
	}
	return f.Info().Name
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// ParseFormat returns the format with the given name or alias ("jpg", "tif").
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimPrefix(name, "."))
	for f := range formatCount {
		if formatInfoTable[f].Name == n {
			return f, nil
		}
		for _, ext := range formatInfoTable[f].Extensions {
			if ext[1:] == n {
				return f, nil
			}
		}
	}
	return 0, &FormatError{Name: name}
}

// FormatFromPath returns the format matching the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, &FormatError{Name: path}
	}
	return ParseFormat(ext)
}

// FormatError reports an unrecognized format name or extension.
type FormatError struct {
	Name string
}

func (e *FormatError) Error() string {
	return "image: unsupported format " + `"` + e.Name + `"`
}

// Unwrap lets errors.Is match ErrUnsupportedFormat.
func (e *FormatError) Unwrap() error { return ErrUnsupportedFormat }
