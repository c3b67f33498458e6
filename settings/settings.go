// Package settings persists hillshade renderer settings.
//
// Two forms are supported: a JSON document, used by the command line tool and
// the live-preview server, and a <rasterrenderer type="hillshade"/> XML
// element as found in project files. Both decode into Settings, which converts
// to a validated hillshade.Config.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/hillshade"
)

// Errors.
var (
	// ErrUnknownFormat is returned by Load and Save for paths that are neither
	// .json nor .xml.
	ErrUnknownFormat = errors.New("settings: unknown file format")

	// ErrWrongRenderer is returned when an XML element describes a renderer
	// other than hillshade.
	ErrWrongRenderer = errors.New("settings: not a hillshade renderer")

	// ErrMissingElement is returned when an XML document holds no renderer element.
	ErrMissingElement = errors.New("settings: missing rasterrenderer element")
)

// NoBand marks a band that was not given in an XML element. It is rejected
// by Config.
const NoBand = -1

// Settings is the serializable form of a hillshade.Config.
// Unlike Config, a Settings value may be invalid.
type Settings struct {
	Band             int     `json:"band"`
	Azimuth          float64 `json:"azimuth"`
	Altitude         float64 `json:"altitude"`
	ZFactor          float64 `json:"zFactor"`
	MultiDirectional bool    `json:"multiDirectional"`
}

// Default returns the settings of hillshade.DefaultConfig.
func Default() Settings {
	return FromConfig(hillshade.DefaultConfig())
}

// FromConfig captures cfg.
func FromConfig(cfg hillshade.Config) Settings {
	return Settings{
		Band:             cfg.Band(),
		Azimuth:          cfg.Azimuth(),
		Altitude:         cfg.Altitude(),
		ZFactor:          cfg.ZFactor(),
		MultiDirectional: cfg.MultiDirectional(),
	}
}

// Config validates s and returns the equivalent configuration.
func (s Settings) Config() (hillshade.Config, error) {
	cfg, err := hillshade.NewConfig(s.Band, s.Azimuth, s.Altitude, s.ZFactor)
	if err != nil {
		return hillshade.Config{}, fmt.Errorf("settings: %w", err)
	}
	return cfg.WithMultiDirectional(s.MultiDirectional), nil
}

// ReadJSON decodes settings from r. Fields absent from the document keep
// their default values.
func ReadJSON(r io.Reader) (Settings, error) {
	s := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("settings: parse JSON: %w", err)
	}
	return s, nil
}

// WriteJSON encodes s to w as indented JSON.
func WriteJSON(w io.Writer, s Settings) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("settings: write JSON: %w", err)
	}
	return nil
}

// Load reads settings from a .json or .xml file.
func Load(path string) (Settings, error) {
	read, err := readerFor(path)
	if err != nil {
		return Settings{}, err
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}
	defer f.Close()
	return read(f)
}

// Save writes s to a .json or .xml file.
func Save(path string, s Settings) error {
	var write func(io.Writer, Settings) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		write = WriteJSON
	case ".xml":
		write = WriteXML
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := write(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readerFor(path string) (func(io.Reader) (Settings, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON, nil
	case ".xml":
		return ReadXML, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}
