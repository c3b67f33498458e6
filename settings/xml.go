package settings

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/hillshade"
)

// ElementName is the name of the renderer element.
const ElementName = "rasterrenderer"

// rendererElement mirrors the attributes of a renderer element. Attributes
// are kept as strings so that absent ones can fall back to defaults.
type rendererElement struct {
	XMLName        xml.Name `xml:"rasterrenderer"`
	Type           string   `xml:"type,attr"`
	Band           *string  `xml:"band,attr"`
	Azimuth        *string  `xml:"azimuth,attr"`
	Angle          *string  `xml:"angle,attr"`
	ZFactor        *string  `xml:"zfactor,attr"`
	MultiDirection *string  `xml:"multidirection,attr"`
}

// ReadXML decodes the first rasterrenderer element found in r.
//
// The element must have type="hillshade". A missing band attribute yields
// NoBand; other missing attributes take the defaults of
// hillshade.DefaultConfig.
func ReadXML(r io.Reader) (Settings, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return Settings{}, ErrMissingElement
		}
		if err != nil {
			return Settings{}, fmt.Errorf("settings: parse XML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != ElementName {
			continue
		}
		var el rendererElement
		if err := dec.DecodeElement(&el, &start); err != nil {
			return Settings{}, fmt.Errorf("settings: parse XML: %w", err)
		}
		return el.settings()
	}
}

func (el *rendererElement) settings() (Settings, error) {
	if el.Type != hillshade.TypeHillshade {
		return Settings{}, fmt.Errorf("%w: type %q", ErrWrongRenderer, el.Type)
	}

	s := Default()
	s.Band = NoBand
	if el.Band != nil {
		v, err := strconv.Atoi(*el.Band)
		if err != nil {
			return Settings{}, fmt.Errorf("settings: band attribute: %w", err)
		}
		s.Band = v
	}

	floats := []struct {
		name string
		attr *string
		dst  *float64
	}{
		{"azimuth", el.Azimuth, &s.Azimuth},
		{"angle", el.Angle, &s.Altitude},
		{"zfactor", el.ZFactor, &s.ZFactor},
	}
	for _, f := range floats {
		if f.attr == nil {
			continue
		}
		v, err := strconv.ParseFloat(*f.attr, 64)
		if err != nil {
			return Settings{}, fmt.Errorf("settings: %s attribute: %w", f.name, err)
		}
		*f.dst = v
	}

	if el.MultiDirection != nil {
		v, err := strconv.ParseBool(*el.MultiDirection)
		if err != nil {
			return Settings{}, fmt.Errorf("settings: multidirection attribute: %w", err)
		}
		s.MultiDirectional = v
	}
	return s, nil
}

// WriteXML encodes s as a single rasterrenderer element.
func WriteXML(w io.Writer, s Settings) error {
	str := func(v string) *string { return &v }
	multi := "0"
	if s.MultiDirectional {
		multi = "1"
	}
	el := rendererElement{
		Type:           hillshade.TypeHillshade,
		Band:           str(strconv.Itoa(s.Band)),
		Azimuth:        str(strconv.FormatFloat(s.Azimuth, 'g', -1, 64)),
		Angle:          str(strconv.FormatFloat(s.Altitude, 'g', -1, 64)),
		ZFactor:        str(strconv.FormatFloat(s.ZFactor, 'g', -1, 64)),
		MultiDirection: str(multi),
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(el); err != nil {
		return fmt.Errorf("settings: write XML: %w", err)
	}
	return enc.Close()
}
