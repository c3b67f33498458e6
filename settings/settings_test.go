package settings

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/hillshade"
)

func TestDefault(t *testing.T) {
	s := Default()
	want := Settings{Band: 1, Azimuth: 300, Altitude: 30, ZFactor: 1}
	if s != want {
		t.Errorf("Default() = %+v, want %+v", s, want)
	}
	cfg, err := s.Config()
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if cfg != hillshade.DefaultConfig() {
		t.Errorf("Config() = %v, want default", cfg)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg, err := hillshade.NewConfig(2, 315, 45, 2.5)
	if err != nil {
		t.Fatal(err)
	}
	cfg = cfg.WithMultiDirectional(true)

	got, err := FromConfig(cfg).Config()
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if got != cfg {
		t.Errorf("Config() = %v, want %v", got, cfg)
	}
}

func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
		want error
	}{
		{"no band", Settings{Band: NoBand, Azimuth: 300, Altitude: 30, ZFactor: 1}, hillshade.ErrInvalidBand},
		{"zero z", Settings{Band: 1, Azimuth: 300, Altitude: 30}, hillshade.ErrInvalidZFactor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.s.Config(); !errors.Is(err, tt.want) {
				t.Errorf("Config() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(`{"band": 3, "azimuth": 90, "multiDirectional": true}`))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	want := Settings{Band: 3, Azimuth: 90, Altitude: 30, ZFactor: 1, MultiDirectional: true}
	if s != want {
		t.Errorf("ReadJSON() = %+v, want %+v", s, want)
	}

	for _, doc := range []string{`{"band": "one"}`, `{"colour": 1}`, `{`} {
		if _, err := ReadJSON(strings.NewReader(doc)); err == nil {
			t.Errorf("ReadJSON(%s) should fail", doc)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in := Settings{Band: 2, Azimuth: 12.5, Altitude: 60, ZFactor: 0.3048, MultiDirectional: true}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, in); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"zFactor": 0.3048`) {
		t.Errorf("WriteJSON() = %s", buf.String())
	}
	out, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestReadXML(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Settings
	}{
		{
			name: "band only",
			doc:  `<rasterrenderer type="hillshade" band="2"/>`,
			want: Settings{Band: 2, Azimuth: 300, Altitude: 30, ZFactor: 1},
		},
		{
			name: "all attributes",
			doc:  `<rasterrenderer type="hillshade" band="1" azimuth="315" angle="45" zfactor="2" multidirection="1"/>`,
			want: Settings{Band: 1, Azimuth: 315, Altitude: 45, ZFactor: 2, MultiDirectional: true},
		},
		{
			name: "no band",
			doc:  `<rasterrenderer type="hillshade"/>`,
			want: Settings{Band: NoBand, Azimuth: 300, Altitude: 30, ZFactor: 1},
		},
		{
			name: "nested in a layer",
			doc: `<maplayer><pipe>
				<rasterrenderer opacity="1" type="hillshade" band="4" zfactor="0.5"/>
			</pipe></maplayer>`,
			want: Settings{Band: 4, Azimuth: 300, Altitude: 30, ZFactor: 0.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ReadXML(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("ReadXML() error = %v", err)
			}
			if s != tt.want {
				t.Errorf("ReadXML() = %+v, want %+v", s, tt.want)
			}
		})
	}
}

func TestReadXML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"other renderer", `<rasterrenderer type="singlebandgray" band="1"/>`, ErrWrongRenderer},
		{"no element", `<pipe><brightnesscontrast/></pipe>`, ErrMissingElement},
		{"empty", ``, ErrMissingElement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadXML(strings.NewReader(tt.doc)); !errors.Is(err, tt.want) {
				t.Errorf("ReadXML() error = %v, want %v", err, tt.want)
			}
		})
	}

	for _, doc := range []string{
		`<rasterrenderer type="hillshade" band="x"/>`,
		`<rasterrenderer type="hillshade" band="1" angle="high"/>`,
		`<rasterrenderer type="hillshade" band="1" multidirection="maybe"/>`,
		`<rasterrenderer type="hillshade" band="1"`,
	} {
		if _, err := ReadXML(strings.NewReader(doc)); err == nil {
			t.Errorf("ReadXML(%s) should fail", doc)
		}
	}
}

func TestXMLRoundTrip(t *testing.T) {
	in := Settings{Band: 3, Azimuth: 45.5, Altitude: 20, ZFactor: 3, MultiDirectional: true}
	var buf bytes.Buffer
	if err := WriteXML(&buf, in); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `type="hillshade"`) || !strings.Contains(buf.String(), `angle="20"`) {
		t.Errorf("WriteXML() = %s", buf.String())
	}
	out, err := ReadXML(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	in := Settings{Band: 1, Azimuth: 135, Altitude: 50, ZFactor: 1.5}

	for _, name := range []string{"relief.json", "relief.xml", "RELIEF.XML"} {
		path := filepath.Join(dir, name)
		if err := Save(path, in); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
		out, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		if out != in {
			t.Errorf("Load(%s) = %+v, want %+v", name, out, in)
		}
	}

	if err := Save(filepath.Join(dir, "relief.yaml"), in); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Save(.yaml) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := Load(filepath.Join(dir, "relief.ini")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(.ini) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Load(missing) should fail")
	}
}
