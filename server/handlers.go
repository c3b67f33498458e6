// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/gogpu/hillshade"
	ximage "github.com/gogpu/hillshade/internal/image"
	"github.com/gogpu/hillshade/raster"
)

// errBadRequest marks errors caused by the client.
var errBadRequest = errors.New("bad request")

// request is one rendering job derived from the server defaults.
type request struct {
	renderer *hillshade.HillshadeRenderer
	extent   raster.Extent
	width    int
	height   int
}

// parseQuery applies query overrides to the server defaults.
func (s *Server) parseQuery(q url.Values) (request, error) {
	cfg := s.base.Config()
	req := request{extent: s.extent, width: s.width, height: s.height}

	var err error
	if v := q.Get("band"); v != "" {
		band, perr := strconv.Atoi(v)
		if perr != nil {
			return req, fmt.Errorf("%w: band: %v", errBadRequest, perr)
		}
		if cfg, err = cfg.WithBand(band); err != nil {
			return req, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}

	floats := []struct {
		name  string
		apply func(hillshade.Config, float64) (hillshade.Config, error)
	}{
		{"azimuth", hillshade.Config.WithAzimuth},
		{"altitude", hillshade.Config.WithAltitude},
		{"z", hillshade.Config.WithZFactor},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		x, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			return req, fmt.Errorf("%w: %s: %v", errBadRequest, f.name, perr)
		}
		if cfg, err = f.apply(cfg, x); err != nil {
			return req, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if v := q.Get("multi"); v != "" {
		on, perr := strconv.ParseBool(v)
		if perr != nil {
			return req, fmt.Errorf("%w: multi: %v", errBadRequest, perr)
		}
		cfg = cfg.WithMultiDirectional(on)
	}

	if req.width, err = s.sizeParam(q, "width", s.width); err != nil {
		return req, err
	}
	if req.height, err = s.sizeParam(q, "height", s.height); err != nil {
		return req, err
	}
	if v := q.Get("bbox"); v != "" {
		if req.extent, err = parseBBox(v); err != nil {
			return req, err
		}
	}

	if req.renderer, err = s.base.WithConfig(cfg); err != nil {
		return req, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return req, nil
}

func (s *Server) sizeParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", errBadRequest, name, err)
	}
	return s.checkSize(name, n)
}

func (s *Server) checkSize(name string, n int) (int, error) {
	if n <= 0 || (s.maxSize > 0 && n > s.maxSize) {
		return 0, fmt.Errorf("%w: %s %d outside [1, %d]", errBadRequest, name, n, s.maxSize)
	}
	return n, nil
}

// parseBBox parses "minx,miny,maxx,maxy".
func parseBBox(v string) (raster.Extent, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return raster.Extent{}, fmt.Errorf("%w: bbox needs 4 values", errBadRequest)
	}
	var c [4]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return raster.Extent{}, fmt.Errorf("%w: bbox: %v", errBadRequest, err)
		}
		c[i] = x
	}
	e := raster.NewExtent(c[0], c[1], c[2], c[3])
	if e.IsEmpty() {
		return raster.Extent{}, fmt.Errorf("%w: bbox %v has no area", errBadRequest, e)
	}
	return e, nil
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	format, err := ximage.FormatFromPath(path.Base(r.URL.Path))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	req, err := s.parseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := req.key(format)
	if body, ok := s.frames.Get(key); ok {
		writeImage(w, format, body, "hit")
		return
	}

	body, err := req.encode(r, format)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errBadRequest) || errors.Is(err, hillshade.ErrOutputTooLarge) {
			status = http.StatusBadRequest
		}
		hillshade.Logger().Warn("server: render failed", "url", r.URL.String(), "err", err)
		http.Error(w, err.Error(), status)
		return
	}
	if body == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.frames.Put(key, body)
	writeImage(w, format, body, "miss")
}

func writeImage(w http.ResponseWriter, format ximage.Format, body []byte, cacheStatus string) {
	w.Header().Set("Content-Type", format.MIMEType())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("X-Cache", cacheStatus)
	_, _ = w.Write(body)
}

// key identifies the encoded output of req.
func (req request) key(format ximage.Format) string {
	return fmt.Sprintf("%s|%v|%v|%dx%d", format, req.renderer.Config(), req.extent, req.width, req.height)
}

// encode renders req and returns the encoded image, or nil when there is
// nothing to render.
func (req request) encode(r *http.Request, format ximage.Format) ([]byte, error) {
	pm, err := req.renderer.Render(r.Context(), req.extent, req.width, req.height)
	if err != nil {
		return nil, err
	}
	if pm.IsEmpty() {
		return nil, nil
	}
	return pm.EncodeToBytes(format.String())
}

// lightResponse is the body of GET /light.
type lightResponse struct {
	Azimuth  float64    `json:"azimuth"`
	Altitude float64    `json:"altitude"`
	Zenith   float64    `json:"zenith"`
	Vector   [3]float64 `json:"vector"`
}

func (s *Server) handleLight(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cfg := req.renderer.Config()
	il := hillshade.NewIllumination(cfg)
	writeJSON(w, lightResponse{
		Azimuth:  cfg.Azimuth(),
		Altitude: cfg.Altitude(),
		Zenith:   il.Zenith(),
		Vector:   il.LightVector(),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hillshade.Logger().Warn("server: write response", "err", err)
	}
}
