// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package server serves hillshade renderings of a bound elevation raster
// over HTTP.
//
// Endpoints:
//
//	GET /hillshade.{png,jpg,tif}  render with query overrides
//	GET /light                    light direction as a unit vector
//	GET /ws                       websocket live preview
//
// Query parameters band, azimuth, altitude, z, multi, width, height and bbox
// (minx,miny,maxx,maxy) override the server's defaults for one request.
// Encoded images are kept in a byte-bounded LRU cache keyed by the effective
// request; the X-Cache response header reports hit or miss.
//
// The websocket endpoint accepts JSON settings messages (the settings
// package's JSON form plus optional width and height) and answers each with a
// binary PNG message, or a text message {"error": "..."} when the settings
// are rejected.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/hillshade"
	"github.com/gogpu/hillshade/internal/cache"
	"github.com/gogpu/hillshade/raster"
)

// Defaults.
const (
	// DefaultMaxSize bounds the width and height a client may request.
	DefaultMaxSize = 4096

	// DefaultCacheBytes is the budget of the encoded image cache.
	DefaultCacheBytes = 64 << 20
)

// Server renders one elevation raster on demand.
//
// The base renderer and extent never change; each request derives its own
// renderer from them. Server is safe for concurrent use.
type Server struct {
	base    *hillshade.HillshadeRenderer
	extent  raster.Extent
	width   int
	height  int
	maxSize int
	frames  *cache.Frames

	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// New creates a server rendering base over extent at width×height unless a
// request asks otherwise.
func New(base *hillshade.HillshadeRenderer, extent raster.Extent, width, height int) (*Server, error) {
	if base == nil {
		return nil, errors.New("server: nil renderer")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("server: default size %dx%d: %w", width, height, hillshade.ErrInvalidDimensions)
	}
	s := &Server{
		base:    base,
		extent:  extent,
		width:   width,
		height:  height,
		maxSize: DefaultMaxSize,
		frames:  cache.New(DefaultCacheBytes),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /hillshade.png", s.handleImage)
	s.mux.HandleFunc("GET /hillshade.jpg", s.handleImage)
	s.mux.HandleFunc("GET /hillshade.tif", s.handleImage)
	s.mux.HandleFunc("GET /light", s.handleLight)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	return s, nil
}

// SetMaxSize changes the largest width or height a request may ask for.
// It must be called before the server starts handling requests.
func (s *Server) SetMaxSize(n int) {
	s.maxSize = n
}

// SetCacheSize replaces the encoded image cache with one holding at most n
// bytes. Zero disables caching. It must be called before the server starts
// handling requests.
func (s *Server) SetCacheSize(n int64) {
	s.frames = cache.New(n)
}

// CacheStats returns statistics of the encoded image cache.
func (s *Server) CacheStats() cache.Stats {
	return s.frames.Stats()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		hillshade.Logger().Info("server: listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hillshade.Logger().Info("server: shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
