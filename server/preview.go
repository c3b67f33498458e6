// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/hillshade"
	"github.com/gogpu/hillshade/settings"
)

const (
	// maxMessageSize bounds incoming settings messages.
	maxMessageSize = 4096

	writeWait = 10 * time.Second
)

// previewRequest is one live-preview message. Absent fields keep the values
// of the previous message on the same connection.
type previewRequest struct {
	settings.Settings
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// previewError is sent as a text message when a request is rejected.
type previewError struct {
	Error string `json:"error"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		hillshade.Logger().Warn("server: websocket upgrade", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	log := hillshade.Logger().With("remote", r.RemoteAddr)
	log.Info("server: preview connected")
	defer log.Info("server: preview disconnected")

	state := previewRequest{
		Settings: settings.FromConfig(s.base.Config()),
		Width:    s.width,
		Height:   s.height,
	}
	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("server: preview read", "err", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		next := state
		if err := json.Unmarshal(msg, &next); err != nil {
			err = fmt.Errorf("%w: %v", errBadRequest, err)
			if !s.reply(conn, nil, err) {
				return
			}
			continue
		}

		png, err := s.preview(r, next)
		if err == nil {
			state = next
		}
		if !s.reply(conn, png, err) {
			return
		}
	}
}

// preview renders one live-preview frame as PNG.
func (s *Server) preview(r *http.Request, p previewRequest) ([]byte, error) {
	cfg, err := p.Config()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	req := request{extent: s.extent}
	if req.width, err = s.checkSize("width", p.Width); err != nil {
		return nil, err
	}
	if req.height, err = s.checkSize("height", p.Height); err != nil {
		return nil, err
	}
	if req.renderer, err = s.base.WithConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	pm, err := req.renderer.Render(r.Context(), req.extent, req.width, req.height)
	if err != nil {
		return nil, err
	}
	if pm.IsEmpty() {
		return nil, errors.New("no raster data")
	}
	return pm.EncodeToBytes("png")
}

// reply sends a frame or an error message and reports whether the
// connection is still usable.
func (s *Server) reply(conn *websocket.Conn, png []byte, err error) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	var werr error
	if err != nil {
		werr = conn.WriteJSON(previewError{Error: err.Error()})
	} else {
		werr = conn.WriteMessage(websocket.BinaryMessage, png)
	}
	if werr != nil {
		hillshade.Logger().Warn("server: preview write", "err", werr)
		return false
	}
	return true
}
