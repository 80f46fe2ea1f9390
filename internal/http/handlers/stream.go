package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/steveyiyo/virtualeyes-backend/internal/core/imaging"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/session"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/vision"
	"github.com/steveyiyo/virtualeyes-backend/pkg/types"
	"github.com/steveyiyo/virtualeyes-backend/pkg/ws"
)

// StreamHandler serves live mode: the app sends frames, each one is answered
// with a hints message.
type StreamHandler struct {
	Hub      *ws.Hub
	Sess     *session.Service
	Vision   *vision.Service
	Upgrader websocket.Upgrader
}

func NewStreamHandler(h *ws.Hub, s *session.Service, v *vision.Service) *StreamHandler {
	return &StreamHandler{
		Hub:    h,
		Sess:   s,
		Vision: v,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) WS(c *gin.Context) {
	id := c.Query("sess")
	if id == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	if !h.Sess.Exists(id) {
		c.JSON(http.StatusNotFound, types.ErrorResp{Error: "not_found"})
		return
	}
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	peer := h.Hub.Add(id, conn)
	defer func() {
		h.Hub.Remove(id, peer)
		conn.Close()
	}()

	conn.SetReadLimit(8 << 20)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	_ = peer.WriteJSON(gin.H{
		"type": "hello",
		"ts":   time.Now().UnixMilli(),
	})

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		h.Sess.Touch(id)

		var data []byte
		switch mt {
		case websocket.BinaryMessage:
			data = msg
		case websocket.TextMessage:
			var f types.StreamFrame
			if err := json.Unmarshal(msg, &f); err != nil {
				if peer.WriteJSON(errorMessage(errors.New("invalid frame json"))) != nil {
					return
				}
				continue
			}
			if f.Type == "ping" {
				if peer.WriteJSON(gin.H{"type": "pong", "ts": time.Now().UnixMilli()}) != nil {
					return
				}
				continue
			}
			data, err = imaging.DecodeBase64(f.ImageBase64)
			if err != nil {
				if peer.WriteJSON(errorMessage(err)) != nil {
					return
				}
				continue
			}
		default:
			continue
		}

		start := time.Now()
		a, err := h.Vision.Analyze(c.Request.Context(), data)
		if err != nil {
			if peer.WriteJSON(errorMessage(err)) != nil {
				return
			}
			continue
		}
		latency := time.Since(start)
		h.Sess.Record(id, a.SpokenText, len(a.Objects), latency)
		if err := peer.WriteJSON(hintsMessage(a, latency)); err != nil {
			return
		}
	}
}

func errorMessage(err error) gin.H {
	_, code := classify(err)
	return gin.H{
		"type":   "error",
		"ts":     time.Now().UnixMilli(),
		"error":  code,
		"detail": err.Error(),
	}
}
