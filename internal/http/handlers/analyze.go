package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/steveyiyo/virtualeyes-backend/internal/core/camera"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/hints"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/imaging"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/session"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/tts"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/vision"
	"github.com/steveyiyo/virtualeyes-backend/pkg/types"
	"github.com/steveyiyo/virtualeyes-backend/pkg/ws"

	"github.com/gin-gonic/gin"
)

type AnalyzeHandler struct {
	Vision    *vision.Service
	TTS       *tts.Service
	Camera    *camera.Client
	Hub       *ws.Hub
	Sess      *session.Service
	MaxUpload int64
}

func NewAnalyzeHandler(v *vision.Service, t *tts.Service, cam *camera.Client, hub *ws.Hub, s *session.Service, maxUpload int64) *AnalyzeHandler {
	return &AnalyzeHandler{Vision: v, TTS: t, Camera: cam, Hub: hub, Sess: s, MaxUpload: maxUpload}
}

// Upload analyzes a multipart "file".
func (h *AnalyzeHandler) Upload(c *gin.Context) {
	data, err := h.readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}
	a, err := h.Vision.Analyze(c.Request.Context(), data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AnalyzeHandler) Base64(c *gin.Context) {
	var req types.AnalyzeBase64Req
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResp{Error: "bad_request", Detail: "image_base64 is required"})
		return
	}
	data, err := imaging.DecodeBase64(req.ImageBase64)
	if err != nil {
		writeError(c, err)
		return
	}
	a, err := h.Vision.Analyze(c.Request.Context(), data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// AnalyzeAndTTS speaks the per-detection hints of an upload.
func (h *AnalyzeHandler) AnalyzeAndTTS(c *gin.Context) {
	data, err := h.readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}
	a, err := h.Vision.Analyze(c.Request.Context(), data)
	if err != nil {
		writeError(c, err)
		return
	}
	spoken := strings.Join(a.Hints, "; ")
	if spoken == "" {
		spoken = hints.NoElementsMessage
	}
	h.speak(c, types.Metadata{Hints: a.Hints, SpokenText: spoken})
}

// CameraAnalyze pulls a snapshot and analyzes it. With ?sess= the result is also
// pushed to that session's live socket.
func (h *AnalyzeHandler) CameraAnalyze(c *gin.Context) {
	a, latency, err := h.fromCamera(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if id := c.Query("sess"); id != "" && h.Sess.Record(id, a.SpokenText, len(a.Objects), latency) {
		if p, ok := h.Hub.Get(id); ok {
			_ = p.WriteJSON(hintsMessage(a, latency))
		}
	}
	c.JSON(http.StatusOK, a)
}

// CameraTTS speaks the composed sentence for a camera snapshot.
func (h *AnalyzeHandler) CameraTTS(c *gin.Context) {
	a, _, err := h.fromCamera(c)
	if err != nil {
		writeError(c, err)
		return
	}
	h.speak(c, types.Metadata{Hints: a.Hints, SpokenText: a.SpokenText})
}

func (h *AnalyzeHandler) fromCamera(c *gin.Context) (hints.Analysis, time.Duration, error) {
	start := time.Now()
	data, err := h.Camera.Fetch(c.Request.Context())
	if err != nil {
		return hints.Analysis{}, 0, err
	}
	a, err := h.Vision.Analyze(c.Request.Context(), data)
	return a, time.Since(start), err
}

func (h *AnalyzeHandler) speak(c *gin.Context, meta types.Metadata) {
	audio, err := h.TTS.Synthesize(c.Request.Context(), meta.SpokenText)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("X-Metadata", asciiJSON(meta))
	c.Data(http.StatusOK, "audio/wav", audio)
}

func (h *AnalyzeHandler) readUpload(c *gin.Context) ([]byte, error) {
	if h.MaxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUpload)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: missing file field: %v", imaging.ErrInvalidImage, err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", imaging.ErrInvalidImage, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func hintsMessage(a hints.Analysis, latency time.Duration) gin.H {
	return gin.H{
		"type":        "hints",
		"ts":          time.Now().UnixMilli(),
		"objects":     a.Objects,
		"hints":       a.Hints,
		"spoken_text": a.SpokenText,
		"latency_ms":  latency.Milliseconds(),
	}
}

// asciiJSON escapes non-ASCII runes so the value is safe in a header.
func asciiJSON(v interface{}) string {
	b, _ := json.Marshal(v)
	var sb strings.Builder
	for _, r := range string(b) {
		if r < 0x80 {
			sb.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&sb, `\u%04x\u%04x`, r1, r2)
			continue
		}
		fmt.Fprintf(&sb, `\u%04x`, r)
	}
	return sb.String()
}
