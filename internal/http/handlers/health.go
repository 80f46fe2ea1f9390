package handlers

import (
	"net/http"

	"github.com/steveyiyo/virtualeyes-backend/internal/core/detect"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/tts"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Detector detect.Detector
	TTS      *tts.Service
}

func NewHealthHandler(d detect.Detector, t *tts.Service) *HealthHandler {
	return &HealthHandler{Detector: d, TTS: t}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"detector": h.Detector.Name(),
		"tts":      h.TTS.Available(),
	})
}
