package handlers

import (
	"net/http"

	"github.com/steveyiyo/virtualeyes-backend/internal/core/tts"
	"github.com/steveyiyo/virtualeyes-backend/pkg/types"

	"github.com/gin-gonic/gin"
)

type TTSHandler struct {
	Service *tts.Service
}

func NewTTSHandler(s *tts.Service) *TTSHandler {
	return &TTSHandler{Service: s}
}

func (h *TTSHandler) Synthesize(c *gin.Context) {
	var req types.TTSReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResp{Error: "bad_request", Detail: err.Error()})
		return
	}
	audio, err := h.Service.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "audio/wav", audio)
}
