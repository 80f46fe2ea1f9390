package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/steveyiyo/virtualeyes-backend/internal/core/camera"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/imaging"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/tts"
	"github.com/steveyiyo/virtualeyes-backend/pkg/types"

	"github.com/gin-gonic/gin"
)

// classify maps an error to its status and short code.
func classify(err error) (int, string) {
	var ue *camera.UpstreamError
	switch {
	case errors.Is(err, imaging.ErrInvalidImage), errors.Is(err, imaging.ErrInvalidBase64):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, tts.ErrEmptyText):
		return http.StatusUnprocessableEntity, "missing_text"
	case errors.Is(err, tts.ErrUnavailable):
		return http.StatusNotImplemented, "not_implemented"
	case errors.As(err, &ue):
		return http.StatusBadGateway, "bad_gateway"
	default:
		return http.StatusBadRequest, "analysis_failed"
	}
}

func writeError(c *gin.Context, err error) {
	status, code := classify(err)
	if status != http.StatusBadRequest && status != http.StatusUnprocessableEntity {
		log.Printf("%s %s: %s: %v", c.Request.Method, c.FullPath(), code, err)
	}
	c.AbortWithStatusJSON(status, types.ErrorResp{Error: code, Detail: err.Error()})
}
