package http

import (
	"context"
	"fmt"
	"log"
	nethttp "net/http"
	"time"

	"github.com/steveyiyo/virtualeyes-backend/internal/config"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/camera"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/detect"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/gemini"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/hints"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/session"
	ttsprov "github.com/steveyiyo/virtualeyes-backend/internal/core/tts"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/vision"
	"github.com/steveyiyo/virtualeyes-backend/internal/http/handlers"
	"github.com/steveyiyo/virtualeyes-backend/internal/repo/memory"
	"github.com/steveyiyo/virtualeyes-backend/pkg/ws"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators behind the routes.
type Deps struct {
	Detector detect.Detector
	Engine   *hints.Engine
	TTS      *ttsprov.Service
	Camera   *camera.Client
}

// NewRouter wires the production collaborators from cfg.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	tables, err := hints.LoadTables(cfg.TablesPath)
	if err != nil {
		return nil, err
	}
	det, err := buildDetector(cfg)
	if err != nil {
		return nil, err
	}
	tts := ttsprov.NewService(func() (ttsprov.Synthesizer, error) {
		return ttsprov.NewPiper(ttsprov.Config{BinaryPath: cfg.PiperBin, ModelPath: cfg.PiperModel})
	})
	return New(cfg, Deps{
		Detector: det,
		Engine:   hints.New(tables),
		TTS:      tts,
		Camera:   camera.New(cfg.CameraURL),
	}), nil
}

func buildDetector(cfg config.Config) (detect.Detector, error) {
	switch cfg.DetectorBackend {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini detector")
		}
		return gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	case "http", "":
		d := detect.NewHTTPDetector(cfg.DetectorURL)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := d.CheckHealth(ctx); err != nil {
			log.Printf("Warning: inference service at %s not available: %v", cfg.DetectorURL, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown DETECTOR_BACKEND %q", cfg.DetectorBackend)
	}
}

func New(cfg config.Config, d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(cors())

	repo := memory.NewSessionRepo()
	svc := session.NewService(repo, cfg.SessionTTL)
	hub := ws.NewHub()
	vis := vision.NewService(d.Detector, d.Engine)

	baseScheme := "ws"
	if cfg.TLS {
		baseScheme = "wss"
	}
	sh := handlers.NewSessionsHandler(svc, baseScheme, cfg.PublicHost)
	ah := handlers.NewAnalyzeHandler(vis, d.TTS, d.Camera, hub, svc, cfg.MaxUpload)
	wsh := handlers.NewStreamHandler(hub, svc, vis)
	th := handlers.NewTTSHandler(d.TTS)
	hh := handlers.NewHealthHandler(d.Detector, d.TTS)

	r.GET("/healthz", hh.Health)
	api := r.Group("/v1")
	api.POST("/analyze", ah.Upload)
	api.POST("/analyze/base64", ah.Base64)
	api.POST("/analyze-and-tts", ah.AnalyzeAndTTS)
	api.POST("/camera/analyze", ah.CameraAnalyze)
	api.POST("/camera/analyze-and-tts", ah.CameraTTS)
	api.POST("/tts", th.Synthesize)
	api.POST("/sessions", sh.Create)
	api.GET("/sessions/:id/summary", sh.Summary)
	r.GET("/v1/stream", wsh.WS)
	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Expose-Headers", "X-Metadata")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(nethttp.StatusNoContent)
			return
		}
		c.Next()
	}
}
