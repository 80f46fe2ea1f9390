package main

import (
	"io"
	"log"
	"os"

	"github.com/steveyiyo/virtualeyes-backend/internal/config"
	h "github.com/steveyiyo/virtualeyes-backend/internal/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/natefinch/lumberjack"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg)

	r, err := h.NewRouter(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("virtualeyes listening on :%s (detector=%s)", cfg.Port, cfg.DetectorBackend)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// setupLogging tees the standard logger and gin's request log into a
// rotating file when LOG_FILE is set.
func setupLogging(cfg config.Config) {
	if cfg.LogFile == "" {
		return
	}
	w := io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	})
	log.SetOutput(w)
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = w
}
