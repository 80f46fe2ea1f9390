package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port       string
	PublicHost string
	TLS        bool
	MaxUpload  int64

	DetectorBackend string
	DetectorURL     string
	GeminiAPIKey    string
	GeminiModel     string

	CameraURL string

	PiperBin   string
	PiperModel string

	TablesPath string
	SessionTTL time.Duration

	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func Load() Config {
	port := getenv("PORT", "8080")
	return Config{
		Port:       port,
		PublicHost: getenv("PUBLIC_HOST", "localhost:"+port),
		TLS:        os.Getenv("TLS") == "1",
		MaxUpload:  int64(getint("MAX_UPLOAD_MB", 10)) << 20,

		DetectorBackend: getenv("DETECTOR_BACKEND", "http"),
		DetectorURL:     getenv("DETECTOR_URL", "http://localhost:5000/predict"),
		GeminiAPIKey:    getenv("GEMINI_API_KEY", ""),
		GeminiModel:     getenv("GEMINI_MODEL", "gemini-2.5-flash"),

		CameraURL: getenv("CAMERA_URL", "http://192.168.4.1/capture"),

		PiperBin:   getenv("PIPER_BIN", "piper"),
		PiperModel: getenv("PIPER_MODEL", "es_ES-davefx-medium.onnx"),

		TablesPath: getenv("HINTS_TABLES_PATH", ""),
		SessionTTL: time.Duration(getint("SESSION_TTL_MIN", 30)) * time.Minute,

		LogFile:       getenv("LOG_FILE", ""),
		LogMaxSizeMB:  getint("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups: getint("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getint("LOG_MAX_AGE_DAYS", 14),
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return d
	}
	return n
}
