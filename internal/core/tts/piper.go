package tts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type Config struct {
	BinaryPath string
	ModelPath  string
	// TempDir holds the scratch WAV files; empty means os.TempDir().
	TempDir string
}

// Piper runs the piper CLI once per request.
type Piper struct {
	binaryPath string
	modelPath  string
	tempDir    string
}

func NewPiper(cfg Config) (*Piper, error) {
	if cfg.BinaryPath == "" {
		return nil, fmt.Errorf("piper binary path is required")
	}
	bin, err := exec.LookPath(cfg.BinaryPath)
	if err != nil {
		return nil, fmt.Errorf("piper binary not found: %w", err)
	}
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model path is required")
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}
	return &Piper{binaryPath: bin, modelPath: cfg.ModelPath, tempDir: cfg.TempDir}, nil
}

// Synthesize writes into a scratch file and removes it on every path.
func (p *Piper) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f, err := os.CreateTemp(p.tempDir, "tts-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.binaryPath, "--model", p.modelPath, "--output_file", path)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("piper failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("piper produced no audio")
	}
	return audio, nil
}
