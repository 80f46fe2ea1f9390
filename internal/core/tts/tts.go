package tts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
)

var (
	// ErrUnavailable means no speech engine can run in this environment.
	ErrUnavailable = errors.New("tts engine unavailable")
	ErrEmptyText   = errors.New("text is empty")
)

// Synthesizer turns UTF-8 text into WAV audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Factory builds the engine on first use.
type Factory func() (Synthesizer, error)

// Service owns the speech engine. The factory runs at most once; if it fails
// the service stays unavailable until the process restarts.
type Service struct {
	factory Factory

	once    sync.Once
	engine  Synthesizer
	initErr error
}

func NewService(f Factory) *Service {
	return &Service{factory: f}
}

func (s *Service) init() {
	s.once.Do(func() {
		if s.factory == nil {
			s.initErr = errors.New("no engine configured")
		} else {
			s.engine, s.initErr = s.factory()
		}
		if s.initErr != nil {
			log.Printf("tts: engine init failed: %v", s.initErr)
		}
	})
}

// Available forces initialization and reports whether it succeeded.
func (s *Service) Available() bool {
	s.init()
	return s.initErr == nil
}

func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	s.init()
	if s.initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, s.initErr)
	}
	return s.engine.Synthesize(ctx, text)
}
