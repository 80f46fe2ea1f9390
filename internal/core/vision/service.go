package vision

import (
	"context"
	"fmt"

	"github.com/steveyiyo/virtualeyes-backend/internal/core/detect"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/hints"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/imaging"
)

// Service runs the image -> detector -> hints pipeline for one request.
type Service struct {
	Detector detect.Detector
	Engine   *hints.Engine
}

func NewService(d detect.Detector, e *hints.Engine) *Service {
	return &Service{Detector: d, Engine: e}
}

func (s *Service) Analyze(ctx context.Context, data []byte) (hints.Analysis, error) {
	img, err := imaging.Decode(data)
	if err != nil {
		return hints.Analysis{}, err
	}
	raw, err := s.Detector.Detect(ctx, img)
	if err != nil {
		return hints.Analysis{}, fmt.Errorf("error analizando imagen: %w", err)
	}
	return s.Engine.Analyze(raw, hints.Size{Width: img.Width, Height: img.Height}), nil
}
