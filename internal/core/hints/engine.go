package hints

import (
	"github.com/steveyiyo/virtualeyes-backend/internal/core/detect"
)

const (
	// MinConfidence drops detections below it.
	MinConfidence = 0.25
	// GenericThreshold demotes categorized labels below it to their category.
	GenericThreshold = 0.55
)

// Detection is a translated, categorized detector box.
type Detection struct {
	Label      string     `json:"label"`
	BaseLabel  string     `json:"base_label"`
	Category   Category   `json:"category"`
	Confidence float64    `json:"confidence"`
	Box        detect.Box `json:"box"`
}

// Size is the pixel size of the analyzed image.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Engine struct {
	t *Tables
}

func New(t *Tables) *Engine {
	if t == nil {
		t = DefaultTables()
	}
	return &Engine{t: t}
}

// Translate turns one detector box into a Detection. ok is false when the
// box is below MinConfidence.
func (e *Engine) Translate(r detect.Raw) (Detection, bool) {
	base := e.t.translate(r.Name())
	if r.Confidence < MinConfidence {
		return Detection{}, false
	}
	cat := e.t.category(base)
	label := base
	if r.Confidence < GenericThreshold && cat != CategoryOther {
		label = e.t.categoryLabel(cat)
	}
	return Detection{
		Label:      label,
		BaseLabel:  base,
		Category:   cat,
		Confidence: r.Confidence,
		Box:        r.Box,
	}, true
}

// TranslateAll keeps detector order and never returns nil.
func (e *Engine) TranslateAll(raw []detect.Raw) []Detection {
	out := make([]Detection, 0, len(raw))
	for _, r := range raw {
		if d, ok := e.Translate(r); ok {
			out = append(out, d)
		}
	}
	return out
}

// Analysis is everything the handlers report for one image.
type Analysis struct {
	Size       Size        `json:"image"`
	Objects    []Detection `json:"objects"`
	Hints      []string    `json:"hints"`
	Groups     []string    `json:"groups"`
	SpokenText string      `json:"spoken_text"`
}

func (e *Engine) Analyze(raw []detect.Raw, size Size) Analysis {
	dets := e.TranslateAll(raw)
	groups := e.GroupPhrases(dets, size)
	return Analysis{
		Size:       size,
		Objects:    dets,
		Hints:      e.Hints(dets, size),
		Groups:     groups,
		SpokenText: Compose(groups),
	}
}
