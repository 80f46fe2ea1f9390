package hints

import (
	"fmt"
	"strings"
)

const (
	PosLeft  = "a tu izquierda"
	PosFront = "al frente"
	PosRight = "a tu derecha"

	DistVeryNear = "muy cerca"
	DistNear     = "cerca"
	DistFar      = "lejos"

	NoElementsMessage = "No se detectaron elementos a tu alrededor."
)

// Position buckets a horizontal center. Both thirds boundaries count as front.
func Position(centerX, width float64) string {
	switch {
	case centerX < width/3:
		return PosLeft
	case centerX > 2*width/3:
		return PosRight
	default:
		return PosFront
	}
}

// Distance buckets the share of the frame a box covers. Boundaries fall into
// the farther bucket.
func Distance(ratio float64) string {
	switch {
	case ratio > 0.2:
		return DistVeryNear
	case ratio > 0.05:
		return DistNear
	default:
		return DistFar
	}
}

func (s Size) area() float64 {
	a := float64(s.Width) * float64(s.Height)
	if a <= 0 {
		return 1
	}
	return a
}

// Hints renders one phrase per detection, in input order.
func (e *Engine) Hints(dets []Detection, size Size) []string {
	out := make([]string, 0, len(dets))
	for _, d := range dets {
		out = append(out, e.render(d.Label, 1, d.Box.CenterX(), d.Box.Area()/size.area(), size))
	}
	return out
}

// Group aggregates detections that share a final label.
type Group struct {
	Label       string  `json:"label"`
	Count       int     `json:"count"`
	MeanCenterX float64 `json:"mean_center_x"`
	MeanRatio   float64 `json:"mean_ratio"`
}

// Groups keeps first-seen label order.
func (e *Engine) Groups(dets []Detection, size Size) []Group {
	idx := map[string]int{}
	var groups []Group
	for _, d := range dets {
		i, ok := idx[d.Label]
		if !ok {
			i = len(groups)
			idx[d.Label] = i
			groups = append(groups, Group{Label: d.Label})
		}
		g := &groups[i]
		g.Count++
		g.MeanCenterX += d.Box.CenterX()
		g.MeanRatio += d.Box.Area() / size.area()
	}
	for i := range groups {
		n := float64(groups[i].Count)
		groups[i].MeanCenterX /= n
		groups[i].MeanRatio /= n
	}
	return groups
}

// GroupPhrases renders one phrase per group, pluralized when it has more
// than one member.
func (e *Engine) GroupPhrases(dets []Detection, size Size) []string {
	groups := e.Groups(dets, size)
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, e.render(g.Label, g.Count, g.MeanCenterX, g.MeanRatio, size))
	}
	return out
}

// Speak composes the grouped sentence for a detection set.
func (e *Engine) Speak(dets []Detection, size Size) string {
	return Compose(e.GroupPhrases(dets, size))
}

// Compose wraps phrases into the final sentence.
func Compose(phrases []string) string {
	switch len(phrases) {
	case 0:
		return NoElementsMessage
	case 1:
		return "Frente a ti hay " + phrases[0] + "."
	default:
		return "Frente a ti hay: " + strings.Join(phrases, "; ")
	}
}

// render is shared by the per-detection and grouped outputs.
func (e *Engine) render(label string, n int, centerX, ratio float64, size Size) string {
	pos := Position(centerX, float64(size.Width))
	dist := Distance(ratio)
	art := e.t.article(label)
	if n <= 1 {
		return fmt.Sprintf("%s %s está %s y %s", art, label, pos, dist)
	}
	q := "varios"
	if art == "una" {
		q = "varias"
	}
	return fmt.Sprintf("%s %s están %s y %s", q, e.t.plural(label), pos, dist)
}
