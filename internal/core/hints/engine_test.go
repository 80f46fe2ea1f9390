package hints

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/steveyiyo/virtualeyes-backend/internal/core/detect"
)

func raw(id int, conf float64, b detect.Box) detect.Raw {
	return detect.Raw{ClassID: id, Confidence: conf, Box: b}
}

func TestTranslate(t *testing.T) {
	e := New(nil)
	box := detect.Box{X1: 0, Y1: 0, X2: 10, Y2: 10}
	cases := []struct {
		name     string
		in       detect.Raw
		ok       bool
		label    string
		base     string
		category Category
	}{
		{"below min", raw(16, 0.2499, box), false, "", "", ""},
		{"at min demoted", raw(16, 0.25, box), true, "animal", "perro", CategoryAnimal},
		{"confident animal", raw(16, 0.8, box), true, "perro", "perro", CategoryAnimal},
		{"at generic threshold", raw(15, 0.55, box), true, "gato", "gato", CategoryAnimal},
		{"low vehicle", raw(2, 0.4, box), true, "vehículo", "carro", CategoryVehicle},
		{"low furniture", raw(56, 0.3, box), true, "mueble", "silla", CategoryFurniture},
		{"low other keeps label", raw(0, 0.3, box), true, "persona", "persona", CategoryOther},
		{"backend name wins over id", detect.Raw{ClassID: 0, ClassName: "pothole", Confidence: 0.9, Box: box}, true, "pothole", "pothole", CategoryOther},
		{"untranslated passes through", detect.Raw{ClassID: -1, ClassName: "scooter", Confidence: 0.9, Box: box}, true, "scooter", "scooter", CategoryOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := e.Translate(tc.in)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if d.Label != tc.label || d.BaseLabel != tc.base || d.Category != tc.category {
				t.Fatalf("got %+v", d)
			}
			if d.Confidence != tc.in.Confidence || d.Box != tc.in.Box {
				t.Fatalf("confidence/box not carried over: %+v", d)
			}
		})
	}
}

func TestTranslateAllDropsLowConfidence(t *testing.T) {
	e := New(nil)
	box := detect.Box{X2: 10, Y2: 10}
	in := []detect.Raw{raw(0, 0.9, box), raw(16, 0.1, box), raw(2, 0.7, box), raw(15, 0.24, box)}
	out := e.TranslateAll(in)
	if len(out) != 2 || out[0].Label != "persona" || out[1].Label != "carro" {
		t.Fatalf("out = %+v", out)
	}
	for _, d := range out {
		if d.Confidence < MinConfidence {
			t.Fatalf("low confidence leaked: %+v", d)
		}
	}
	if got := e.TranslateAll(nil); got == nil || len(got) != 0 {
		t.Fatalf("nil input should give empty slice, got %#v", got)
	}
}

func TestPositionBoundaries(t *testing.T) {
	cases := []struct {
		cx   float64
		want string
	}{
		{0, PosLeft},
		{99.999, PosLeft},
		{100, PosFront},
		{150, PosFront},
		{200, PosFront},
		{200.001, PosRight},
		{300, PosRight},
	}
	for _, tc := range cases {
		if got := Position(tc.cx, 300); got != tc.want {
			t.Errorf("Position(%v, 300) = %q, want %q", tc.cx, got, tc.want)
		}
	}
}

func TestDistanceBoundaries(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{0.9, DistVeryNear},
		{0.2000001, DistVeryNear},
		{0.2, DistNear},
		{0.0500001, DistNear},
		{0.05, DistFar},
		{0, DistFar},
	}
	for _, tc := range cases {
		if got := Distance(tc.ratio); got != tc.want {
			t.Errorf("Distance(%v) = %q, want %q", tc.ratio, got, tc.want)
		}
	}
}

func TestHintsEmpty(t *testing.T) {
	e := New(nil)
	got := e.Hints(nil, Size{Width: 300, Height: 300})
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty slice, got %#v", got)
	}
	if s := e.Speak(nil, Size{Width: 300, Height: 300}); s != NoElementsMessage {
		t.Fatalf("speak = %q", s)
	}
}

func TestSingleDogEndToEnd(t *testing.T) {
	e := New(nil)
	size := Size{Width: 300, Height: 300}
	// 180x150 box covers 27000 of 90000 px, centered at x=90.
	box := detect.Box{X1: 0, Y1: 50, X2: 180, Y2: 200}
	a := e.Analyze([]detect.Raw{raw(16, 0.8, box)}, size)

	wantHint := "un perro está a tu izquierda y muy cerca"
	if !reflect.DeepEqual(a.Hints, []string{wantHint}) {
		t.Fatalf("hints = %#v", a.Hints)
	}
	if a.SpokenText != "Frente a ti hay un perro está a tu izquierda y muy cerca." {
		t.Fatalf("spoken = %q", a.SpokenText)
	}
}

func TestCatsSplitByConfidence(t *testing.T) {
	e := New(nil)
	size := Size{Width: 300, Height: 300}
	box := detect.Box{X1: 140, Y1: 0, X2: 160, Y2: 20}
	dets := e.TranslateAll([]detect.Raw{raw(15, 0.8, box), raw(15, 0.3, box)})

	groups := e.Groups(dets, size)
	if len(groups) != 2 {
		t.Fatalf("want 2 groups, got %+v", groups)
	}
	if groups[0].Label != "gato" || groups[1].Label != "animal" || groups[0].Count != 1 || groups[1].Count != 1 {
		t.Fatalf("groups = %+v", groups)
	}
	want := "Frente a ti hay: un gato está al frente y lejos; un animal está al frente y lejos"
	if got := e.Speak(dets, size); got != want {
		t.Fatalf("speak = %q", got)
	}
}

func TestGroupPluralization(t *testing.T) {
	e := New(nil)
	size := Size{Width: 300, Height: 100}
	dets := []Detection{
		{Label: "persona", Box: detect.Box{X1: 0, Y1: 0, X2: 20, Y2: 20}},
		{Label: "carro", Box: detect.Box{X1: 220, Y1: 0, X2: 300, Y2: 100}},
		{Label: "persona", Box: detect.Box{X1: 40, Y1: 0, X2: 60, Y2: 20}},
		{Label: "camión", Box: detect.Box{X1: 100, Y1: 0, X2: 200, Y2: 100}},
		{Label: "camión", Box: detect.Box{X1: 120, Y1: 0, X2: 180, Y2: 100}},
		{Label: "carro", Box: detect.Box{X1: 230, Y1: 0, X2: 300, Y2: 100}},
	}
	got := e.GroupPhrases(dets, size)
	want := []string{
		"varias personas están a tu izquierda y lejos",
		"varios carros están a tu derecha y muy cerca",
		"varios camiones están al frente y muy cerca",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v", got)
	}
}

func TestGroupMeans(t *testing.T) {
	e := New(nil)
	size := Size{Width: 100, Height: 100}
	dets := []Detection{
		{Label: "silla", Box: detect.Box{X1: 0, Y1: 0, X2: 10, Y2: 10}},
		{Label: "silla", Box: detect.Box{X1: 50, Y1: 0, X2: 90, Y2: 50}},
	}
	g := e.Groups(dets, size)
	if len(g) != 1 || g[0].Count != 2 {
		t.Fatalf("groups = %+v", g)
	}
	if g[0].MeanCenterX != 37.5 {
		t.Fatalf("mean cx = %v", g[0].MeanCenterX)
	}
	// (100 + 2000) / 2 / 10000
	if math.Abs(g[0].MeanRatio-0.105) > 1e-9 {
		t.Fatalf("mean ratio = %v", g[0].MeanRatio)
	}
}

func TestSpeakIsIdempotent(t *testing.T) {
	e := New(nil)
	size := Size{Width: 640, Height: 480}
	dets := e.TranslateAll([]detect.Raw{
		raw(0, 0.9, detect.Box{X1: 10, Y1: 10, X2: 200, Y2: 400}),
		raw(2, 0.6, detect.Box{X1: 400, Y1: 100, X2: 600, Y2: 300}),
		raw(0, 0.7, detect.Box{X1: 300, Y1: 50, X2: 340, Y2: 120}),
	})
	first := e.Speak(dets, size)
	if second := e.Speak(dets, size); first != second {
		t.Fatalf("speak not stable: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, "Frente a ti hay: ") {
		t.Fatalf("speak = %q", first)
	}
}

func TestZeroSizeDoesNotDivideByZero(t *testing.T) {
	e := New(nil)
	h := e.Hints([]Detection{{Label: "perro", Box: detect.Box{X2: 1, Y2: 1}}}, Size{})
	if len(h) != 1 || !strings.HasPrefix(h[0], "un perro está") {
		t.Fatalf("hints = %#v", h)
	}
}

func TestDemotedFurnitureSpeaksCategory(t *testing.T) {
	e := New(nil)
	size := Size{Width: 300, Height: 300}
	chair := raw(56, 0.3, detect.Box{X1: 120, Y1: 0, X2: 180, Y2: 30})
	got := e.Speak(e.TranslateAll([]detect.Raw{chair}), size)
	want := "Frente a ti hay un mueble está al frente y lejos."
	if got != want {
		t.Fatalf("spoken = %q, want %q", got, want)
	}

	two := []detect.Raw{chair, raw(57, 0.4, detect.Box{X1: 130, Y1: 0, X2: 170, Y2: 30})}
	got = e.Speak(e.TranslateAll(two), size)
	want = "Frente a ti hay varios muebles están al frente y lejos."
	if got != want {
		t.Fatalf("spoken = %q, want %q", got, want)
	}
}
