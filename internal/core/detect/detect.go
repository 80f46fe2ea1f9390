package detect

import (
	"context"
	"encoding/json"
	"fmt"
)

// Detector runs object detection over a decoded image. Implementations are
// thin clients; the model itself lives outside this process.
type Detector interface {
	Name() string
	Detect(ctx context.Context, img Image) ([]Raw, error)
}

// Image is an uploaded picture together with its pixel size.
type Image struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Raw is one box as reported by a detector backend.
type Raw struct {
	ClassID    int     `json:"class_id"`
	ClassName  string  `json:"class_name,omitempty"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"box"`
}

// Name returns the English class name. A name reported by the backend wins;
// the COCO id table fills in when the backend sent only an id.
func (r Raw) Name() string {
	if r.ClassName != "" {
		return r.ClassName
	}
	return ClassName(r.ClassID)
}

// Box is an xyxy rectangle in pixel coordinates.
type Box struct {
	X1, Y1, X2, Y2 float64
}

func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.X1, b.Y1, b.X2, b.Y2})
}

func (b *Box) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 4 {
		return fmt.Errorf("box: want 4 coordinates, got %d", len(v))
	}
	b.X1, b.Y1, b.X2, b.Y2 = v[0], v[1], v[2], v[3]
	return nil
}

func (b Box) CenterX() float64 { return (b.X1 + b.X2) / 2 }

// Area never returns less than one square pixel.
func (b Box) Area() float64 {
	a := (b.X2 - b.X1) * (b.Y2 - b.Y1)
	if a < 1 {
		return 1
	}
	return a
}
