package detect

// cocoClasses is the id -> English name table of the COCO-80 models served by
// the inference sidecar.
var cocoClasses = [...]string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck", "boat",
	"traffic light", "fire hydrant", "stop sign", "parking meter", "bench", "bird", "cat",
	"dog", "horse", "sheep", "cow", "elephant", "bear", "zebra", "giraffe", "backpack",
	"umbrella", "handbag", "tie", "suitcase", "frisbee", "skis", "snowboard", "sports ball",
	"kite", "baseball bat", "baseball glove", "skateboard", "surfboard", "tennis racket",
	"bottle", "wine glass", "cup", "fork", "knife", "spoon", "bowl", "banana", "apple",
	"sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut", "cake", "chair",
	"couch", "potted plant", "bed", "dining table", "toilet", "tv", "laptop", "mouse",
	"remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink",
	"refrigerator", "book", "clock", "vase", "scissors", "teddy bear", "hair drier",
	"toothbrush",
}

// ClassName returns "" for ids outside the table.
func ClassName(id int) string {
	if id < 0 || id >= len(cocoClasses) {
		return ""
	}
	return cocoClasses[id]
}

// ClassID is the reverse lookup, -1 when the name is unknown.
func ClassID(name string) int {
	for i, n := range cocoClasses {
		if n == name {
			return i
		}
	}
	return -1
}

func ClassNames() []string {
	out := make([]string, len(cocoClasses))
	copy(out, cocoClasses[:])
	return out
}
