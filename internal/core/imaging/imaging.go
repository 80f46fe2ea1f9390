package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/steveyiyo/virtualeyes-backend/internal/core/detect"
)

var (
	ErrInvalidImage  = errors.New("invalid image")
	ErrInvalidBase64 = errors.New("invalid base64")
)

// Decode fully decodes the image so truncated or corrupt bodies are rejected
// here rather than by the detector. The original bytes are kept for upload.
func Decode(data []byte) (detect.Image, error) {
	if len(data) == 0 {
		return detect.Image{}, fmt.Errorf("%w: empty body", ErrInvalidImage)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return detect.Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return detect.Image{}, fmt.Errorf("%w: zero size", ErrInvalidImage)
	}
	return detect.Image{
		Data:   data,
		MIME:   "image/" + format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// DecodeBase64 accepts plain base64 (standard or URL alphabet, padded or
// not) and data: URIs.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		idx := strings.IndexByte(s, ',')
		if idx < 0 || !strings.Contains(s[:idx], ";base64") {
			return nil, fmt.Errorf("%w: malformed data URI", ErrInvalidBase64)
		}
		s = s[idx+1:]
	}
	if s == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidBase64)
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		if b, err := enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	return nil, ErrInvalidBase64
}
