package gemini

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/steveyiyo/virtualeyes-backend/internal/core/detect"
)

// Client is a detect.Detector backed by Gemini's bounding-box output.
type Client struct {
	c     *genai.Client
	model string
}

func New(apiKey, model string) (*Client, error) {
	tr := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		TLSClientConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
		ForceAttemptHTTP2: false,
		MaxIdleConns:      100,
		IdleConnTimeout:   90 * time.Second,
	}
	hc := &http.Client{Transport: tr, Timeout: 30 * time.Second}
	reqTimeout := 15 * time.Second
	cl, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: hc,
		HTTPOptions: genai.HTTPOptions{
			APIVersion: "v1beta",
			Timeout:    &reqTimeout,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Client{c: cl, model: model}, nil
}

func (g *Client) Name() string { return "gemini" }

func (g *Client) Close() error { return nil }

// box is one element of the model answer. box_2d is [ymin, xmin, ymax, xmax]
// normalized to 0..1000.
type box struct {
	Label      string    `json:"label"`
	Box2D      []float64 `json:"box_2d"`
	Confidence float64   `json:"confidence"`
}

func (g *Client) Detect(ctx context.Context, img detect.Image) ([]detect.Raw, error) {
	parts := []*genai.Part{
		{Text: prompt},
		{InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIME}},
	}

	temp := float32(0)
	maxTok := int32(4096)
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"label":      {Type: genai.TypeString, Enum: detect.ClassNames()},
					"box_2d":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeNumber}},
					"confidence": {Type: genai.TypeNumber},
				},
				Required: []string{"label", "box_2d", "confidence"},
			},
		},
		Temperature:     &temp,
		MaxOutputTokens: maxTok,
	}

	raw, err := g.callOnce(ctx, parts, cfg)
	if err != nil {
		return nil, err
	}
	boxes, err := parseBoxes(raw)
	if err != nil {
		return nil, err
	}
	return toRaw(boxes, img.Width, img.Height), nil
}

func (g *Client) callOnce(ctx context.Context, parts []*genai.Part, cfg *genai.GenerateContentConfig) (string, error) {
	var lastErr error
	for i := 0; i < 3; i++ {
		resp, err := g.c.Models.GenerateContent(ctx, g.model, []*genai.Content{{Parts: parts}}, cfg)
		if err != nil {
			lastErr = err
			if retriable(err) {
				time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
				continue
			}
			return "", err
		}
		if t := strings.TrimSpace(resp.Text()); t != "" {
			return t, nil
		}
		lastErr = errors.New("empty response")
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return "", lastErr
}

func parseBoxes(raw string) ([]box, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	var out []box
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toRaw(boxes []box, w, h int) []detect.Raw {
	out := make([]detect.Raw, 0, len(boxes))
	for _, b := range boxes {
		if len(b.Box2D) != 4 {
			continue
		}
		ymin, xmin, ymax, xmax := b.Box2D[0], b.Box2D[1], b.Box2D[2], b.Box2D[3]
		if xmax <= xmin || ymax <= ymin {
			continue
		}
		out = append(out, detect.Raw{
			ClassID:    detect.ClassID(b.Label),
			ClassName:  b.Label,
			Confidence: clamp01(b.Confidence),
			Box: detect.Box{
				X1: xmin * float64(w) / 1000,
				Y1: ymin * float64(h) / 1000,
				X2: xmax * float64(w) / 1000,
				Y2: ymax * float64(h) / 1000,
			},
		})
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func retriable(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "unexpected EOF") ||
		strings.Contains(s, "timeout") ||
		strings.Contains(s, "RST_STREAM") ||
		strings.Contains(s, "connection reset")
}

const prompt = `Detect the objects in this image that matter to a pedestrian. Only use labels from the allowed list.
Return a JSON array. Each item: {"label": string, "box_2d": [ymin, xmin, ymax, xmax] normalized to 0-1000, "confidence": number between 0 and 1}.
Return [] when nothing relevant is visible.`
