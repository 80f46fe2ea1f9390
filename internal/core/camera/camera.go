package camera

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// Timeout bounds a single snapshot request.
const Timeout = 5 * time.Second

// UpstreamError reports a camera that could not be reached or did not answer
// with a JPEG.
type UpstreamError struct {
	URL         string
	Status      int
	ContentType string
	Err         error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("camera %s unreachable: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("camera %s answered status=%d content-type=%q", e.URL, e.Status, e.ContentType)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client pulls snapshots from an ESP32-CAM style endpoint.
type Client struct {
	URL string
	hc  *http.Client
}

func New(url string) *Client {
	return &Client{URL: url, hc: &http.Client{Timeout: Timeout}}
}

func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, &UpstreamError{URL: c.URL, Err: err}
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &UpstreamError{URL: c.URL, Err: err}
	}
	defer resp.Body.Close()

	ct := resp.Header.Get("Content-Type")
	mt, _, _ := mime.ParseMediaType(ct)
	if resp.StatusCode != http.StatusOK || mt != "image/jpeg" {
		return nil, &UpstreamError{URL: c.URL, Status: resp.StatusCode, ContentType: ct}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{URL: c.URL, Status: resp.StatusCode, ContentType: ct, Err: err}
	}
	return b, nil
}
