package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/steveyiyo/virtualeyes-backend/internal/core/camera"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/imaging"
	"github.com/steveyiyo/virtualeyes-backend/internal/core/tts"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: empty body", imaging.ErrInvalidImage), http.StatusBadRequest, "bad_request"},
		{imaging.ErrInvalidBase64, http.StatusBadRequest, "bad_request"},
		{tts.ErrEmptyText, http.StatusUnprocessableEntity, "missing_text"},
		{fmt.Errorf("%w: no voice", tts.ErrUnavailable), http.StatusNotImplemented, "not_implemented"},
		{&camera.UpstreamError{URL: "http://cam", Status: 404}, http.StatusBadGateway, "bad_gateway"},
		{errors.New("boom"), http.StatusBadRequest, "analysis_failed"},
	}
	for _, tc := range cases {
		status, code := classify(tc.err)
		if status != tc.status || code != tc.code {
			t.Errorf("classify(%v) = %d %s, want %d %s", tc.err, status, code, tc.status, tc.code)
		}
	}
}

func TestASCIIJSON(t *testing.T) {
	in := map[string]string{"t": "está a tu izquierda 🐕"}
	out := asciiJSON(in)
	for _, r := range out {
		if r > 0x7f {
			t.Fatalf("non-ascii rune in %q", out)
		}
	}
	var back map[string]string
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatal(err)
	}
	if back["t"] != in["t"] {
		t.Fatalf("round trip = %q", back["t"])
	}
}
