package types

type CreateSessionReq struct {
	Device map[string]string `json:"device"`
	Mode   string            `json:"mode"`
	Locale string            `json:"locale"`
}

type CreateSessionResp struct {
	SessionID string `json:"session_id"`
	WSURL     string `json:"ws_url"`
}

type AnalyzeBase64Req struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

type TTSReq struct {
	Text string `json:"text"`
}

// Metadata travels in the X-Metadata header next to streamed audio.
type Metadata struct {
	Hints      []string `json:"hints"`
	SpokenText string   `json:"spoken_text"`
}

// StreamFrame is a text frame sent by the app in live mode.
type StreamFrame struct {
	Type        string `json:"type"`
	ImageBase64 string `json:"image_base64"`
}

type SpokenEntry struct {
	T         int64  `json:"t"`
	Text      string `json:"text"`
	Objects   int    `json:"objects"`
	LatencyMs int64  `json:"latency_ms"`
}

type SummaryResp struct {
	SessionID      string        `json:"session_id"`
	Mode           string        `json:"mode"`
	LatencyP50Ms   int64         `json:"latency_ms_p50"`
	FramesAnalyzed int64         `json:"frames_analyzed"`
	History        []SpokenEntry `json:"history"`
}

type ErrorResp struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
