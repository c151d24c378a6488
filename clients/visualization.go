package clients

import (
	"context"
	"strings"
)

// --- Visualization ---

// TimelineReq plots critical moments over the recording.
type TimelineReq struct {
	Timestamps []float64 `json:"timestamps"`
	Severities []int     `json:"severities"`
	Labels     []string  `json:"labels"`
	Duration   float64   `json:"duration"`
	OutputDir  string    `json:"output_dir,omitempty"`
}

type TimelineResp struct{ Status, Path string }

func (h *HTTP) GenerateTimeline(ctx context.Context, url string, req TimelineReq) (*TimelineResp, error) {
	var out TimelineResp
	if err := h.postJSON(ctx, strings.TrimRight(url, "/")+"/generate-timeline", "viz timeline", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RadarReq plots one value per category on a radar chart.
type RadarReq struct {
	Categories  []string  `json:"categories"`
	Values      []float64 `json:"values"`
	SpeakerName string    `json:"speaker_name"`
	OutputDir   string    `json:"output_dir,omitempty"`
}

type RadarResp struct{ Status, Path string }

func (h *HTTP) GenerateRadar(ctx context.Context, url string, req RadarReq) (*RadarResp, error) {
	var out RadarResp
	if err := h.postJSON(ctx, strings.TrimRight(url, "/")+"/generate-radar", "viz radar", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
