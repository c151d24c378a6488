package orchestrator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maastricht-university/speech-mastery/analyzers"
	"github.com/maastricht-university/speech-mastery/clients"
)

func chartResult() *AnalysisResult {
	return &AnalysisResult{
		PowerDynamicsScore:       80,
		LinguisticAuthorityScore: 70,
		VocalCommandScore:        90,
		PersuasionInfluenceScore: 60,
		CriticalMoments: []analyzers.CriticalMoment{
			{Timestamp: 30, Type: analyzers.MomentHedging, Severity: 9},
			{Timestamp: 5, Type: analyzers.MomentExcessiveFillers, Severity: 7},
		},
	}
}

func TestRadarRequest(t *testing.T) {
	req := RadarRequest(chartResult(), "sam", "out")
	if len(req.Categories) != 4 || len(req.Values) != 4 {
		t.Fatalf("req = %+v", req)
	}
	if req.Values[0] != 80 || req.Values[3] != 60 || req.SpeakerName != "sam" {
		t.Fatalf("req = %+v", req)
	}
}

func TestTimelineRequestOrdersByTime(t *testing.T) {
	res := chartResult()
	req := TimelineRequest(res, 60, "")
	if req.Timestamps[0] != 5 || req.Labels[0] != "excessive_fillers" || req.Severities[1] != 9 {
		t.Fatalf("req = %+v", req)
	}
	if res.CriticalMoments[0].Timestamp != 30 {
		t.Fatal("TimelineRequest reordered the result's moments")
	}
}

func TestCharts(t *testing.T) {
	var radar clients.RadarReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/generate-radar":
			_ = json.NewDecoder(r.Body).Decode(&radar)
			_, _ = io.WriteString(w, `{"status":"ok","path":"radar.png"}`)
		case "/generate-timeline":
			_, _ = io.WriteString(w, `{"status":"ok","path":"timeline.png"}`)
		}
	}))
	defer srv.Close()

	r, tl, err := Charts(context.Background(), clients.NewHTTP(time.Second), srv.URL, chartResult(), 60, "sam", "")
	if err != nil {
		t.Fatalf("Charts() error = %v", err)
	}
	if r != "radar.png" || tl != "timeline.png" || radar.Values[2] != 90 {
		t.Fatalf("radar=%q timeline=%q req=%+v", r, tl, radar)
	}
}
