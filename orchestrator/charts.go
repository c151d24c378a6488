package orchestrator

import (
	"context"

	"github.com/maastricht-university/speech-mastery/clients"
)

// RubricNames labels the four rubric scores, in radar order.
var RubricNames = []string{"Power Dynamics", "Linguistic Authority", "Vocal Command", "Persuasion & Influence"}

func RadarRequest(res *AnalysisResult, speaker, outDir string) clients.RadarReq {
	return clients.RadarReq{
		Categories: RubricNames,
		Values: []float64{
			res.PowerDynamicsScore,
			res.LinguisticAuthorityScore,
			res.VocalCommandScore,
			res.PersuasionInfluenceScore,
		},
		SpeakerName: speaker,
		OutputDir:   outDir,
	}
}

// TimelineRequest lays the critical moments out in time order.
func TimelineRequest(res *AnalysisResult, durationSeconds float64, outDir string) clients.TimelineReq {
	req := clients.TimelineReq{
		Timestamps: []float64{},
		Severities: []int{},
		Labels:     []string{},
		Duration:   durationSeconds,
		OutputDir:  outDir,
	}
	moments := append(res.CriticalMoments[:0:0], res.CriticalMoments...)
	sortByTime(moments)
	for _, m := range moments {
		req.Timestamps = append(req.Timestamps, m.Timestamp)
		req.Severities = append(req.Severities, m.Severity)
		req.Labels = append(req.Labels, string(m.Type))
	}
	return req
}

// Charts asks the visualization service for the radar and timeline charts and
// returns their paths.
func Charts(ctx context.Context, h *clients.HTTP, url string, res *AnalysisResult, durationSeconds float64, speaker, outDir string) (radar, timeline string, err error) {
	rr, err := h.GenerateRadar(ctx, url, RadarRequest(res, speaker, outDir))
	if err != nil {
		return "", "", err
	}
	tr, err := h.GenerateTimeline(ctx, url, TimelineRequest(res, durationSeconds, outDir))
	if err != nil {
		return rr.Path, "", err
	}
	return rr.Path, tr.Path, nil
}
