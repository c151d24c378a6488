package analyzers

import (
	"fmt"
	"math"

	"github.com/maastricht-university/speech-mastery/patterns"
)

const (
	// minDurationMinutes keeps per-minute rates finite for very short clips.
	minDurationMinutes = 0.1

	fillerMomentMinCount  = 3
	hedgingMomentMinCount = 2
	upspeakPenalty        = 2.0
)

// FillerStats describes filler-word usage.
type FillerStats struct {
	Count     int            `json:"count" yaml:"count"`
	Words     map[string]int `json:"words" yaml:"words"`
	PerMinute float64        `json:"per_minute" yaml:"per_minute"`
}

// HedgingStats describes hedging-phrase usage.
type HedgingStats struct {
	Count     int            `json:"count" yaml:"count"`
	Phrases   map[string]int `json:"phrases" yaml:"phrases"`
	PerMinute float64        `json:"per_minute" yaml:"per_minute"`
}

// PowerResult is the power-dynamics (confidence) rubric.
type PowerResult struct {
	Score             float64
	Fillers           FillerStats
	Hedging           HedgingStats
	UpspeakIndicators int
	CriticalMoments   []CriticalMoment
}

// PowerDynamics scores verbal confidence from fillers, hedging and upspeak.
type PowerDynamics struct {
	prosody ProsodyAnalyzer
}

// NewPowerDynamics returns an analyzer using p for upspeak detection. A nil p
// disables upspeak detection.
func NewPowerDynamics(p ProsodyAnalyzer) *PowerDynamics {
	if p == nil {
		p = NoProsody{}
	}
	return &PowerDynamics{prosody: p}
}

func (a *PowerDynamics) Analyze(transcript string, durationSeconds float64, audio []byte) (*PowerResult, error) {
	if err := ValidateDuration(durationSeconds); err != nil {
		return nil, fmt.Errorf("power dynamics: %w", err)
	}
	res := &PowerResult{
		Score:   100,
		Fillers: FillerStats{Words: map[string]int{}},
		Hedging: HedgingStats{Phrases: map[string]int{}},
	}
	if isBlank(transcript) {
		return res, nil
	}

	ref := newTextRef(transcript, durationSeconds)
	fillers := patterns.Fillers.Scan(ref.lower)
	hedging := patterns.Hedging.Scan(ref.lower)

	minutes := math.Max(durationSeconds/60, minDurationMinutes)
	fillerRate := float64(fillers.Total()) / minutes
	hedgingRate := float64(hedging.Total()) / minutes

	// Prosody is best effort; an unsupported signal counts as no upspeak.
	upspeak, err := a.prosody.AnalyzeProsody(audio, transcript)
	if err != nil || upspeak < 0 {
		upspeak = 0
	}

	res.Fillers = FillerStats{Count: fillers.Total(), Words: fillers.Counts(), PerMinute: round2(fillerRate)}
	res.Hedging = HedgingStats{Count: hedging.Total(), Phrases: hedging.Counts(), PerMinute: round2(hedgingRate)}
	res.UpspeakIndicators = upspeak
	res.Score = PowerScore(fillerRate, hedgingRate, upspeak)
	res.CriticalMoments = powerMoments(ref, fillers, hedging)
	return res, nil
}

// PowerScore applies the tiered deductions to a starting score of 100.
func PowerScore(fillersPerMinute, hedgingPerMinute float64, upspeak int) float64 {
	score := 100.0
	score -= fillerPenalty(fillersPerMinute)
	score -= hedgingPenalty(hedgingPerMinute)
	score -= upspeakPenalty * float64(upspeak)
	return Round1(clampScore(score))
}

func fillerPenalty(perMinute float64) float64 {
	switch {
	case perMinute > 10:
		return 30
	case perMinute > 5:
		return 20
	case perMinute > 2:
		return 10
	case perMinute > 0:
		return 5
	}
	return 0
}

func hedgingPenalty(perMinute float64) float64 {
	switch {
	case perMinute > 5:
		return 25
	case perMinute > 3:
		return 15
	case perMinute > 1:
		return 8
	case perMinute > 0:
		return 3
	}
	return 0
}

func powerMoments(ref textRef, fillers, hedging patterns.Matches) []CriticalMoment {
	var out []CriticalMoment
	if top, ok := fillers.Top(); ok && top.Count > fillerMomentMinCount {
		out = append(out, CriticalMoment{
			Timestamp:  ref.at(top.First),
			Type:       MomentExcessiveFillers,
			Severity:   clampSeverity(top.Count),
			Context:    ref.quote(top.First, top.First+len(top.Phrase)),
			Suggestion: fmt.Sprintf("%q came up %d times. Replace it with a short, deliberate pause.", top.Phrase, top.Count),
		})
	}
	if top, ok := hedging.Top(); ok && top.Count > hedgingMomentMinCount {
		out = append(out, CriticalMoment{
			Timestamp:  ref.at(top.First),
			Type:       MomentHedging,
			Severity:   clampSeverity(top.Count + 2),
			Context:    ref.quote(top.First, top.First+len(top.Phrase)),
			Suggestion: fmt.Sprintf("%q came up %d times. State the point directly and back it with a reason.", top.Phrase, top.Count),
		})
	}
	sortByTimestamp(out)
	return out
}
