package analyzers

import (
	"fmt"
	"math"

	"github.com/maastricht-university/speech-mastery/patterns"
)

// Bands and weights of the vocal-command rubric.
const (
	OptimalWPMMin   = 120.0
	OptimalWPMMax   = 150.0
	OptimalPauseMin = 0.5
	OptimalPauseMax = 1.5

	// Points lost per WPM below and above the band.
	slowWPMCost   = 1.0
	rushedWPMCost = 1.5
	// Points lost per second outside the pause band.
	pauseCost = 50.0
	// Pace variance (coefficient of variation, %) earns 2.5 points per unit
	// on top of 50, saturating at 20%.
	varianceFloor = 50.0
	varianceGain  = 2.5
	monotoneBelow = 10.0

	wpmWeight      = 0.60
	pauseWeight    = 0.25
	varianceWeight = 0.15
)

// VocalResult is the vocal-command (delivery) rubric.
type VocalResult struct {
	Score                float64
	WordsPerMinute       float64
	AveragePauseDuration float64
	PaceVariance         float64
	WordCount            int
	PauseCount           int
	CriticalMoments      []CriticalMoment
}

// VocalCommand scores speaking pace and, when audio analysis is available,
// pausing and pace variation.
type VocalCommand struct {
	pauses PauseAnalyzer
}

// NewVocalCommand returns an analyzer using p for pause statistics. A nil p
// leaves pause and variance scoring neutral.
func NewVocalCommand(p PauseAnalyzer) *VocalCommand {
	if p == nil {
		p = NoPauses{}
	}
	return &VocalCommand{pauses: p}
}

func (a *VocalCommand) Analyze(transcript string, durationSeconds float64, audio []byte) (*VocalResult, error) {
	if err := ValidateDuration(durationSeconds); err != nil {
		return nil, fmt.Errorf("vocal command: %w", err)
	}
	res := &VocalResult{Score: 100}
	if isBlank(transcript) {
		return res, nil
	}

	words := patterns.WordCount(transcript)
	wpm := WordsPerMinute(words, durationSeconds)

	stats, err := a.pauses.AnalyzePauses(audio, transcript)
	if err != nil {
		stats = PauseStats{}
	}

	res.WordCount = words
	res.WordsPerMinute = Round1(wpm)
	if stats.Available {
		res.AveragePauseDuration = round2(stats.AverageDuration)
		res.PaceVariance = round2(stats.PaceVariance)
		res.PauseCount = stats.PauseCount
	}
	res.Score = VocalScore(wpm, stats)
	res.CriticalMoments = vocalMoments(transcript, durationSeconds, wpm, stats)
	return res, nil
}

// WordsPerMinute is words / (seconds / 60).
func WordsPerMinute(words int, durationSeconds float64) float64 {
	return float64(words) / (durationSeconds / 60)
}

// VocalScore weights the WPM, pause and variance components. Components
// without data are left out and the remaining weights renormalised.
func VocalScore(wpm float64, stats PauseStats) float64 {
	total := wpmWeight * wpmComponent(wpm)
	weight := wpmWeight
	if stats.Available {
		total += pauseWeight*pauseComponent(stats.AverageDuration) + varianceWeight*varianceComponent(stats.PaceVariance)
		weight += pauseWeight + varianceWeight
	}
	return Round1(clampScore(total / weight))
}

func wpmComponent(wpm float64) float64 {
	switch {
	case wpm < OptimalWPMMin:
		return clampScore(100 - (OptimalWPMMin-wpm)*slowWPMCost)
	case wpm > OptimalWPMMax:
		return clampScore(100 - (wpm-OptimalWPMMax)*rushedWPMCost)
	}
	return 100
}

func pauseComponent(avg float64) float64 {
	switch {
	case avg < OptimalPauseMin:
		return clampScore(100 - (OptimalPauseMin-avg)*pauseCost)
	case avg > OptimalPauseMax:
		return clampScore(100 - (avg-OptimalPauseMax)*pauseCost)
	}
	return 100
}

func varianceComponent(variance float64) float64 {
	return math.Min(100, varianceFloor+varianceGain*math.Max(0, variance))
}

func vocalMoments(transcript string, duration, wpm float64, stats PauseStats) []CriticalMoment {
	var out []CriticalMoment
	opening := patterns.Snippet(transcript, 0, 0, 2*contextRadius)
	switch {
	case wpm > OptimalWPMMax:
		out = append(out, CriticalMoment{
			Type:       MomentRushedPace,
			Severity:   severityPast(wpm, OptimalWPMMax, 15),
			Context:    opening,
			Suggestion: fmt.Sprintf("Pace averaged %.0f words per minute. Slow toward %.0f-%.0f and let key points land.", wpm, OptimalWPMMin, OptimalWPMMax),
		})
	case wpm < OptimalWPMMin:
		out = append(out, CriticalMoment{
			Type:       MomentSlowPace,
			Severity:   severityPast(wpm, OptimalWPMMin, 15),
			Context:    opening,
			Suggestion: fmt.Sprintf("Pace averaged %.0f words per minute. Tighten delivery toward %.0f-%.0f.", wpm, OptimalWPMMin, OptimalWPMMax),
		})
	}
	if !stats.Available {
		return out
	}

	if avg := stats.AverageDuration; avg < OptimalPauseMin || avg > OptimalPauseMax {
		at := 0.0
		for _, p := range stats.Pauses {
			if p.Duration < OptimalPauseMin || p.Duration > OptimalPauseMax {
				at = Round1(math.Min(p.Start, duration))
				break
			}
		}
		bound := OptimalPauseMin
		if avg > OptimalPauseMax {
			bound = OptimalPauseMax
		}
		out = append(out, CriticalMoment{
			Timestamp:  at,
			Type:       MomentPauseLength,
			Severity:   severityPast(avg, bound, 0.25),
			Context:    fmt.Sprintf("%d pauses averaging %.2fs", stats.PauseCount, avg),
			Suggestion: fmt.Sprintf("Aim for %.1f-%.1f second pauses before and after key points.", OptimalPauseMin, OptimalPauseMax),
		})
	}
	if stats.PaceVariance < monotoneBelow {
		out = append(out, CriticalMoment{
			Type:       MomentMonotonePace,
			Severity:   severityPast(stats.PaceVariance, monotoneBelow, 2),
			Context:    opening,
			Suggestion: "Delivery held one speed throughout. Slow down for emphasis and speed up through context.",
		})
	}
	sortByTimestamp(out)
	return out
}
