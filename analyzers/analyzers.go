// Package analyzers implements the four speech rubrics. Every analyzer is a
// pure function of its inputs: no I/O, no shared mutable state, so they can
// run concurrently over the same transcript.
package analyzers

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/maastricht-university/speech-mastery/patterns"
)

// ErrInvalidDuration is returned for a non-positive (or NaN/Inf) duration.
var ErrInvalidDuration = errors.New("duration must be a positive number of seconds")

// MomentType names the kind of issue a critical moment reports.
type MomentType string

const (
	MomentExcessiveFillers MomentType = "excessive_fillers"
	MomentHedging          MomentType = "hedging"
	MomentPassiveVoice     MomentType = "passive_voice"
	MomentLongSentences    MomentType = "long_sentences"
	MomentShortSentences   MomentType = "short_sentences"
	MomentJargonOveruse    MomentType = "jargon_overuse"
	MomentRushedPace       MomentType = "rushed_pace"
	MomentSlowPace         MomentType = "slow_pace"
	MomentPauseLength      MomentType = "pause_length"
	MomentMonotonePace     MomentType = "monotone_pace"
	MomentWeakStructure    MomentType = "weak_structure"
	MomentNoCallToAction   MomentType = "missing_call_to_action"
	MomentNoEvidence       MomentType = "missing_evidence"
	MomentLogicalFallacy   MomentType = "logical_fallacy"
)

// CriticalMoment is one timestamped, actionable issue. Severity runs 1..10.
type CriticalMoment struct {
	Timestamp  float64    `json:"timestamp" yaml:"timestamp"`
	Type       MomentType `json:"type" yaml:"type"`
	Severity   int        `json:"severity" yaml:"severity"`
	Context    string     `json:"context" yaml:"context"`
	Suggestion string     `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// contextRadius is how many characters of surrounding text a moment quotes.
const contextRadius = 40

// ValidateDuration rejects durations that cannot be used as a divisor.
func ValidateDuration(seconds float64) error {
	if !(seconds > 0) || math.IsInf(seconds, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidDuration, seconds)
	}
	return nil
}

// isBlank reports whether transcript holds no words. Whitespace and bare
// punctuation count as silence.
func isBlank(transcript string) bool {
	return patterns.WordCount(transcript) == 0
}

// EstimateTimestamp maps a character position to seconds assuming a uniform
// speaking rate over the recording: (offset / length) · duration, rounded to
// one decimal.
func EstimateTimestamp(charOffset, charLength int, durationSeconds float64) float64 {
	if charLength <= 0 || charOffset <= 0 {
		return 0
	}
	return Round1(float64(charOffset) / float64(charLength) * durationSeconds)
}

// textRef ties the lowercased scan text to the original for quoting.
type textRef struct {
	original string
	lower    string
	length   int
	duration float64
}

func newTextRef(transcript string, duration float64) textRef {
	lower := patterns.Normalize(transcript)
	return textRef{
		original: transcript,
		lower:    lower,
		length:   utf8.RuneCountInString(lower),
		duration: duration,
	}
}

// at returns the estimated timestamp of a byte offset in lower.
func (r textRef) at(byteOffset int) float64 {
	return EstimateTimestamp(patterns.CharOffset(r.lower, byteOffset), r.length, r.duration)
}

// quote returns the original text around the byte range [start, end) of lower.
func (r textRef) quote(start, end int) string {
	return patterns.Snippet(r.original,
		patterns.CharOffset(r.lower, start),
		patterns.CharOffset(r.lower, end),
		contextRadius)
}

// Round1 rounds half away from zero to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func clampScore(x float64) float64 {
	return math.Max(0, math.Min(100, x))
}

func clampSeverity(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

// severityPast scales how far value is past threshold into 1..10, one point
// per step.
func severityPast(value, threshold, step float64) int {
	return clampSeverity(int(math.Ceil(math.Abs(value-threshold) / step)))
}

func sortByTimestamp(moments []CriticalMoment) {
	sort.SliceStable(moments, func(i, j int) bool {
		return moments[i].Timestamp < moments[j].Timestamp
	})
}
