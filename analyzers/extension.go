package analyzers

import "github.com/maastricht-university/speech-mastery/patterns"

// ProsodyAnalyzer counts rising-intonation (upspeak) instances in the audio.
// Implementations must return 0 when audio is absent or unsupported.
type ProsodyAnalyzer interface {
	AnalyzeProsody(audio []byte, transcript string) (int, error)
}

// NoProsody is used until a real pitch tracker exists.
type NoProsody struct{}

func (NoProsody) AnalyzeProsody([]byte, string) (int, error) { return 0, nil }

// Pause is one silent segment of the recording.
type Pause struct {
	Start    float64 `json:"start" yaml:"start"`
	Duration float64 `json:"duration" yaml:"duration"`
}

// PauseStats is the outcome of silence-segment analysis. When Available is
// false the other fields are meaningless and scoring treats pauses and pace
// variance as neutral.
type PauseStats struct {
	Available       bool
	AverageDuration float64
	TotalPauseTime  float64
	PauseCount      int
	Pauses          []Pause
	// PaceVariance is the coefficient of variation of speech-segment pace,
	// in percent. Higher means more varied delivery.
	PaceVariance float64
}

// PauseAnalyzer extracts pause statistics from raw audio.
type PauseAnalyzer interface {
	AnalyzePauses(audio []byte, transcript string) (PauseStats, error)
}

// NoPauses reports pause statistics as unavailable.
type NoPauses struct{}

func (NoPauses) AnalyzePauses([]byte, string) (PauseStats, error) { return PauseStats{}, nil }

// Fallacy is a detected logical-fallacy cue. Offset is a character offset
// into the transcript.
type Fallacy struct {
	Cue    string `json:"cue" yaml:"cue"`
	Count  int    `json:"count" yaml:"count"`
	Offset int    `json:"offset" yaml:"offset"`
}

// FallacyDetector finds logical-fallacy patterns in a transcript.
type FallacyDetector interface {
	DetectFallacies(transcript string) []Fallacy
}

// NoFallacies detects nothing.
type NoFallacies struct{}

func (NoFallacies) DetectFallacies(string) []Fallacy { return nil }

// CueFallacyDetector flags stock fallacy phrasings from patterns.FallacyCues.
type CueFallacyDetector struct{}

func (CueFallacyDetector) DetectFallacies(transcript string) []Fallacy {
	lower := patterns.Normalize(transcript)
	var out []Fallacy
	for _, h := range patterns.FallacyCues.Scan(lower) {
		if h.Count == 0 {
			continue
		}
		out = append(out, Fallacy{
			Cue:    h.Phrase,
			Count:  h.Count,
			Offset: patterns.CharOffset(lower, h.First),
		})
	}
	return out
}
