package orchestrator

import "github.com/maastricht-university/speech-mastery/analyzers"

// Input is one request to score a speech. A nil Transcript means the
// transcript must be obtained from AudioPath through the engine's Transcriber.
type Input struct {
	Transcript      *string
	DurationSeconds float64
	Audio           []byte
	AudioPath       string
}

// Patterns groups the raw phrase counts behind the scores.
type Patterns struct {
	FillerWords        map[string]int          `json:"filler_words" yaml:"filler_words"`
	Hedging            map[string]int          `json:"hedging" yaml:"hedging"`
	PersuasionKeywords analyzers.KeywordCounts `json:"persuasion_keywords" yaml:"persuasion_keywords"`
}

// AnalysisResult is the flat, serialisable outcome of one analysis.
type AnalysisResult struct {
	Transcript string `json:"transcript" yaml:"transcript"`

	OverallScore             float64 `json:"overall_score" yaml:"overall_score"`
	PowerDynamicsScore       float64 `json:"power_dynamics_score" yaml:"power_dynamics_score"`
	LinguisticAuthorityScore float64 `json:"linguistic_authority_score" yaml:"linguistic_authority_score"`
	VocalCommandScore        float64 `json:"vocal_command_score" yaml:"vocal_command_score"`
	PersuasionInfluenceScore float64 `json:"persuasion_influence_score" yaml:"persuasion_influence_score"`

	// power dynamics
	FillerWordsCount     int     `json:"filler_words_count" yaml:"filler_words_count"`
	FillerWordsPerMinute float64 `json:"filler_words_per_minute" yaml:"filler_words_per_minute"`
	HedgingCount         int     `json:"hedging_count" yaml:"hedging_count"`
	UpspeakIndicators    int     `json:"upspeak_indicators" yaml:"upspeak_indicators"`

	// linguistic authority
	PassiveVoiceRatio     float64 `json:"passive_voice_ratio" yaml:"passive_voice_ratio"`
	AverageSentenceLength float64 `json:"average_sentence_length" yaml:"average_sentence_length"`
	WordDiversityScore    float64 `json:"word_diversity_score" yaml:"word_diversity_score"`
	JargonOveruseScore    float64 `json:"jargon_overuse_score" yaml:"jargon_overuse_score"`

	// vocal command
	WordsPerMinute       float64 `json:"words_per_minute" yaml:"words_per_minute"`
	AveragePauseDuration float64 `json:"average_pause_duration" yaml:"average_pause_duration"`
	PaceVariance         float64 `json:"pace_variance" yaml:"pace_variance"`

	// persuasion and influence
	StoryCoherenceScore     float64             `json:"story_coherence_score" yaml:"story_coherence_score"`
	CallToActionCount       int                 `json:"call_to_action_count" yaml:"call_to_action_count"`
	PowerWordsCount         int                 `json:"power_words_count" yaml:"power_words_count"`
	EvidenceIndicatorsCount int                 `json:"evidence_indicators_count" yaml:"evidence_indicators_count"`
	Fallacies               []analyzers.Fallacy `json:"fallacies,omitempty" yaml:"fallacies,omitempty"`

	Patterns        Patterns                   `json:"patterns" yaml:"patterns"`
	CriticalMoments []analyzers.CriticalMoment `json:"critical_moments" yaml:"critical_moments"`
}
