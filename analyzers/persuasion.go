package analyzers

import (
	"fmt"
	"math"

	"github.com/maastricht-university/speech-mastery/patterns"
)

// Weights of the persuasion rubric. Keyword categories add points with
// diminishing returns: max · (1 − e^(−count/rate)).
const (
	coherenceWeight = 0.6

	ctaMaxPoints      = 15.0
	ctaRate           = 2.0
	powerMaxPoints    = 10.0
	powerRate         = 2.0
	evidenceMaxPoints = 15.0
	evidenceRate      = 1.5

	fallacyCost    = 5.0
	maxFallacyCost = 20.0

	// Story structure points.
	beginningPoints  = 30.0
	transitionPoints = 10.0
	maxTransitions   = 3
	endPoints        = 30.0
	orderPoints      = 10.0

	weakStructureBelow = 50.0
	evidenceMinWords   = 50
)

// KeywordCounts breaks persuasion keywords down by category.
type KeywordCounts struct {
	CallToAction       int `json:"call_to_action" yaml:"call_to_action"`
	PowerWords         int `json:"power_words" yaml:"power_words"`
	EvidenceIndicators int `json:"evidence_indicators" yaml:"evidence_indicators"`
}

// StoryStructure is the outcome of the beginning/middle/end heuristic.
type StoryStructure struct {
	CoherenceScore float64
	HasBeginning   bool
	HasMiddle      bool
	HasEnd         bool
	InOrder        bool
}

// PersuasionResult is the persuasion and influence rubric.
type PersuasionResult struct {
	Score               float64
	StoryCoherenceScore float64
	Structure           StoryStructure
	Keywords            KeywordCounts
	Fallacies           []Fallacy
	CriticalMoments     []CriticalMoment
}

// PersuasionInfluence scores narrative structure and persuasive vocabulary.
type PersuasionInfluence struct {
	fallacies FallacyDetector
}

// NewPersuasionInfluence returns an analyzer penalising what d detects. A nil
// d disables the fallacy penalty.
func NewPersuasionInfluence(d FallacyDetector) *PersuasionInfluence {
	if d == nil {
		d = NoFallacies{}
	}
	return &PersuasionInfluence{fallacies: d}
}

func (a *PersuasionInfluence) Analyze(transcript string, durationSeconds float64) (*PersuasionResult, error) {
	if err := ValidateDuration(durationSeconds); err != nil {
		return nil, fmt.Errorf("persuasion influence: %w", err)
	}
	res := &PersuasionResult{Score: 100}
	if isBlank(transcript) {
		return res, nil
	}

	ref := newTextRef(transcript, durationSeconds)
	sentences := patterns.Sentences(ref.lower)
	res.Keywords = CountKeywords(ref.lower)
	res.Structure = AnalyzeStructure(ref.lower, sentences)
	res.StoryCoherenceScore = res.Structure.CoherenceScore
	res.Fallacies = a.fallacies.DetectFallacies(transcript)

	fallacyHits := 0
	for _, f := range res.Fallacies {
		fallacyHits += f.Count
	}
	res.Score = PersuasionScore(res.StoryCoherenceScore, res.Keywords, fallacyHits)
	res.CriticalMoments = persuasionMoments(ref, sentences, res)
	return res, nil
}

// CountKeywords counts the three keyword categories in lowercased text.
func CountKeywords(lower string) KeywordCounts {
	return KeywordCounts{
		CallToAction:       patterns.CallToAction.Scan(lower).Total(),
		PowerWords:         patterns.PowerWords.Scan(lower).Total(),
		EvidenceIndicators: patterns.EvidenceIndicators.Scan(lower).Total(),
	}
}

// AnalyzeStructure looks for an opening in the first third of the sentences,
// transitions anywhere, a close in the last third, and an opening that comes
// before the close.
func AnalyzeStructure(lower string, sentences []patterns.Sentence) StoryStructure {
	var st StoryStructure
	n := len(sentences)
	if n == 0 {
		return st
	}
	third := int(math.Ceil(float64(n) / 3))
	head := sentences[third-1]
	headEnd := head.Start + len(head.Text)
	tailStart := sentences[n-third].Start

	openers := patterns.Openers.Scan(lower[:headEnd])
	closers := patterns.Closers.Scan(lower[tailStart:])
	transitions := 0
	for _, h := range patterns.Transitions.Scan(lower) {
		if h.Count > 0 {
			transitions++
		}
	}

	st.HasBeginning = openers.Total() > 0
	st.HasMiddle = transitions > 0
	st.HasEnd = closers.Total() > 0

	score := 0.0
	if st.HasBeginning {
		score += beginningPoints
	}
	score += transitionPoints * float64(min(transitions, maxTransitions))
	if st.HasEnd {
		score += endPoints
	}
	if st.HasBeginning && st.HasEnd {
		open, _ := openers.Earliest()
		end, _ := closers.Earliest()
		st.InOrder = open.First < tailStart+end.First
		if st.InOrder {
			score += orderPoints
		}
	}
	st.CoherenceScore = Round1(clampScore(score))
	return st
}

// PersuasionScore weights coherence at 60% and adds keyword points, less the
// fallacy penalty.
func PersuasionScore(coherence float64, kw KeywordCounts, fallacies int) float64 {
	score := coherenceWeight * coherence
	score += diminishing(kw.CallToAction, ctaMaxPoints, ctaRate)
	score += diminishing(kw.PowerWords, powerMaxPoints, powerRate)
	score += diminishing(kw.EvidenceIndicators, evidenceMaxPoints, evidenceRate)
	score -= math.Min(maxFallacyCost, fallacyCost*float64(fallacies))
	return Round1(clampScore(score))
}

func diminishing(count int, ceiling, rate float64) float64 {
	if count <= 0 {
		return 0
	}
	return ceiling * (1 - math.Exp(-float64(count)/rate))
}

func persuasionMoments(ref textRef, sentences []patterns.Sentence, res *PersuasionResult) []CriticalMoment {
	var out []CriticalMoment
	if len(sentences) == 0 {
		return out
	}
	first := sentences[0]
	last := sentences[len(sentences)-1]
	mid := sentences[len(sentences)/2]

	if res.StoryCoherenceScore < weakStructureBelow {
		out = append(out, CriticalMoment{
			Timestamp:  ref.at(first.Start),
			Type:       MomentWeakStructure,
			Severity:   severityPast(res.StoryCoherenceScore, weakStructureBelow, 10),
			Context:    ref.quote(first.Start, first.Start+len(first.Text)),
			Suggestion: structureSuggestion(res.Structure),
		})
	}
	if res.Keywords.CallToAction == 0 {
		out = append(out, CriticalMoment{
			Timestamp:  ref.at(last.Start),
			Type:       MomentNoCallToAction,
			Severity:   6,
			Context:    ref.quote(last.Start, last.Start+len(last.Text)),
			Suggestion: "The talk ends without an ask. Close by telling the audience exactly what to do next.",
		})
	}
	words := 0
	for _, s := range sentences {
		words += len(s.Words)
	}
	if res.Keywords.EvidenceIndicators == 0 && words >= evidenceMinWords {
		out = append(out, CriticalMoment{
			Timestamp:  ref.at(mid.Start),
			Type:       MomentNoEvidence,
			Severity:   4,
			Context:    ref.quote(mid.Start, mid.Start+len(mid.Text)),
			Suggestion: "Claims stand without support. Cite a study, a number or an expert to back the central point.",
		})
	}
	for _, f := range res.Fallacies {
		out = append(out, CriticalMoment{
			Timestamp:  EstimateTimestamp(f.Offset, ref.length, ref.duration),
			Type:       MomentLogicalFallacy,
			Severity:   clampSeverity(4 + f.Count),
			Context:    patterns.Snippet(ref.original, f.Offset, f.Offset+len([]rune(f.Cue)), contextRadius),
			Suggestion: fmt.Sprintf("%q signals a weak argument. Replace it with the actual reason or evidence.", f.Cue),
		})
	}
	sortByTimestamp(out)
	return out
}

func structureSuggestion(st StoryStructure) string {
	switch {
	case !st.HasBeginning:
		return "Open with a clear hook or problem statement so the audience knows where the talk is going."
	case !st.HasEnd:
		return "Close deliberately: summarise the point and finish with a memorable line."
	case !st.HasMiddle:
		return "Link the ideas with transitions such as \"because\", \"for example\" or \"as a result\"."
	}
	return "Tighten the arc: set up the problem, develop it, then resolve it."
}
