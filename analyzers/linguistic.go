package analyzers

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/maastricht-university/speech-mastery/patterns"
)

// Inflection points of the linguistic-authority rubric.
const (
	PassiveVoiceThreshold = 0.15
	OptimalSentenceMin    = 12.0
	OptimalSentenceMax    = 18.0
	JargonThreshold       = 20.0

	// jargonScale turns jargon density (percent of words) into the 0..100
	// overuse score, so 2% jargon sits on the threshold.
	jargonScale = 10.0

	diversityBase   = 70.0
	diversityWeight = 0.3
	maxPassiveCut   = 30.0
	maxShortCut     = 20.0
	maxLongCut      = 25.0
	maxJargonCut    = 25.0
)

// passiveRe matches a form of "to be"/"to get" followed, optionally through one
// -ly adverb, by a past participle.
var passiveRe = regexp.MustCompile(`\b(?:am|is|are|was|were|be|been|being|get|gets|got|gotten|getting)\s+(?:[a-z]+ly\s+)?(?:[a-z]+ed|` +
	`done|made|given|taken|written|seen|known|shown|built|sent|held|told|found|brought|bought|paid|kept|` +
	`chosen|driven|spoken|broken|drawn|grown|thrown|hidden|forgotten|begun|won|led|met|sold|understood|` +
	`caught|taught|thought|put|set|cut|hit|hurt|left|lost|meant|read|run|said|heard|felt|struck|beaten|eaten|` +
	`fallen|forgiven|frozen|stolen|sworn|torn|worn|woken)\b`)

// LinguisticResult is the linguistic-authority rubric.
type LinguisticResult struct {
	Score                 float64
	PassiveVoiceRatio     float64
	AverageSentenceLength float64
	WordDiversityScore    float64
	JargonOveruseScore    float64

	SentenceCount int
	WordCount     int
	UniqueWords   int
	JargonCount   int

	CriticalMoments []CriticalMoment
}

// LinguisticAuthority scores sentence structure and word economy.
type LinguisticAuthority struct{}

func NewLinguisticAuthority() *LinguisticAuthority { return &LinguisticAuthority{} }

func (a *LinguisticAuthority) Analyze(transcript string, durationSeconds float64) (*LinguisticResult, error) {
	if err := ValidateDuration(durationSeconds); err != nil {
		return nil, fmt.Errorf("linguistic authority: %w", err)
	}
	res := &LinguisticResult{Score: 100}
	if isBlank(transcript) {
		return res, nil
	}

	ref := newTextRef(transcript, durationSeconds)
	sentences := patterns.Sentences(ref.lower)
	if len(sentences) == 0 {
		return res, nil
	}

	passive := -1
	passiveCount := 0
	words := 0
	unique := map[string]struct{}{}
	for i, s := range sentences {
		if passiveRe.MatchString(s.Text) {
			passiveCount++
			if passive < 0 {
				passive = i
			}
		}
		words += len(s.Words)
		for _, w := range s.Words {
			unique[w] = struct{}{}
		}
	}
	jargon := patterns.Jargon.Scan(ref.lower)

	res.SentenceCount = len(sentences)
	res.WordCount = words
	res.UniqueWords = len(unique)
	res.JargonCount = jargon.Total()

	// Thresholds apply to the unrounded metrics; only reported values are rounded.
	passiveRatio := float64(passiveCount) / float64(len(sentences))
	avgSentence := float64(words) / float64(len(sentences))
	diversity := 100 * float64(len(unique)) / float64(words)
	jargonOveruse := math.Min(100, jargonScale*100*float64(jargon.Total())/float64(words))

	res.PassiveVoiceRatio = round2(passiveRatio)
	res.AverageSentenceLength = Round1(avgSentence)
	res.WordDiversityScore = Round1(diversity)
	res.JargonOveruseScore = Round1(jargonOveruse)

	res.Score = LinguisticScore(passiveRatio, avgSentence, diversity, jargonOveruse)

	var moments []CriticalMoment
	if passiveRatio > PassiveVoiceThreshold {
		s := sentences[passive]
		moments = append(moments, CriticalMoment{
			Timestamp:  ref.at(s.Start),
			Type:       MomentPassiveVoice,
			Severity:   severityPast(passiveRatio, PassiveVoiceThreshold, 0.05),
			Context:    ref.quote(s.Start, s.Start+len(s.Text)),
			Suggestion: fmt.Sprintf("%.0f%% of sentences are passive. Name who acts: \"we decided\" rather than \"it was decided\".", 100*passiveRatio),
		})
	}
	if m, ok := sentenceLengthMoment(ref, sentences, avgSentence); ok {
		moments = append(moments, m)
	}
	if jargonOveruse > JargonThreshold {
		first, _ := jargon.Earliest()
		s := sentenceAt(sentences, first.First)
		moments = append(moments, CriticalMoment{
			Timestamp:  ref.at(s.Start),
			Type:       MomentJargonOveruse,
			Severity:   severityPast(jargonOveruse, JargonThreshold, 10),
			Context:    ref.quote(s.Start, s.Start+len(s.Text)),
			Suggestion: fmt.Sprintf("%d jargon terms such as %q. Swap them for plain, concrete words.", jargon.Total(), first.Phrase),
		})
	}
	sortByTimestamp(moments)
	res.CriticalMoments = moments
	return res, nil
}

// LinguisticScore combines the four metrics. Diversity lifts the base from 70
// to 100; every metric past its inflection point cuts into it.
func LinguisticScore(passiveRatio, avgSentence, diversity, jargonOveruse float64) float64 {
	score := diversityBase + diversityWeight*diversity
	if passiveRatio > PassiveVoiceThreshold {
		score -= math.Min(maxPassiveCut, (passiveRatio-PassiveVoiceThreshold)*100)
	}
	switch {
	case avgSentence == 0:
	case avgSentence < OptimalSentenceMin:
		score -= math.Min(maxShortCut, (OptimalSentenceMin-avgSentence)*2)
	case avgSentence > OptimalSentenceMax:
		score -= math.Min(maxLongCut, (avgSentence-OptimalSentenceMax)*1.5)
	}
	if jargonOveruse > JargonThreshold {
		score -= math.Min(maxJargonCut, (jargonOveruse-JargonThreshold)*0.5)
	}
	return Round1(clampScore(score))
}

func sentenceLengthMoment(ref textRef, sentences []patterns.Sentence, avg float64) (CriticalMoment, bool) {
	var (
		kind       MomentType
		bound      float64
		offending  func(n int) bool
		suggestion string
	)
	switch {
	case avg > OptimalSentenceMax:
		kind, bound = MomentLongSentences, OptimalSentenceMax
		offending = func(n int) bool { return float64(n) > OptimalSentenceMax }
		suggestion = fmt.Sprintf("Sentences average %.1f words. Split long ones so each carries a single idea.", avg)
	case avg < OptimalSentenceMin:
		kind, bound = MomentShortSentences, OptimalSentenceMin
		offending = func(n int) bool { return float64(n) < OptimalSentenceMin }
		suggestion = fmt.Sprintf("Sentences average %.1f words. Join fragments into complete, developed statements.", avg)
	default:
		return CriticalMoment{}, false
	}

	s := sentences[0]
	for _, cand := range sentences {
		if offending(len(cand.Words)) {
			s = cand
			break
		}
	}
	return CriticalMoment{
		Timestamp:  ref.at(s.Start),
		Type:       kind,
		Severity:   severityPast(avg, bound, 3),
		Context:    ref.quote(s.Start, s.Start+len(s.Text)),
		Suggestion: suggestion,
	}, true
}

// sentenceAt returns the sentence containing byte offset off.
func sentenceAt(sentences []patterns.Sentence, off int) patterns.Sentence {
	found := sentences[0]
	for _, s := range sentences {
		if s.Start > off {
			break
		}
		found = s
	}
	return found
}

// IsPassive reports whether a sentence reads as passive voice.
func IsPassive(sentence string) bool {
	return passiveRe.MatchString(strings.ToLower(sentence))
}
