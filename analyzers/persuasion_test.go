package analyzers

import (
	"errors"
	"testing"

	"github.com/maastricht-university/speech-mastery/patterns"
)

const wellFormedTalk = "Today I want to talk about focus. Most teams lose hours because meetings run long. " +
	"For example, our team spent ten hours a week in meetings. As a result, we shipped late. " +
	"In conclusion, cut one meeting this week."

func TestCountKeywords(t *testing.T) {
	got := CountKeywords(patterns.Normalize("Act now and buy today, studies show it's PROVEN."))
	want := KeywordCounts{CallToAction: 4, PowerWords: 1, EvidenceIndicators: 1}
	if got != want {
		t.Fatalf("CountKeywords() = %+v, want %+v", got, want)
	}
}

func TestAnalyzeStructure(t *testing.T) {
	lower := patterns.Normalize(wellFormedTalk)
	st := AnalyzeStructure(lower, patterns.Sentences(lower))
	if !st.HasBeginning || !st.HasMiddle || !st.HasEnd || !st.InOrder {
		t.Fatalf("structure = %+v", st)
	}
	if st.CoherenceScore != 100 {
		t.Fatalf("CoherenceScore = %v, want 100", st.CoherenceScore)
	}

	flat := patterns.Normalize("We did things. Stuff happened. It was fine.")
	st = AnalyzeStructure(flat, patterns.Sentences(flat))
	if st.HasBeginning || st.HasMiddle || st.HasEnd || st.CoherenceScore != 0 {
		t.Fatalf("flat structure = %+v", st)
	}
}

func TestAnalyzeStructureIsDeterministic(t *testing.T) {
	lower := patterns.Normalize(wellFormedTalk)
	a := AnalyzeStructure(lower, patterns.Sentences(lower))
	b := AnalyzeStructure(lower, patterns.Sentences(lower))
	if a != b {
		t.Fatalf("structure differs between runs: %+v vs %+v", a, b)
	}
}

func TestPersuasionInfluenceWellFormed(t *testing.T) {
	res, err := NewPersuasionInfluence(nil).Analyze(wellFormedTalk, 30)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if res.StoryCoherenceScore != 100 {
		t.Errorf("StoryCoherenceScore = %v, want 100", res.StoryCoherenceScore)
	}
	if res.Keywords.CallToAction != 1 {
		t.Errorf("CallToAction = %d, want 1", res.Keywords.CallToAction)
	}
	if res.Score != 65.9 {
		t.Errorf("Score = %v, want 65.9", res.Score)
	}
	if len(res.CriticalMoments) != 0 {
		t.Errorf("CriticalMoments = %+v, want none", res.CriticalMoments)
	}
}

func TestPersuasionInfluenceWeakTalk(t *testing.T) {
	res, err := NewPersuasionInfluence(nil).Analyze("We did things. Stuff happened. It was fine.", 9)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if res.Score != 0 {
		t.Errorf("Score = %v, want 0", res.Score)
	}
	if len(res.CriticalMoments) != 2 {
		t.Fatalf("CriticalMoments = %+v", res.CriticalMoments)
	}
	weak, cta := res.CriticalMoments[0], res.CriticalMoments[1]
	if weak.Type != MomentWeakStructure || weak.Severity != 5 || weak.Timestamp != 0 {
		t.Errorf("weak structure moment = %+v", weak)
	}
	if cta.Type != MomentNoCallToAction || cta.Severity != 6 || cta.Timestamp <= weak.Timestamp {
		t.Errorf("call to action moment = %+v", cta)
	}
}

func TestPersuasionScoreDiminishingReturns(t *testing.T) {
	one := PersuasionScore(0, KeywordCounts{PowerWords: 1}, 0)
	two := PersuasionScore(0, KeywordCounts{PowerWords: 2}, 0)
	many := PersuasionScore(0, KeywordCounts{PowerWords: 50}, 0)
	if !(one < two && two < many) {
		t.Fatalf("scores not increasing: %v %v %v", one, two, many)
	}
	if two-one >= one {
		t.Fatalf("second power word should add less than the first: %v %v", one, two)
	}
	if many > powerMaxPoints {
		t.Fatalf("power words exceed their ceiling: %v", many)
	}
	if got := PersuasionScore(100, KeywordCounts{CallToAction: 99, PowerWords: 99, EvidenceIndicators: 99}, 0); got != 100 {
		t.Fatalf("saturated score = %v, want 100", got)
	}
}

func TestPersuasionInfluenceFallacies(t *testing.T) {
	tr := "Everyone knows this works. Buy it now."
	clean, err := NewPersuasionInfluence(nil).Analyze(tr, 10)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	flagged, err := NewPersuasionInfluence(CueFallacyDetector{}).Analyze(tr, 10)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(flagged.Fallacies) != 1 || flagged.Fallacies[0].Cue != "everyone knows" || flagged.Fallacies[0].Offset != 0 {
		t.Fatalf("Fallacies = %+v", flagged.Fallacies)
	}
	if diff := clean.Score - flagged.Score; diff < 4.9 || diff > 5.1 {
		t.Fatalf("fallacy penalty = %v, want 5", diff)
	}
	var found bool
	for _, m := range flagged.CriticalMoments {
		if m.Type == MomentLogicalFallacy {
			found = true
			if m.Context == "" || m.Severity != 5 {
				t.Errorf("fallacy moment = %+v", m)
			}
		}
	}
	if !found {
		t.Fatalf("no fallacy moment in %+v", flagged.CriticalMoments)
	}
}

func TestPersuasionInfluenceBlankAndInvalid(t *testing.T) {
	a := NewPersuasionInfluence(nil)
	for _, tr := range []string{"\n", "--", "..."} {
		res, err := a.Analyze(tr, 5)
		if err != nil || res.Score != 100 || res.Keywords != (KeywordCounts{}) || len(res.CriticalMoments) != 0 {
			t.Fatalf("Analyze(%q) = %+v, %v", tr, res, err)
		}
	}
	if _, err := a.Analyze("hello", -1); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("error = %v, want ErrInvalidDuration", err)
	}
}
