package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/maastricht-university/speech-mastery/analyzers"
	"github.com/maastricht-university/speech-mastery/orchestrator"
)

func openTemp(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "db", "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestSaveAndGet(t *testing.T) {
	h := openTemp(t)
	ctx := context.Background()
	res := &orchestrator.AnalysisResult{
		Transcript:         "um hello",
		OverallScore:       79.3,
		PowerDynamicsScore: 90,
		Patterns:           orchestrator.Patterns{FillerWords: map[string]int{"um": 1}},
		CriticalMoments:    []analyzers.CriticalMoment{{Timestamp: 1.5, Type: analyzers.MomentHedging, Severity: 9}},
	}

	rec, err := h.Save(ctx, "talk.wav", 60, res)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := h.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.OverallScore != 79.3 || got.Power != 90 || got.AudioPath != "talk.wav" || got.DurationSeconds != 60 {
		t.Fatalf("record = %+v", got)
	}
	if got.Result.Transcript != "um hello" || got.Result.Patterns.FillerWords["um"] != 1 {
		t.Fatalf("result = %+v", got.Result)
	}
	if len(got.Result.CriticalMoments) != 1 || got.Result.CriticalMoments[0].Severity != 9 {
		t.Fatalf("moments = %+v", got.Result.CriticalMoments)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestGetMissing(t *testing.T) {
	if _, err := openTemp(t).Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	h := openTemp(t)
	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		rec, err := h.Save(ctx, "", 10, &orchestrator.AnalysisResult{OverallScore: float64(50 + i)})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		ids = append(ids, rec.ID)
	}

	got, err := h.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != ids[2] || got[1].ID != ids[1] {
		t.Fatalf("List() = %+v", got)
	}
	if got[0].Result != nil {
		t.Fatal("List() should not decode full results")
	}
}

func TestSaveNil(t *testing.T) {
	if _, err := openTemp(t).Save(context.Background(), "", 1, nil); err == nil {
		t.Fatal("nil result accepted")
	}
}
