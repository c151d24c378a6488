package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maastricht-university/speech-mastery/analyzers"
	"github.com/maastricht-university/speech-mastery/orchestrator"
)

// run executes speechscore with a config whose outputs go to a temp dir.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return runIn(t, t.TempDir(), stdin, args...)
}

func runIn(t *testing.T, dir, stdin string, args ...string) (string, string, error) {
	t.Helper()
	outputs := filepath.Join(dir, "outputs")
	cfg := filepath.Join(dir, "config.yaml")
	body := "app:\n  log_level: error\npaths:\n  outputs: " + outputs + "\n  database: " + filepath.Join(outputs, "history.db") + "\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--config", cfg))
	err := root.Execute()
	return out.String(), outputs, err
}

func TestAnalyzeText(t *testing.T) {
	out, _, err := run(t, "", "analyze", "--text", "um, you know, um, you know, um, you know, um", "--duration", "60")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	var res orchestrator.AnalysisResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out)
	}
	if res.FillerWordsCount != 7 || res.PowerDynamicsScore != 80 || res.Patterns.FillerWords["um"] != 4 {
		t.Fatalf("result = %+v", res)
	}
}

func TestAnalyzeYAMLFromStdin(t *testing.T) {
	out, _, err := run(t, "We shipped it. It works.", "analyze", "--transcript-file", "-", "--duration", "5", "--format", "yaml")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if !strings.Contains(out, "overall_score:") || !strings.Contains(out, "transcript: We shipped it. It works.") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestAnalyzeAudioUsesMockTranscriber(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "talk.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, outputs, err := run(t, "", "analyze", "--audio", audio, "--duration", "30", "--save")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	var res orchestrator.AnalysisResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if res.Transcript == "" || res.WordsPerMinute == 0 {
		t.Fatalf("result = %+v", res)
	}
	saved, _ := filepath.Glob(filepath.Join(outputs, "analysis_*", "analysis.json"))
	if len(saved) != 1 {
		t.Fatalf("saved files = %v", saved)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, _, err := run(t, "", "analyze", "--duration", "10"); err == nil || !strings.Contains(err.Error(), "--text") {
		t.Fatalf("missing transcript: error = %v", err)
	}
	if _, _, err := run(t, "", "analyze", "--text", "hi", "--duration", "0"); !errors.Is(err, analyzers.ErrInvalidDuration) {
		t.Fatalf("zero duration: error = %v", err)
	}
	if _, _, err := run(t, "", "analyze", "--text", "hi", "--duration", "3", "--format", "xml"); err == nil {
		t.Fatal("unknown format accepted")
	}
	if _, _, err := run(t, "", "analyze", "--text", "hi", "--duration", "3", "--charts"); err == nil || !strings.Contains(err.Error(), "visualization.url") {
		t.Fatalf("charts without url: error = %v", err)
	}
}

func TestHistoryAndShow(t *testing.T) {
	dir := t.TempDir()
	for _, text := range []string{"First talk. It was fine.", "Second talk, um, was better."} {
		if _, _, err := runIn(t, dir, "", "analyze", "--text", text, "--duration", "10", "--save"); err != nil {
			t.Fatalf("analyze --save error = %v", err)
		}
	}

	out, _, err := runIn(t, dir, "", "history", "--format", "json")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	var recs []struct {
		ID           string  `json:"id"`
		OverallScore float64 `json:"overall_score"`
	}
	if err := json.Unmarshal([]byte(out), &recs); err != nil || len(recs) != 2 {
		t.Fatalf("history = %s (%v)", out, err)
	}

	table, _, err := runIn(t, dir, "", "history")
	if err != nil || !strings.HasPrefix(table, "ID") || !strings.Contains(table, recs[0].ID) {
		t.Fatalf("history table = %q (%v)", table, err)
	}

	shown, _, err := runIn(t, dir, "", "show", recs[0].ID)
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(shown, "Second talk, um, was better.") {
		t.Fatalf("show printed the wrong analysis:\n%s", shown)
	}

	if _, _, err := runIn(t, dir, "", "show", "missing-id"); err == nil {
		t.Fatal("show of unknown id succeeded")
	}
}

func TestDictionaries(t *testing.T) {
	out, _, err := run(t, "", "dictionaries")
	if err != nil {
		t.Fatalf("dictionaries error = %v", err)
	}
	for _, want := range []string{"name: filler_words", "phrase: you know", "weight: 2", "name: closers"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
	// longest phrases are listed first
	if strings.Index(out, "phrase: in my opinion") > strings.Index(out, "phrase: maybe") {
		t.Error("hedging phrases not ordered longest first")
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(out) != "speech-mastery 0.1.0" {
		t.Fatalf("version = %q", out)
	}
}
