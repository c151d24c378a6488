package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// PersistBundle is what Persist writes to disk for one analysis.
type PersistBundle struct {
	AnalysisID  string          `json:"analysis_id"`
	AudioPath   string          `json:"audio_path,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	Result      *AnalysisResult `json:"result"`
}

func mkAnalysisDir(outputsRoot, id string, now time.Time) (string, error) {
	dir := filepath.Join(outputsRoot, "analysis_"+now.Format("20060102-150405")+"_"+id[:8])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Persist writes res under outputsRoot/analysis_<timestamp>_<id prefix>/analysis.json
// and returns the bundle ID and the file path.
func Persist(outputsRoot, audioPath string, res *AnalysisResult) (id, path string, err error) {
	now := time.Now()
	id = uuid.NewString()
	dir, err := mkAnalysisDir(outputsRoot, id, now)
	if err != nil {
		return "", "", err
	}

	bundle := PersistBundle{
		AnalysisID:  id,
		AudioPath:   audioPath,
		GeneratedAt: now.UTC(),
		Result:      res,
	}
	path = filepath.Join(dir, "analysis.json")
	if err = writeJSON(path, bundle); err != nil {
		return "", "", err
	}
	return id, path, nil
}
