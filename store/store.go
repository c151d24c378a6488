// Package store keeps a SQLite history of analyses.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/maastricht-university/speech-mastery/orchestrator"
)

var ErrNotFound = errors.New("analysis not found")

// Record is one stored analysis. Summary fields are copied out of Result so
// listings do not need to decode it.
type Record struct {
	ID              string                       `json:"id" yaml:"id"`
	AudioPath       string                       `json:"audio_path,omitempty" yaml:"audio_path,omitempty"`
	DurationSeconds float64                      `json:"duration_seconds" yaml:"duration_seconds"`
	CreatedAt       time.Time                    `json:"created_at" yaml:"created_at"`
	OverallScore    float64                      `json:"overall_score" yaml:"overall_score"`
	Power           float64                      `json:"power_dynamics_score" yaml:"power_dynamics_score"`
	Linguistic      float64                      `json:"linguistic_authority_score" yaml:"linguistic_authority_score"`
	Vocal           float64                      `json:"vocal_command_score" yaml:"vocal_command_score"`
	Persuasion      float64                      `json:"persuasion_influence_score" yaml:"persuasion_influence_score"`
	Result          *orchestrator.AnalysisResult `json:"result,omitempty" yaml:"result,omitempty"`
}

type History struct {
	db *sql.DB
}

// Open opens (and creates if needed) the database at path.
func Open(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	h := &History{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return h, nil
}

func (h *History) initSchema() error {
	_, err := h.db.Exec(`
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		audio_path TEXT NOT NULL DEFAULT '',
		duration_seconds REAL NOT NULL,
		created_at DATETIME NOT NULL,
		overall_score REAL NOT NULL,
		power_score REAL NOT NULL,
		linguistic_score REAL NOT NULL,
		vocal_score REAL NOT NULL,
		persuasion_score REAL NOT NULL,
		result TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at DESC);
	`)
	return err
}

func (h *History) Close() error { return h.db.Close() }

// Save stores res under a new UUID and returns the record.
func (h *History) Save(ctx context.Context, audioPath string, durationSeconds float64, res *orchestrator.AnalysisResult) (*Record, error) {
	if res == nil {
		return nil, errors.New("nil result")
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	rec := &Record{
		ID:              uuid.NewString(),
		AudioPath:       audioPath,
		DurationSeconds: durationSeconds,
		CreatedAt:       time.Now().UTC(),
		OverallScore:    res.OverallScore,
		Power:           res.PowerDynamicsScore,
		Linguistic:      res.LinguisticAuthorityScore,
		Vocal:           res.VocalCommandScore,
		Persuasion:      res.PersuasionInfluenceScore,
		Result:          res,
	}
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO analyses (id, audio_path, duration_seconds, created_at, overall_score,
			power_score, linguistic_score, vocal_score, persuasion_score, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.AudioPath, rec.DurationSeconds, rec.CreatedAt, rec.OverallScore,
		rec.Power, rec.Linguistic, rec.Vocal, rec.Persuasion, string(raw))
	if err != nil {
		return nil, fmt.Errorf("insert analysis: %w", err)
	}
	return rec, nil
}

// Get returns the record with its full result.
func (h *History) Get(ctx context.Context, id string) (*Record, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT id, audio_path, duration_seconds, created_at, overall_score,
			power_score, linguistic_score, vocal_score, persuasion_score, result
		FROM analyses WHERE id = ?
	`, id)

	var rec Record
	var raw string
	err := row.Scan(&rec.ID, &rec.AudioPath, &rec.DurationSeconds, &rec.CreatedAt, &rec.OverallScore,
		&rec.Power, &rec.Linguistic, &rec.Vocal, &rec.Persuasion, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	rec.Result = new(orchestrator.AnalysisResult)
	if err := json.Unmarshal([]byte(raw), rec.Result); err != nil {
		return nil, fmt.Errorf("decode analysis %s: %w", id, err)
	}
	return &rec, nil
}

// List returns summaries, newest first. A non-positive limit means 20.
func (h *History) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, audio_path, duration_seconds, created_at, overall_score,
			power_score, linguistic_score, vocal_score, persuasion_score
		FROM analyses
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.AudioPath, &rec.DurationSeconds, &rec.CreatedAt, &rec.OverallScore,
			&rec.Power, &rec.Linguistic, &rec.Vocal, &rec.Persuasion); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
