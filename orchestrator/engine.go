package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/maastricht-university/speech-mastery/analyzers"
)

// Rubric weights in percent. They sum to 100.
const (
	powerWeight      = 30
	linguisticWeight = 25
	vocalWeight      = 20
	persuasionWeight = 25

	maxCriticalMoments = 10
)

// ErrNoTranscriber is returned when no transcript is given and the engine has
// no way to produce one.
var ErrNoTranscriber = errors.New("no transcript provided and no transcriber configured")

// Transcriber turns a recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Engine runs the four rubrics over one transcript and combines them. It holds
// no per-call state and is safe for concurrent use.
type Engine struct {
	power       *analyzers.PowerDynamics
	linguistic  *analyzers.LinguisticAuthority
	vocal       *analyzers.VocalCommand
	persuasion  *analyzers.PersuasionInfluence
	transcriber Transcriber
	log         *logrus.Entry
}

type engineOpts struct {
	transcriber Transcriber
	prosody     analyzers.ProsodyAnalyzer
	pauses      analyzers.PauseAnalyzer
	fallacies   analyzers.FallacyDetector
	logger      logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*engineOpts)

func WithTranscriber(t Transcriber) Option {
	return func(o *engineOpts) { o.transcriber = t }
}

func WithProsody(p analyzers.ProsodyAnalyzer) Option {
	return func(o *engineOpts) { o.prosody = p }
}

func WithPauses(p analyzers.PauseAnalyzer) Option {
	return func(o *engineOpts) { o.pauses = p }
}

// WithFallacyDetector enables the logical-fallacy penalty of the persuasion
// rubric.
func WithFallacyDetector(d analyzers.FallacyDetector) Option {
	return func(o *engineOpts) { o.fallacies = d }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *engineOpts) { o.logger = l }
}

func NewEngine(opts ...Option) *Engine {
	var o engineOpts
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}
	return &Engine{
		power:       analyzers.NewPowerDynamics(o.prosody),
		linguistic:  analyzers.NewLinguisticAuthority(),
		vocal:       analyzers.NewVocalCommand(o.pauses),
		persuasion:  analyzers.NewPersuasionInfluence(o.fallacies),
		transcriber: o.transcriber,
		log:         o.logger.WithField("component", "engine"),
	}
}

// Analyze scores one speech. The analyzers run concurrently; the result is the
// same as running them one after another. Any analyzer error fails the whole
// call.
func (e *Engine) Analyze(ctx context.Context, in Input) (*AnalysisResult, error) {
	if err := analyzers.ValidateDuration(in.DurationSeconds); err != nil {
		return nil, err
	}
	started := time.Now()

	transcript, err := e.transcript(ctx, in)
	if err != nil {
		return nil, err
	}

	var (
		pr *analyzers.PowerResult
		lr *analyzers.LinguisticResult
		vr *analyzers.VocalResult
		sr *analyzers.PersuasionResult
	)
	var g errgroup.Group
	g.Go(func() (err error) {
		pr, err = e.power.Analyze(transcript, in.DurationSeconds, in.Audio)
		return err
	})
	g.Go(func() (err error) {
		lr, err = e.linguistic.Analyze(transcript, in.DurationSeconds)
		return err
	})
	g.Go(func() (err error) {
		vr, err = e.vocal.Analyze(transcript, in.DurationSeconds, in.Audio)
		return err
	})
	g.Go(func() (err error) {
		sr, err = e.persuasion.Analyze(transcript, in.DurationSeconds)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := combine(transcript, pr, lr, vr, sr)
	e.log.WithFields(logrus.Fields{
		"overall":    res.OverallScore,
		"power":      res.PowerDynamicsScore,
		"linguistic": res.LinguisticAuthorityScore,
		"vocal":      res.VocalCommandScore,
		"persuasion": res.PersuasionInfluenceScore,
		"moments":    len(res.CriticalMoments),
		"elapsed":    time.Since(started).String(),
	}).Info("analysis complete")
	return res, nil
}

func (e *Engine) transcript(ctx context.Context, in Input) (string, error) {
	if in.Transcript != nil {
		return *in.Transcript, nil
	}
	if e.transcriber == nil {
		return "", ErrNoTranscriber
	}
	e.log.WithField("audio", in.AudioPath).Debug("transcribing")
	text, err := e.transcriber.Transcribe(ctx, in.AudioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", in.AudioPath, err)
	}
	return text, nil
}

func combine(transcript string, pr *analyzers.PowerResult, lr *analyzers.LinguisticResult, vr *analyzers.VocalResult, sr *analyzers.PersuasionResult) *AnalysisResult {
	return &AnalysisResult{
		Transcript: transcript,

		OverallScore:             OverallScore(pr.Score, lr.Score, vr.Score, sr.Score),
		PowerDynamicsScore:       pr.Score,
		LinguisticAuthorityScore: lr.Score,
		VocalCommandScore:        vr.Score,
		PersuasionInfluenceScore: sr.Score,

		FillerWordsCount:     pr.Fillers.Count,
		FillerWordsPerMinute: pr.Fillers.PerMinute,
		HedgingCount:         pr.Hedging.Count,
		UpspeakIndicators:    pr.UpspeakIndicators,

		PassiveVoiceRatio:     lr.PassiveVoiceRatio,
		AverageSentenceLength: lr.AverageSentenceLength,
		WordDiversityScore:    lr.WordDiversityScore,
		JargonOveruseScore:    lr.JargonOveruseScore,

		WordsPerMinute:       vr.WordsPerMinute,
		AveragePauseDuration: vr.AveragePauseDuration,
		PaceVariance:         vr.PaceVariance,

		StoryCoherenceScore:     sr.StoryCoherenceScore,
		CallToActionCount:       sr.Keywords.CallToAction,
		PowerWordsCount:         sr.Keywords.PowerWords,
		EvidenceIndicatorsCount: sr.Keywords.EvidenceIndicators,
		Fallacies:               sr.Fallacies,

		Patterns: Patterns{
			FillerWords:        pr.Fillers.Words,
			Hedging:            pr.Hedging.Phrases,
			PersuasionKeywords: sr.Keywords,
		},
		CriticalMoments: MergeMoments(pr.CriticalMoments, lr.CriticalMoments, vr.CriticalMoments, sr.CriticalMoments),
	}
}

// OverallScore is the weighted mean of the rubric scores, rounded half away
// from zero to one decimal.
func OverallScore(power, linguistic, vocal, persuasion float64) float64 {
	sum := powerWeight*power + linguisticWeight*linguistic + vocalWeight*vocal + persuasionWeight*persuasion
	return analyzers.Round1(sum / 100)
}

// MergeMoments concatenates the lists in order, ranks them by severity
// (highest first, ties keep their order) and keeps the top ten.
func MergeMoments(lists ...[]analyzers.CriticalMoment) []analyzers.CriticalMoment {
	all := make([]analyzers.CriticalMoment, 0)
	for _, l := range lists {
		all = append(all, l...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Severity > all[j].Severity })
	if len(all) > maxCriticalMoments {
		all = all[:maxCriticalMoments]
	}
	return all
}

func sortByTime(moments []analyzers.CriticalMoment) {
	sort.SliceStable(moments, func(i, j int) bool { return moments[i].Timestamp < moments[j].Timestamp })
}
