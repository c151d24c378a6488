package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maastricht-university/speech-mastery/analyzers"
	"github.com/maastricht-university/speech-mastery/clients"
	"github.com/maastricht-university/speech-mastery/config"
	"github.com/maastricht-university/speech-mastery/orchestrator"
	"github.com/maastricht-university/speech-mastery/store"
)

type analyzeOpts struct {
	transcriptFile string
	text           string
	audio          string
	duration       float64
	format         string
	speaker        string
	save           bool
	charts         bool
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var o analyzeOpts
	c := &cobra.Command{
		Use:   "analyze",
		Short: "Score one speech",
		Long: `Score one speech and print the result.

The transcript comes from --text, from --transcript-file ("-" reads stdin),
or, when neither is given, from transcribing --audio with the configured
provider.`,
		Example: `  speechscore analyze --text "Um, I think we should ship." --duration 4
  speechscore analyze --transcript-file talk.txt --duration 95 --format yaml --save
  speechscore analyze --audio talk.wav --duration 95 --charts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAnalyze(cmd, o)
		},
	}
	f := c.Flags()
	f.StringVar(&o.transcriptFile, "transcript-file", "", "read the transcript from this file (- for stdin)")
	f.StringVar(&o.text, "text", "", "transcript text")
	f.StringVar(&o.audio, "audio", "", "recording of the speech")
	f.Float64Var(&o.duration, "duration", 0, "length of the speech in seconds")
	f.StringVar(&o.format, "format", "json", "output format: json or yaml")
	f.StringVar(&o.speaker, "speaker", "speaker", "name shown on charts")
	f.BoolVar(&o.save, "save", false, "write the result under paths.outputs")
	f.BoolVar(&o.charts, "charts", false, "render radar and timeline charts through visualization.url")
	_ = c.MarkFlagRequired("duration")
	c.MarkFlagsMutuallyExclusive("text", "transcript-file")
	return c
}

func (a *app) runAnalyze(cmd *cobra.Command, o analyzeOpts) error {
	log := logrus.WithField("component", "cli")
	in := orchestrator.Input{DurationSeconds: o.duration, AudioPath: o.audio}

	switch {
	case cmd.Flags().Changed("text"):
		t := o.text
		in.Transcript = &t
	case o.transcriptFile != "":
		t, err := readTranscript(cmd.InOrStdin(), o.transcriptFile)
		if err != nil {
			return err
		}
		in.Transcript = &t
	case o.audio == "":
		return errors.New("one of --text, --transcript-file or --audio is required")
	}
	if o.audio != "" {
		b, err := os.ReadFile(o.audio)
		if err != nil {
			return fmt.Errorf("read audio: %w", err)
		}
		in.Audio = b
	}

	engine, err := newEngine(a.conf)
	if err != nil {
		return err
	}
	res, err := engine.Analyze(cmd.Context(), in)
	if err != nil {
		return err
	}
	if err := writeFormatted(cmd.OutOrStdout(), o.format, res); err != nil {
		return err
	}

	if o.save {
		if err := a.save(cmd, o, res); err != nil {
			return err
		}
	}
	if o.charts {
		if a.conf.Visualization.URL == "" {
			return errors.New("--charts needs visualization.url in the config")
		}
		h := clients.NewHTTP(config.DurSeconds(a.conf.Transcription.TimeoutSeconds))
		radar, timeline, err := orchestrator.Charts(cmd.Context(), h, a.conf.Visualization.URL, res, o.duration, o.speaker, a.conf.Paths.Outputs)
		if err != nil {
			return fmt.Errorf("render charts: %w", err)
		}
		log.WithFields(logrus.Fields{"radar": radar, "timeline": timeline}).Info("charts rendered")
	}
	return nil
}

// save writes the JSON bundle under paths.outputs and a row in the history
// database.
func (a *app) save(cmd *cobra.Command, o analyzeOpts, res *orchestrator.AnalysisResult) error {
	id, path, err := orchestrator.Persist(a.conf.Paths.Outputs, o.audio, res)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	h, err := store.Open(a.conf.Paths.Database)
	if err != nil {
		return err
	}
	defer h.Close()
	rec, err := h.Save(cmd.Context(), o.audio, o.duration, res)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"bundle": id, "path": path, "history_id": rec.ID}).Info("result saved")
	return nil
}

func newEngine(c *config.Root) (*orchestrator.Engine, error) {
	tr, err := clients.NewTranscriber(c.Transcription.Provider, c.Transcription.URL, config.DurSeconds(c.Transcription.TimeoutSeconds))
	if err != nil {
		return nil, err
	}
	opts := []orchestrator.Option{orchestrator.WithTranscriber(tr)}
	if c.Analysis.FallacyDetection {
		opts = append(opts, orchestrator.WithFallacyDetector(analyzers.CueFallacyDetector{}))
	}
	return orchestrator.NewEngine(opts...), nil
}

func readTranscript(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(b), nil
}
