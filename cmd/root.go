// Package cmd holds the speechscore command line.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/speech-mastery/config"
	"github.com/maastricht-university/speech-mastery/logging"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	conf    *config.Root
}

// NewRootCmd builds the speechscore command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "speechscore",
		Short: "Score a speech on power, language, delivery and persuasion",
		Long: `speechscore rates a speech transcript on four rubrics and lists the
moments most worth fixing.

Rubrics:
  power dynamics        fillers, hedging, upspeak
  linguistic authority  passive voice, sentence length, diversity, jargon
  vocal command         pace, pauses, pace variation
  persuasion            story structure, calls to action, evidence`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: config/$CONFIG_ENV/config.yaml, then ./config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = a.v.BindPFlag("app.log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newAnalyzeCmd(a),
		newHistoryCmd(a),
		newShowCmd(a),
		newDictionariesCmd(a),
		newMCPCmd(a),
		newVersionCmd(a),
	)
	return root
}

// Execute runs the command line with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if err := logging.Setup(c.App.LogLevel, c.App.LogFormat); err != nil {
		return err
	}
	a.conf = c
	return nil
}

func writeFormatted(w io.Writer, format string, v any) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}
