package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/speech-mastery/patterns"
)

type dictEntry struct {
	Phrase string `json:"phrase" yaml:"phrase"`
	Weight int    `json:"weight" yaml:"weight"`
}

type dictDump struct {
	Name    string      `json:"name" yaml:"name"`
	Phrases []dictEntry `json:"phrases" yaml:"phrases"`
}

func newDictionariesCmd(_ *app) *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:   "dictionaries",
		Short: "Print the built-in phrase dictionaries",
		Long:  "Print every phrase dictionary in the order it is scanned: longest phrases first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeFormatted(cmd.OutOrStdout(), format, dumpDictionaries())
		},
	}
	c.Flags().StringVar(&format, "format", "yaml", "output format: json or yaml")
	return c
}

func dumpDictionaries() []dictDump {
	var out []dictDump
	for _, d := range patterns.All() {
		dump := dictDump{Name: d.Name()}
		for _, p := range d.Phrases() {
			dump.Phrases = append(dump.Phrases, dictEntry{Phrase: p, Weight: d.Weight(p)})
		}
		out = append(out, dump)
	}
	return out
}
