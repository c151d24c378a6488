package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/speech-mastery/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		format string
	)
	c := &cobra.Command{
		Use:   "history",
		Short: "List saved analyses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := store.Open(a.conf.Paths.Database)
			if err != nil {
				return err
			}
			defer h.Close()
			recs, err := h.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if format != "table" {
				return writeFormatted(cmd.OutOrStdout(), format, recs)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tOVERALL\tPOWER\tLING\tVOCAL\tPERS\tAUDIO")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%s\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.OverallScore,
					r.Power, r.Linguistic, r.Vocal, r.Persuasion, r.AudioPath)
			}
			return tw.Flush()
		},
	}
	c.Flags().IntVar(&limit, "limit", 20, "maximum number of analyses")
	c.Flags().StringVar(&format, "format", "table", "output format: table, json or yaml")
	return c
}

func newShowCmd(a *app) *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := store.Open(a.conf.Paths.Database)
			if err != nil {
				return err
			}
			defer h.Close()
			rec, err := h.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeFormatted(cmd.OutOrStdout(), format, rec)
		},
	}
	c.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return c
}
