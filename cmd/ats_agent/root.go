package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every subcommand
type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ats_agent",
		Short: "ATS résumé scorer",
		Long: "Scores résumés (PDF, DOCX or plain text) against a job description, " +
			"suggests improvements and produces a refined DOCX résumé.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file (default: ats.yaml in . or ./configs)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print pipeline progress to stderr")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newScoreCmd(opts))
	cmd.AddCommand(newRefineCmd(opts))

	return cmd
}
