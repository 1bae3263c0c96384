package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/ats-scorer/internal/server"
	"github.com/spf13/cobra"
)

func newRefineCmd(root *rootOptions) *cobra.Command {
	var (
		file     string
		jobFile  string
		outFile  string
		textOnly bool
	)

	cmd := &cobra.Command{
		Use:   "refine",
		Short: "Produce a refined résumé",
		Long: "Rewrite a résumé into canonical sections (summary, skills, experience, projects, " +
			"education) and render it as DOCX, or print the refined text with --text.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime(root)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			jobDescription, err := readJobDescription(jobFile)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			svc, cleanup, err := newService(cmd.Context(), cfg, logger, progressWriter(cmd, root))
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if textOnly {
				text, err := svc.RefineText(data, filepath.Base(file), jobDescription)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, text)
				return err
			}

			doc, err := svc.Refine(data, filepath.Base(file), jobDescription)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outFile, doc, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}

			_, err = fmt.Fprintf(out, "Wrote refined résumé to %s (%d bytes)\n", outFile, len(doc))
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Résumé to refine")
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to a plain-text job description")
	cmd.Flags().StringVarP(&outFile, "out", "o", server.RefinedFilename, "Output DOCX path")
	cmd.Flags().BoolVar(&textOnly, "text", false, "Print the refined text instead of rendering DOCX")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// progressWriter returns stderr when --verbose is set, nil otherwise.
func progressWriter(cmd *cobra.Command, root *rootOptions) io.Writer {
	if !root.verbose {
		return nil
	}
	return cmd.ErrOrStderr()
}
