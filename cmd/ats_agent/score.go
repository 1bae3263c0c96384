package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// scoredFile pairs a report with the file it was produced from
type scoredFile struct {
	File   string             `json:"file"`
	Report *types.ScoreReport `json:"report"`
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	var (
		files   []string
		jobFile string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one or more résumés against a job description",
		Long: "Score PDF, DOCX or plain-text résumés. Repeat --file to score several documents " +
			"concurrently; reports are printed in the order the files were given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(files) == 0 {
				return fmt.Errorf("at least one --file is required")
			}

			cfg, logger, err := loadRuntime(root)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			jobDescription, err := readJobDescription(jobFile)
			if err != nil {
				return err
			}

			svc, cleanup, err := newService(cmd.Context(), cfg, logger, progressWriter(cmd, root))
			if err != nil {
				return err
			}
			defer cleanup()

			results := make([]scoredFile, len(files))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.NumCPU())
			for i, path := range files {
				g.Go(func() error {
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", path, err)
					}
					report, err := svc.Score(ctx, data, filepath.Base(path), jobDescription)
					if err != nil {
						return fmt.Errorf("failed to score %s: %w", path, err)
					}
					results[i] = scoredFile{File: path, Report: report}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			logger.Debug("scored files", zap.Int("count", len(results)))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if len(results) == 1 {
					return enc.Encode(results[0].Report)
				}
				return enc.Encode(results)
			}

			printer := observability.NewPrinter(out)
			for _, result := range results {
				printer.PrintScoreReport(filepath.Base(result.File), result.Report)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "Résumé to score (repeatable)")
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to a plain-text job description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print reports as JSON")

	return cmd
}
