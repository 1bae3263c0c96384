package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/jonathan/ats-scorer/internal/cache"
	"github.com/jonathan/ats-scorer/internal/config"
	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/office"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/rendering"
	"github.com/jonathan/ats-scorer/internal/rewriting"
	"go.uber.org/zap"
)

// loadRuntime loads configuration and builds the logger it describes.
func loadRuntime(opts *rootOptions) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, logger, nil
}

// newService assembles the scoring pipeline from configuration.
// The returned cleanup func releases the cache connection, if any.
func newService(ctx context.Context, cfg *config.Config, logger *zap.Logger, progress io.Writer) (*pipeline.Service, func(), error) {
	cleanup := func() {}

	if cfg.DOCX.LicenseKey != "" {
		if err := office.Activate(cfg.DOCX.LicenseKey); err != nil {
			return nil, cleanup, err
		}
	} else {
		logger.Debug("no unioffice license configured, docx output unavailable")
	}

	extractor := ingestion.NewExtractor(
		ingestion.WithPDFReader(ingestion.NewPDFReader()),
		ingestion.WithDOCXReader(ingestion.NewUniofficeReader()),
		ingestion.WithDOCXFallback(ingestion.NewDocconvReader()),
		ingestion.WithLogger(logger),
	)

	opts := []pipeline.Option{pipeline.WithWriter(rendering.NewDocxWriter())}

	if path := cfg.Spelling.DictionaryPath; path != "" {
		speller, err := rewriting.LoadFuzzySpeller(path)
		if err != nil {
			return nil, cleanup, err
		}
		opts = append(opts, pipeline.WithSpeller(speller))
	}

	if cfg.Cache.Enabled {
		reportCache, err := cache.Connect(ctx, cache.Settings{
			Address:  cfg.Cache.Address,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      cfg.Cache.TTL,
		}, logger)
		if err != nil {
			logger.Warn("report cache unavailable, scoring uncached", zap.Error(err))
		} else {
			opts = append(opts, pipeline.WithCache(reportCache))
			cleanup = func() { _ = reportCache.Close() }
		}
	}

	if progress != nil {
		printer := observability.NewPrinter(progress)
		var mu sync.Mutex
		opts = append(opts, pipeline.WithProgress(func(event pipeline.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			printer.PrintProgress(event.Step, event.Filename, event.Message)
		}))
	}

	return pipeline.NewService(extractor, logger, opts...), cleanup, nil
}

// readJobDescription returns the contents of path, or "" when path is empty.
func readJobDescription(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
