// Package pipeline orchestrates scoring and refinement of uploaded résumés.
package pipeline

import (
	"context"

	"github.com/jonathan/ats-scorer/internal/cache"
	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/rendering"
	"github.com/jonathan/ats-scorer/internal/rewriting"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
	"go.uber.org/zap"
)

// Progress steps reported to a ProgressCallback
const (
	StepExtract = "extract"
	StepScore   = "score"
	StepRefine  = "refine"
	StepRender  = "render"
)

// ProgressEvent represents a progress update while a document is processed
type ProgressEvent struct {
	Step     string `json:"step"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// ProgressCallback is called as each step completes
type ProgressCallback func(event ProgressEvent)

// TextExtractor converts document bytes to plain text.
type TextExtractor interface {
	ExtractText(data []byte, filename string) (string, error)
}

// ReportCache memoizes score reports.
type ReportCache interface {
	Get(ctx context.Context, key string) (*types.ScoreReport, bool, error)
	Set(ctx context.Context, key string, report *types.ScoreReport) error
}

// Service wires the extractor, scorers, refinement engine and renderer together.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	extractor  TextExtractor
	refiner    *rewriting.Refiner
	writer     rendering.DocumentWriter
	cache      ReportCache
	onProgress ProgressCallback
	logger     *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSpeller enables the spelling pass of the refinement engine.
func WithSpeller(speller rewriting.Speller) Option {
	return func(s *Service) { s.refiner = rewriting.NewRefiner(speller, s.logger) }
}

// WithWriter sets the document-writing capability used by Refine.
func WithWriter(w rendering.DocumentWriter) Option {
	return func(s *Service) { s.writer = w }
}

// WithCache enables report memoization.
func WithCache(c ReportCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(s *Service) { s.onProgress = cb }
}

// NewService creates a Service. Without options refinement skips spelling,
// Refine reports the writer as unavailable, and nothing is cached.
func NewService(extractor TextExtractor, logger *zap.Logger, opts ...Option) *Service {
	logger = observability.OrNop(logger)
	s := &Service{
		extractor: extractor,
		refiner:   rewriting.NewRefiner(nil, logger),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score extracts, parses and scores a document against an optional job description.
// Only extraction errors are returned; absent data lowers sub-scores instead.
func (s *Service) Score(ctx context.Context, data []byte, filename, jobDescription string) (*types.ScoreReport, error) {
	key := ""
	if s.cache != nil {
		key = cache.Key(data, filename, jobDescription)
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("report cache lookup failed", zap.Error(err))
		}
		if ok {
			s.emit(StepScore, filename, "served from cache")
			return cached, nil
		}
	}

	// 1. Extract
	text, err := s.extractor.ExtractText(data, filename)
	if err != nil {
		return nil, err
	}
	s.emit(StepExtract, filename, "extracted text")

	// 2. Parse and score
	report := scoring.BuildReport(parsing.ParseResume(text), jobDescription)
	observability.ATSScores.Observe(float64(report.ATSScore))
	s.emit(StepScore, filename, "scored résumé")

	s.logger.Info("scored resume",
		zap.String("filename", filename),
		zap.Int("ats_score", report.ATSScore),
		zap.Int("word_count", report.WordCount))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, &report); err != nil {
			s.logger.Warn("failed to cache report", zap.Error(err))
		}
	}

	return &report, nil
}

// RefineText extracts a document and returns the refined plain-text body.
func (s *Service) RefineText(data []byte, filename, jobDescription string) (string, error) {
	text, err := s.extractor.ExtractText(data, filename)
	if err != nil {
		return "", err
	}
	s.emit(StepExtract, filename, "extracted text")

	refined := s.refiner.Refine(text, jobDescription)
	s.emit(StepRefine, filename, "refined résumé")
	return refined, nil
}

// Refine extracts, refines and renders a document to DOCX bytes.
// The writer is checked before extraction so an unavailable renderer fails fast.
func (s *Service) Refine(data []byte, filename, jobDescription string) ([]byte, error) {
	if s.writer == nil || !s.writer.Available() {
		return nil, &ingestion.ConfigurationError{Capability: "docx writer"}
	}

	refined, err := s.RefineText(data, filename, jobDescription)
	if err != nil {
		return nil, err
	}

	out, err := rendering.Render(refined, s.writer)
	if err != nil {
		return nil, err
	}
	s.emit(StepRender, filename, "rendered document")

	s.logger.Info("refined resume",
		zap.String("filename", filename),
		zap.Int("bytes", len(out)))
	return out, nil
}

func (s *Service) emit(step, filename, message string) {
	if s.onProgress != nil {
		s.onProgress(ProgressEvent{Step: step, Filename: filename, Message: message})
	}
}
