// Package inference runs the full schema pipeline shared by the CLI and the
// MCP server: decode the corpus, optionally select it out of a larger
// document, generate the schema, apply reference overrides and serialize.
package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/schemagen-mcp/internal/config"
	"github.com/usestring/schemagen-mcp/internal/query"
	"github.com/usestring/schemagen-mcp/internal/refconfig"
	"github.com/usestring/schemagen-mcp/pkg/contenttype"
	"github.com/usestring/schemagen-mcp/pkg/fieldstats"
	"github.com/usestring/schemagen-mcp/pkg/sample"
	"github.com/usestring/schemagen-mcp/pkg/schemagen"
)

// ErrCorpusTooLarge is returned when a corpus exceeds the configured size cap.
var ErrCorpusTooLarge = errors.New("corpus too large")

// Request describes one inference run.
type Request struct {
	Corpus    []byte
	Format    string // "json", "yaml" or a media type; empty to detect
	Path      string // source path, used for format detection only
	Select    string // optional jq expression yielding the corpus
	RefConfig *schemagen.RefConfig
}

// Result is the outcome of a run.
type Result struct {
	Schema     *schemagen.Schema
	Text       string
	Summary    schemagen.Summary
	Unresolved []schemagen.UnresolvedRef
	Warnings   []string
	Corpus     *sample.Corpus
}

// Engine runs inference requests. It is safe for concurrent use.
type Engine struct {
	gen      *schemagen.Generator
	query    *query.Engine
	maxBytes int
	logger   *slog.Logger
}

// New creates an Engine configured from cfg.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		gen: schemagen.New(
			schemagen.WithWorkers(cfg.Workers),
			schemagen.WithLogger(logger),
		),
		query:    query.NewEngine(),
		maxBytes: cfg.MaxCorpusBytes,
		logger:   logger,
	}
}

// LoadCorpus decodes the corpus of req, applying its selection.
func (e *Engine) LoadCorpus(req Request) (*sample.Corpus, error) {
	if e.maxBytes > 0 && len(req.Corpus) > e.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrCorpusTooLarge, len(req.Corpus), e.maxBytes)
	}

	category := contenttype.Resolve(req.Format, req.Path, req.Corpus)
	root, err := sample.Decode(req.Corpus, category)
	if err != nil {
		return nil, err
	}

	if req.Select != "" {
		root, err = e.query.Select(root, req.Select)
		if err != nil {
			return nil, fmt.Errorf("selecting corpus: %w", err)
		}
	}

	return sample.NewCorpusFromValue(root)
}

// Run executes the whole pipeline for req.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	corpus, err := e.LoadCorpus(req)
	if err != nil {
		return nil, err
	}

	schema, err := e.gen.Generate(ctx, corpus)
	if err != nil {
		return nil, err
	}

	res := e.Finish(schema, req.RefConfig)
	res.Corpus = corpus

	e.logger.Info("schema generated",
		"groups", corpus.Len(),
		"samples", corpus.SampleCount(),
		"schema_groups", res.Summary.Groups,
		"unresolved_refs", res.Summary.UnresolvedRefs,
	)
	return res, nil
}

// Finish applies cfg to schema and fills in the derived parts of a Result.
// schema is not modified.
func (e *Engine) Finish(schema *schemagen.Schema, cfg *schemagen.RefConfig) *Result {
	warnings := refconfig.Lint(cfg)
	for _, w := range warnings {
		e.logger.Warn("ref-config entry ignored", "detail", w)
	}

	applied := schemagen.ApplyRefConfig(schema, cfg)
	return &Result{
		Schema:     applied,
		Text:       schemagen.Serialize(applied),
		Summary:    applied.Summarize(),
		Unresolved: applied.Unresolved(),
		Warnings:   warnings,
	}
}

// Stats computes the field coverage table of the corpus of req.
func (e *Engine) Stats(ctx context.Context, req Request) ([]fieldstats.GroupStats, error) {
	corpus, err := e.LoadCorpus(req)
	if err != nil {
		return nil, err
	}
	schema, err := e.gen.Generate(ctx, corpus)
	if err != nil {
		return nil, err
	}
	return fieldstats.Compute(corpus, schema), nil
}
