package schemagen

import (
	"context"
	"log/slog"

	"github.com/gertd/go-pluralize"
	"golang.org/x/sync/errgroup"

	"github.com/usestring/schemagen-mcp/pkg/sample"
)

// Generator infers schemas from sample corpora. A Generator holds no
// per-run state and is safe for concurrent use.
type Generator struct {
	plural  *pluralize.Client
	workers int
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers sets how many groups are built concurrently. Values below 1
// mean one group at a time. The result does not depend on this setting.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		plural:  pluralize.NewClient(),
		workers: 1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.workers < 1 {
		g.workers = 1
	}
	return g
}

// Generate infers the schema of every group in corpus. Groups without
// samples, and groups whose samples yield no recognised field, are left out.
// The context only bounds the worker pool; generation itself never blocks.
func (g *Generator) Generate(ctx context.Context, corpus *sample.Corpus) (*Schema, error) {
	names := corpus.Names()
	built := make([]*GroupConfig, len(names))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i, name := range names {
		records := corpus.Records(name)
		if len(records) == 0 {
			continue
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			built[i] = g.buildGroup(corpus, name, records)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	schema := NewSchema()
	for i, name := range names {
		if built[i] == nil {
			continue
		}
		schema.Groups[name] = built[i]
	}
	return schema, nil
}

func (g *Generator) buildGroup(corpus *sample.Corpus, name string, records []*sample.Value) *GroupConfig {
	b := newGroupBuilder(g, corpus, name)
	for _, rec := range records {
		b.addRecord(rec)
	}

	group := b.build()
	if group == nil {
		g.logger.Debug("group produced no fields", "group", name, "samples", len(records))
		return nil
	}
	g.logger.Debug("group built",
		"group", name,
		"samples", len(records),
		"fields", len(group.Fields),
		"objects", len(group.Objects),
	)
	return group
}

// Generate infers a schema with a default Generator.
func Generate(corpus *sample.Corpus) *Schema {
	// Background is never cancelled, so Generate cannot fail here.
	schema, _ := New().Generate(context.Background(), corpus)
	return schema
}
