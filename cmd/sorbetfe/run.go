package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/counters"
	"github.com/sorbet/sorbet-sub003/desugar"
	"github.com/sorbet/sorbet-sub003/errors"
	"github.com/sorbet/sorbet-sub003/parser"
)

// run wires GlobalState, counters, the parser and the desugar translator
// together over paths, parsing and desugaring each file on its own goroutine
// (§5: "embarrassingly parallel across files") and merging per-worker
// counters into one snapshot on join.
func run(paths []string, opts options) error {
	logger, err := newLogger(opts.debug)
	if err != nil {
		return fmt.Errorf("sorbetfe: building logger: %w", err)
	}
	defer logger.Sync()

	gs := core.New(logger)
	total := counters.NewState()

	errs := errors.NewReporter()
	errs.SetLogger(logger)
	errs.SetCounters(total)

	runSanity := opts.debug || opts.sanity

	g, ctx := errgroup.WithContext(context.Background())
	locals := make([]*counters.State, len(paths))
	for i, path := range paths {
		i, path := i, path
		locals[i] = counters.NewState()
		g.Go(func() error {
			// Each worker gets its own Parser: parser.Parser is confined to
			// one goroutine (see parser.Parser's doc comment).
			return translateFile(ctx, gs, parser.New(), errs, locals[i], path, runSanity)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, local := range locals {
		total.Consume(local)
	}

	if opts.countersOut != "" {
		if err := writeCountersSnapshot(opts.countersOut, total); err != nil {
			return fmt.Errorf("sorbetfe: writing counters snapshot: %w", err)
		}
	}

	if batchErr := errs.AllErrors(); batchErr != nil {
		return batchErr
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// translateFile reads, parses, and desugars a single file, recording
// per-file counters into local. gs and errs are shared across every worker
// and are safe for concurrent use.
func translateFile(ctx context.Context, gs *core.GlobalState, p *parser.Parser, errs *errors.Reporter, local *counters.State, path string, checkSanity bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	file := gs.EnterFile(path, string(source))
	tree, err := p.Parse(ctx, gs, file, source)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	local.Inc("files.parsed")

	tr := desugar.New(gs, errs, file)
	root := tr.Translate(tree)
	local.Inc("files.desugared")

	if checkSanity {
		if err := ast.CheckSanity(root); err != nil {
			errs.InternalError(root.Loc(), "post-desugar sanity check failed for %s: %v", path, err)
		}
	}
	return nil
}

func writeCountersSnapshot(path string, s *counters.State) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
