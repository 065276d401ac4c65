// Package parser is the adapter boundary described in §6.1: it wraps an
// external Ruby grammar (github.com/smacker/go-tree-sitter and its ruby
// grammar) and exposes the tagged-tree shape the desugar package consumes,
// so the desugarer never imports a concrete parser library directly.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/sorbet/sorbet-sub003/core"
)

// Node is the tagged parse-tree node interface the desugarer consumes. Every
// node carries a byte-offset range into its source file, a tag naming its
// surface production, and kind-specific children reached by field name.
type Node interface {
	// Tag names the node's surface production (e.g. "call", "class",
	// "integer"), matching the grammar's own node-type vocabulary.
	Tag() string
	// Loc is the node's byte-offset range, already resolved against file.
	Loc() core.Loc
	// Field returns the single optional child at name, or nil if absent.
	Field(name string) Node
	// Children returns the node's named list-valued child at name (e.g.
	// "arguments", "body"), in source order.
	Children(name string) []Node
	// Text returns the node's raw source text, for leaf payloads the
	// grammar does not break down further (identifiers, literal digits).
	Text() string
	// Flag reports a kind-specific boolean the grammar encodes structurally
	// rather than as a child (safe-navigation, contains-splat, and the
	// like); see sitterNode.Flag in node.go for the mapping this adapter
	// implements.
	Flag(name string) bool
}

// Tree is a parsed file's root Node plus the FileRef it was parsed against,
// so callers never have to thread the two separately.
type Tree struct {
	Root Node
	File core.FileRef

	sitterTree *sitter.Tree // backing tree that Root's nodes read from
}

// Parser wraps one goroutine-confined *sitter.Parser configured for Ruby.
// A Parser is not safe for concurrent use; the driver's per-file worker
// pool (§5) gives each worker its own Parser.
type Parser struct {
	inner *sitter.Parser
}

func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(ruby.GetLanguage())
	return &Parser{inner: p}
}

// Parse parses source (already loaded into gs's file table as file) and
// returns the tagged root Node. The returned tree holds a reference to
// source's bytes for the lifetime of every Node.Text()/Loc() call; callers
// must not mutate source afterward.
func (p *Parser) Parse(ctx context.Context, gs *core.GlobalState, file core.FileRef, source []byte) (*Tree, error) {
	tree, err := p.inner.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	// The tree is not closed here: the returned Nodes keep reading it, so
	// the Tree holds on to it.

	root := wrap(tree.RootNode(), source, file)
	return &Tree{Root: root, File: file, sitterTree: tree}, nil
}
