package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sorbet/sorbet-sub003/core"
)

// sitterNode adapts one *sitter.Node (plus the source bytes and FileRef it
// was parsed against) to the Node interface.
type sitterNode struct {
	n      *sitter.Node
	source []byte
	file   core.FileRef
}

func wrap(n *sitter.Node, source []byte, file core.FileRef) Node {
	if n == nil {
		return nil
	}
	return &sitterNode{n: n, source: source, file: file}
}

func (s *sitterNode) Tag() string { return s.n.Type() }

func (s *sitterNode) Loc() core.Loc {
	return core.Loc{File: s.file, Begin: s.n.StartByte(), End: s.n.EndByte()}
}

func (s *sitterNode) Field(name string) Node {
	return wrap(s.n.ChildByFieldName(name), s.source, s.file)
}

// Children returns every named child under the field name, or - for the
// grammar's list productions ("arguments", "body", "superclasses") where
// tree-sitter exposes the list as the node's own unnamed children rather
// than a single field - every named immediate child.
func (s *sitterNode) Children(name string) []Node {
	field := s.n.ChildByFieldName(name)
	target := s.n
	if field != nil {
		target = field
	}
	var out []Node
	count := int(target.NamedChildCount())
	for i := 0; i < count; i++ {
		out = append(out, wrap(target.NamedChild(i), s.source, s.file))
	}
	return out
}

func (s *sitterNode) Text() string { return s.n.Content(s.source) }

// Flag computes a structural boolean the ruby grammar encodes as node shape
// rather than an explicit field:
//   - "safe-navigation": the call used `&.` rather than `.`.
//   - "contains-splat": an argument/element list contains a `*splat`.
//   - "begin-modifier": a `begin...end while/until` (do-while semantics).
func (s *sitterNode) Flag(name string) bool {
	switch name {
	case "safe-navigation":
		return s.n.Type() == "call" && s.n.Child(1) != nil && s.n.Child(1).Type() == "safe_navigation"
	case "contains-splat":
		for i := 0; i < int(s.n.NamedChildCount()); i++ {
			if s.n.NamedChild(i).Type() == "splat_argument" {
				return true
			}
		}
		return false
	case "begin-modifier":
		return s.n.Type() == "while_modifier" || s.n.Type() == "until_modifier"
	default:
		return false
	}
}
