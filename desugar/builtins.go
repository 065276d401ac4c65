package desugar

import (
	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/parser"
)

// builtinIdent lowers the handful of identifier-shaped built-ins §4.5.10
// recognizes by literal spelling: `__FILE__`/`__LINE__`/`__ENCODING__`.
// Reports ok=false for every other identifier, so the caller falls back to
// an ordinary UnresolvedIdent.
func (t *Translator) builtinIdent(loc core.Loc, text string) (ast.Expression, bool) {
	switch text {
	case "__FILE__":
		return ast.NewStringLiteral(loc, t.gs.EnterNameUTF8([]byte(t.gs.Files.File(t.file).Path))), true
	case "__LINE__":
		line, _ := t.gs.Files.Position(loc)
		return ast.NewIntLiteral(loc, int64(line.Line)), true
	case "__ENCODING__":
		return t.magicSend(loc, "<get-encoding>"), true
	default:
		return nil, false
	}
}

// definedCall lowers `defined?(expr)` per §4.5.10:
//   - `defined?(@x)` / `defined?(@@x)` -> Magic.<defined-ivar>/<defined-cvar>
//   - `defined?(A::B::C)` -> Magic.<defined?>("A","B","C"); a root-relative
//     `::A...` uses the zero-arg form.
//   - any other argument shape -> the zero-arg Magic.<defined?>() form.
func (t *Translator) definedCall(n parser.Node) ast.Expression {
	loc := n.Loc()
	argsNode := n.Field("arguments")
	var arg parser.Node
	if argsNode != nil {
		if kids := argsNode.Children(""); len(kids) > 0 {
			arg = kids[0]
		}
	} else if kids := n.Children(""); len(kids) > 0 {
		arg = kids[0]
	}
	if arg == nil {
		return t.magicSend(loc, "<defined?>")
	}

	switch arg.Tag() {
	case "instance_variable":
		return t.magicSend(loc, "<defined-ivar>", t.symbolLit(loc, arg.Text()))
	case "class_variable":
		return t.magicSend(loc, "<defined-cvar>", t.symbolLit(loc, arg.Text()))
	case "constant", "scope_resolution":
		root := arg
		for root.Tag() == "scope_resolution" && root.Field("scope") != nil {
			root = root.Field("scope")
		}
		if root.Tag() == "scope_resolution" {
			// innermost scope_resolution has no scope: a root-relative `::A...`
			return t.magicSend(loc, "<defined?>")
		}
		parts := constScopeParts(arg)
		args := make([]ast.Expression, 0, len(parts))
		for _, p := range parts {
			args = append(args, ast.NewStringLiteral(loc, t.gs.EnterNameUTF8([]byte(p))))
		}
		return t.magicSend(loc, "<defined?>", args...)
	default:
		return t.magicSend(loc, "<defined?>")
	}
}

// constScopeParts flattens `A::B::C` into ["A","B","C"], innermost last.
func constScopeParts(n parser.Node) []string {
	if n == nil {
		return nil
	}
	if n.Tag() != "scope_resolution" {
		return []string{n.Text()}
	}
	var out []string
	if scope := n.Field("scope"); scope != nil {
		out = append(out, constScopeParts(scope)...)
	}
	if name := n.Field("name"); name != nil {
		out = append(out, name.Text())
	}
	return out
}
