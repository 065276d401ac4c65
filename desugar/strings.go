package desugar

import (
	"strings"

	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/parser"
)

// stringLiteral lowers a `string` node per §4.5.8: a splat-free literal
// collapses to a single String Literal; one containing `#{}` lowers to
// `Magic.<string-interpolate>(part, part, ...)` with adjacent literal parts
// merged.
func (t *Translator) stringLiteral(n parser.Node) ast.Expression {
	loc := n.Loc()
	parts, hasInterp := t.stringParts(n)
	if !hasInterp {
		return ast.NewStringLiteral(loc, t.gs.EnterNameUTF8([]byte(joinedText(n))))
	}
	return t.magicSend(loc, "<string-interpolate>", parts...)
}

// stringParts walks a string node's children, merging consecutive plain
// text pieces and turning each `interpolation` child into `expr.to_s`.
func (t *Translator) stringParts(n parser.Node) ([]ast.Expression, bool) {
	kids := n.Children("")
	var parts []ast.Expression
	var textBuf strings.Builder
	hasInterp := false

	flush := func(loc core.Loc) {
		if textBuf.Len() == 0 {
			return
		}
		parts = append(parts, ast.NewStringLiteral(loc, t.gs.EnterNameUTF8([]byte(textBuf.String()))))
		textBuf.Reset()
	}

	for _, k := range kids {
		switch k.Tag() {
		case "interpolation":
			hasInterp = true
			flush(k.Loc())
			inner := k.Children("")
			if len(inner) == 0 {
				continue
			}
			expr := t.expr(inner[0])
			parts = append(parts, t.send0(k.Loc(), expr, "to_s"))
		default:
			textBuf.WriteString(k.Text())
		}
	}
	flush(n.Loc())
	return parts, hasInterp
}

// joinedText concatenates a splat-free string node's text pieces (used only
// when stringParts found no interpolation, so every part is plain text).
func joinedText(n parser.Node) string {
	kids := n.Children("")
	if len(kids) == 0 {
		return stripStringDelimiters(n.Text())
	}
	var b strings.Builder
	for _, k := range kids {
		b.WriteString(k.Text())
	}
	return b.String()
}

func stripStringDelimiters(text string) string {
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}

// symbolLiteral lowers a `:foo` / `:"a#{e}b"` node per §4.5.8: an
// interpolated symbol lowers to the string-interpolate pipeline followed by
// `.intern`.
func (t *Translator) symbolLiteral(n parser.Node) ast.Expression {
	loc := n.Loc()
	if n.Tag() == "simple_symbol" {
		text := strings.TrimPrefix(n.Text(), ":")
		return ast.NewSymbolLiteral(loc, t.gs.EnterNameUTF8([]byte(text)))
	}
	parts, hasInterp := t.stringParts(n)
	if !hasInterp {
		text := strings.TrimPrefix(strings.Trim(n.Text(), `:"`), "")
		return ast.NewSymbolLiteral(loc, t.gs.EnterNameUTF8([]byte(text)))
	}
	interp := t.magicSend(loc, "<string-interpolate>", parts...)
	return t.send0(loc, interp, "intern")
}

// regexLiteral lowers a `/pat/flags` node per §4.5.8: flags map i=1, x=2,
// m=4 (ORed); an interpolated body mirrors the string pipeline before
// wrapping in `::Regexp.new`.
func (t *Translator) regexLiteral(n parser.Node) ast.Expression {
	loc := n.Loc()
	text := n.Text()
	lastSlash := strings.LastIndexByte(text, '/')
	flagsText := ""
	if lastSlash >= 0 && lastSlash < len(text)-1 {
		flagsText = text[lastSlash+1:]
	}
	flags := int64(0)
	for _, f := range flagsText {
		switch f {
		case 'i':
			flags |= 1
		case 'x':
			flags |= 2
		case 'm':
			flags |= 4
		}
	}

	parts, hasInterp := t.stringParts(n)
	var patternExpr ast.Expression
	if hasInterp {
		patternExpr = t.magicSend(loc, "<string-interpolate>", parts...)
	} else {
		pattern := text
		if lastSlash >= 0 {
			pattern = text[1:lastSlash]
		}
		patternExpr = ast.NewStringLiteral(loc, t.gs.EnterNameUTF8([]byte(pattern)))
	}

	regexpConst := ast.NewUnresolvedConstantLit(loc, nil, t.gs.EnterNameUTF8([]byte("Regexp")))
	return t.sendN(loc, regexpConst, "new", patternExpr, ast.NewIntLiteral(loc, flags))
}
