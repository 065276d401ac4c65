package desugar

import (
	"strconv"
	"strings"

	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
)

// integerLiteral parses an integer token, stripping the `_` digit-group
// separators Ruby allows, and reports IntegerOutOfRange rather than
// failing the whole translation when the literal overflows int64.
func (t *Translator) integerLiteral(loc core.Loc, text string) ast.Expression {
	clean := strings.ReplaceAll(text, "_", "")
	v, err := strconv.ParseInt(clean, 0, 64)
	if err != nil {
		t.errs.IntegerOutOfRangeError(loc, text)
		return ast.NewIntLiteral(loc, 0)
	}
	return ast.NewIntLiteral(loc, v)
}

func (t *Translator) floatLiteral(loc core.Loc, text string) ast.Expression {
	clean := strings.ReplaceAll(text, "_", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		t.errs.FloatOutOfRangeError(loc, text)
		return ast.NewFloatLiteral(loc, 0)
	}
	return ast.NewFloatLiteral(loc, v)
}
