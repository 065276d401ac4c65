package desugar

import (
	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/parser"
)

// hashEntry is one hash-literal element: either a literal k:v pair or a
// `**splat`.
type hashEntry struct {
	isSplat bool
	key     ast.Expression
	value   ast.Expression
	splat   ast.Expression
	loc     core.Loc
	keyText string // non-empty only for a pair whose key is a literal symbol/string
}

func (t *Translator) hashLiteral(n parser.Node) ast.Expression {
	loc := n.Loc()
	entries := make([]hashEntry, 0, len(n.Children("")))
	for _, c := range n.Children("") {
		switch c.Tag() {
		case "pair":
			k, v := t.hashPair(c)
			entries = append(entries, hashEntry{key: k, value: v, loc: c.Loc(), keyText: literalKeyText(t, k)})
		case "hash_splat_argument":
			entries = append(entries, hashEntry{isSplat: true, splat: t.splatOperand(c), loc: c.Loc()})
		}
	}
	return t.buildHash(loc, entries)
}

func literalKeyText(t *Translator, k ast.Expression) string {
	lit, ok := k.(*ast.Literal)
	if !ok {
		return ""
	}
	if lit.Kind != ast.LiteralSymbol && lit.Kind != ast.LiteralString {
		return ""
	}
	return t.gs.NameString(lit.Name)
}

func (t *Translator) hashPair(a parser.Node) (ast.Expression, ast.Expression) {
	k := a.Field("key")
	v := a.Field("value")
	var key, value ast.Expression
	if k != nil {
		key = t.expr(k)
	} else {
		key = ast.NewEmptyTree(a.Loc())
	}
	if v != nil {
		value = t.expr(v)
	} else {
		value = ast.NewEmptyTree(a.Loc())
	}
	return key, value
}

func (t *Translator) splatOperand(a parser.Node) ast.Expression {
	kids := a.Children("")
	if len(kids) == 0 {
		return ast.NewEmptyTree(a.Loc())
	}
	return t.expr(kids[0])
}

// checkDuplicateHashKeys reports DuplicatedHashKeys for any literal key
// repeated within one contiguous run of pairs; a `**splat` breaks the run,
// since the original's DuplicateHashKeyCheck only ever compares keys it can
// see statically within one such segment.
func (t *Translator) checkDuplicateHashKeys(entries []hashEntry) {
	seen := map[string]core.Loc{}
	for _, e := range entries {
		if e.isSplat {
			seen = map[string]core.Loc{}
			continue
		}
		if e.keyText == "" {
			continue
		}
		if first, ok := seen[e.keyText]; ok {
			t.errs.DuplicatedHashKeysError(e.loc, e.keyText, first)
		} else {
			seen[e.keyText] = e.loc
		}
	}
}

// buildHash lowers entries per §4.5.2: a splat-free run collapses to a
// single Hash literal; a run containing `**splat`s expands into an
// assignment sequence against a fresh accumulator.
func (t *Translator) buildHash(loc core.Loc, entries []hashEntry) ast.Expression {
	t.checkDuplicateHashKeys(entries)

	hasSplat := false
	for _, e := range entries {
		if e.isSplat {
			hasSplat = true
			break
		}
	}
	if !hasSplat {
		keys := make([]ast.Expression, 0, len(entries))
		values := make([]ast.Expression, 0, len(entries))
		for _, e := range entries {
			keys = append(keys, e.key)
			values = append(values, e.value)
		}
		return ast.NewHash(loc, keys, values)
	}

	acc := t.newTemp("hashAcc")
	var stats []ast.Expression
	var pendingKeys, pendingValues []ast.Expression
	seenAny := false

	flush := func() {
		if len(pendingKeys) == 0 {
			return
		}
		if !seenAny {
			stats = append(stats, t.assign(loc, localAt(loc, acc), ast.NewHash(loc, pendingKeys, pendingValues)))
			seenAny = true
		} else {
			args := make([]ast.Expression, 0, 1+2*len(pendingKeys))
			args = append(args, localAt(loc, acc))
			for i := range pendingKeys {
				args = append(args, pendingKeys[i], pendingValues[i])
			}
			stats = append(stats, t.assign(loc, localAt(loc, acc), t.magicSend(loc, "<merge-hash-values>", args...)))
		}
		pendingKeys, pendingValues = nil, nil
	}

	for _, e := range entries {
		if e.isSplat {
			flush()
			var converted ast.Expression
			if !seenAny {
				converted = t.magicSend(e.loc, "<to-hash-dup>", e.splat)
				stats = append(stats, t.assign(loc, localAt(loc, acc), converted))
				seenAny = true
			} else {
				converted = t.magicSend(e.loc, "<to-hash-nodup>", e.splat)
				stats = append(stats, t.assign(loc, localAt(loc, acc), t.magicSend(loc, "<merge-hash>", localAt(loc, acc), converted)))
			}
			continue
		}
		pendingKeys = append(pendingKeys, e.key)
		pendingValues = append(pendingValues, e.value)
	}
	flush()

	return ast.NewInsSeq(loc, stats, localAt(loc, acc))
}
