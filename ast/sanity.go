package ast

import "fmt"

// CheckSanity walks tree and verifies the structural invariants the
// desugarer promises every output tree upholds: no Send with a nil
// receiver, every Declaration carries an existing Symbol, every Loc is
// either none or a well-formed range, and InsSeq never nests another
// InsSeq as its terminal Expr unless AllowNestedTerm is set. It reports
// the first violation found; callers that want every violation should
// keep calling it after trimming the tree, rather than expect a list back.
func CheckSanity(tree Node) error {
	var err error
	Walk(tree, func(n Node) bool {
		if err != nil {
			return false
		}
		if e := checkNode(n); e != nil {
			err = e
			return false
		}
		return true
	}, nil)
	return err
}

func checkNode(n Node) error {
	if !n.Loc().IsNone() {
		l := n.Loc()
		if l.Begin > l.End {
			return fmt.Errorf("ast: %s has an inverted Loc [%d, %d)", n.nodeTag(), l.Begin, l.End)
		}
	}
	switch t := n.(type) {
	case *Send:
		if t.Recv == nil {
			return fmt.Errorf("ast: Send at %v has a nil Recv", t.Loc())
		}
	case *ClassDef:
		if !t.Symbol.Exists() {
			return fmt.Errorf("ast: ClassDef at %v has no Symbol", t.Loc())
		}
	case *MethodDef:
		if !t.Symbol.Exists() {
			return fmt.Errorf("ast: MethodDef at %v has no Symbol", t.Loc())
		}
	case *InsSeq:
		if inner, ok := t.Expr.(*InsSeq); ok && !t.AllowNestedTerm {
			return fmt.Errorf("ast: InsSeq at %v nests InsSeq %v as its terminal Expr without AllowNestedTerm", t.Loc(), inner.Loc())
		}
	}
	return nil
}
