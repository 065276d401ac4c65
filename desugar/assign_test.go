package desugar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/errors"
	"github.com/sorbet/sorbet-sub003/parser"
)

func translateSource(t *testing.T, src string) (ast.Expression, *core.GlobalState, *errors.Reporter) {
	t.Helper()
	gs := core.New(nil)
	file := gs.EnterFile("a.rb", src)
	tree, err := parser.New().Parse(context.Background(), gs, file, []byte(src))
	require.NoError(t, err)

	errs := errors.NewReporter()
	tr := New(gs, errs, file)
	return tr.Translate(tree), gs, errs
}

// countSends counts every Send node in tree whose method name matches fun.
func countSends(gs *core.GlobalState, tree ast.Node, fun string) int {
	count := 0
	ast.Walk(tree, func(n ast.Node) bool {
		if s, ok := n.(*ast.Send); ok && gs.NameString(s.Fun) == fun {
			count++
		}
		return true
	}, nil)
	return count
}

func TestSimpleAssignmentBuildsAssign(t *testing.T) {
	tree, _, errs := translateSource(t, "x = 1")
	require.False(t, errs.HasErrors(tree.Loc().File))

	assign, ok := tree.(*ast.Assign)
	require.True(t, ok, "expected an Assign, got %T", tree)
	lit, ok := assign.Rhs.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(1), lit.Int)
}

func TestMultiAssignmentExpandsSplat(t *testing.T) {
	tree, gs, errs := translateSource(t, "a, *b, c = foo")
	require.False(t, errs.HasErrors(tree.Loc().File))

	seq, ok := tree.(*ast.InsSeq)
	require.True(t, ok, "expected an InsSeq, got %T", tree)
	require.GreaterOrEqual(t, len(seq.Stats), 2)

	assert.Equal(t, 1, countSends(gs, seq, "<expand-splat>"))
	assert.Equal(t, 1, countSends(gs, seq, "to_ary"))

	// the whole mlhs evaluates back to the rhs temp
	_, ok = seq.Expr.(*ast.Local)
	assert.True(t, ok, "expected the InsSeq's terminal expr to be the rhs temp, got %T", seq.Expr)
}

func TestMultiAssignmentWithoutSplatIndexesPositionally(t *testing.T) {
	tree, gs, errs := translateSource(t, "a, b = foo")
	require.False(t, errs.HasErrors(tree.Loc().File))

	seq, ok := tree.(*ast.InsSeq)
	require.True(t, ok)
	assert.Equal(t, 1, countSends(gs, seq, "<expand-splat>"))
	assert.Equal(t, 2, countSends(gs, seq, "[]"))
}

func TestMultipleSplatTargetsReportRestArgsDestructureError(t *testing.T) {
	tree, _, errs := translateSource(t, "a, *b, *c = foo")
	require.NotNil(t, tree)
	assert.True(t, errs.HasErrors(tree.Loc().File))

	found := false
	for _, d := range errs.Diagnostics(tree.Loc().File) {
		if d.Kind == errors.UnsupportedRestArgsDestructure {
			found = true
		}
	}
	assert.True(t, found, "expected an UnsupportedRestArgsDestructure diagnostic")
}

func TestCompoundAssignmentOnLocal(t *testing.T) {
	tree, gs, errs := translateSource(t, "x += 1")
	require.False(t, errs.HasErrors(tree.Loc().File))

	assign, ok := tree.(*ast.Assign)
	require.True(t, ok, "expected an Assign, got %T", tree)
	send, ok := assign.Rhs.(*ast.Send)
	require.True(t, ok)
	assert.Equal(t, "+", gs.NameString(send.Fun))
}

func TestCompoundAssignmentOnCallReceiver(t *testing.T) {
	tree, gs, errs := translateSource(t, "foo.bar += 1")
	require.False(t, errs.HasErrors(tree.Loc().File))

	seq, ok := tree.(*ast.InsSeq)
	require.True(t, ok, "expected an InsSeq, got %T", tree)

	setter, ok := seq.Expr.(*ast.Send)
	require.True(t, ok)
	assert.Equal(t, "bar=", gs.NameString(setter.Fun))
	assert.Equal(t, 1, countSends(gs, seq, "bar"))
}

func TestCompoundAssignmentOnIndexReceiver(t *testing.T) {
	tree, gs, errs := translateSource(t, "foo[0] += 1")
	require.False(t, errs.HasErrors(tree.Loc().File))

	seq, ok := tree.(*ast.InsSeq)
	require.True(t, ok, "expected an InsSeq, got %T", tree)

	setter, ok := seq.Expr.(*ast.Send)
	require.True(t, ok)
	assert.Equal(t, "[]=", gs.NameString(setter.Fun))
	assert.Equal(t, 1, countSends(gs, seq, "[]"))
}

func TestOrAssignOnLocalBuildsIf(t *testing.T) {
	tree, _, errs := translateSource(t, "x ||= 1")
	require.False(t, errs.HasErrors(tree.Loc().File))

	ifExpr, ok := tree.(*ast.If)
	require.True(t, ok, "expected an If, got %T", tree)
	_, thenIsLocal := ifExpr.Then.(*ast.Local)
	assert.True(t, thenIsLocal, "expected the then-branch to read the existing local back")
	_, elseIsAssign := ifExpr.Else.(*ast.Assign)
	assert.True(t, elseIsAssign, "expected the else-branch to perform the assignment")
}

func TestAndAssignOnLocalBuildsIf(t *testing.T) {
	tree, _, errs := translateSource(t, "x &&= 1")
	require.False(t, errs.HasErrors(tree.Loc().File))

	ifExpr, ok := tree.(*ast.If)
	require.True(t, ok, "expected an If, got %T", tree)
	_, thenIsAssign := ifExpr.Then.(*ast.Assign)
	assert.True(t, thenIsAssign, "expected the then-branch to perform the assignment")
	_, elseIsLocal := ifExpr.Else.(*ast.Local)
	assert.True(t, elseIsLocal, "expected the else-branch to read the existing local back")
}

func TestOrAssignOnCallReceiverUsesTempRecv(t *testing.T) {
	tree, gs, errs := translateSource(t, "foo.bar ||= 1")
	require.False(t, errs.HasErrors(tree.Loc().File))

	seq, ok := tree.(*ast.InsSeq)
	require.True(t, ok, "expected an InsSeq, got %T", tree)
	require.Len(t, seq.Stats, 2)
	assert.Equal(t, 1, countSends(gs, seq, "bar"))

	ifExpr, ok := seq.Expr.(*ast.If)
	require.True(t, ok, "expected the InsSeq's terminal expr to be an If, got %T", seq.Expr)
	_, elseIsSetter := ifExpr.Else.(*ast.Send)
	assert.True(t, elseIsSetter, "expected the else-branch to call the setter")
}

func TestDynamicConstantReassignmentInsideMethodReportsError(t *testing.T) {
	tree, _, errs := translateSource(t, "class Foo\n  def bar\n    BAZ = 1\n  end\nend\n")
	require.NotNil(t, tree)
	assert.True(t, errs.HasErrors(tree.Loc().File))

	found := false
	for _, d := range errs.Diagnostics(tree.Loc().File) {
		if d.Kind == errors.NoConstantReassignment {
			found = true
		}
	}
	assert.True(t, found, "expected a NoConstantReassignment diagnostic")
}
