package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/counters"
)

func TestReporterAccumulatesPerFile(t *testing.T) {
	r := NewReporter()
	gs := core.New(nil)
	a := gs.EnterFile("a.rb", "x")
	b := gs.EnterFile("b.rb", "y")

	r.InternalError(core.Loc{File: a, Begin: 0, End: 1}, "unreachable: %d", 7)
	r.UnsupportedNodeError(core.Loc{File: b, Begin: 0, End: 1}, "ArgsSplat")

	assert.True(t, r.HasErrors(a))
	assert.True(t, r.HasErrors(b))
	assert.False(t, r.HasErrors(core.NoFile))

	require.Len(t, r.Diagnostics(a), 1)
	assert.Equal(t, Internal, r.Diagnostics(a)[0].Kind)
	assert.Contains(t, r.Diagnostics(a)[0].Message, "unreachable: 7")
}

func TestErrFoldsToMultierr(t *testing.T) {
	r := NewReporter()
	gs := core.New(nil)
	f := gs.EnterFile("a.rb", "x")
	loc := core.Loc{File: f, Begin: 0, End: 1}

	assert.Nil(t, r.Err(f))

	r.IntegerOutOfRangeError(loc, "99999999999999999999")
	r.FloatOutOfRangeError(loc, "1e999")

	err := r.Err(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IntegerOutOfRange")
	assert.Contains(t, err.Error(), "FloatOutOfRange")
}

func TestAllErrorsSpansFiles(t *testing.T) {
	r := NewReporter()
	gs := core.New(nil)
	a := gs.EnterFile("a.rb", "x")
	b := gs.EnterFile("b.rb", "y")

	r.NoConstantReassignmentError(core.Loc{File: a, Begin: 0, End: 1}, "Foo")
	r.InvalidSingletonDefError(core.Loc{File: b, Begin: 0, End: 1})

	err := r.AllErrors()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoConstantReassignment")
	assert.Contains(t, err.Error(), "InvalidSingletonDef")
}

func TestReportLogsInternalErrorsWithCountersSnapshot(t *testing.T) {
	observedCore, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(observedCore)

	r := NewReporter()
	r.SetLogger(logger)

	cnt := counters.NewState()
	cnt.Inc("files.parsed")
	r.SetCounters(cnt)

	gs := core.New(nil)
	f := gs.EnterFile("a.rb", "x")
	loc := core.Loc{File: f, Begin: 0, End: 1}

	r.InternalError(loc, "unreachable: %d", 7)
	r.UnsupportedNodeError(loc, "ArgsSplat")

	entries := logs.All()
	require.Len(t, entries, 1, "only the Internal-kind diagnostic should log")
	assert.Contains(t, entries[0].Message, "unreachable: 7")

	fields := entries[0].ContextMap()
	assert.EqualValues(t, 0, fields["loc_begin"])
	snapshot, ok := fields["counters"].(map[string]uint64)
	require.True(t, ok, "expected a counters snapshot field, got %T", fields["counters"])
	assert.EqualValues(t, 1, snapshot["files.parsed"])
}

func TestDuplicatedHashKeysCarriesSecondaryLine(t *testing.T) {
	r := NewReporter()
	gs := core.New(nil)
	f := gs.EnterFile("a.rb", `{a: 1, a: 2}`)
	first := core.Loc{File: f, Begin: 1, End: 2}
	second := core.Loc{File: f, Begin: 7, End: 8}

	r.DuplicatedHashKeysError(second, "a", first)

	diags := r.Diagnostics(f)
	require.Len(t, diags, 1)
	require.Len(t, diags[0].Secondary, 1)
	assert.Equal(t, first, diags[0].Secondary[0].Loc)
}
