// Package errors is the diagnostic surface every pass reports through: a
// fixed ErrorKind taxonomy, a Sink any pass can emit into, and a Reporter
// that aggregates per-file diagnostics with go.uber.org/multierr so a driver
// can keep processing every file in a batch before deciding whether to fail.
package errors

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/counters"
)

// ErrorKind enumerates every diagnostic the desugarer (and, eventually, the
// passes built on top of it) can raise. Grounded on the original's
// ast::ErrorClass enum, narrowed to the kinds this frontend's scope actually
// produces.
type ErrorKind uint8

const (
	Internal ErrorKind = iota
	UnsupportedNode
	InvalidSingletonDef
	NoConstantReassignment
	DuplicatedHashKeys
	IntegerOutOfRange
	FloatOutOfRange
	UnsupportedRestArgsDestructure
)

func (k ErrorKind) String() string {
	switch k {
	case Internal:
		return "Internal"
	case UnsupportedNode:
		return "UnsupportedNode"
	case InvalidSingletonDef:
		return "InvalidSingletonDef"
	case NoConstantReassignment:
		return "NoConstantReassignment"
	case DuplicatedHashKeys:
		return "DuplicatedHashKeys"
	case IntegerOutOfRange:
		return "IntegerOutOfRange"
	case FloatOutOfRange:
		return "FloatOutOfRange"
	case UnsupportedRestArgsDestructure:
		return "UnsupportedRestArgsDestructure"
	default:
		return "Unknown"
	}
}

// Line is one line of a (possibly multi-line) diagnostic: its own Loc plus a
// formatted message, mirroring Reporter::ErrorLine.
type Line struct {
	Loc     core.Loc
	Message string
}

// Diagnostic is a single reported error: a primary Loc/Kind/message plus
// optional secondary lines (e.g. "previous definition was here").
type Diagnostic struct {
	Loc       core.Loc
	Kind      ErrorKind
	Message   string
	Secondary []Line
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Sink is the narrow interface a pass reports diagnostics through, so tests
// can substitute a recording fake without constructing a full Reporter.
type Sink interface {
	Report(d Diagnostic)
}

// Reporter is the Sink every driver actually uses: it accumulates
// Diagnostics per file and can fold a file's diagnostics into a single
// multierr chain for the driver to aggregate across an entire batch. A
// Reporter is shared across a driver's per-file worker goroutines, so its
// mutations are mutex-guarded.
type Reporter struct {
	mu     sync.Mutex
	byFile map[core.FileRef][]Diagnostic

	logger   *zap.Logger
	counters *counters.State
}

func NewReporter() *Reporter {
	return &Reporter{byFile: make(map[core.FileRef][]Diagnostic)}
}

// SetLogger attaches a logger that Report uses to emit a structured log line
// for every Internal-kind diagnostic, in addition to recording it normally.
// A nil Reporter logger (the default) means Report never logs.
func (r *Reporter) SetLogger(logger *zap.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// SetCounters attaches the counters.State whose Snapshot is attached as a
// structured field on every Internal-kind diagnostic's log line.
func (r *Reporter) SetCounters(c *counters.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = c
}

func (r *Reporter) Report(d Diagnostic) {
	r.mu.Lock()
	r.byFile[d.Loc.File] = append(r.byFile[d.Loc.File], d)
	logger, snap := r.logger, r.counters
	r.mu.Unlock()

	if d.Kind == Internal && logger != nil {
		fields := []zap.Field{
			zap.Uint32("loc_file", uint32(d.Loc.File)),
			zap.Uint32("loc_begin", d.Loc.Begin),
			zap.Uint32("loc_end", d.Loc.End),
		}
		if snap != nil {
			fields = append(fields, zap.Any("counters", snap.Snapshot()))
		}
		logger.Error(d.Message, fields...)
	}
}

// HasErrors reports whether any diagnostic has been recorded for file.
func (r *Reporter) HasErrors(file core.FileRef) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byFile[file]) > 0
}

// Diagnostics returns a copy of the diagnostics recorded for file, in report
// order.
func (r *Reporter) Diagnostics(file core.FileRef) []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.byFile[file]))
	copy(out, r.byFile[file])
	return out
}

// Err folds every diagnostic recorded for file into one multierr chain, or
// nil if file has none.
func (r *Reporter) Err(file core.FileRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	for _, d := range r.byFile[file] {
		err = multierr.Append(err, d)
	}
	return err
}

// AllErrors folds every diagnostic across every file into one multierr
// chain, for a driver reporting a whole batch's worth of failures at once.
func (r *Reporter) AllErrors() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	for _, ds := range r.byFile {
		for _, d := range ds {
			err = multierr.Append(err, d)
		}
	}
	return err
}

// InternalError reports an internal-compiler-error diagnostic: a pass hit a case
// it believes is unreachable.
func (r *Reporter) InternalError(loc core.Loc, format string, args ...interface{}) {
	r.Report(Diagnostic{Loc: loc, Kind: Internal, Message: fmt.Sprintf(format, args...)})
}

// UnsupportedNodeError reports a parse-tree node this frontend declines to
// desugar (the EmptyTree-substitution case).
func (r *Reporter) UnsupportedNodeError(loc core.Loc, nodeKind string) {
	r.Report(Diagnostic{Loc: loc, Kind: UnsupportedNode, Message: fmt.Sprintf("unsupported node of kind %q", nodeKind)})
}

// InvalidSingletonDefError reports a `class << expr` whose expr is not self.
func (r *Reporter) InvalidSingletonDefError(loc core.Loc) {
	r.Report(Diagnostic{Loc: loc, Kind: InvalidSingletonDef, Message: "`class << expr` is only supported when expr is `self`"})
}

// NoConstantReassignmentError reports an assignment to a constant from
// inside a method body.
func (r *Reporter) NoConstantReassignmentError(loc core.Loc, constName string) {
	r.Report(Diagnostic{Loc: loc, Kind: NoConstantReassignment, Message: fmt.Sprintf("constant %q reassigned dynamically inside a method", constName)})
}

// DuplicatedHashKeysError reports a hash literal with two identical literal
// keys in the same contiguous run, with the first occurrence attached as a
// secondary line.
func (r *Reporter) DuplicatedHashKeysError(loc core.Loc, keyText string, first core.Loc) {
	r.Report(Diagnostic{
		Loc: loc, Kind: DuplicatedHashKeys,
		Message:   fmt.Sprintf("duplicated key %q in hash literal", keyText),
		Secondary: []Line{{Loc: first, Message: "first occurrence here"}},
	})
}

// IntegerOutOfRangeError reports an integer literal that overflows int64.
func (r *Reporter) IntegerOutOfRangeError(loc core.Loc, text string) {
	r.Report(Diagnostic{Loc: loc, Kind: IntegerOutOfRange, Message: fmt.Sprintf("integer literal %q out of range", text)})
}

// FloatOutOfRangeError reports a float literal that overflows float64.
func (r *Reporter) FloatOutOfRangeError(loc core.Loc, text string) {
	r.Report(Diagnostic{Loc: loc, Kind: FloatOutOfRange, Message: fmt.Sprintf("float literal %q out of range", text)})
}

// UnsupportedRestArgsDestructureError reports a multi-assignment LHS pattern
// this frontend's destructuring lowering does not handle (more than one
// splat target in the same target list).
func (r *Reporter) UnsupportedRestArgsDestructureError(loc core.Loc) {
	r.Report(Diagnostic{Loc: loc, Kind: UnsupportedRestArgsDestructure, Message: "unsupported nested rest-args destructure"})
}
