// Package counters implements the process-wide counters/timings bag (C5):
// simple counters, two-level category counters, per-name histograms, and
// span timings. Writers are thread-local (one State per worker goroutine);
// State.Consume merges another worker's state into the caller's,
// commutatively and associatively, on join.
package counters

import "sort"

// FlowID chains a span timing to at most one of a parent or a successor, in
// a single direction.
type FlowID struct {
	ID int
}

// Timing is one recorded span.
type Timing struct {
	Measure  string
	StartUs  int64
	EndUs    int64
	Args     []KV
	Tags     []KV
	Self     FlowID
	Previous FlowID
	Buckets  []int
}

// KV is a simple ordered key/value pair, used for Timing.Args/Tags.
type KV struct {
	Key   string
	Value string
}

// State is one thread/goroutine's accumulating bag of counters, category
// counters, histograms, and timings. A zero State is ready to use.
type State struct {
	counters         map[string]uint64
	categoryCounters map[string]map[string]uint64
	histograms       map[string]map[int32]uint64
	timings          []Timing
}

// NewState returns an empty, ready-to-use counter state for one worker.
func NewState() *State {
	return &State{
		counters:         map[string]uint64{},
		categoryCounters: map[string]map[string]uint64{},
		histograms:       map[string]map[int32]uint64{},
	}
}

// Inc increments a named counter by 1.
func (s *State) Inc(name string) { s.Add(name, 1) }

// Add adds value to a named counter.
func (s *State) Add(name string, value uint64) {
	if s.counters == nil {
		s.counters = map[string]uint64{}
	}
	s.counters[name] += value
}

// CategoryCounterInc increments a two-level (category, counter) pair by 1.
func (s *State) CategoryCounterInc(category, counter string) { s.CategoryCounterAdd(category, counter, 1) }

// CategoryCounterAdd adds value to a two-level (category, counter) pair.
func (s *State) CategoryCounterAdd(category, counter string, value uint64) {
	if s.categoryCounters == nil {
		s.categoryCounters = map[string]map[string]uint64{}
	}
	bucket, ok := s.categoryCounters[category]
	if !ok {
		bucket = map[string]uint64{}
		s.categoryCounters[category] = bucket
	}
	bucket[counter] += value
}

// HistogramInc increments the count at bucketKey in the named histogram by 1.
func (s *State) HistogramInc(name string, bucketKey int32) { s.HistogramAdd(name, bucketKey, 1) }

// HistogramAdd adds value to the count at bucketKey in the named histogram.
func (s *State) HistogramAdd(name string, bucketKey int32, value uint64) {
	if s.histograms == nil {
		s.histograms = map[string]map[int32]uint64{}
	}
	bucket, ok := s.histograms[name]
	if !ok {
		bucket = map[int32]uint64{}
		s.histograms[name] = bucket
	}
	bucket[bucketKey] += value
}

// TimingAdd records one span. A timing with both Self and Previous flow IDs
// set is rejected: a flow chains in at most one direction.
func (s *State) TimingAdd(t Timing) error {
	if t.Self.ID != 0 && t.Previous.ID != 0 {
		return errBothFlowIDsSet
	}
	s.timings = append(s.timings, t)
	return nil
}

var errBothFlowIDsSet = &flowIDError{}

type flowIDError struct{}

func (*flowIDError) Error() string {
	return "counters: a timing may set a self flow id or a previous flow id, never both"
}

// Consume merges other into s: sums all counters/categories/histograms and
// appends all timings. Consume(other) followed by discarding other is the
// merge-on-join operation workers hand to the main thread.
//
// Commutative and associative: Consume never depends on call order, only on
// the multiset of (counter,value) entries summed and timings appended.
func (s *State) Consume(other *State) {
	if other == nil {
		return
	}
	for k, v := range other.counters {
		s.Add(k, v)
	}
	for cat, bucket := range other.categoryCounters {
		for k, v := range bucket {
			s.CategoryCounterAdd(cat, k, v)
		}
	}
	for name, bucket := range other.histograms {
		for k, v := range bucket {
			s.HistogramAdd(name, k, v)
		}
	}
	s.timings = append(s.timings, other.timings...)
}

// Counter returns the current value of a named counter (0 if unset), for
// tests and reporting.
func (s *State) Counter(name string) uint64 { return s.counters[name] }

// CategoryCounter returns the current value of a (category, counter) pair.
func (s *State) CategoryCounter(category, counter string) uint64 {
	return s.categoryCounters[category][counter]
}

// Histogram returns a copy of the named histogram's bucket map.
func (s *State) Histogram(name string) map[int32]uint64 {
	out := make(map[int32]uint64, len(s.histograms[name]))
	for k, v := range s.histograms[name] {
		out[k] = v
	}
	return out
}

// Timings returns a copy of the recorded timings, in append order. Timing
// order is specified to be a multiset: callers comparing two States for
// equality must not depend on this order.
func (s *State) Timings() []Timing {
	out := make([]Timing, len(s.timings))
	copy(out, s.timings)
	return out
}

// Canonicalize is a no-op in this implementation: the original API
// re-interned pointer-identity keys into a byte-valued map before
// reporting, which only matters because C++ ConstExprStr compares by
// pointer. Go's map[string] already compares by content, so every counter
// key is canonical the moment it's written. Kept as an explicit call site
// so callers porting from the original's `canonicalize()` call have
// somewhere to put it, and so a future caller-supplied key type that isn't
// naturally value-comparable has a hook to normalize through.
func (s *State) Canonicalize() {}

// CounterNames returns the sorted set of counter names currently set, for
// deterministic reporting.
func (s *State) CounterNames() []string {
	names := make([]string, 0, len(s.counters))
	for k := range s.counters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a point-in-time copy of the simple counters, suitable for
// attaching to a log line or writing out as a batch summary. Category
// counters and histograms are intentionally omitted: callers wanting those
// read CategoryCounter/Histogram directly.
func (s *State) Snapshot() map[string]uint64 {
	out := make(map[string]uint64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}
