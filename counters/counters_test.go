package counters

import "testing"

func TestIncAndAdd(t *testing.T) {
	s := NewState()
	s.Inc("foo")
	s.Add("foo", 2)
	if got := s.Counter("foo"); got != 3 {
		t.Errorf("Counter(foo) = %d, want 3", got)
	}
}

func TestCategoryCounter(t *testing.T) {
	s := NewState()
	s.CategoryCounterAdd("cache", "hit", 5)
	s.CategoryCounterInc("cache", "hit")
	if got := s.CategoryCounter("cache", "hit"); got != 6 {
		t.Errorf("CategoryCounter = %d, want 6", got)
	}
}

func TestHistogram(t *testing.T) {
	s := NewState()
	s.HistogramAdd("latency", 10, 3)
	s.HistogramInc("latency", 10)
	h := s.Histogram("latency")
	if h[10] != 4 {
		t.Errorf("Histogram[10] = %d, want 4", h[10])
	}
}

func TestTimingRejectsBothFlowIDs(t *testing.T) {
	s := NewState()
	err := s.TimingAdd(Timing{Measure: "parse", Self: FlowID{ID: 1}, Previous: FlowID{ID: 2}})
	if err == nil {
		t.Fatal("expected an error when both Self and Previous flow ids are set")
	}
}

func TestTimingAllowsOneFlowID(t *testing.T) {
	s := NewState()
	if err := s.TimingAdd(Timing{Measure: "parse", Self: FlowID{ID: 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Timings()) != 1 {
		t.Fatalf("expected 1 timing recorded")
	}
}

func TestConsumeCommutative(t *testing.T) {
	a := NewState()
	a.Add("x", 1)
	a.CategoryCounterAdd("cat", "c", 2)
	a.HistogramAdd("h", 1, 3)

	b := NewState()
	b.Add("x", 10)
	b.CategoryCounterAdd("cat", "c", 20)
	b.HistogramAdd("h", 1, 30)

	ab := NewState()
	ab.Consume(a)
	ab.Consume(b)

	ba := NewState()
	ba.Consume(b)
	ba.Consume(a)

	if ab.Counter("x") != ba.Counter("x") {
		t.Errorf("merge(a,b) != merge(b,a) for counters: %d != %d", ab.Counter("x"), ba.Counter("x"))
	}
	if ab.CategoryCounter("cat", "c") != ba.CategoryCounter("cat", "c") {
		t.Errorf("merge(a,b) != merge(b,a) for category counters")
	}
	if ab.Histogram("h")[1] != ba.Histogram("h")[1] {
		t.Errorf("merge(a,b) != merge(b,a) for histograms")
	}
	if len(ab.Timings()) != len(ba.Timings()) {
		t.Errorf("merge(a,b) and merge(b,a) should have the same timing multiset size")
	}
}

func TestConsumeAssociative(t *testing.T) {
	mk := func(v uint64) *State {
		s := NewState()
		s.Add("x", v)
		return s
	}
	a, b, c := mk(1), mk(2), mk(4)

	abc := NewState()
	abc.Consume(a)
	abc.Consume(b)
	abc.Consume(c)

	bc := NewState()
	bc.Consume(b)
	bc.Consume(c)
	aBC := NewState()
	aBC.Consume(a)
	aBC.Consume(bc)

	if abc.Counter("x") != aBC.Counter("x") {
		t.Errorf("merge should be associative: %d != %d", abc.Counter("x"), aBC.Counter("x"))
	}
}
