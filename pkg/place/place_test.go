package place

import (
	"math"
	"testing"

	"github.com/chronoline/chronoline/pkg/model"
)

func instant(id string) model.Event {
	return model.Event{ID: id, Duration: model.Instant, Enabled: true}
}

func interval(id string) model.Event {
	return model.Event{ID: id, Duration: model.Interval, Enabled: true}
}

func TestPlaceNormalizesIntoPaddedRange(t *testing.T) {
	cfg := DefaultConfig()
	events := []model.Event{instant("a"), instant("b")}
	dist := map[string]float64{
		"a_start": -10, "a_end": -10,
		"b_start": 0, "b_end": 0,
	}
	coords := Place(events, dist, cfg)
	if len(coords) != 2 {
		t.Fatalf("coords: got %d, want 2", len(coords))
	}
	if coords[0].Start != cfg.Pad {
		t.Fatalf("min coordinate: got %g, want %g", coords[0].Start, cfg.Pad)
	}
	if coords[1].Start != cfg.Scale-cfg.Pad {
		t.Fatalf("max coordinate: got %g, want %g", coords[1].Start, cfg.Scale-cfg.Pad)
	}
}

func TestPlacePreservesOrder(t *testing.T) {
	cfg := DefaultConfig()
	events := []model.Event{instant("a"), instant("b"), instant("c")}
	dist := map[string]float64{
		"a_start": -4, "a_end": -4,
		"b_start": -2, "b_end": -2,
		"c_start": 0, "c_end": 0,
	}
	coords := Place(events, dist, cfg)
	if !(coords[0].Start < coords[1].Start && coords[1].Start < coords[2].Start) {
		t.Fatalf("order not preserved: %v", coords)
	}
}

func TestPlaceInstantIgnoresEndDistance(t *testing.T) {
	// An instant's coordinates both come from its start distance.
	cfg := DefaultConfig()
	events := []model.Event{instant("a"), instant("b")}
	dist := map[string]float64{
		"a_start": -5, "a_end": -3,
		"b_start": 0, "b_end": 0,
	}
	coords := Place(events, dist, cfg)
	for _, c := range coords {
		if c.Start != c.End {
			t.Fatalf("instant %s: start %g != end %g", c.EventID, c.Start, c.End)
		}
	}
}

func TestPlaceEnforcesMinimumWidth(t *testing.T) {
	cfg := DefaultConfig()
	events := []model.Event{interval("a"), instant("b")}
	// a's span is tiny next to the overall range, so its normalized
	// width lands under MinWidth and gets extended.
	dist := map[string]float64{
		"a_start": -1000, "a_end": -999.5,
		"b_start": 0, "b_end": 0,
	}
	coords := Place(events, dist, cfg)
	a := coords[0]
	if a.End-a.Start != cfg.MinWidth {
		t.Fatalf("interval width: got %g, want %g", a.End-a.Start, cfg.MinWidth)
	}
}

func TestPlaceMinimumWidthAtRangeEdge(t *testing.T) {
	cfg := DefaultConfig()
	events := []model.Event{instant("b"), interval("a")}
	// a is a sliver at the very top of the range: widening it in place
	// would push its end past Scale-Pad, so it must slide left instead.
	dist := map[string]float64{
		"b_start": 0, "b_end": 0,
		"a_start": 980, "a_end": 980.4,
	}
	coords := Place(events, dist, cfg)
	var a model.Coordinate
	for _, c := range coords {
		if c.EventID == "a" {
			a = c
		}
	}
	if a.End != cfg.Scale-cfg.Pad {
		t.Fatalf("clamped end: got %g, want %g", a.End, cfg.Scale-cfg.Pad)
	}
	if a.End-a.Start != cfg.MinWidth {
		t.Fatalf("interval width: got %g, want %g", a.End-a.Start, cfg.MinWidth)
	}
	if a.Start < cfg.Pad {
		t.Fatalf("start %g slid below pad %g", a.Start, cfg.Pad)
	}
}

func TestPlaceDegenerateMidpoint(t *testing.T) {
	cfg := DefaultConfig()
	events := []model.Event{instant("a"), instant("b")}
	dist := map[string]float64{
		"a_start": -3, "a_end": -3,
		"b_start": -3, "b_end": -3,
	}
	coords := Place(events, dist, cfg)
	for _, c := range coords {
		if c.Start != cfg.Scale/2 {
			t.Fatalf("degenerate layout: got %g, want midpoint %g", c.Start, cfg.Scale/2)
		}
	}
}

func TestPlaceOmitsInfiniteDistances(t *testing.T) {
	cfg := DefaultConfig()
	events := []model.Event{instant("a"), instant("b")}
	dist := map[string]float64{
		"a_start": 0, "a_end": 0,
		"b_start": math.Inf(1), "b_end": math.Inf(1),
	}
	coords := Place(events, dist, cfg)
	if len(coords) != 1 {
		t.Fatalf("coords: got %d, want 1 (b unplaceable)", len(coords))
	}
	if coords[0].EventID != "a" {
		t.Fatalf("placed event: got %q, want a", coords[0].EventID)
	}
}

func TestPlaceEmpty(t *testing.T) {
	if got := Place(nil, nil, DefaultConfig()); got != nil {
		t.Fatalf("empty input: got %v, want nil", got)
	}
}

func TestFallbackSingleton(t *testing.T) {
	cfg := DefaultConfig()
	coords := Fallback([]model.Event{instant("a")}, cfg)
	if len(coords) != 1 {
		t.Fatalf("coords: got %d, want 1", len(coords))
	}
	mid := cfg.Scale / 2
	if coords[0].Start != mid || coords[0].End != mid {
		t.Fatalf("singleton: got (%g,%g), want midpoint %g", coords[0].Start, coords[0].End, mid)
	}
}

func TestFallbackEvenSpacing(t *testing.T) {
	cfg := DefaultConfig()
	events := []model.Event{instant("a"), interval("b"), instant("c")}
	coords := Fallback(events, cfg)
	if len(coords) != 3 {
		t.Fatalf("coords: got %d, want 3", len(coords))
	}
	// Monotone in input order, all within the padded range.
	prev := cfg.Pad - 1
	for _, c := range coords {
		if c.Start <= prev {
			t.Fatalf("not monotone: %v", coords)
		}
		if c.Start < cfg.Pad || c.End > cfg.Scale-cfg.Pad {
			t.Fatalf("out of range: %v", c)
		}
		prev = c.End
	}
	// The interval occupies 80% of its slot.
	slot := (cfg.Scale - 2*cfg.Pad) / 3
	b := coords[1]
	if math.Abs((b.End-b.Start)-0.8*slot) > 1e-9 {
		t.Fatalf("interval width: got %g, want %g", b.End-b.Start, 0.8*slot)
	}
}

func TestFallbackEmpty(t *testing.T) {
	if got := Fallback(nil, DefaultConfig()); got != nil {
		t.Fatalf("empty input: got %v, want nil", got)
	}
}
