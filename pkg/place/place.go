// Package place converts shortest-path distances into display coordinates.
//
// The placer is deliberately one-sided: it consumes only the distances
// from the virtual source (upper bounds relative to the source). A
// symmetric reverse pass would yield true lower bounds and a tighter
// layout; that pass is intentionally absent and should stay absent.
//
// Two modes exist. Normal placement normalizes the finite distances into
// the padded display range and pads intervals up to a minimum visible
// width. Fallback placement ignores distances entirely and spaces events
// evenly across the range; the orchestrator uses it when there are no
// assertions to solve or when relaxation could not reach feasibility.
package place

import (
	"math"

	"github.com/chronoline/chronoline/pkg/model"
)

// Default display geometry.
const (
	// DefaultScale is the display width in output units.
	DefaultScale = 1000.0
	// DefaultPad is the edge padding kept clear on both sides.
	DefaultPad = 50.0
	// DefaultMinWidth is the minimum rendered width of an interval.
	DefaultMinWidth = 20.0
)

// Config holds the display geometry.
type Config struct {
	// Scale is the total display width.
	Scale float64
	// Pad is the padding inside each edge; coordinates stay within
	// [Pad, Scale-Pad].
	Pad float64
	// MinWidth is the smallest end-start span an interval may render at.
	MinWidth float64
}

// DefaultConfig returns the standard display geometry.
func DefaultConfig() Config {
	return Config{Scale: DefaultScale, Pad: DefaultPad, MinWidth: DefaultMinWidth}
}

// Place maps each event's endpoint distances into display coordinates.
//
// Events whose endpoints received no finite distance are omitted from the
// output; callers must tolerate a partial list. When all finite distances
// coincide, every event collapses to the midpoint of the padded range.
func Place(events []model.Event, dist map[string]float64, cfg Config) []model.Coordinate {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	placeable := make([]model.Event, 0, len(events))
	for _, e := range events {
		ds, okS := finite(dist, e.StartVar())
		de, okE := finite(dist, e.EndVar())
		if !okS || !okE {
			continue
		}
		placeable = append(placeable, e)
		lo = math.Min(lo, math.Min(ds, de))
		hi = math.Max(hi, math.Max(ds, de))
	}
	if len(placeable) == 0 {
		return nil
	}

	usable := cfg.Scale - 2*cfg.Pad
	normalize := func(v float64) float64 {
		if hi == lo {
			return cfg.Scale / 2
		}
		return cfg.Pad + (v-lo)/(hi-lo)*usable
	}

	coords := make([]model.Coordinate, 0, len(placeable))
	for _, e := range placeable {
		start := normalize(dist[e.StartVar()])
		if e.Duration == model.Instant {
			coords = append(coords, model.Coordinate{EventID: e.ID, Start: start, End: start})
			continue
		}
		end := normalize(dist[e.EndVar()])
		if end < start+cfg.MinWidth {
			end = start + cfg.MinWidth
			// A short interval at the far right would spill past the
			// padded range when widened; slide it left so both
			// endpoints stay within [Pad, Scale-Pad].
			if max := cfg.Scale - cfg.Pad; end > max {
				end = max
				start = end - cfg.MinWidth
				if start < cfg.Pad {
					start = cfg.Pad
				}
			}
		}
		coords = append(coords, model.Coordinate{EventID: e.ID, Start: start, End: end})
	}
	return coords
}

// Fallback spaces events evenly across the padded range in input order,
// with no regard for distances. Each event owns an equal slot; intervals
// occupy the middle 80% of theirs, instants sit at the slot center.
func Fallback(events []model.Event, cfg Config) []model.Coordinate {
	if len(events) == 0 {
		return nil
	}
	usable := cfg.Scale - 2*cfg.Pad
	slot := usable / float64(len(events))

	coords := make([]model.Coordinate, 0, len(events))
	for i, e := range events {
		left := cfg.Pad + float64(i)*slot
		if e.Duration == model.Instant {
			center := left + slot/2
			coords = append(coords, model.Coordinate{EventID: e.ID, Start: center, End: center})
			continue
		}
		coords = append(coords, model.Coordinate{
			EventID: e.ID,
			Start:   left + 0.1*slot,
			End:     left + 0.9*slot,
		})
	}
	return coords
}

func finite(dist map[string]float64, v string) (float64, bool) {
	d, ok := dist[v]
	if !ok || math.IsInf(d, 0) || math.IsNaN(d) {
		return 0, false
	}
	return d, true
}
