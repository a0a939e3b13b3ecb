package availability

import (
	"sort"
	"time"
)

// Interval is a half-open absolute time range [Start, End). All interval
// arithmetic is pure so the slot math can be tested without any storage.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether the interval covers no time.
func (iv Interval) Empty() bool {
	return !iv.End.After(iv.Start)
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies fully inside iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// Coalesce sorts the intervals and merges overlapping or adjacent ones.
// Empty intervals are dropped. The input slice is not modified.
func Coalesce(ivs []Interval) []Interval {
	var in []Interval
	for _, iv := range ivs {
		if !iv.Empty() {
			in = append(in, iv)
		}
	}
	if len(in) == 0 {
		return nil
	}
	sort.Slice(in, func(i, j int) bool { return in[i].Start.Before(in[j].Start) })

	out := []Interval{in[0]}
	for _, iv := range in[1:] {
		last := &out[len(out)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// Subtract removes busy time from the free set. Busy intervals are coalesced
// first, so callers may pass them raw and overlapping. A free interval may
// split into zero, one or several sub-intervals; empty remainders are
// dropped.
func Subtract(free, busy []Interval) []Interval {
	busy = Coalesce(busy)
	var out []Interval
	for _, f := range Coalesce(free) {
		remainder := []Interval{f}
		for _, b := range busy {
			var next []Interval
			for _, r := range remainder {
				if !r.Overlaps(b) {
					next = append(next, r)
					continue
				}
				if b.Start.After(r.Start) {
					next = append(next, Interval{Start: r.Start, End: b.Start})
				}
				if b.End.Before(r.End) {
					next = append(next, Interval{Start: b.End, End: r.End})
				}
			}
			remainder = next
		}
		out = append(out, remainder...)
	}
	return out
}

// Slots walks the free intervals in ascending order and emits fixed-size
// candidate slots: starts advance by step from each free interval's start,
// and a slot is emitted only when it fits entirely inside the interval.
func Slots(free []Interval, duration, step time.Duration) []Interval {
	if duration <= 0 || step <= 0 {
		return nil
	}
	var out []Interval
	for _, f := range Coalesce(free) {
		for cur := f.Start; !cur.Add(duration).After(f.End); cur = cur.Add(step) {
			out = append(out, Interval{Start: cur, End: cur.Add(duration)})
		}
	}
	return out
}
