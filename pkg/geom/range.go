package geom

import (
	"fmt"
	"math"
)

// Range is an inclusive range whose bounds may each be absent
// (unconstrained). When both bounds are present, Min <= Max.
//
// Two combinators exist and they are not interchangeable. And intersects:
// the result is stricter, used when two independent constraints must both
// hold. Or takes the hull: the result is looser, used when a value may
// satisfy either of two sibling constraints.
type Range struct {
	min, max       float64
	hasMin, hasMax bool
}

// Unbounded returns a range with neither bound.
func Unbounded() Range { return Range{} }

// AtLeast returns [min, ∞).
func AtLeast(min float64) Range { return Range{min: min, hasMin: true} }

// AtMost returns (-∞, max].
func AtMost(max float64) Range { return Range{max: max, hasMax: true} }

// NewRangeMinPriority returns [min, max]. If max < min, max is raised to min.
func NewRangeMinPriority(min, max float64) Range {
	if max < min {
		max = min
	}
	return Range{min: min, max: max, hasMin: true, hasMax: true}
}

// NewRangeMaxPriority returns [min, max]. If min > max, min is lowered to max.
func NewRangeMaxPriority(min, max float64) Range {
	if min > max {
		min = max
	}
	return Range{min: min, max: max, hasMin: true, hasMax: true}
}

// Exactly returns [v, v].
func Exactly(v float64) Range { return NewRangeMinPriority(v, v) }

// Min returns the lower bound and whether it is present.
func (r Range) Min() (float64, bool) { return r.min, r.hasMin }

// Max returns the upper bound and whether it is present.
func (r Range) Max() (float64, bool) { return r.max, r.hasMax }

// MinOr returns the lower bound, or def when absent.
func (r Range) MinOr(def float64) float64 {
	if r.hasMin {
		return r.min
	}
	return def
}

// MaxOr returns the upper bound, or def when absent.
func (r Range) MaxOr(def float64) float64 {
	if r.hasMax {
		return r.max
	}
	return def
}

// fixMinPriority restores Min <= Max by raising max.
func (r Range) fixMinPriority() Range {
	if r.hasMin && r.hasMax && r.max < r.min {
		r.max = r.min
	}
	return r
}

// AndMin tightens the lower bound to at least v.
func (r Range) AndMin(v float64) Range {
	if !r.hasMin || v > r.min {
		r.min, r.hasMin = v, true
	}
	return r.fixMinPriority()
}

// AndMax tightens the upper bound to at most v. A lower bound above v wins.
func (r Range) AndMax(v float64) Range {
	if !r.hasMax || v < r.max {
		r.max, r.hasMax = v, true
	}
	return r.fixMinPriority()
}

// OrMin loosens the lower bound to at most v. An absent bound stays absent.
func (r Range) OrMin(v float64) Range {
	if r.hasMin && v < r.min {
		r.min = v
	}
	return r
}

// OrMax loosens the upper bound to at least v. An absent bound stays absent.
func (r Range) OrMax(v float64) Range {
	if r.hasMax && v > r.max {
		r.max = v
	}
	return r
}

// And returns the intersection of r and o. Disjoint ranges collapse with
// min priority.
func (r Range) And(o Range) Range {
	if o.hasMin {
		r = r.AndMin(o.min)
	}
	if o.hasMax {
		r = r.AndMax(o.max)
	}
	return r
}

// Or returns the smallest range containing both r and o.
func (r Range) Or(o Range) Range {
	out := Range{}
	if r.hasMin && o.hasMin {
		out.min, out.hasMin = math.Min(r.min, o.min), true
	}
	if r.hasMax && o.hasMax {
		out.max, out.hasMax = math.Max(r.max, o.max), true
	}
	return out
}

// Clamp returns v limited to the range.
func (r Range) Clamp(v float64) float64 {
	if r.hasMax && v > r.max {
		v = r.max
	}
	if r.hasMin && v < r.min {
		v = r.min
	}
	return v
}

// Contains reports whether v satisfies both bounds.
func (r Range) Contains(v float64) bool {
	return (!r.hasMin || v >= r.min) && (!r.hasMax || v <= r.max)
}

func (r Range) String() string {
	lo, hi := "-inf", "+inf"
	if r.hasMin {
		lo = fmt.Sprintf("%g", r.min)
	}
	if r.hasMax {
		hi = fmt.Sprintf("%g", r.max)
	}
	return "[" + lo + ", " + hi + "]"
}
