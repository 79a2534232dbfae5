package model

import "time"

// Interval is a half-open time range [Start, End): the start instant is
// included, the end instant is excluded.  Half-open ranges make back-to-back
// stays unambiguous: a check-out on the same date as another guest's
// check-in is not an overlap.
//
// Fields:
//  Start – check-in instant (inclusive).
//  End   – check-out instant (exclusive), strictly after Start for a valid
//          interval.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval builds an Interval with both bounds normalised to UTC.
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start.UTC(), End: end.UTC()}
}

// Valid reports whether the interval is well formed, i.e. Start is strictly
// before End.  Zero-length and inverted ranges are rejected.
func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// Overlaps reports whether two half-open intervals intersect.  [a,b) and
// [c,d) overlap iff a < d and c < b.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Equal reports whether both bounds match to the instant.
func (iv Interval) Equal(other Interval) bool {
	return iv.Start.Equal(other.Start) && iv.End.Equal(other.End)
}
