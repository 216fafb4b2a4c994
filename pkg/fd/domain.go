package fd

import (
	"fmt"
	"sort"
	"strings"
)

// IntDomain is an immutable set of integers represented as a closed
// interval [lo, hi] minus a sorted slice of removed interior values.
// The zero value is the empty domain. All narrowing operations return a
// new domain and never modify the receiver, so domains can be shared
// freely between search nodes.
//
// Invariants maintained by the constructors and operations:
//   - lo <= hi for any non-empty domain
//   - holes are strictly inside (lo, hi), sorted, and duplicate-free
//   - bounds are never holes (normalization moves them inward instead)
type IntDomain struct {
	lo, hi int
	holes  []int
	empty  bool
}

// NewIntDomain returns the domain {lo, ..., hi}.
// If lo > hi the result is the empty domain.
func NewIntDomain(lo, hi int) IntDomain {
	if lo > hi {
		return EmptyDomain()
	}
	return IntDomain{lo: lo, hi: hi}
}

// SingletonDomain returns the domain {v}.
func SingletonDomain(v int) IntDomain { return IntDomain{lo: v, hi: v} }

// EmptyDomain returns the domain with no values.
func EmptyDomain() IntDomain { return IntDomain{lo: 1, hi: 0, empty: true} }

// IsEmpty reports whether the domain contains no values.
func (d IntDomain) IsEmpty() bool { return d.empty || d.lo > d.hi }

// IsFixed reports whether the domain contains exactly one value.
func (d IntDomain) IsFixed() bool { return !d.IsEmpty() && d.lo == d.hi }

// Value returns the single value of a fixed domain.
// It must only be called when IsFixed() is true.
func (d IntDomain) Value() int { return d.lo }

// Min returns the smallest value in the domain.
func (d IntDomain) Min() int { return d.lo }

// Max returns the largest value in the domain.
func (d IntDomain) Max() int { return d.hi }

// Size returns the number of values in the domain.
func (d IntDomain) Size() int {
	if d.IsEmpty() {
		return 0
	}
	return d.hi - d.lo + 1 - len(d.holes)
}

// Has reports whether v is in the domain.
func (d IntDomain) Has(v int) bool {
	if d.IsEmpty() || v < d.lo || v > d.hi {
		return false
	}
	i := sort.SearchInts(d.holes, v)
	return i >= len(d.holes) || d.holes[i] != v
}

// normalize moves bounds inward past holes and drops holes that fell
// outside the interval. It is called after every bound change.
func normalize(lo, hi int, holes []int) IntDomain {
	for lo <= hi {
		i := sort.SearchInts(holes, lo)
		if i < len(holes) && holes[i] == lo {
			lo++
			continue
		}
		break
	}
	for hi >= lo {
		i := sort.SearchInts(holes, hi)
		if i < len(holes) && holes[i] == hi {
			hi--
			continue
		}
		break
	}
	if lo > hi {
		return EmptyDomain()
	}
	// Keep only holes strictly inside the new interval.
	kept := holes[:0:0]
	for _, h := range holes {
		if h > lo && h < hi {
			kept = append(kept, h)
		}
	}
	return IntDomain{lo: lo, hi: hi, holes: kept}
}

// Remove returns the domain with v removed.
func (d IntDomain) Remove(v int) IntDomain {
	if !d.Has(v) {
		return d
	}
	if d.lo == d.hi {
		return EmptyDomain()
	}
	if v == d.lo {
		return normalize(d.lo+1, d.hi, d.holes)
	}
	if v == d.hi {
		return normalize(d.lo, d.hi-1, d.holes)
	}
	i := sort.SearchInts(d.holes, v)
	holes := make([]int, 0, len(d.holes)+1)
	holes = append(holes, d.holes[:i]...)
	holes = append(holes, v)
	holes = append(holes, d.holes[i:]...)
	return IntDomain{lo: d.lo, hi: d.hi, holes: holes}
}

// AtLeast returns the domain restricted to values >= lb.
func (d IntDomain) AtLeast(lb int) IntDomain {
	if d.IsEmpty() || lb <= d.lo {
		return d
	}
	return normalize(lb, d.hi, d.holes)
}

// AtMost returns the domain restricted to values <= ub.
func (d IntDomain) AtMost(ub int) IntDomain {
	if d.IsEmpty() || ub >= d.hi {
		return d
	}
	return normalize(d.lo, ub, d.holes)
}

// Intersect returns the set intersection of two domains.
func (d IntDomain) Intersect(o IntDomain) IntDomain {
	if d.IsEmpty() || o.IsEmpty() {
		return EmptyDomain()
	}
	res := d.AtLeast(o.lo).AtMost(o.hi)
	for _, h := range o.holes {
		res = res.Remove(h)
	}
	return res
}

// Equal reports whether two domains contain the same values.
func (d IntDomain) Equal(o IntDomain) bool {
	if d.IsEmpty() || o.IsEmpty() {
		return d.IsEmpty() && o.IsEmpty()
	}
	if d.lo != o.lo || d.hi != o.hi || len(d.holes) != len(o.holes) {
		return false
	}
	for i, h := range d.holes {
		if o.holes[i] != h {
			return false
		}
	}
	return true
}

// IterateValues calls f for every value in ascending order until f
// returns false.
func (d IntDomain) IterateValues(f func(v int) bool) {
	if d.IsEmpty() {
		return
	}
	hi := 0
	for v := d.lo; v <= d.hi; v++ {
		for hi < len(d.holes) && d.holes[hi] < v {
			hi++
		}
		if hi < len(d.holes) && d.holes[hi] == v {
			continue
		}
		if !f(v) {
			return
		}
	}
}

// String renders the domain for diagnostics.
func (d IntDomain) String() string {
	if d.IsEmpty() {
		return "{}"
	}
	if d.IsFixed() {
		return fmt.Sprintf("{%d}", d.lo)
	}
	if len(d.holes) == 0 {
		return fmt.Sprintf("[%d..%d]", d.lo, d.hi)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%d..%d]\\{", d.lo, d.hi)
	for i, h := range d.holes {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", h)
	}
	b.WriteByte('}')
	return b.String()
}

// DomainFromValues returns the smallest domain containing exactly the
// given values. The slice may be unsorted and contain duplicates.
func DomainFromValues(vals []int) IntDomain {
	if len(vals) == 0 {
		return EmptyDomain()
	}
	sorted := make([]int, len(vals))
	copy(sorted, vals)
	sort.Ints(sorted)
	lo := sorted[0]
	var holes []int
	prev := lo
	for _, v := range sorted[1:] {
		for g := prev + 1; g < v; g++ {
			holes = append(holes, g)
		}
		prev = v
	}
	return IntDomain{lo: lo, hi: sorted[len(sorted)-1], holes: holes}
}

// floatEps is the width below which a float interval counts as fixed.
const floatEps = 1e-9

// FloatInterval is an immutable closed interval of float64 values.
// The engine performs bounds propagation only on floats; search never
// branches on them.
type FloatInterval struct {
	Lo, Hi float64
}

// NewFloatInterval returns the interval [lo, hi].
func NewFloatInterval(lo, hi float64) FloatInterval { return FloatInterval{Lo: lo, Hi: hi} }

// IsEmpty reports whether the interval contains no values.
func (f FloatInterval) IsEmpty() bool { return f.Lo > f.Hi }

// IsFixed reports whether the interval has collapsed to a point
// (within floatEps).
func (f FloatInterval) IsFixed() bool { return !f.IsEmpty() && f.Hi-f.Lo <= floatEps }

// AtLeast returns the interval restricted to values >= lb.
func (f FloatInterval) AtLeast(lb float64) FloatInterval {
	if lb <= f.Lo {
		return f
	}
	return FloatInterval{Lo: lb, Hi: f.Hi}
}

// AtMost returns the interval restricted to values <= ub.
func (f FloatInterval) AtMost(ub float64) FloatInterval {
	if ub >= f.Hi {
		return f
	}
	return FloatInterval{Lo: f.Lo, Hi: ub}
}

// Intersect returns the interval intersection.
func (f FloatInterval) Intersect(o FloatInterval) FloatInterval {
	return f.AtLeast(o.Lo).AtMost(o.Hi)
}

func (f FloatInterval) String() string {
	if f.IsEmpty() {
		return "{}"
	}
	return fmt.Sprintf("[%g..%g]", f.Lo, f.Hi)
}
