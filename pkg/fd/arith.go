package fd

import "fmt"

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// Sum returns a fresh variable constrained to sum(xs). The sum of an
// empty slice is the constant 0.
func (m *Model) Sum(xs []VarID) (VarID, error) {
	if err := m.checkInts(xs); err != nil {
		return 0, err
	}
	if len(xs) == 0 {
		return m.IntConst(0), nil
	}
	lo, hi := 0, 0
	for _, x := range xs {
		d := m.Domain(x)
		lo += d.Min()
		hi += d.Max()
	}
	z := m.NewInt(lo, hi)
	coeffs := make([]int, len(xs)+1)
	vars := make([]VarID, len(xs)+1)
	for i, x := range xs {
		coeffs[i] = 1
		vars[i] = x
	}
	coeffs[len(xs)] = -1
	vars[len(xs)] = z
	if err := m.LinEq(coeffs, vars, 0); err != nil {
		return 0, err
	}
	return z, nil
}

// WeightedSum returns a fresh variable constrained to
// sum(coeffs[i]*xs[i]).
func (m *Model) WeightedSum(coeffs []int, xs []VarID) (VarID, error) {
	if len(coeffs) != len(xs) {
		return 0, fmt.Errorf("fd: weighted sum has %d coefficients for %d variables", len(coeffs), len(xs))
	}
	if err := m.checkInts(xs); err != nil {
		return 0, err
	}
	lo, hi := 0, 0
	for i, x := range xs {
		tl, th := termBoundsDomain(coeffs[i], m.Domain(x))
		lo += tl
		hi += th
	}
	z := m.NewInt(lo, hi)
	cs := make([]int, len(xs)+1)
	vars := make([]VarID, len(xs)+1)
	copy(cs, coeffs)
	copy(vars, xs)
	cs[len(xs)] = -1
	vars[len(xs)] = z
	if err := m.LinEq(cs, vars, 0); err != nil {
		return 0, err
	}
	return z, nil
}

func termBoundsDomain(c int, d IntDomain) (int, int) {
	if c >= 0 {
		return c * d.Min(), c * d.Max()
	}
	return c * d.Max(), c * d.Min()
}

// MulConst returns a fresh variable constrained to c*x.
func (m *Model) MulConst(x VarID, c int) VarID {
	z, _ := m.WeightedSum([]int{c}, []VarID{x})
	return z
}

// Add returns a fresh variable constrained to x+y.
func (m *Model) Add(x, y VarID) (VarID, error) { return m.Sum([]VarID{x, y}) }

// Sub returns a fresh variable constrained to x-y.
func (m *Model) Sub(x, y VarID) (VarID, error) {
	return m.WeightedSum([]int{1, -1}, []VarID{x, y})
}

// Mul returns a fresh variable constrained to x*y.
func (m *Model) Mul(x, y VarID) (VarID, error) {
	if err := m.checkInts([]VarID{x, y}); err != nil {
		return 0, err
	}
	dx, dy := m.Domain(x), m.Domain(y)
	lo, hi := cornerBounds(dx, dy, func(a, b int) int { return a * b })
	z := m.NewInt(lo, hi)
	m.post(&mulProp{x: x, y: y, z: z})
	return z, nil
}

// cornerBounds evaluates f at the four domain corners.
func cornerBounds(dx, dy IntDomain, f func(a, b int) int) (int, int) {
	vals := [4]int{
		f(dx.Min(), dy.Min()),
		f(dx.Min(), dy.Max()),
		f(dx.Max(), dy.Min()),
		f(dx.Max(), dy.Max()),
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = minInt(lo, v)
		hi = maxInt(hi, v)
	}
	return lo, hi
}

// mulProp enforces z = x*y with bounds reasoning. When one factor is
// fixed, the other is pruned from z.
type mulProp struct {
	x, y, z VarID
}

func (p *mulProp) propagate(s *store) error {
	dx, dy, dz := s.intDom(p.x), s.intDom(p.y), s.intDom(p.z)
	lo, hi := cornerBounds(dx, dy, func(a, b int) int { return a * b })
	if err := s.setInt(p.z, dz.AtLeast(lo).AtMost(hi)); err != nil {
		return err
	}
	if err := p.invert(s, p.y, p.x); err != nil {
		return err
	}
	return p.invert(s, p.x, p.y)
}

// invert prunes other given that fixed*other = z, when fixed is fixed.
func (p *mulProp) invert(s *store, fixed, other VarID) error {
	df := s.intDom(fixed)
	if !df.IsFixed() {
		return nil
	}
	c := df.Value()
	dz := s.intDom(p.z)
	do := s.intDom(other)
	if c == 0 {
		return s.setInt(p.z, dz.Intersect(SingletonDomain(0)))
	}
	if c > 0 {
		return s.setInt(other, do.AtLeast(ceilDiv(dz.Min(), c)).AtMost(floorDiv(dz.Max(), c)))
	}
	return s.setInt(other, do.AtLeast(ceilDiv(dz.Max(), c)).AtMost(floorDiv(dz.Min(), c)))
}

// Div returns a fresh variable constrained to x div y (truncating
// toward zero). The divisor is constrained to be nonzero.
func (m *Model) Div(x, y VarID) (VarID, error) {
	if err := m.checkInts([]VarID{x, y}); err != nil {
		return 0, err
	}
	dx := m.Domain(x)
	mag := maxInt(absInt(dx.Min()), absInt(dx.Max()))
	z := m.NewInt(-mag, mag)
	m.post(&divProp{x: x, y: y, z: z})
	return z, nil
}

// divProp enforces z = x div y with truncation toward zero.
type divProp struct {
	x, y, z VarID
}

// divisorSamples collects the divisor values at which quotient extremes
// can occur: the interval bounds and the values nearest zero on each
// side.
func divisorSamples(dy IntDomain) []int {
	var out []int
	add := func(v int) {
		if !dy.Has(v) {
			return
		}
		for _, u := range out {
			if u == v {
				return
			}
		}
		out = append(out, v)
	}
	add(dy.Min())
	add(dy.Max())
	pos := dy.AtLeast(1)
	if !pos.IsEmpty() {
		add(pos.Min())
	}
	neg := dy.AtMost(-1)
	if !neg.IsEmpty() {
		add(neg.Max())
	}
	return out
}

func (p *divProp) propagate(s *store) error {
	if err := s.setInt(p.y, s.intDom(p.y).Remove(0)); err != nil {
		return err
	}
	dx, dy, dz := s.intDom(p.x), s.intDom(p.y), s.intDom(p.z)
	if dx.IsFixed() && dy.IsFixed() {
		return s.setInt(p.z, dz.Intersect(SingletonDomain(dx.Value()/dy.Value())))
	}
	first := true
	var lo, hi int
	for _, yv := range divisorSamples(dy) {
		for _, xv := range []int{dx.Min(), dx.Max()} {
			q := xv / yv
			if first {
				lo, hi = q, q
				first = false
				continue
			}
			lo = minInt(lo, q)
			hi = maxInt(hi, q)
		}
	}
	if first {
		return errInconsistent
	}
	return s.setInt(p.z, dz.AtLeast(lo).AtMost(hi))
}

// Mod returns a fresh variable constrained to x mod y (sign follows the
// dividend, matching truncating division). The divisor is constrained
// to be nonzero.
func (m *Model) Mod(x, y VarID) (VarID, error) {
	if err := m.checkInts([]VarID{x, y}); err != nil {
		return 0, err
	}
	dy := m.Domain(y)
	mag := maxInt(absInt(dy.Min()), absInt(dy.Max()))
	if mag == 0 {
		mag = 1
	}
	z := m.NewInt(-(mag - 1), mag-1)
	m.post(&modProp{x: x, y: y, z: z})
	return z, nil
}

// modProp enforces z = x mod y, truncating semantics.
type modProp struct {
	x, y, z VarID
}

func (p *modProp) propagate(s *store) error {
	if err := s.setInt(p.y, s.intDom(p.y).Remove(0)); err != nil {
		return err
	}
	dx, dy, dz := s.intDom(p.x), s.intDom(p.y), s.intDom(p.z)
	if dx.IsFixed() && dy.IsFixed() {
		return s.setInt(p.z, dz.Intersect(SingletonDomain(dx.Value()%dy.Value())))
	}
	mag := maxInt(absInt(dy.Min()), absInt(dy.Max()))
	lo, hi := -(mag - 1), mag-1
	// The remainder takes the dividend's sign.
	if dx.Min() >= 0 {
		lo = 0
	}
	if dx.Max() <= 0 {
		hi = 0
	}
	return s.setInt(p.z, dz.AtLeast(lo).AtMost(hi))
}

// Abs returns a fresh variable constrained to |x|.
func (m *Model) Abs(x VarID) (VarID, error) {
	if err := m.checkInts([]VarID{x}); err != nil {
		return 0, err
	}
	d := m.Domain(x)
	z := m.NewInt(0, maxInt(absInt(d.Min()), absInt(d.Max())))
	m.post(&absProp{x: x, z: z})
	return z, nil
}

// absProp enforces z = |x|.
type absProp struct {
	x, z VarID
}

func (p *absProp) propagate(s *store) error {
	dx, dz := s.intDom(p.x), s.intDom(p.z)
	if err := s.setInt(p.z, dz.AtLeast(0)); err != nil {
		return err
	}
	dz = s.intDom(p.z)
	switch {
	case dx.Min() >= 0:
		d := dx.Intersect(dz)
		if err := s.setInt(p.x, d); err != nil {
			return err
		}
		return s.setInt(p.z, d)
	case dx.Max() <= 0:
		if err := s.setInt(p.z, dz.AtLeast(-dx.Max()).AtMost(-dx.Min())); err != nil {
			return err
		}
		dz = s.intDom(p.z)
		return s.setInt(p.x, dx.AtLeast(-dz.Max()).AtMost(-dz.Min()))
	default:
		mag := maxInt(absInt(dx.Min()), absInt(dx.Max()))
		if err := s.setInt(p.z, dz.AtMost(mag)); err != nil {
			return err
		}
		dz = s.intDom(p.z)
		return s.setInt(p.x, dx.AtLeast(-dz.Max()).AtMost(dz.Max()))
	}
}

// Min returns a fresh variable constrained to min(xs).
func (m *Model) Min(xs []VarID) (VarID, error) {
	return m.extremum(xs, true)
}

// Max returns a fresh variable constrained to max(xs).
func (m *Model) Max(xs []VarID) (VarID, error) {
	return m.extremum(xs, false)
}

func (m *Model) extremum(xs []VarID, wantMin bool) (VarID, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("fd: extremum of empty variable list")
	}
	if err := m.checkInts(xs); err != nil {
		return 0, err
	}
	lo, hi := m.Domain(xs[0]).Min(), m.Domain(xs[0]).Max()
	for _, x := range xs[1:] {
		d := m.Domain(x)
		lo = minInt(lo, d.Min())
		hi = maxInt(hi, d.Max())
	}
	z := m.NewInt(lo, hi)
	m.post(&extremumProp{xs: cloneVars(xs), z: z, wantMin: wantMin})
	return z, nil
}

// extremumProp enforces z = min(xs) or z = max(xs).
type extremumProp struct {
	xs      []VarID
	z       VarID
	wantMin bool
}

func (p *extremumProp) propagate(s *store) error {
	dz := s.intDom(p.z)
	if p.wantMin {
		// z is at least the smallest lower bound and at most the
		// smallest upper bound.
		lbOfLbs, lbOfUbs := s.intDom(p.xs[0]).Min(), s.intDom(p.xs[0]).Max()
		for _, x := range p.xs[1:] {
			d := s.intDom(x)
			lbOfLbs = minInt(lbOfLbs, d.Min())
			lbOfUbs = minInt(lbOfUbs, d.Max())
		}
		if err := s.setInt(p.z, dz.AtLeast(lbOfLbs).AtMost(lbOfUbs)); err != nil {
			return err
		}
		dz = s.intDom(p.z)
		// Every x is at least z.
		support := -1
		for i, x := range p.xs {
			d := s.intDom(x)
			if err := s.setInt(x, d.AtLeast(dz.Min())); err != nil {
				return err
			}
			if s.intDom(x).Min() <= dz.Max() {
				if support >= 0 {
					support = -2
				} else if support == -1 {
					support = i
				}
			}
		}
		if support == -1 {
			return errInconsistent
		}
		if support >= 0 {
			// Exactly one variable can realize the minimum.
			x := p.xs[support]
			return s.setInt(x, s.intDom(x).AtMost(dz.Max()))
		}
		return nil
	}
	ubOfLbs, ubOfUbs := s.intDom(p.xs[0]).Min(), s.intDom(p.xs[0]).Max()
	for _, x := range p.xs[1:] {
		d := s.intDom(x)
		ubOfLbs = maxInt(ubOfLbs, d.Min())
		ubOfUbs = maxInt(ubOfUbs, d.Max())
	}
	if err := s.setInt(p.z, dz.AtLeast(ubOfLbs).AtMost(ubOfUbs)); err != nil {
		return err
	}
	dz = s.intDom(p.z)
	support := -1
	for i, x := range p.xs {
		d := s.intDom(x)
		if err := s.setInt(x, d.AtMost(dz.Max())); err != nil {
			return err
		}
		if s.intDom(x).Max() >= dz.Min() {
			if support >= 0 {
				support = -2
			} else if support == -1 {
				support = i
			}
		}
	}
	if support == -1 {
		return errInconsistent
	}
	if support >= 0 {
		x := p.xs[support]
		return s.setInt(x, s.intDom(x).AtLeast(dz.Min()))
	}
	return nil
}
