package fd

import "fmt"

// Count returns a fresh variable constrained to the number of xs equal
// to y.
func (m *Model) Count(xs []VarID, y VarID) (VarID, error) {
	if err := m.checkInts(append([]VarID{y}, xs...)); err != nil {
		return 0, err
	}
	c := m.NewInt(0, len(xs))
	m.post(&countProp{xs: cloneVars(xs), y: y, c: c})
	return c, nil
}

// CountConstrain posts |{i : xs[i] = y}| = c for an existing count
// variable.
func (m *Model) CountConstrain(xs []VarID, y, c VarID) error {
	if err := m.checkInts(append([]VarID{y, c}, xs...)); err != nil {
		return err
	}
	m.post(&countProp{xs: cloneVars(xs), y: y, c: c})
	return nil
}

// AtLeast posts |{i : xs[i] = v}| >= n.
func (m *Model) AtLeast(n int, xs []VarID, v int) error {
	return m.CountConstrain(xs, m.IntConst(v), m.NewInt(n, len(xs)))
}

// AtMost posts |{i : xs[i] = v}| <= n.
func (m *Model) AtMost(n int, xs []VarID, v int) error {
	return m.CountConstrain(xs, m.IntConst(v), m.NewInt(0, n))
}

// Exactly posts |{i : xs[i] = v}| = n.
func (m *Model) Exactly(n int, xs []VarID, v int) error {
	return m.CountConstrain(xs, m.IntConst(v), m.IntConst(n))
}

// countProp enforces c = |{i : xs[i] = y}|. Pruning is strongest when y
// is fixed; until then only the trivial 0..n bound applies.
type countProp struct {
	xs []VarID
	y  VarID
	c  VarID
}

func (p *countProp) propagate(s *store) error {
	dc := s.intDom(p.c)
	if err := s.setInt(p.c, dc.AtLeast(0).AtMost(len(p.xs))); err != nil {
		return err
	}
	dy := s.intDom(p.y)
	if !dy.IsFixed() {
		return nil
	}
	v := dy.Value()
	fixed, possible := 0, 0
	for _, x := range p.xs {
		d := s.intDom(x)
		if !d.Has(v) {
			continue
		}
		possible++
		if d.IsFixed() {
			fixed++
		}
	}
	dc = s.intDom(p.c)
	if err := s.setInt(p.c, dc.AtLeast(fixed).AtMost(possible)); err != nil {
		return err
	}
	dc = s.intDom(p.c)
	if dc.Min() == possible {
		// Every variable that can still take v must take it.
		for _, x := range p.xs {
			d := s.intDom(x)
			if d.Has(v) {
				if err := s.setInt(x, d.Intersect(SingletonDomain(v))); err != nil {
					return err
				}
			}
		}
	}
	if dc.Max() == fixed {
		// No further variable may take v.
		for _, x := range p.xs {
			d := s.intDom(x)
			if !d.IsFixed() {
				if err := s.setInt(x, d.Remove(v)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// AllDifferent posts pairwise inequality over xs.
func (m *Model) AllDifferent(xs []VarID) error {
	if err := m.checkInts(xs); err != nil {
		return err
	}
	m.post(&allDiffProp{xs: cloneVars(xs)})
	return nil
}

// allDiffProp removes fixed values from the other domains. Two
// variables fixed to the same value fail through the resulting empty
// domain.
type allDiffProp struct {
	xs []VarID
}

func (p *allDiffProp) propagate(s *store) error {
	for i, x := range p.xs {
		d := s.intDom(x)
		if !d.IsFixed() {
			continue
		}
		v := d.Value()
		for j, y := range p.xs {
			if j == i {
				continue
			}
			dy := s.intDom(y)
			if dy.IsFixed() && dy.Value() == v {
				return errInconsistent
			}
			if err := s.setInt(y, dy.Remove(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Element posts xs[idx] = val with a zero-based index variable.
func (m *Model) Element(idx VarID, xs []VarID, val VarID) error {
	if len(xs) == 0 {
		return fmt.Errorf("fd: element over empty array")
	}
	if err := m.checkInts(append([]VarID{idx, val}, xs...)); err != nil {
		return err
	}
	m.post(&elementProp{idx: idx, xs: cloneVars(xs), val: val})
	return nil
}

// elementProp enforces val = xs[idx], idx zero-based.
type elementProp struct {
	idx VarID
	xs  []VarID
	val VarID
}

func (p *elementProp) propagate(s *store) error {
	di := s.intDom(p.idx)
	if err := s.setInt(p.idx, di.AtLeast(0).AtMost(len(p.xs)-1)); err != nil {
		return err
	}
	di = s.intDom(p.idx)
	dv := s.intDom(p.val)

	// Drop indices whose element cannot match val, and collect the
	// value bounds over the surviving elements.
	first := true
	lo, hi := 0, 0
	pruned := di
	di.IterateValues(func(i int) bool {
		d := s.intDom(p.xs[i])
		if d.Intersect(dv).IsEmpty() {
			pruned = pruned.Remove(i)
			return true
		}
		if first {
			lo, hi = d.Min(), d.Max()
			first = false
		} else {
			lo = minInt(lo, d.Min())
			hi = maxInt(hi, d.Max())
		}
		return true
	})
	if err := s.setInt(p.idx, pruned); err != nil {
		return err
	}
	if first {
		return errInconsistent
	}
	if err := s.setInt(p.val, dv.AtLeast(lo).AtMost(hi)); err != nil {
		return err
	}
	di = s.intDom(p.idx)
	if di.IsFixed() {
		x := p.xs[di.Value()]
		d := s.intDom(x).Intersect(s.intDom(p.val))
		if err := s.setInt(x, d); err != nil {
			return err
		}
		return s.setInt(p.val, d)
	}
	return nil
}
