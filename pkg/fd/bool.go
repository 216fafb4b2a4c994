package fd

import "fmt"

// Booleans are integer variables over 0..1. The boolean constraints
// below reuse the integer store; no separate boolean domain exists.

// BoolAnd returns a fresh boolean constrained to a AND b.
func (m *Model) BoolAnd(a, b VarID) (VarID, error) {
	r := m.NewBool()
	if err := m.ArrayBoolAnd([]VarID{a, b}, r); err != nil {
		return 0, err
	}
	return r, nil
}

// BoolOr returns a fresh boolean constrained to a OR b.
func (m *Model) BoolOr(a, b VarID) (VarID, error) {
	r := m.NewBool()
	if err := m.ArrayBoolOr([]VarID{a, b}, r); err != nil {
		return 0, err
	}
	return r, nil
}

// BoolNot returns a fresh boolean constrained to NOT a.
func (m *Model) BoolNot(a VarID) (VarID, error) {
	if err := m.checkInts([]VarID{a}); err != nil {
		return 0, err
	}
	r := m.NewBool()
	if err := m.LinEq([]int{1, 1}, []VarID{a, r}, 1); err != nil {
		return 0, err
	}
	return r, nil
}

// BoolXor posts r <-> (a != b).
func (m *Model) BoolXor(a, b, r VarID) error {
	if err := m.checkInts([]VarID{a, b, r}); err != nil {
		return err
	}
	m.NeReif(a, b, r)
	return nil
}

// ArrayBoolAnd posts r <-> AND(xs).
func (m *Model) ArrayBoolAnd(xs []VarID, r VarID) error {
	if err := m.checkInts(append([]VarID{r}, xs...)); err != nil {
		return err
	}
	m.post(&arrayBoolProp{xs: cloneVars(xs), r: r, conj: true})
	return nil
}

// ArrayBoolOr posts r <-> OR(xs).
func (m *Model) ArrayBoolOr(xs []VarID, r VarID) error {
	if err := m.checkInts(append([]VarID{r}, xs...)); err != nil {
		return err
	}
	m.post(&arrayBoolProp{xs: cloneVars(xs), r: r, conj: false})
	return nil
}

// arrayBoolProp channels r with the conjunction or disjunction of xs.
// AND and OR are duals, handled with one propagator through the
// absorbing value: 0 for AND, 1 for OR.
type arrayBoolProp struct {
	xs   []VarID
	r    VarID
	conj bool
}

func (p *arrayBoolProp) propagate(s *store) error {
	absorb := 1
	neutral := 0
	if p.conj {
		absorb = 0
		neutral = 1
	}
	dr := s.intDom(p.r)

	anyAbsorb := false
	allNeutral := true
	unfixed := -1
	nUnfixed := 0
	for i, x := range p.xs {
		d := s.intDom(x)
		if d.IsFixed() {
			if d.Value() == absorb {
				anyAbsorb = true
			}
		} else {
			allNeutral = false
			unfixed = i
			nUnfixed++
		}
		if d.IsFixed() && d.Value() != neutral {
			allNeutral = false
		}
	}
	if len(p.xs) == 0 {
		allNeutral = true
	}

	if anyAbsorb {
		return s.setInt(p.r, dr.Intersect(SingletonDomain(absorb)))
	}
	if allNeutral {
		return s.setInt(p.r, dr.Intersect(SingletonDomain(neutral)))
	}
	if !dr.IsFixed() {
		return nil
	}
	if dr.Value() == neutral {
		// Every operand must be neutral.
		for _, x := range p.xs {
			if err := s.setInt(x, s.intDom(x).Intersect(SingletonDomain(neutral))); err != nil {
				return err
			}
		}
		return nil
	}
	// r is absorbing and no operand is yet; with one unfixed operand
	// left it must take the absorbing value.
	if nUnfixed == 1 {
		x := p.xs[unfixed]
		return s.setInt(x, s.intDom(x).Intersect(SingletonDomain(absorb)))
	}
	if nUnfixed == 0 {
		return errInconsistent
	}
	return nil
}

// BoolClause posts OR(pos) OR OR(NOT n for n in neg).
func (m *Model) BoolClause(pos, neg []VarID) error {
	if err := m.checkInts(pos); err != nil {
		return err
	}
	if err := m.checkInts(neg); err != nil {
		return err
	}
	if len(pos) == 0 && len(neg) == 0 {
		return fmt.Errorf("fd: empty clause")
	}
	m.post(&clauseProp{pos: cloneVars(pos), neg: cloneVars(neg)})
	return nil
}

// clauseProp enforces a disjunction of literals with unit propagation.
type clauseProp struct {
	pos []VarID
	neg []VarID
}

func (p *clauseProp) propagate(s *store) error {
	type lit struct {
		v    VarID
		want int
	}
	var free []lit
	for _, v := range p.pos {
		d := s.intDom(v)
		if d.IsFixed() {
			if d.Value() == 1 {
				return nil
			}
			continue
		}
		free = append(free, lit{v, 1})
	}
	for _, v := range p.neg {
		d := s.intDom(v)
		if d.IsFixed() {
			if d.Value() == 0 {
				return nil
			}
			continue
		}
		free = append(free, lit{v, 0})
	}
	switch len(free) {
	case 0:
		return errInconsistent
	case 1:
		l := free[0]
		return s.setInt(l.v, s.intDom(l.v).Intersect(SingletonDomain(l.want)))
	default:
		return nil
	}
}
