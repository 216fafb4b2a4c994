package fd

// relOp identifies a binary integer relation.
type relOp uint8

const (
	relEq relOp = iota
	relNe
	relLt
	relLe
)

func negateRel(op relOp) (relOp, bool) {
	// Negation of lt/le swaps the operands, reported by the flag.
	switch op {
	case relEq:
		return relNe, false
	case relNe:
		return relEq, false
	case relLt:
		return relLe, true // !(x < y)  ==  y <= x
	default:
		return relLt, true // !(x <= y) ==  y < x
	}
}

// enforceRel narrows dx, dy so the relation holds, writing results back
// into the store.
func enforceRel(s *store, op relOp, x, y VarID) error {
	dx, dy := s.intDom(x), s.intDom(y)
	switch op {
	case relEq:
		d := dx.Intersect(dy)
		if err := s.setInt(x, d); err != nil {
			return err
		}
		return s.setInt(y, d)
	case relNe:
		if dx.IsFixed() {
			if err := s.setInt(y, dy.Remove(dx.Value())); err != nil {
				return err
			}
		}
		if dy.IsFixed() {
			return s.setInt(x, s.intDom(x).Remove(dy.Value()))
		}
		return nil
	case relLt:
		if err := s.setInt(x, dx.AtMost(dy.Max() - 1)); err != nil {
			return err
		}
		return s.setInt(y, s.intDom(y).AtLeast(s.intDom(x).Min()+1))
	default: // relLe
		if err := s.setInt(x, dx.AtMost(dy.Max())); err != nil {
			return err
		}
		return s.setInt(y, s.intDom(y).AtLeast(s.intDom(x).Min()))
	}
}

// entailedRel reports whether the relation is decided by the current
// domains: (true, _) = must hold, (_, true) = cannot hold.
func entailedRel(s *store, op relOp, x, y VarID) (yes, no bool) {
	dx, dy := s.intDom(x), s.intDom(y)
	switch op {
	case relEq:
		if dx.IsFixed() && dy.IsFixed() {
			if dx.Value() == dy.Value() {
				return true, false
			}
			return false, true
		}
		if dx.Intersect(dy).IsEmpty() {
			return false, true
		}
	case relNe:
		y2, n2 := entailedRel(s, relEq, x, y)
		return n2, y2
	case relLt:
		if dx.Max() < dy.Min() {
			return true, false
		}
		if dx.Min() >= dy.Max() {
			return false, true
		}
	case relLe:
		if dx.Max() <= dy.Min() {
			return true, false
		}
		if dx.Min() > dy.Max() {
			return false, true
		}
	}
	return false, false
}

// relProp enforces a binary relation between two integer variables.
type relProp struct {
	op   relOp
	x, y VarID
}

func (p *relProp) propagate(s *store) error {
	return enforceRel(s, p.op, p.x, p.y)
}

// relReifProp channels a boolean variable with a binary relation:
// b = 1 iff the relation holds.
type relReifProp struct {
	op      relOp
	x, y, b VarID
}

func (p *relReifProp) propagate(s *store) error {
	db := s.intDom(p.b)
	if db.IsFixed() {
		if db.Value() == 1 {
			return enforceRel(s, p.op, p.x, p.y)
		}
		neg, swap := negateRel(p.op)
		if swap {
			return enforceRel(s, neg, p.y, p.x)
		}
		return enforceRel(s, neg, p.x, p.y)
	}
	yes, no := entailedRel(s, p.op, p.x, p.y)
	if yes {
		return s.setInt(p.b, db.Intersect(SingletonDomain(1)))
	}
	if no {
		return s.setInt(p.b, db.Intersect(SingletonDomain(0)))
	}
	return nil
}

// memberProp restricts a variable to an explicit value set.
type memberProp struct {
	x       VarID
	allowed IntDomain
}

func (p *memberProp) propagate(s *store) error {
	return s.setInt(p.x, s.intDom(p.x).Intersect(p.allowed))
}

// memberReifProp channels b with membership of x in an explicit set.
type memberReifProp struct {
	x       VarID
	allowed IntDomain
	b       VarID
}

func (p *memberReifProp) propagate(s *store) error {
	db := s.intDom(p.b)
	dx := s.intDom(p.x)
	if db.IsFixed() {
		if db.Value() == 1 {
			return s.setInt(p.x, dx.Intersect(p.allowed))
		}
		if dx.IsFixed() && p.allowed.Has(dx.Value()) {
			return errInconsistent
		}
		return nil
	}
	if dx.Intersect(p.allowed).IsEmpty() {
		return s.setInt(p.b, db.Intersect(SingletonDomain(0)))
	}
	if dx.IsFixed() && p.allowed.Has(dx.Value()) {
		return s.setInt(p.b, db.Intersect(SingletonDomain(1)))
	}
	return nil
}
