package fd

// linOp identifies a linear relation sum(c_i*x_i) op k.
type linOp uint8

const (
	linEq linOp = iota
	linLe
	linNe
)

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}

// termBounds returns the min and max of c*x over the domain of x.
func termBounds(c int, d IntDomain) (int, int) {
	if c >= 0 {
		return c * d.Min(), c * d.Max()
	}
	return c * d.Max(), c * d.Min()
}

// linProp enforces sum(coeffs[i]*xs[i]) op k with bounds reasoning.
type linProp struct {
	op     linOp
	coeffs []int
	xs     []VarID
	k      int
}

func (p *linProp) propagate(s *store) error {
	switch p.op {
	case linLe:
		return propagateLinLe(s, p.coeffs, p.xs, p.k)
	case linEq:
		if err := propagateLinLe(s, p.coeffs, p.xs, p.k); err != nil {
			return err
		}
		return propagateLinGe(s, p.coeffs, p.xs, p.k)
	default: // linNe
		return propagateLinNe(s, p.coeffs, p.xs, p.k)
	}
}

// propagateLinLe enforces sum <= k: each term is bounded by k minus the
// minimum the remaining terms can contribute.
func propagateLinLe(s *store, coeffs []int, xs []VarID, k int) error {
	sumMin := 0
	for i, x := range xs {
		lo, _ := termBounds(coeffs[i], s.intDom(x))
		sumMin += lo
	}
	if sumMin > k {
		return errInconsistent
	}
	for i, x := range xs {
		c := coeffs[i]
		if c == 0 {
			continue
		}
		d := s.intDom(x)
		lo, _ := termBounds(c, d)
		slack := k - (sumMin - lo)
		if c > 0 {
			if err := s.setInt(x, d.AtMost(floorDiv(slack, c))); err != nil {
				return err
			}
		} else {
			if err := s.setInt(x, d.AtLeast(ceilDiv(slack, c))); err != nil {
				return err
			}
		}
	}
	return nil
}

// propagateLinGe enforces sum >= k by negating coefficients.
func propagateLinGe(s *store, coeffs []int, xs []VarID, k int) error {
	neg := make([]int, len(coeffs))
	for i, c := range coeffs {
		neg[i] = -c
	}
	return propagateLinLe(s, neg, xs, -k)
}

// propagateLinNe can only act once every variable but one is fixed.
func propagateLinNe(s *store, coeffs []int, xs []VarID, k int) error {
	unfixed := -1
	rest := 0
	for i, x := range xs {
		d := s.intDom(x)
		if d.IsFixed() {
			rest += coeffs[i] * d.Value()
			continue
		}
		if unfixed >= 0 {
			return nil
		}
		unfixed = i
	}
	if unfixed < 0 {
		if rest == k {
			return errInconsistent
		}
		return nil
	}
	c := coeffs[unfixed]
	if c == 0 {
		if rest == k {
			return errInconsistent
		}
		return nil
	}
	diff := k - rest
	if diff%c != 0 {
		return nil
	}
	x := xs[unfixed]
	return s.setInt(x, s.intDom(x).Remove(diff/c))
}

// linSumBounds returns the bounds of sum(coeffs[i]*xs[i]).
func linSumBounds(s *store, coeffs []int, xs []VarID) (int, int) {
	lo, hi := 0, 0
	for i, x := range xs {
		tl, th := termBounds(coeffs[i], s.intDom(x))
		lo += tl
		hi += th
	}
	return lo, hi
}

// linReifProp channels a boolean with a linear relation.
type linReifProp struct {
	op     linOp
	coeffs []int
	xs     []VarID
	k      int
	b      VarID
}

func (p *linReifProp) propagate(s *store) error {
	db := s.intDom(p.b)
	if db.IsFixed() {
		if db.Value() == 1 {
			return (&linProp{op: p.op, coeffs: p.coeffs, xs: p.xs, k: p.k}).propagate(s)
		}
		switch p.op {
		case linEq:
			return propagateLinNe(s, p.coeffs, p.xs, p.k)
		case linLe: // negation is sum >= k+1
			return propagateLinGe(s, p.coeffs, p.xs, p.k+1)
		default: // negation of ne is eq
			if err := propagateLinLe(s, p.coeffs, p.xs, p.k); err != nil {
				return err
			}
			return propagateLinGe(s, p.coeffs, p.xs, p.k)
		}
	}
	lo, hi := linSumBounds(s, p.coeffs, p.xs)
	var yes, no bool
	switch p.op {
	case linEq:
		yes = lo == hi && lo == p.k
		no = p.k < lo || p.k > hi
	case linLe:
		yes = hi <= p.k
		no = lo > p.k
	default: // linNe
		yes = p.k < lo || p.k > hi
		no = lo == hi && lo == p.k
	}
	if yes {
		return s.setInt(p.b, db.Intersect(SingletonDomain(1)))
	}
	if no {
		return s.setInt(p.b, db.Intersect(SingletonDomain(0)))
	}
	return nil
}
