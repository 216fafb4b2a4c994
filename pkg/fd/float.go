package fd

import (
	"fmt"
	"math"
)

// Float constraints perform interval bounds propagation only. Strict
// inequalities propagate like their non-strict forms; the distinction
// is enforced when both operands are fixed.

func (m *Model) checkFloats(xs []VarID) error {
	for _, x := range xs {
		if int(x) < 0 || int(x) >= len(m.kinds) {
			return fmt.Errorf("fd: unknown variable %d", x)
		}
		if m.kinds[x] != KindFloat {
			return fmt.Errorf("fd: variable %d is %s, want float", x, m.kinds[x])
		}
	}
	return nil
}

// FEq posts x = y.
func (m *Model) FEq(x, y VarID) { m.post(&fRelProp{op: relEq, x: x, y: y}) }

// FNe posts x != y.
func (m *Model) FNe(x, y VarID) { m.post(&fRelProp{op: relNe, x: x, y: y}) }

// FLt posts x < y.
func (m *Model) FLt(x, y VarID) { m.post(&fRelProp{op: relLt, x: x, y: y}) }

// FLe posts x <= y.
func (m *Model) FLe(x, y VarID) { m.post(&fRelProp{op: relLe, x: x, y: y}) }

// FEqReif posts b <-> (x = y).
func (m *Model) FEqReif(x, y, b VarID) { m.post(&fRelReifProp{op: relEq, x: x, y: y, b: b}) }

// FNeReif posts b <-> (x != y).
func (m *Model) FNeReif(x, y, b VarID) { m.post(&fRelReifProp{op: relNe, x: x, y: y, b: b}) }

// FLtReif posts b <-> (x < y).
func (m *Model) FLtReif(x, y, b VarID) { m.post(&fRelReifProp{op: relLt, x: x, y: y, b: b}) }

// FLeReif posts b <-> (x <= y).
func (m *Model) FLeReif(x, y, b VarID) { m.post(&fRelReifProp{op: relLe, x: x, y: y, b: b}) }

// FGtReif posts b <-> (x > y).
func (m *Model) FGtReif(x, y, b VarID) { m.post(&fRelReifProp{op: relLt, x: y, y: x, b: b}) }

// FGeReif posts b <-> (x >= y).
func (m *Model) FGeReif(x, y, b VarID) { m.post(&fRelReifProp{op: relLe, x: y, y: x, b: b}) }

func enforceFRel(s *store, op relOp, x, y VarID) error {
	fx, fy := s.floatDom(x), s.floatDom(y)
	switch op {
	case relEq:
		f := fx.Intersect(fy)
		if err := s.setFloat(x, f); err != nil {
			return err
		}
		return s.setFloat(y, f)
	case relNe:
		if fx.IsFixed() && fy.IsFixed() && math.Abs(fx.Lo-fy.Lo) <= floatEps {
			return errInconsistent
		}
		return nil
	default: // relLt and relLe propagate identically on intervals
		if op == relLt && fx.IsFixed() && fy.IsFixed() && fx.Lo >= fy.Lo {
			return errInconsistent
		}
		if err := s.setFloat(x, fx.AtMost(fy.Hi)); err != nil {
			return err
		}
		return s.setFloat(y, s.floatDom(y).AtLeast(s.floatDom(x).Lo))
	}
}

func entailedFRel(s *store, op relOp, x, y VarID) (yes, no bool) {
	fx, fy := s.floatDom(x), s.floatDom(y)
	switch op {
	case relEq:
		if fx.IsFixed() && fy.IsFixed() {
			if math.Abs(fx.Lo-fy.Lo) <= floatEps {
				return true, false
			}
			return false, true
		}
		if fx.Intersect(fy).IsEmpty() {
			return false, true
		}
	case relNe:
		y2, n2 := entailedFRel(s, relEq, x, y)
		return n2, y2
	case relLt:
		if fx.Hi < fy.Lo {
			return true, false
		}
		if fx.Lo >= fy.Hi {
			return false, true
		}
	case relLe:
		if fx.Hi <= fy.Lo {
			return true, false
		}
		if fx.Lo > fy.Hi {
			return false, true
		}
	}
	return false, false
}

type fRelProp struct {
	op   relOp
	x, y VarID
}

func (p *fRelProp) propagate(s *store) error {
	return enforceFRel(s, p.op, p.x, p.y)
}

type fRelReifProp struct {
	op      relOp
	x, y, b VarID
}

func (p *fRelReifProp) propagate(s *store) error {
	db := s.intDom(p.b)
	if db.IsFixed() {
		if db.Value() == 1 {
			return enforceFRel(s, p.op, p.x, p.y)
		}
		neg, swap := negateRel(p.op)
		if swap {
			return enforceFRel(s, neg, p.y, p.x)
		}
		return enforceFRel(s, neg, p.x, p.y)
	}
	yes, no := entailedFRel(s, p.op, p.x, p.y)
	if yes {
		return s.setInt(p.b, db.Intersect(SingletonDomain(1)))
	}
	if no {
		return s.setInt(p.b, db.Intersect(SingletonDomain(0)))
	}
	return nil
}

// --- float linear constraints ---

// FLinEq posts sum(coeffs[i]*xs[i]) = k.
func (m *Model) FLinEq(coeffs []float64, xs []VarID, k float64) error {
	return m.postFLinear(linEq, coeffs, xs, k)
}

// FLinLe posts sum(coeffs[i]*xs[i]) <= k.
func (m *Model) FLinLe(coeffs []float64, xs []VarID, k float64) error {
	return m.postFLinear(linLe, coeffs, xs, k)
}

// FLinNe posts sum(coeffs[i]*xs[i]) != k.
func (m *Model) FLinNe(coeffs []float64, xs []VarID, k float64) error {
	return m.postFLinear(linNe, coeffs, xs, k)
}

func (m *Model) postFLinear(op linOp, coeffs []float64, xs []VarID, k float64) error {
	if len(coeffs) != len(xs) {
		return fmt.Errorf("fd: linear constraint has %d coefficients for %d variables", len(coeffs), len(xs))
	}
	if err := m.checkFloats(xs); err != nil {
		return err
	}
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	m.post(&fLinProp{op: op, coeffs: c, xs: cloneVars(xs), k: k})
	return nil
}

// FLinEqReif posts b <-> (sum(coeffs[i]*xs[i]) = k).
func (m *Model) FLinEqReif(coeffs []float64, xs []VarID, k float64, b VarID) error {
	return m.postFLinearReif(linEq, coeffs, xs, k, b)
}

// FLinLeReif posts b <-> (sum(coeffs[i]*xs[i]) <= k).
func (m *Model) FLinLeReif(coeffs []float64, xs []VarID, k float64, b VarID) error {
	return m.postFLinearReif(linLe, coeffs, xs, k, b)
}

// FLinNeReif posts b <-> (sum(coeffs[i]*xs[i]) != k).
func (m *Model) FLinNeReif(coeffs []float64, xs []VarID, k float64, b VarID) error {
	return m.postFLinearReif(linNe, coeffs, xs, k, b)
}

func (m *Model) postFLinearReif(op linOp, coeffs []float64, xs []VarID, k float64, b VarID) error {
	if len(coeffs) != len(xs) {
		return fmt.Errorf("fd: linear constraint has %d coefficients for %d variables", len(coeffs), len(xs))
	}
	if err := m.checkFloats(xs); err != nil {
		return err
	}
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	m.post(&fLinReifProp{op: op, coeffs: c, xs: cloneVars(xs), k: k, b: b})
	return nil
}

func fTermBounds(c float64, f FloatInterval) (float64, float64) {
	if c >= 0 {
		return c * f.Lo, c * f.Hi
	}
	return c * f.Hi, c * f.Lo
}

type fLinProp struct {
	op     linOp
	coeffs []float64
	xs     []VarID
	k      float64
}

func (p *fLinProp) propagate(s *store) error {
	switch p.op {
	case linLe:
		return propagateFLinLe(s, p.coeffs, p.xs, p.k)
	case linEq:
		if err := propagateFLinLe(s, p.coeffs, p.xs, p.k); err != nil {
			return err
		}
		neg := make([]float64, len(p.coeffs))
		for i, c := range p.coeffs {
			neg[i] = -c
		}
		return propagateFLinLe(s, neg, p.xs, -p.k)
	default: // linNe: only checkable when everything is fixed
		sum := 0.0
		for i, x := range p.xs {
			f := s.floatDom(x)
			if !f.IsFixed() {
				return nil
			}
			sum += p.coeffs[i] * f.Lo
		}
		if math.Abs(sum-p.k) <= floatEps {
			return errInconsistent
		}
		return nil
	}
}

func propagateFLinLe(s *store, coeffs []float64, xs []VarID, k float64) error {
	sumLo := 0.0
	for i, x := range xs {
		lo, _ := fTermBounds(coeffs[i], s.floatDom(x))
		sumLo += lo
	}
	if sumLo > k+floatEps {
		return errInconsistent
	}
	for i, x := range xs {
		c := coeffs[i]
		if c == 0 {
			continue
		}
		f := s.floatDom(x)
		lo, _ := fTermBounds(c, f)
		slack := k - (sumLo - lo)
		if c > 0 {
			if err := s.setFloat(x, f.AtMost(slack/c)); err != nil {
				return err
			}
		} else {
			if err := s.setFloat(x, f.AtLeast(slack/c)); err != nil {
				return err
			}
		}
	}
	return nil
}

type fLinReifProp struct {
	op     linOp
	coeffs []float64
	xs     []VarID
	k      float64
	b      VarID
}

func (p *fLinReifProp) propagate(s *store) error {
	db := s.intDom(p.b)
	if db.IsFixed() && db.Value() == 1 {
		return (&fLinProp{op: p.op, coeffs: p.coeffs, xs: p.xs, k: p.k}).propagate(s)
	}
	lo, hi := 0.0, 0.0
	for i, x := range p.xs {
		tl, th := fTermBounds(p.coeffs[i], s.floatDom(x))
		lo += tl
		hi += th
	}
	var yes, no bool
	switch p.op {
	case linEq:
		yes = hi-lo <= floatEps && math.Abs(lo-p.k) <= floatEps
		no = p.k < lo-floatEps || p.k > hi+floatEps
	case linLe:
		yes = hi <= p.k+floatEps
		no = lo > p.k+floatEps
	default: // linNe
		yes = p.k < lo-floatEps || p.k > hi+floatEps
		no = hi-lo <= floatEps && math.Abs(lo-p.k) <= floatEps
	}
	if db.IsFixed() && db.Value() == 0 {
		if yes {
			return errInconsistent
		}
		return nil
	}
	if yes {
		return s.setInt(p.b, db.Intersect(SingletonDomain(1)))
	}
	if no {
		return s.setInt(p.b, db.Intersect(SingletonDomain(0)))
	}
	return nil
}

// --- float builders ---

// FAdd returns a fresh float constrained to x+y.
func (m *Model) FAdd(x, y VarID) (VarID, error) {
	if err := m.checkFloats([]VarID{x, y}); err != nil {
		return 0, err
	}
	fx, fy := m.FloatDomain(x), m.FloatDomain(y)
	z := m.NewFloat(fx.Lo+fy.Lo, fx.Hi+fy.Hi)
	if err := m.FLinEq([]float64{1, 1, -1}, []VarID{x, y, z}, 0); err != nil {
		return 0, err
	}
	return z, nil
}

// FSub returns a fresh float constrained to x-y.
func (m *Model) FSub(x, y VarID) (VarID, error) {
	if err := m.checkFloats([]VarID{x, y}); err != nil {
		return 0, err
	}
	fx, fy := m.FloatDomain(x), m.FloatDomain(y)
	z := m.NewFloat(fx.Lo-fy.Hi, fx.Hi-fy.Lo)
	if err := m.FLinEq([]float64{1, -1, -1}, []VarID{x, y, z}, 0); err != nil {
		return 0, err
	}
	return z, nil
}

func fCornerBounds(fx, fy FloatInterval, f func(a, b float64) float64) (float64, float64) {
	vals := [4]float64{
		f(fx.Lo, fy.Lo),
		f(fx.Lo, fy.Hi),
		f(fx.Hi, fy.Lo),
		f(fx.Hi, fy.Hi),
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// FMul returns a fresh float constrained to x*y.
func (m *Model) FMul(x, y VarID) (VarID, error) {
	if err := m.checkFloats([]VarID{x, y}); err != nil {
		return 0, err
	}
	lo, hi := fCornerBounds(m.FloatDomain(x), m.FloatDomain(y), func(a, b float64) float64 { return a * b })
	z := m.NewFloat(lo, hi)
	m.post(&fMulProp{x: x, y: y, z: z})
	return z, nil
}

type fMulProp struct {
	x, y, z VarID
}

func (p *fMulProp) propagate(s *store) error {
	fx, fy := s.floatDom(p.x), s.floatDom(p.y)
	lo, hi := fCornerBounds(fx, fy, func(a, b float64) float64 { return a * b })
	return s.setFloat(p.z, s.floatDom(p.z).AtLeast(lo).AtMost(hi))
}

// FDiv returns a fresh float constrained to x/y. Pruning requires the
// divisor interval to exclude zero.
func (m *Model) FDiv(x, y VarID) (VarID, error) {
	if err := m.checkFloats([]VarID{x, y}); err != nil {
		return 0, err
	}
	z := m.NewFloat(math.Inf(-1), math.Inf(1))
	m.post(&fDivProp{x: x, y: y, z: z})
	return z, nil
}

type fDivProp struct {
	x, y, z VarID
}

func (p *fDivProp) propagate(s *store) error {
	fy := s.floatDom(p.y)
	if fy.Lo <= 0 && fy.Hi >= 0 {
		if fy.IsFixed() {
			return errInconsistent
		}
		return nil
	}
	fx := s.floatDom(p.x)
	lo, hi := fCornerBounds(fx, fy, func(a, b float64) float64 { return a / b })
	return s.setFloat(p.z, s.floatDom(p.z).AtLeast(lo).AtMost(hi))
}

// FAbs returns a fresh float constrained to |x|.
func (m *Model) FAbs(x VarID) (VarID, error) {
	if err := m.checkFloats([]VarID{x}); err != nil {
		return 0, err
	}
	fx := m.FloatDomain(x)
	z := m.NewFloat(0, math.Max(math.Abs(fx.Lo), math.Abs(fx.Hi)))
	m.post(&fAbsProp{x: x, z: z})
	return z, nil
}

type fAbsProp struct {
	x, z VarID
}

func (p *fAbsProp) propagate(s *store) error {
	fx := s.floatDom(p.x)
	fz := s.floatDom(p.z)
	if err := s.setFloat(p.z, fz.AtLeast(0)); err != nil {
		return err
	}
	fz = s.floatDom(p.z)
	switch {
	case fx.Lo >= 0:
		f := fx.Intersect(fz)
		if err := s.setFloat(p.x, f); err != nil {
			return err
		}
		return s.setFloat(p.z, f)
	case fx.Hi <= 0:
		if err := s.setFloat(p.z, fz.AtLeast(-fx.Hi).AtMost(-fx.Lo)); err != nil {
			return err
		}
		fz = s.floatDom(p.z)
		return s.setFloat(p.x, fx.AtLeast(-fz.Hi).AtMost(-fz.Lo))
	default:
		mag := math.Max(math.Abs(fx.Lo), math.Abs(fx.Hi))
		if err := s.setFloat(p.z, fz.AtMost(mag)); err != nil {
			return err
		}
		fz = s.floatDom(p.z)
		return s.setFloat(p.x, fx.AtLeast(-fz.Hi).AtMost(fz.Hi))
	}
}

// FMin returns a fresh float constrained to min(x, y).
func (m *Model) FMin(x, y VarID) (VarID, error) {
	return m.fExtremum(x, y, true)
}

// FMax returns a fresh float constrained to max(x, y).
func (m *Model) FMax(x, y VarID) (VarID, error) {
	return m.fExtremum(x, y, false)
}

func (m *Model) fExtremum(x, y VarID, wantMin bool) (VarID, error) {
	if err := m.checkFloats([]VarID{x, y}); err != nil {
		return 0, err
	}
	fx, fy := m.FloatDomain(x), m.FloatDomain(y)
	var z VarID
	if wantMin {
		z = m.NewFloat(math.Min(fx.Lo, fy.Lo), math.Min(fx.Hi, fy.Hi))
	} else {
		z = m.NewFloat(math.Max(fx.Lo, fy.Lo), math.Max(fx.Hi, fy.Hi))
	}
	m.post(&fExtremumProp{x: x, y: y, z: z, wantMin: wantMin})
	return z, nil
}

type fExtremumProp struct {
	x, y, z VarID
	wantMin bool
}

func (p *fExtremumProp) propagate(s *store) error {
	fx, fy := s.floatDom(p.x), s.floatDom(p.y)
	fz := s.floatDom(p.z)
	if p.wantMin {
		if err := s.setFloat(p.z, fz.AtLeast(math.Min(fx.Lo, fy.Lo)).AtMost(math.Min(fx.Hi, fy.Hi))); err != nil {
			return err
		}
		fz = s.floatDom(p.z)
		if err := s.setFloat(p.x, fx.AtLeast(fz.Lo)); err != nil {
			return err
		}
		return s.setFloat(p.y, fy.AtLeast(fz.Lo))
	}
	if err := s.setFloat(p.z, fz.AtLeast(math.Max(fx.Lo, fy.Lo)).AtMost(math.Max(fx.Hi, fy.Hi))); err != nil {
		return err
	}
	fz = s.floatDom(p.z)
	if err := s.setFloat(p.x, fx.AtMost(fz.Hi)); err != nil {
		return err
	}
	return s.setFloat(p.y, fy.AtMost(fz.Hi))
}

// Int2Float returns a fresh float channeled with the integer x.
func (m *Model) Int2Float(x VarID) (VarID, error) {
	if err := m.checkInts([]VarID{x}); err != nil {
		return 0, err
	}
	d := m.Domain(x)
	f := m.NewFloat(float64(d.Min()), float64(d.Max()))
	m.post(&int2FloatProp{x: x, f: f})
	return f, nil
}

// int2FloatProp keeps an integer variable and its float image in step.
type int2FloatProp struct {
	x VarID
	f VarID
}

func (p *int2FloatProp) propagate(s *store) error {
	d := s.intDom(p.x)
	fv := s.floatDom(p.f)
	if err := s.setFloat(p.f, fv.AtLeast(float64(d.Min())).AtMost(float64(d.Max()))); err != nil {
		return err
	}
	fv = s.floatDom(p.f)
	lo := int(math.Ceil(fv.Lo - floatEps))
	hi := int(math.Floor(fv.Hi + floatEps))
	return s.setInt(p.x, d.AtLeast(lo).AtMost(hi))
}
