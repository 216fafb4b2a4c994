package fd

import "fmt"

// MaxDomainSize is the ceiling on the width of any integer domain the
// engine will accept. Callers that derive domains from untrusted input
// should clamp against it before declaring variables.
const MaxDomainSize = 10_000_000

// VarID is an opaque handle to a variable in a Model.
type VarID int

// Kind classifies a variable.
type Kind uint8

const (
	KindInt Kind = iota
	KindBool
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	}
	return "unknown"
}

// Model accumulates variables and constraints. It is mutable while
// being built and must not be modified once a Solver has been created
// from it.
type Model struct {
	kinds  []Kind
	ints   []IntDomain
	floats []FloatInterval
	props  []propagator
	consts map[int]VarID
	failed bool
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{consts: make(map[int]VarID)}
}

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int { return len(m.kinds) }

// Kind returns the kind of v.
func (m *Model) Kind(v VarID) Kind { return m.kinds[v] }

// Domain returns the initial domain of an integer or boolean variable.
func (m *Model) Domain(v VarID) IntDomain { return m.ints[v] }

// FloatDomain returns the initial interval of a float variable.
func (m *Model) FloatDomain(v VarID) FloatInterval { return m.floats[v] }

func (m *Model) addVar(k Kind, d IntDomain, f FloatInterval) VarID {
	id := VarID(len(m.kinds))
	m.kinds = append(m.kinds, k)
	m.ints = append(m.ints, d)
	m.floats = append(m.floats, f)
	return id
}

// NewInt declares an integer variable with domain {lo, ..., hi}.
func (m *Model) NewInt(lo, hi int) VarID {
	return m.addVar(KindInt, NewIntDomain(lo, hi), FloatInterval{})
}

// NewIntFromDomain declares an integer variable with the given domain.
func (m *Model) NewIntFromDomain(d IntDomain) VarID {
	return m.addVar(KindInt, d, FloatInterval{})
}

// NewBool declares a boolean variable (0 = false, 1 = true).
func (m *Model) NewBool() VarID {
	return m.addVar(KindBool, NewIntDomain(0, 1), FloatInterval{})
}

// NewFloat declares a float variable with interval [lo, hi].
func (m *Model) NewFloat(lo, hi float64) VarID {
	return m.addVar(KindFloat, IntDomain{}, NewFloatInterval(lo, hi))
}

// IntConst returns a variable fixed to v. Constants are cached, so
// repeated requests for the same value share one variable.
func (m *Model) IntConst(v int) VarID {
	if id, ok := m.consts[v]; ok {
		return id
	}
	id := m.addVar(KindInt, SingletonDomain(v), FloatInterval{})
	m.consts[v] = id
	return id
}

// BoolConst returns a variable fixed to the given truth value.
func (m *Model) BoolConst(b bool) VarID {
	if b {
		return m.IntConst(1)
	}
	return m.IntConst(0)
}

// FloatConst returns a float variable fixed to v.
func (m *Model) FloatConst(v float64) VarID {
	return m.addVar(KindFloat, IntDomain{}, NewFloatInterval(v, v))
}

// Fail marks the model trivially infeasible. Every subsequent solve
// reports zero solutions.
func (m *Model) Fail() { m.failed = true }

func (m *Model) post(p propagator) { m.props = append(m.props, p) }

func (m *Model) checkInts(xs []VarID) error {
	for _, x := range xs {
		if int(x) < 0 || int(x) >= len(m.kinds) {
			return fmt.Errorf("fd: unknown variable %d", x)
		}
		if m.kinds[x] == KindFloat {
			return fmt.Errorf("fd: variable %d is a float, want int or bool", x)
		}
	}
	return nil
}

// --- integer relations ---

// Eq posts x = y.
func (m *Model) Eq(x, y VarID) { m.post(&relProp{op: relEq, x: x, y: y}) }

// Ne posts x != y.
func (m *Model) Ne(x, y VarID) { m.post(&relProp{op: relNe, x: x, y: y}) }

// Lt posts x < y.
func (m *Model) Lt(x, y VarID) { m.post(&relProp{op: relLt, x: x, y: y}) }

// Le posts x <= y.
func (m *Model) Le(x, y VarID) { m.post(&relProp{op: relLe, x: x, y: y}) }

// Gt posts x > y.
func (m *Model) Gt(x, y VarID) { m.post(&relProp{op: relLt, x: y, y: x}) }

// Ge posts x >= y.
func (m *Model) Ge(x, y VarID) { m.post(&relProp{op: relLe, x: y, y: x}) }

// EqReif posts b <-> (x = y).
func (m *Model) EqReif(x, y, b VarID) { m.post(&relReifProp{op: relEq, x: x, y: y, b: b}) }

// NeReif posts b <-> (x != y).
func (m *Model) NeReif(x, y, b VarID) { m.post(&relReifProp{op: relNe, x: x, y: y, b: b}) }

// LtReif posts b <-> (x < y).
func (m *Model) LtReif(x, y, b VarID) { m.post(&relReifProp{op: relLt, x: x, y: y, b: b}) }

// LeReif posts b <-> (x <= y).
func (m *Model) LeReif(x, y, b VarID) { m.post(&relReifProp{op: relLe, x: x, y: y, b: b}) }

// GtReif posts b <-> (x > y).
func (m *Model) GtReif(x, y, b VarID) { m.post(&relReifProp{op: relLt, x: y, y: x, b: b}) }

// GeReif posts b <-> (x >= y).
func (m *Model) GeReif(x, y, b VarID) { m.post(&relReifProp{op: relLe, x: y, y: x, b: b}) }

// Member posts x in d for an explicit value set.
func (m *Model) Member(x VarID, d IntDomain) { m.post(&memberProp{x: x, allowed: d}) }

// MemberReif posts b <-> (x in d).
func (m *Model) MemberReif(x VarID, d IntDomain, b VarID) {
	m.post(&memberReifProp{x: x, allowed: d, b: b})
}

// --- linear constraints ---

// LinEq posts sum(coeffs[i]*xs[i]) = k.
func (m *Model) LinEq(coeffs []int, xs []VarID, k int) error {
	return m.postLinear(linEq, coeffs, xs, k)
}

// LinLe posts sum(coeffs[i]*xs[i]) <= k.
func (m *Model) LinLe(coeffs []int, xs []VarID, k int) error {
	return m.postLinear(linLe, coeffs, xs, k)
}

// LinNe posts sum(coeffs[i]*xs[i]) != k.
func (m *Model) LinNe(coeffs []int, xs []VarID, k int) error {
	return m.postLinear(linNe, coeffs, xs, k)
}

func (m *Model) postLinear(op linOp, coeffs []int, xs []VarID, k int) error {
	if len(coeffs) != len(xs) {
		return fmt.Errorf("fd: linear constraint has %d coefficients for %d variables", len(coeffs), len(xs))
	}
	if err := m.checkInts(xs); err != nil {
		return err
	}
	m.post(&linProp{op: op, coeffs: cloneInts(coeffs), xs: cloneVars(xs), k: k})
	return nil
}

// LinEqReif posts b <-> (sum(coeffs[i]*xs[i]) = k).
func (m *Model) LinEqReif(coeffs []int, xs []VarID, k int, b VarID) error {
	return m.postLinearReif(linEq, coeffs, xs, k, b)
}

// LinLeReif posts b <-> (sum(coeffs[i]*xs[i]) <= k).
func (m *Model) LinLeReif(coeffs []int, xs []VarID, k int, b VarID) error {
	return m.postLinearReif(linLe, coeffs, xs, k, b)
}

// LinNeReif posts b <-> (sum(coeffs[i]*xs[i]) != k).
func (m *Model) LinNeReif(coeffs []int, xs []VarID, k int, b VarID) error {
	return m.postLinearReif(linNe, coeffs, xs, k, b)
}

func (m *Model) postLinearReif(op linOp, coeffs []int, xs []VarID, k int, b VarID) error {
	if len(coeffs) != len(xs) {
		return fmt.Errorf("fd: linear constraint has %d coefficients for %d variables", len(coeffs), len(xs))
	}
	if err := m.checkInts(xs); err != nil {
		return err
	}
	m.post(&linReifProp{op: op, coeffs: cloneInts(coeffs), xs: cloneVars(xs), k: k, b: b})
	return nil
}

func cloneInts(s []int) []int {
	c := make([]int, len(s))
	copy(c, s)
	return c
}

func cloneVars(s []VarID) []VarID {
	c := make([]VarID, len(s))
	copy(c, s)
	return c
}
