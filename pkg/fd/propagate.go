package fd

import "errors"

// errInconsistent signals that a propagator emptied a domain. It never
// escapes the solver; search treats it as a dead branch.
var errInconsistent = errors.New("fd: inconsistent")

// propagator narrows the domains in a store. A propagator must be
// monotone (never widen a domain) and must return errInconsistent when
// some domain becomes empty.
type propagator interface {
	propagate(s *store) error
}

// store holds the mutable domain state of one search node. Domains are
// immutable values, so saving a node is a flat copy of both slices.
type store struct {
	model   *Model
	ints    []IntDomain
	floats  []FloatInterval
	changed bool
}

func newStore(m *Model) *store {
	s := &store{
		model:  m,
		ints:   make([]IntDomain, len(m.ints)),
		floats: make([]FloatInterval, len(m.floats)),
	}
	copy(s.ints, m.ints)
	copy(s.floats, m.floats)
	return s
}

func (s *store) snapshot() ([]IntDomain, []FloatInterval) {
	ints := make([]IntDomain, len(s.ints))
	floats := make([]FloatInterval, len(s.floats))
	copy(ints, s.ints)
	copy(floats, s.floats)
	return ints, floats
}

func (s *store) restore(ints []IntDomain, floats []FloatInterval) {
	copy(s.ints, ints)
	copy(s.floats, floats)
}

func (s *store) intDom(v VarID) IntDomain { return s.ints[v] }

func (s *store) floatDom(v VarID) FloatInterval { return s.floats[v] }

// setInt installs a narrowed domain for v. Returns errInconsistent if
// the domain is empty, and records whether anything actually changed.
func (s *store) setInt(v VarID, d IntDomain) error {
	if d.IsEmpty() {
		return errInconsistent
	}
	if !d.Equal(s.ints[v]) {
		s.ints[v] = d
		s.changed = true
	}
	return nil
}

func (s *store) setFloat(v VarID, f FloatInterval) error {
	if f.IsEmpty() {
		return errInconsistent
	}
	old := s.floats[v]
	if f.Lo != old.Lo || f.Hi != old.Hi {
		s.floats[v] = f
		s.changed = true
	}
	return nil
}

// maxFixpointPasses bounds the propagation loop. Hitting the bound is
// not an error; the domains reached so far are still sound.
const maxFixpointPasses = 10000

// runToFixpoint applies every propagator until no domain changes.
func (s *store) runToFixpoint() error {
	if s.model.failed {
		return errInconsistent
	}
	for pass := 0; pass < maxFixpointPasses; pass++ {
		s.changed = false
		for _, p := range s.model.props {
			if err := p.propagate(s); err != nil {
				return err
			}
		}
		if !s.changed {
			return nil
		}
	}
	return nil
}
