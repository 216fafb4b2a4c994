package flatzinc

import "github.com/gitrdm/gofzn/pkg/fd"

// boundRange is the model-wide fallback interval used for formally
// unbounded integer variables.
type boundRange struct {
	lo, hi int
}

// defaultBoundMagnitude sizes the fallback interval when the model
// declares no finite integer domain at all.
const defaultBoundMagnitude = fd.MaxDomainSize / 4

// boundCeiling clamps inferred bounds so no inferred domain can exceed
// the backend's ceiling.
const boundCeiling = fd.MaxDomainSize / 2

// inferBounds scans every explicit finite integer domain in the model
// and derives a safe interval for unbounded declarations: the observed
// global min and max, widened on each side by the observed range or by
// 100, whichever is larger, then clamped to the backend ceiling. A
// model with no finite integer domain gets a generous default centered
// at zero.
func inferBounds(decls []Decl) boundRange {
	found := false
	lo, hi := 0, 0
	note := func(l, h int) {
		if !found {
			lo, hi = l, h
			found = true
			return
		}
		if l < lo {
			lo = l
		}
		if h > hi {
			hi = h
		}
	}
	for i := range decls {
		t := &decls[i].Type
		switch t.Kind {
		case TypeIntRange:
			if t.Lo <= t.Hi {
				note(t.Lo, t.Hi)
			}
		case TypeIntSet:
			mn, mx := t.Set[0], t.Set[0]
			for _, v := range t.Set[1:] {
				if v < mn {
					mn = v
				}
				if v > mx {
					mx = v
				}
			}
			note(mn, mx)
		}
	}
	if !found {
		return boundRange{lo: -defaultBoundMagnitude, hi: defaultBoundMagnitude}
	}
	expand := hi - lo
	if expand < 100 {
		expand = 100
	}
	lo -= expand
	hi += expand
	if lo < -boundCeiling {
		lo = -boundCeiling
	}
	if hi > boundCeiling {
		hi = boundCeiling
	}
	return boundRange{lo: lo, hi: hi}
}
