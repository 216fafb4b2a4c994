package fd

// Solution is a fixed assignment extracted from a fully propagated,
// fully labeled search node. Float variables are reported at the low
// end of their final interval.
type Solution struct {
	ints   []int
	floats []float64
	kinds  []Kind
}

func extractSolution(st *store) Solution {
	sol := Solution{
		ints:   make([]int, len(st.ints)),
		floats: make([]float64, len(st.floats)),
		kinds:  st.model.kinds,
	}
	for i, k := range st.model.kinds {
		if k == KindFloat {
			sol.floats[i] = st.floats[i].Lo
			continue
		}
		sol.ints[i] = st.ints[i].Value()
	}
	return sol
}

// Int returns the value of an integer or boolean variable.
func (s Solution) Int(v VarID) int { return s.ints[v] }

// Bool returns the value of a boolean variable.
func (s Solution) Bool(v VarID) bool { return s.ints[v] != 0 }

// Float returns the value of a float variable.
func (s Solution) Float(v VarID) float64 { return s.floats[v] }

// Kind returns the kind of v as recorded at extraction time.
func (s Solution) Kind(v VarID) Kind { return s.kinds[v] }
