package flatzinc_test

import (
	"context"
	"os"

	"github.com/gitrdm/gofzn/pkg/flatzinc"
)

// A three-variable permutation printed in the FlatZinc output form.
func ExampleSolver_Run() {
	src := `
array [1..3] of var 1..3: xs :: output_array([1..3]);
constraint all_different(xs);
constraint int_lt(xs[1], xs[2]);
constraint int_lt(xs[2], xs[3]);
solve satisfy;
`
	solver := flatzinc.NewSolver(flatzinc.Options{AllSolutions: true}, nil)
	if err := solver.LoadString(src); err != nil {
		panic(err)
	}
	if err := solver.Run(context.Background(), os.Stdout); err != nil {
		panic(err)
	}
	// Output:
	// xs = array1d(1..3, [1, 2, 3]);
	// ----------
	// ==========
}
