package fd_test

import (
	"context"
	"fmt"

	"github.com/gitrdm/gofzn/pkg/fd"
)

// Two variables summing to 5 with x strictly below y.
func ExampleSolver_Solve() {
	m := fd.NewModel()
	x := m.NewInt(0, 5)
	y := m.NewInt(0, 5)
	if err := m.LinEq([]int{1, 1}, []fd.VarID{x, y}, 5); err != nil {
		fmt.Println(err)
		return
	}
	m.Lt(x, y)

	sols, err := fd.NewSolver(m).Solve(context.Background(), 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range sols {
		fmt.Printf("x=%d y=%d\n", s.Int(x), s.Int(y))
	}
	// Output:
	// x=0 y=5
	// x=1 y=4
	// x=2 y=3
}

func ExampleSolver_Minimize() {
	m := fd.NewModel()
	x := m.NewInt(1, 9)
	y := m.NewInt(1, 9)
	m.Ne(x, y)
	if err := m.LinLe([]int{-1, -1}, []fd.VarID{x, y}, -6); err != nil {
		fmt.Println(err)
		return
	}

	best, err := fd.NewSolver(m).Minimize(context.Background(), x)
	if err != nil || best == nil {
		fmt.Println("no solution")
		return
	}
	fmt.Printf("x=%d\n", best.Int(x))
	// Output:
	// x=1
}
