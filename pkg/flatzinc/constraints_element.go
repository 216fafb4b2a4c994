package flatzinc

import "github.com/gitrdm/gofzn/pkg/fd"

// Element constraints: val = arr[idx] with a 1-based source index.
// The backend indexes from zero, so the index variable is shifted
// through an auxiliary handle before posting.

func (ctx *mappingContext) lowerElement(c *Constraint) error {
	if err := wantArgs(c, 3); err != nil {
		return err
	}
	idx, err := ctx.resolveVar(c.Args[0])
	if err != nil {
		return err
	}
	xs, err := ctx.resolveVarArray(c.Args[1])
	if err != nil {
		return err
	}
	if len(xs) == 0 {
		return mapErrorf(c.At, "%s: empty array", c.Predicate)
	}
	val, err := ctx.resolveVar(c.Args[2])
	if err != nil {
		return err
	}
	zeroIdx, err := ctx.shiftIndex(idx, len(xs))
	if err != nil {
		return err
	}
	return ctx.model.Element(zeroIdx, xs, val)
}

// shiftIndex allocates zeroIdx with idx - zeroIdx = 1, converting the
// source's 1-based index to the backend's 0-based one.
func (ctx *mappingContext) shiftIndex(idx fd.VarID, n int) (fd.VarID, error) {
	zeroIdx := ctx.model.NewInt(0, n-1)
	if err := ctx.model.LinEq([]int{1, -1}, []fd.VarID{idx, zeroIdx}, 1); err != nil {
		return 0, err
	}
	return zeroIdx, nil
}
