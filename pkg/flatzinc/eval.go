package flatzinc

import "github.com/gitrdm/gofzn/pkg/fd"

// The evaluator resolves AST expressions into backend handles or
// compile-time scalars. Resolution order for identifiers is fixed:
// scalar variables, then scalar parameters, then the array tables.
// Parameter lookups mint singleton-domain constants on demand, so
// constant folding never allocates a handle per reference site twice
// (the backend caches integer constants).

// maxGatherRange caps how many constants a range expression may expand
// to inside an array gather or an explicit set.
const maxGatherRange = 100000

// resolveVar resolves an expression to one integer or boolean handle.
func (ctx *mappingContext) resolveVar(e Expr) (fd.VarID, error) {
	switch x := e.(type) {
	case *IntLit:
		return ctx.model.IntConst(x.Value), nil
	case *BoolLit:
		return ctx.model.BoolConst(x.Value), nil
	case *Ident:
		if v, ok := ctx.vars[x.Name]; ok {
			return v, nil
		}
		if v, ok := ctx.paramInts[x.Name]; ok {
			return ctx.model.IntConst(v), nil
		}
		if v, ok := ctx.paramBools[x.Name]; ok {
			return ctx.model.BoolConst(v), nil
		}
		if ctx.known(x.Name) {
			return 0, mapErrorf(x.At, "%q is not a scalar", x.Name)
		}
		return 0, mapErrorf(x.At, "undefined identifier %q", x.Name)
	case *ArrayAccess:
		return ctx.arrayAccessHandle(x)
	}
	return 0, unsupportedf(e.exprLoc(), "expression in scalar position")
}

// arrayAccessHandle resolves arr[i] with the 1-based source index
// mapped onto the 0-based table.
func (ctx *mappingContext) arrayAccessHandle(a *ArrayAccess) (fd.VarID, error) {
	idx, err := ctx.extractInt(a.Index)
	if err != nil {
		return 0, mapErrorf(a.At, "non-literal index into %q", a.Array)
	}
	check := func(n int) error {
		if idx < 1 || idx > n {
			return mapErrorf(a.At, "index %d out of range for %q (1..%d)", idx, a.Array, n)
		}
		return nil
	}
	if hs, ok := ctx.arrays[a.Array]; ok {
		if err := check(len(hs)); err != nil {
			return 0, err
		}
		return hs[idx-1], nil
	}
	if vs, ok := ctx.paramIntArrays[a.Array]; ok {
		if err := check(len(vs)); err != nil {
			return 0, err
		}
		return ctx.model.IntConst(vs[idx-1]), nil
	}
	if vs, ok := ctx.paramBoolArrays[a.Array]; ok {
		if err := check(len(vs)); err != nil {
			return 0, err
		}
		return ctx.model.BoolConst(vs[idx-1]), nil
	}
	if vs, ok := ctx.paramFloatArrays[a.Array]; ok {
		if err := check(len(vs)); err != nil {
			return 0, err
		}
		return ctx.model.FloatConst(vs[idx-1]), nil
	}
	return 0, mapErrorf(a.At, "undefined array %q", a.Array)
}

// resolveVarArray resolves an expression to a handle vector. A lone
// scalar becomes a one-element vector. Parameter arrays short-circuit
// to singleton constants without touching the handle table.
func (ctx *mappingContext) resolveVarArray(e Expr) ([]fd.VarID, error) {
	switch x := e.(type) {
	case *Ident:
		if hs, ok := ctx.arrays[x.Name]; ok {
			out := make([]fd.VarID, len(hs))
			copy(out, hs)
			return out, nil
		}
		if vs, ok := ctx.paramIntArrays[x.Name]; ok {
			out := make([]fd.VarID, len(vs))
			for i, v := range vs {
				out[i] = ctx.model.IntConst(v)
			}
			return out, nil
		}
		if vs, ok := ctx.paramBoolArrays[x.Name]; ok {
			out := make([]fd.VarID, len(vs))
			for i, v := range vs {
				out[i] = ctx.model.BoolConst(v)
			}
			return out, nil
		}
		v, err := ctx.resolveVar(x)
		if err != nil {
			return nil, err
		}
		return []fd.VarID{v}, nil
	case *ArrayLit:
		out := make([]fd.VarID, 0, len(x.Elems))
		for _, el := range x.Elems {
			if r, ok := el.(*RangeLit); ok {
				if r.Hi-r.Lo+1 > maxGatherRange {
					return nil, unsupportedf(r.At, "range %d..%d too large in array literal", r.Lo, r.Hi)
				}
				for v := r.Lo; v <= r.Hi; v++ {
					out = append(out, ctx.model.IntConst(v))
				}
				continue
			}
			v, err := ctx.resolveVar(el)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return nil, unsupportedf(e.exprLoc(), "expression in array position")
}

// resolveFloatVar resolves an expression to one float handle. Integer
// literals are admitted and widened.
func (ctx *mappingContext) resolveFloatVar(e Expr) (fd.VarID, error) {
	switch x := e.(type) {
	case *FloatLit:
		return ctx.model.FloatConst(x.Value), nil
	case *IntLit:
		return ctx.model.FloatConst(float64(x.Value)), nil
	case *Ident:
		if v, ok := ctx.vars[x.Name]; ok {
			return v, nil
		}
		if v, ok := ctx.paramFloats[x.Name]; ok {
			return ctx.model.FloatConst(v), nil
		}
		if ctx.known(x.Name) {
			return 0, mapErrorf(x.At, "%q is not a scalar", x.Name)
		}
		return 0, mapErrorf(x.At, "undefined identifier %q", x.Name)
	case *ArrayAccess:
		return ctx.arrayAccessHandle(x)
	}
	return 0, unsupportedf(e.exprLoc(), "expression in scalar position")
}

// resolveFloatArray resolves an expression to a float handle vector.
func (ctx *mappingContext) resolveFloatArray(e Expr) ([]fd.VarID, error) {
	switch x := e.(type) {
	case *Ident:
		if hs, ok := ctx.arrays[x.Name]; ok {
			out := make([]fd.VarID, len(hs))
			copy(out, hs)
			return out, nil
		}
		if vs, ok := ctx.paramFloatArrays[x.Name]; ok {
			out := make([]fd.VarID, len(vs))
			for i, v := range vs {
				out[i] = ctx.model.FloatConst(v)
			}
			return out, nil
		}
		v, err := ctx.resolveFloatVar(x)
		if err != nil {
			return nil, err
		}
		return []fd.VarID{v}, nil
	case *ArrayLit:
		out := make([]fd.VarID, 0, len(x.Elems))
		for _, el := range x.Elems {
			v, err := ctx.resolveFloatVar(el)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return nil, unsupportedf(e.exprLoc(), "expression in array position")
}

// --- compile-time scalar extraction ---

func (ctx *mappingContext) extractInt(e Expr) (int, error) {
	switch x := e.(type) {
	case *IntLit:
		return x.Value, nil
	case *Ident:
		if v, ok := ctx.paramInts[x.Name]; ok {
			return v, nil
		}
	}
	return 0, mapErrorf(e.exprLoc(), "expected an integer constant")
}

func (ctx *mappingContext) extractBool(e Expr) (bool, error) {
	switch x := e.(type) {
	case *BoolLit:
		return x.Value, nil
	case *Ident:
		if v, ok := ctx.paramBools[x.Name]; ok {
			return v, nil
		}
	}
	return false, mapErrorf(e.exprLoc(), "expected a boolean constant")
}

func (ctx *mappingContext) extractFloat(e Expr) (float64, error) {
	switch x := e.(type) {
	case *FloatLit:
		return x.Value, nil
	case *IntLit:
		return float64(x.Value), nil
	case *Ident:
		if v, ok := ctx.paramFloats[x.Name]; ok {
			return v, nil
		}
	}
	return 0, mapErrorf(e.exprLoc(), "expected a float constant")
}

func (ctx *mappingContext) extractIntArray(e Expr) ([]int, error) {
	switch x := e.(type) {
	case *Ident:
		if vs, ok := ctx.paramIntArrays[x.Name]; ok {
			out := make([]int, len(vs))
			copy(out, vs)
			return out, nil
		}
	case *ArrayLit:
		out := make([]int, len(x.Elems))
		for i, el := range x.Elems {
			v, err := ctx.extractInt(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	return nil, mapErrorf(e.exprLoc(), "expected a constant integer array")
}

func (ctx *mappingContext) extractBoolArray(e Expr) ([]bool, error) {
	switch x := e.(type) {
	case *Ident:
		if vs, ok := ctx.paramBoolArrays[x.Name]; ok {
			out := make([]bool, len(vs))
			copy(out, vs)
			return out, nil
		}
	case *ArrayLit:
		out := make([]bool, len(x.Elems))
		for i, el := range x.Elems {
			v, err := ctx.extractBool(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	return nil, mapErrorf(e.exprLoc(), "expected a constant boolean array")
}

func (ctx *mappingContext) extractFloatArray(e Expr) ([]float64, error) {
	switch x := e.(type) {
	case *Ident:
		if vs, ok := ctx.paramFloatArrays[x.Name]; ok {
			out := make([]float64, len(vs))
			copy(out, vs)
			return out, nil
		}
	case *ArrayLit:
		out := make([]float64, len(x.Elems))
		for i, el := range x.Elems {
			v, err := ctx.extractFloat(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	return nil, mapErrorf(e.exprLoc(), "expected a constant float array")
}

// extractSet materializes an explicit value set.
func (ctx *mappingContext) extractSet(e Expr) ([]int, error) {
	switch x := e.(type) {
	case *SetLit:
		out := make([]int, len(x.Elems))
		for i, el := range x.Elems {
			v, err := ctx.extractInt(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case *RangeLit:
		if x.Hi-x.Lo+1 > maxGatherRange {
			return nil, unsupportedf(x.At, "range %d..%d too large for an explicit set", x.Lo, x.Hi)
		}
		out := make([]int, 0, x.Hi-x.Lo+1)
		for v := x.Lo; v <= x.Hi; v++ {
			out = append(out, v)
		}
		return out, nil
	case *Ident:
		if vs, ok := ctx.paramSets[x.Name]; ok {
			out := make([]int, len(vs))
			copy(out, vs)
			return out, nil
		}
	}
	return nil, mapErrorf(e.exprLoc(), "expected a set")
}

// extractSetDomain resolves a set expression to a backend domain
// without materializing large ranges.
func (ctx *mappingContext) extractSetDomain(e Expr) (fd.IntDomain, error) {
	if r, ok := e.(*RangeLit); ok {
		return fd.NewIntDomain(r.Lo, r.Hi), nil
	}
	vals, err := ctx.extractSet(e)
	if err != nil {
		return fd.IntDomain{}, err
	}
	return fd.DomainFromValues(vals), nil
}
