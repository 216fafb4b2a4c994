package flatzinc

import "github.com/gitrdm/gofzn/pkg/fd"

// unboundedFloatLimit bounds float variables declared without a
// domain. Interval propagation needs finite endpoints.
const unboundedFloatLimit = 1e15

// processDecl lowers one declaration into backend allocations or
// parameter-table entries.
func (ctx *mappingContext) processDecl(d *Decl) error {
	if ctx.known(d.Name) {
		return mapErrorf(d.At, "duplicate declaration of %q", d.Name)
	}
	if d.Type.Kind == TypeSetOfInt {
		return ctx.processSetDecl(d)
	}
	if d.IsArray {
		return ctx.processArrayDecl(d)
	}
	if d.Type.IsVar {
		return ctx.processVarDecl(d)
	}
	return ctx.processParamDecl(d)
}

// intDomainFor derives the backend domain for an integer declaration,
// falling back to the inferred bound range for unbounded or oversized
// domains. The fallback is a diagnostic, not an error.
func (ctx *mappingContext) intDomainFor(d *Decl) fd.IntDomain {
	t := &d.Type
	switch t.Kind {
	case TypeIntRange:
		width := t.Hi - t.Lo + 1
		if width > 0 && width <= fd.MaxDomainSize {
			return fd.NewIntDomain(t.Lo, t.Hi)
		}
		ctx.logger.Warn("integer domain exceeds backend capacity, using inferred bounds",
			"variable", d.Name, "declared_lo", t.Lo, "declared_hi", t.Hi,
			"lo", ctx.bounds.lo, "hi", ctx.bounds.hi)
		return fd.NewIntDomain(ctx.bounds.lo, ctx.bounds.hi)
	case TypeIntSet:
		// Hull approximation: values excluded from the set survive
		// unless another constraint removes them.
		mn, mx := t.Set[0], t.Set[0]
		for _, v := range t.Set[1:] {
			if v < mn {
				mn = v
			}
			if v > mx {
				mx = v
			}
		}
		return fd.NewIntDomain(mn, mx)
	default: // TypeInt, unbounded
		ctx.logger.Warn("unbounded integer variable, using inferred bounds",
			"variable", d.Name, "lo", ctx.bounds.lo, "hi", ctx.bounds.hi)
		return fd.NewIntDomain(ctx.bounds.lo, ctx.bounds.hi)
	}
}

func (ctx *mappingContext) allocVar(d *Decl) (fd.VarID, error) {
	switch d.Type.Kind {
	case TypeBool:
		return ctx.model.NewBool(), nil
	case TypeInt, TypeIntRange, TypeIntSet:
		dom := ctx.intDomainFor(d)
		if dom.IsEmpty() {
			return 0, mapErrorf(d.At, "empty domain for %q", d.Name)
		}
		return ctx.model.NewIntFromDomain(dom), nil
	case TypeFloat:
		return ctx.model.NewFloat(-unboundedFloatLimit, unboundedFloatLimit), nil
	case TypeFloatRange:
		if d.Type.FLo > d.Type.FHi {
			return 0, mapErrorf(d.At, "empty domain for %q", d.Name)
		}
		return ctx.model.NewFloat(d.Type.FLo, d.Type.FHi), nil
	}
	return 0, unsupportedf(d.At, "variable type of %q", d.Name)
}

// processVarDecl allocates a scalar decision variable. A defining
// initializer aliases the name to the resolved handle, with the
// declared domain enforced on top.
func (ctx *mappingContext) processVarDecl(d *Decl) error {
	if d.Init == nil {
		v, err := ctx.allocVar(d)
		if err != nil {
			return err
		}
		ctx.vars[d.Name] = v
		return nil
	}
	var h fd.VarID
	var err error
	if d.Type.Kind == TypeFloat || d.Type.Kind == TypeFloatRange {
		h, err = ctx.resolveFloatVar(d.Init)
	} else {
		h, err = ctx.resolveVar(d.Init)
	}
	if err != nil {
		return err
	}
	switch d.Type.Kind {
	case TypeIntRange, TypeIntSet:
		dom := ctx.intDomainFor(d)
		if dom.IsEmpty() {
			return mapErrorf(d.At, "empty domain for %q", d.Name)
		}
		ctx.model.Member(h, dom)
	case TypeFloatRange:
		lim := ctx.model.NewFloat(d.Type.FLo, d.Type.FHi)
		ctx.model.FEq(h, lim)
	}
	ctx.vars[d.Name] = h
	return nil
}

// processParamDecl stores a parameter literal; no backend allocation
// happens here.
func (ctx *mappingContext) processParamDecl(d *Decl) error {
	if d.Init == nil {
		return mapErrorf(d.At, "parameter %q has no initializer", d.Name)
	}
	switch d.Type.Kind {
	case TypeBool:
		v, err := ctx.extractBool(d.Init)
		if err != nil {
			return err
		}
		ctx.paramBools[d.Name] = v
	case TypeInt, TypeIntRange, TypeIntSet:
		v, err := ctx.extractInt(d.Init)
		if err != nil {
			return err
		}
		ctx.paramInts[d.Name] = v
	case TypeFloat, TypeFloatRange:
		v, err := ctx.extractFloat(d.Init)
		if err != nil {
			return err
		}
		ctx.paramFloats[d.Name] = v
	default:
		return unsupportedf(d.At, "parameter type of %q", d.Name)
	}
	return nil
}

// processSetDecl stores a set-of-int parameter as its value list.
func (ctx *mappingContext) processSetDecl(d *Decl) error {
	if d.Type.IsVar {
		return unsupportedf(d.At, "var set variable %q", d.Name)
	}
	if d.IsArray {
		return unsupportedf(d.At, "array of set %q", d.Name)
	}
	if d.Init == nil {
		return mapErrorf(d.At, "parameter %q has no initializer", d.Name)
	}
	vals, err := ctx.extractSet(d.Init)
	if err != nil {
		return err
	}
	ctx.paramSets[d.Name] = vals
	return nil
}

func (ctx *mappingContext) processArrayDecl(d *Decl) error {
	if d.ArrayLen < 0 {
		return mapErrorf(d.At, "negative index set for array %q", d.Name)
	}
	if d.Type.IsVar {
		return ctx.processVarArrayDecl(d)
	}
	return ctx.processParamArrayDecl(d)
}

// processVarArrayDecl either allocates fresh handles or gathers the
// initializer's elements through the evaluator.
func (ctx *mappingContext) processVarArrayDecl(d *Decl) error {
	if d.Init == nil {
		handles := make([]fd.VarID, d.ArrayLen)
		for i := range handles {
			v, err := ctx.allocVar(d)
			if err != nil {
				return err
			}
			handles[i] = v
		}
		ctx.arrays[d.Name] = handles
		return nil
	}
	var handles []fd.VarID
	var err error
	if d.Type.Kind == TypeFloat || d.Type.Kind == TypeFloatRange {
		handles, err = ctx.resolveFloatArray(d.Init)
	} else {
		handles, err = ctx.resolveVarArray(d.Init)
	}
	if err != nil {
		return err
	}
	if len(handles) != d.ArrayLen {
		return mapErrorf(d.At, "array %q declares %d elements but initializer has %d",
			d.Name, d.ArrayLen, len(handles))
	}
	ctx.arrays[d.Name] = handles
	return nil
}

// processParamArrayDecl stores a literal array in the matching
// parameter table. Initializers mixing in variables make this a var
// array in disguise; those gather into the handle table instead.
func (ctx *mappingContext) processParamArrayDecl(d *Decl) error {
	if d.Init == nil {
		return mapErrorf(d.At, "parameter array %q has no initializer", d.Name)
	}
	switch d.Type.Kind {
	case TypeBool:
		vals, err := ctx.extractBoolArray(d.Init)
		if err == nil {
			if len(vals) != d.ArrayLen {
				return mapErrorf(d.At, "array %q declares %d elements but initializer has %d",
					d.Name, d.ArrayLen, len(vals))
			}
			ctx.paramBoolArrays[d.Name] = vals
			return nil
		}
	case TypeInt, TypeIntRange, TypeIntSet:
		vals, err := ctx.extractIntArray(d.Init)
		if err == nil {
			if len(vals) != d.ArrayLen {
				return mapErrorf(d.At, "array %q declares %d elements but initializer has %d",
					d.Name, d.ArrayLen, len(vals))
			}
			ctx.paramIntArrays[d.Name] = vals
			return nil
		}
	case TypeFloat, TypeFloatRange:
		vals, err := ctx.extractFloatArray(d.Init)
		if err != nil {
			return err
		}
		if len(vals) != d.ArrayLen {
			return mapErrorf(d.At, "array %q declares %d elements but initializer has %d",
				d.Name, d.ArrayLen, len(vals))
		}
		ctx.paramFloatArrays[d.Name] = vals
		return nil
	default:
		return unsupportedf(d.At, "parameter array type of %q", d.Name)
	}
	// Not all elements are literals: gather handles instead.
	handles, err := ctx.resolveVarArray(d.Init)
	if err != nil {
		return err
	}
	if len(handles) != d.ArrayLen {
		return mapErrorf(d.At, "array %q declares %d elements but initializer has %d",
			d.Name, d.ArrayLen, len(handles))
	}
	ctx.arrays[d.Name] = handles
	return nil
}
