package flatzinc

import (
	"log/slog"

	"github.com/gitrdm/gofzn/pkg/fd"
)

// OutputItem names one variable or array the solver should print.
type OutputItem struct {
	Name    string
	IsArray bool
}

// ModelInfo is the lookup bundle returned beside the backend model:
// handle to name, name to handle, name to array, the solve goal and
// the ordered output items.
type ModelInfo struct {
	Names     map[fd.VarID]string
	Vars      map[string]fd.VarID
	Arrays    map[string][]fd.VarID
	Output    []OutputItem
	Goal      SolveKind
	Objective fd.VarID // valid when Goal != SolveSatisfy
}

// Translate lowers a parsed model into a backend model plus its
// lookup bundle. The first error aborts the translation; a partially
// populated backend model must be discarded. logger may be nil.
func Translate(m *Model, logger *slog.Logger) (*fd.Model, *ModelInfo, error) {
	ctx := newMappingContext(logger)
	ctx.bounds = inferBounds(m.Decls)

	for i := range m.Decls {
		if err := ctx.processDecl(&m.Decls[i]); err != nil {
			return nil, nil, err
		}
	}
	for i := range m.Constraints {
		if err := ctx.lowerConstraint(&m.Constraints[i]); err != nil {
			return nil, nil, err
		}
	}

	info := &ModelInfo{
		Names:  make(map[fd.VarID]string, len(ctx.vars)),
		Vars:   make(map[string]fd.VarID, len(ctx.vars)),
		Arrays: make(map[string][]fd.VarID, len(ctx.arrays)),
		Goal:   m.Solve.Kind,
	}
	for name, v := range ctx.vars {
		info.Names[v] = name
		info.Vars[name] = v
	}
	for name, hs := range ctx.arrays {
		out := make([]fd.VarID, len(hs))
		copy(out, hs)
		info.Arrays[name] = out
	}

	if m.Solve.Kind != SolveSatisfy {
		obj, err := ctx.resolveVar(m.Solve.Objective)
		if err != nil {
			return nil, nil, err
		}
		if ctx.model.Kind(obj) == fd.KindFloat {
			return nil, nil, unsupportedf(m.Solve.At, "float objective")
		}
		info.Objective = obj
	}

	info.Output = outputSpec(m, ctx)
	return ctx.model, info, nil
}

// outputSpec collects the annotated output items in declaration
// order. A model without any output annotation falls back to every
// declared variable and array.
func outputSpec(m *Model, ctx *mappingContext) []OutputItem {
	var items []OutputItem
	annotated := false
	for i := range m.Decls {
		d := &m.Decls[i]
		if d.HasAnnotation("output_var") || d.HasAnnotation("output_array") {
			annotated = true
			break
		}
	}
	for i := range m.Decls {
		d := &m.Decls[i]
		if annotated {
			switch {
			case d.HasAnnotation("output_var"):
				items = append(items, OutputItem{Name: d.Name})
			case d.HasAnnotation("output_array"):
				items = append(items, OutputItem{Name: d.Name, IsArray: true})
			}
			continue
		}
		if _, ok := ctx.vars[d.Name]; ok {
			items = append(items, OutputItem{Name: d.Name})
		} else if _, ok := ctx.arrays[d.Name]; ok {
			items = append(items, OutputItem{Name: d.Name, IsArray: true})
		}
	}
	return items
}
