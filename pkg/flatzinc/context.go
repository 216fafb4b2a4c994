package flatzinc

import (
	"io"
	"log/slog"

	"github.com/gitrdm/gofzn/pkg/fd"
)

// mappingContext is the mutable aggregate threaded through one
// translation call: the backend model under construction, the symbol
// tables and the inferred bound range. Each declared name occupies
// exactly one table. The context is created per call and discarded
// with it; only the backend model and the ModelInfo bundle survive.
type mappingContext struct {
	model *fd.Model

	vars   map[string]fd.VarID
	arrays map[string][]fd.VarID

	paramInts   map[string]int
	paramBools  map[string]bool
	paramFloats map[string]float64

	paramIntArrays   map[string][]int
	paramBoolArrays  map[string][]bool
	paramFloatArrays map[string][]float64
	paramSets        map[string][]int

	bounds boundRange
	logger *slog.Logger
}

func newMappingContext(logger *slog.Logger) *mappingContext {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &mappingContext{
		model:            fd.NewModel(),
		vars:             make(map[string]fd.VarID),
		arrays:           make(map[string][]fd.VarID),
		paramInts:        make(map[string]int),
		paramBools:       make(map[string]bool),
		paramFloats:      make(map[string]float64),
		paramIntArrays:   make(map[string][]int),
		paramBoolArrays:  make(map[string][]bool),
		paramFloatArrays: make(map[string][]float64),
		paramSets:        make(map[string][]int),
		bounds:           boundRange{lo: -defaultBoundMagnitude, hi: defaultBoundMagnitude},
		logger:           logger,
	}
}

// known reports whether the name is bound in any table.
func (ctx *mappingContext) known(name string) bool {
	if _, ok := ctx.vars[name]; ok {
		return true
	}
	if _, ok := ctx.arrays[name]; ok {
		return true
	}
	if _, ok := ctx.paramInts[name]; ok {
		return true
	}
	if _, ok := ctx.paramBools[name]; ok {
		return true
	}
	if _, ok := ctx.paramFloats[name]; ok {
		return true
	}
	if _, ok := ctx.paramIntArrays[name]; ok {
		return true
	}
	if _, ok := ctx.paramBoolArrays[name]; ok {
		return true
	}
	if _, ok := ctx.paramFloatArrays[name]; ok {
		return true
	}
	if _, ok := ctx.paramSets[name]; ok {
		return true
	}
	return false
}
