package flatzinc

// predicate is the closed set of constraint kinds the engine lowers.
// Predicate names are decoded once through predicateByName; dispatch
// switches on the decoded value, so an unhandled kind is a visible gap
// in one switch rather than a missed string comparison.
type predicate int

const (
	predIntEq predicate = iota
	predIntNe
	predIntLt
	predIntLe
	predIntGt
	predIntGe
	predIntEqReif
	predIntNeReif
	predIntLtReif
	predIntLeReif
	predIntGtReif
	predIntGeReif

	predIntLinEq
	predIntLinLe
	predIntLinNe
	predIntLinEqReif
	predIntLinLeReif
	predIntLinNeReif

	predIntAbs
	predIntPlus
	predIntMinus
	predIntTimes
	predIntDiv
	predIntMod
	predIntMin
	predIntMax

	predBool2Int
	predBoolEq
	predBoolNot
	predBoolXor
	predBoolLe
	predBoolEqReif
	predBoolLeReif
	predBoolClause
	predArrayBoolAnd
	predArrayBoolOr
	predBoolLinEq
	predBoolLinLe

	predArrayIntMinimum
	predArrayIntMaximum

	predArrayIntElement
	predArrayVarIntElement
	predArrayBoolElement
	predArrayVarBoolElement

	predCount
	predAllDifferent

	predSort
	predLexLess
	predLexLesseq
	predTableInt
	predTableBool
	predNvalue
	predGlobalCardinality
	predGlobalCardinalityLowUp
	predGlobalCardinalityLowUpClosed
	predCumulative
	predCumulativeVar

	predSetIn
	predSetInReif

	predFloatEq
	predFloatNe
	predFloatLt
	predFloatLe
	predFloatEqReif
	predFloatNeReif
	predFloatLtReif
	predFloatLeReif
	predFloatGtReif
	predFloatGeReif

	predFloatLinEq
	predFloatLinLe
	predFloatLinNe
	predFloatLinEqReif
	predFloatLinLeReif
	predFloatLinNeReif

	predFloatPlus
	predFloatMinus
	predFloatTimes
	predFloatDiv
	predFloatAbs
	predFloatMin
	predFloatMax
	predInt2Float
)

var predicateByName = map[string]predicate{
	"int_eq":      predIntEq,
	"int_ne":      predIntNe,
	"int_lt":      predIntLt,
	"int_le":      predIntLe,
	"int_gt":      predIntGt,
	"int_ge":      predIntGe,
	"int_eq_reif": predIntEqReif,
	"int_ne_reif": predIntNeReif,
	"int_lt_reif": predIntLtReif,
	"int_le_reif": predIntLeReif,
	"int_gt_reif": predIntGtReif,
	"int_ge_reif": predIntGeReif,

	"int_lin_eq":      predIntLinEq,
	"int_lin_le":      predIntLinLe,
	"int_lin_ne":      predIntLinNe,
	"int_lin_eq_reif": predIntLinEqReif,
	"int_lin_le_reif": predIntLinLeReif,
	"int_lin_ne_reif": predIntLinNeReif,

	"int_abs":   predIntAbs,
	"int_plus":  predIntPlus,
	"int_minus": predIntMinus,
	"int_times": predIntTimes,
	"int_div":   predIntDiv,
	"int_mod":   predIntMod,
	"int_min":   predIntMin,
	"int_max":   predIntMax,

	"bool2int":       predBool2Int,
	"bool_eq":        predBoolEq,
	"bool_not":       predBoolNot,
	"bool_xor":       predBoolXor,
	"bool_le":        predBoolLe,
	"bool_eq_reif":   predBoolEqReif,
	"bool_le_reif":   predBoolLeReif,
	"bool_clause":    predBoolClause,
	"array_bool_and": predArrayBoolAnd,
	"array_bool_or":  predArrayBoolOr,
	"bool_lin_eq":    predBoolLinEq,
	"bool_lin_le":    predBoolLinLe,

	"array_int_minimum": predArrayIntMinimum,
	"array_int_maximum": predArrayIntMaximum,

	"array_int_element":      predArrayIntElement,
	"array_var_int_element":  predArrayVarIntElement,
	"array_bool_element":     predArrayBoolElement,
	"array_var_bool_element": predArrayVarBoolElement,

	"count":    predCount,
	"count_eq": predCount,

	"all_different":         predAllDifferent,
	"all_different_int":     predAllDifferent,
	"fzn_all_different_int": predAllDifferent,

	"sort":     predSort,
	"fzn_sort": predSort,

	"lex_less":       predLexLess,
	"lex_less_int":   predLexLess,
	"lex_lesseq":     predLexLesseq,
	"lex_lesseq_int": predLexLesseq,
	"fzn_lex_less":   predLexLess,
	"fzn_lex_lesseq": predLexLesseq,

	"table_int":  predTableInt,
	"table_bool": predTableBool,

	"nvalue":     predNvalue,
	"fzn_nvalue": predNvalue,

	"global_cardinality":               predGlobalCardinality,
	"fzn_global_cardinality":           predGlobalCardinality,
	"global_cardinality_low_up":        predGlobalCardinalityLowUp,
	"global_cardinality_low_up_closed": predGlobalCardinalityLowUpClosed,

	"cumulative":           predCumulative,
	"fzn_cumulative":       predCumulative,
	"fixed_fzn_cumulative": predCumulative,
	"var_fzn_cumulative":   predCumulativeVar,

	"set_in":      predSetIn,
	"set_in_reif": predSetInReif,

	"float_eq":      predFloatEq,
	"float_ne":      predFloatNe,
	"float_lt":      predFloatLt,
	"float_le":      predFloatLe,
	"float_eq_reif": predFloatEqReif,
	"float_ne_reif": predFloatNeReif,
	"float_lt_reif": predFloatLtReif,
	"float_le_reif": predFloatLeReif,
	"float_gt_reif": predFloatGtReif,
	"float_ge_reif": predFloatGeReif,

	"float_lin_eq":      predFloatLinEq,
	"float_lin_le":      predFloatLinLe,
	"float_lin_ne":      predFloatLinNe,
	"float_lin_eq_reif": predFloatLinEqReif,
	"float_lin_le_reif": predFloatLinLeReif,
	"float_lin_ne_reif": predFloatLinNeReif,

	"float_plus":  predFloatPlus,
	"float_minus": predFloatMinus,
	"float_times": predFloatTimes,
	"float_div":   predFloatDiv,
	"float_abs":   predFloatAbs,
	"float_min":   predFloatMin,
	"float_max":   predFloatMax,
	"int2float":   predInt2Float,
}

// wantArgs validates a constraint's arity before any resolution.
func wantArgs(c *Constraint, n int) error {
	if len(c.Args) != n {
		return mapErrorf(c.At, "%s expects %d arguments, got %d", c.Predicate, n, len(c.Args))
	}
	return nil
}

// lowerConstraint dispatches one constraint item to its lowering
// strategy. Unknown predicates fail fast.
func (ctx *mappingContext) lowerConstraint(c *Constraint) error {
	p, ok := predicateByName[c.Predicate]
	if !ok {
		return unsupportedf(c.At, "constraint predicate %q", c.Predicate)
	}
	switch p {
	case predIntEq, predIntNe, predIntLt, predIntLe, predIntGt, predIntGe,
		predBoolEq, predBoolLe:
		return ctx.lowerIntRel(c, p)
	case predIntEqReif, predIntNeReif, predIntLtReif, predIntLeReif,
		predIntGtReif, predIntGeReif, predBoolEqReif, predBoolLeReif:
		return ctx.lowerIntRelReif(c, p)
	case predIntLinEq, predIntLinLe, predIntLinNe, predBoolLinEq, predBoolLinLe:
		return ctx.lowerLinear(c, p)
	case predIntLinEqReif, predIntLinLeReif, predIntLinNeReif:
		return ctx.lowerLinearReif(c, p)
	case predIntAbs, predIntPlus, predIntMinus, predIntTimes, predIntDiv,
		predIntMod, predIntMin, predIntMax:
		return ctx.lowerIntArith(c, p)
	case predBool2Int, predBoolNot, predBoolXor, predBoolClause,
		predArrayBoolAnd, predArrayBoolOr:
		return ctx.lowerBool(c, p)
	case predArrayIntMinimum, predArrayIntMaximum:
		return ctx.lowerArrayExtremum(c, p)
	case predArrayIntElement, predArrayVarIntElement,
		predArrayBoolElement, predArrayVarBoolElement:
		return ctx.lowerElement(c)
	case predCount:
		return ctx.lowerCount(c)
	case predAllDifferent:
		return ctx.lowerAllDifferent(c)
	case predSort:
		return ctx.lowerSort(c)
	case predLexLess, predLexLesseq:
		return ctx.lowerLex(c, p == predLexLesseq)
	case predTableInt, predTableBool:
		return ctx.lowerTable(c, p == predTableBool)
	case predNvalue:
		return ctx.lowerNvalue(c)
	case predGlobalCardinality:
		return ctx.lowerGlobalCardinality(c)
	case predGlobalCardinalityLowUp, predGlobalCardinalityLowUpClosed:
		return ctx.lowerGlobalCardinalityLowUp(c, p == predGlobalCardinalityLowUpClosed)
	case predCumulative, predCumulativeVar:
		return ctx.lowerCumulative(c)
	case predSetIn:
		return ctx.lowerSetIn(c)
	case predSetInReif:
		return ctx.lowerSetInReif(c)
	case predFloatEq, predFloatNe, predFloatLt, predFloatLe:
		return ctx.lowerFloatRel(c, p)
	case predFloatEqReif, predFloatNeReif, predFloatLtReif, predFloatLeReif,
		predFloatGtReif, predFloatGeReif:
		return ctx.lowerFloatRelReif(c, p)
	case predFloatLinEq, predFloatLinLe, predFloatLinNe:
		return ctx.lowerFloatLinear(c, p)
	case predFloatLinEqReif, predFloatLinLeReif, predFloatLinNeReif:
		return ctx.lowerFloatLinearReif(c, p)
	case predFloatPlus, predFloatMinus, predFloatTimes, predFloatDiv,
		predFloatAbs, predFloatMin, predFloatMax:
		return ctx.lowerFloatArith(c, p)
	case predInt2Float:
		return ctx.lowerInt2Float(c)
	}
	return unsupportedf(c.At, "constraint predicate %q", c.Predicate)
}
