package flatzinc

// Expr is one FlatZinc expression node.
type Expr interface {
	exprLoc() Loc
}

// IntLit is an integer literal.
type IntLit struct {
	Value int
	At    Loc
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
	At    Loc
}

// FloatLit is a float literal.
type FloatLit struct {
	Value float64
	At    Loc
}

// StringLit is a string literal. Strings appear only in annotations.
type StringLit struct {
	Value string
	At    Loc
}

// Ident is a reference to a declared name.
type Ident struct {
	Name string
	At   Loc
}

// ArrayLit is a bracketed element list. Elements may mix identifiers,
// literals, ranges and array accesses (a "gather" literal).
type ArrayLit struct {
	Elems []Expr
	At    Loc
}

// SetLit is a braced explicit value set.
type SetLit struct {
	Elems []Expr
	At    Loc
}

// RangeLit is an inclusive integer range lo..hi.
type RangeLit struct {
	Lo, Hi int
	At     Loc
}

// ArrayAccess is a single 1-based index into a named array.
type ArrayAccess struct {
	Array string
	Index Expr
	At    Loc
}

func (e *IntLit) exprLoc() Loc      { return e.At }
func (e *BoolLit) exprLoc() Loc     { return e.At }
func (e *FloatLit) exprLoc() Loc    { return e.At }
func (e *StringLit) exprLoc() Loc   { return e.At }
func (e *Ident) exprLoc() Loc       { return e.At }
func (e *ArrayLit) exprLoc() Loc    { return e.At }
func (e *SetLit) exprLoc() Loc      { return e.At }
func (e *RangeLit) exprLoc() Loc    { return e.At }
func (e *ArrayAccess) exprLoc() Loc { return e.At }

// TypeKind enumerates declarable base types and domain shapes.
type TypeKind uint8

const (
	TypeBool TypeKind = iota
	TypeInt
	TypeFloat
	TypeIntRange
	TypeIntSet
	TypeFloatRange
	TypeSetOfInt
)

// VarType is the declared type of a variable or parameter.
type VarType struct {
	Kind     TypeKind
	IsVar    bool
	Lo, Hi   int       // TypeIntRange
	FLo, FHi float64   // TypeFloatRange
	Set      []int     // TypeIntSet
}

// Decl is one variable or parameter declaration.
type Decl struct {
	Name        string
	Type        VarType
	IsArray     bool
	ArrayLen    int // from the 1..n index set
	Init        Expr
	Annotations []string
	At          Loc
}

// HasAnnotation reports whether the declaration carries the named
// annotation.
func (d *Decl) HasAnnotation(name string) bool {
	for _, a := range d.Annotations {
		if a == name {
			return true
		}
	}
	return false
}

// Constraint is one constraint item: a predicate applied to arguments.
type Constraint struct {
	Predicate string
	Args      []Expr
	At        Loc
}

// SolveKind enumerates solve goals.
type SolveKind uint8

const (
	SolveSatisfy SolveKind = iota
	SolveMinimize
	SolveMaximize
)

func (k SolveKind) String() string {
	switch k {
	case SolveSatisfy:
		return "satisfy"
	case SolveMinimize:
		return "minimize"
	case SolveMaximize:
		return "maximize"
	}
	return "unknown"
}

// SolveGoal is the model's single solve item.
type SolveGoal struct {
	Kind      SolveKind
	Objective Expr // nil for satisfy
	At        Loc
}

// Model is a parsed FlatZinc model. Predicate items are retained by
// name but take no part in lowering.
type Model struct {
	Predicates  []string
	Decls       []Decl
	Constraints []Constraint
	Solve       SolveGoal
}
