package flatzinc

// parser is a recursive-descent parser over the token stream. Items
// appear in the fixed FlatZinc order: predicate items, declarations,
// constraints, one solve item.
type parser struct {
	toks []token
	pos  int
}

// Parse tokenizes and parses one FlatZinc model.
func Parse(src string) (*Model, error) {
	toks, lerr := lexAll(src)
	if lerr != nil {
		return nil, lerr
	}
	p := &parser{toks: toks}
	m, perr := p.parseModel()
	if perr != nil {
		return nil, perr
	}
	return m, nil
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) peek() token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ tokenType) (token, *Error) {
	t := p.cur()
	if t.typ != typ {
		return token{}, parseErrorf(t.at, "expected %s, found %s", typ, t)
	}
	return p.advance(), nil
}

func (p *parser) atKeyword(kw string) bool {
	t := p.cur()
	return t.typ == tokIdent && t.text == kw
}

func (p *parser) expectKeyword(kw string) *Error {
	t := p.cur()
	if t.typ != tokIdent || t.text != kw {
		return parseErrorf(t.at, "expected %q, found %s", kw, t)
	}
	p.advance()
	return nil
}

func (p *parser) parseModel() (*Model, *Error) {
	m := &Model{}
	sawSolve := false
	for p.cur().typ != tokEOF {
		switch {
		case p.atKeyword("predicate"):
			name, err := p.parsePredicateItem()
			if err != nil {
				return nil, err
			}
			m.Predicates = append(m.Predicates, name)
		case p.atKeyword("constraint"):
			c, err := p.parseConstraint()
			if err != nil {
				return nil, err
			}
			m.Constraints = append(m.Constraints, *c)
		case p.atKeyword("solve"):
			g, err := p.parseSolve()
			if err != nil {
				return nil, err
			}
			m.Solve = *g
			sawSolve = true
		default:
			d, err := p.parseDecl()
			if err != nil {
				return nil, err
			}
			m.Decls = append(m.Decls, *d)
		}
	}
	if !sawSolve {
		return nil, parseErrorf(Loc{}, "model has no solve item")
	}
	return m, nil
}

// parsePredicateItem records the predicate's name and skips the rest
// of the item. Predicate signatures are not needed for lowering.
func (p *parser) parsePredicateItem() (string, *Error) {
	p.advance() // predicate
	name, err := p.expect(tokIdent)
	if err != nil {
		return "", err
	}
	for p.cur().typ != tokSemi && p.cur().typ != tokEOF {
		p.advance()
	}
	if _, err := p.expect(tokSemi); err != nil {
		return "", err
	}
	return name.text, nil
}

func (p *parser) parseConstraint() (*Constraint, *Error) {
	at := p.advance().at // constraint
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var args []Expr
	if p.cur().typ != tokRParen {
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, e)
			if p.cur().typ != tokComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	if _, err := p.parseAnnotations(); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokSemi); err != nil {
		return nil, err
	}
	return &Constraint{Predicate: name.text, Args: args, At: at}, nil
}

func (p *parser) parseSolve() (*SolveGoal, *Error) {
	at := p.advance().at // solve
	if _, err := p.parseAnnotations(); err != nil {
		return nil, err
	}
	g := &SolveGoal{At: at}
	switch {
	case p.atKeyword("satisfy"):
		p.advance()
	case p.atKeyword("minimize"):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		g.Kind = SolveMinimize
		g.Objective = e
	case p.atKeyword("maximize"):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		g.Kind = SolveMaximize
		g.Objective = e
	default:
		return nil, parseErrorf(p.cur().at, "expected satisfy, minimize or maximize, found %s", p.cur())
	}
	if _, err := p.expect(tokSemi); err != nil {
		return nil, err
	}
	return g, nil
}

// parseDecl parses a variable or parameter declaration, array or
// scalar.
func (p *parser) parseDecl() (*Decl, *Error) {
	at := p.cur().at
	d := &Decl{At: at}
	if p.atKeyword("array") {
		p.advance()
		if _, err := p.expect(tokLBracket); err != nil {
			return nil, err
		}
		lo, err := p.expect(tokInt)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokDotDot); err != nil {
			return nil, err
		}
		hi, err2 := p.expect(tokInt)
		if err2 != nil {
			return nil, err2
		}
		if p.cur().typ == tokComma {
			return nil, parseErrorf(p.cur().at, "multi-dimensional arrays are not supported")
		}
		if _, err := p.expect(tokRBracket); err != nil {
			return nil, err
		}
		if lo.intVal != 1 {
			return nil, parseErrorf(lo.at, "array index sets must start at 1, got %d", lo.intVal)
		}
		d.IsArray = true
		d.ArrayLen = hi.intVal
		if err := p.expectKeyword("of"); err != nil {
			return nil, err
		}
	}
	typ, terr := p.parseType()
	if terr != nil {
		return nil, terr
	}
	d.Type = *typ
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}
	name, nerr := p.expect(tokIdent)
	if nerr != nil {
		return nil, nerr
	}
	d.Name = name.text
	anns, aerr := p.parseAnnotations()
	if aerr != nil {
		return nil, aerr
	}
	d.Annotations = anns
	if p.cur().typ == tokEq {
		p.advance()
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		d.Init = init
	}
	if _, err := p.expect(tokSemi); err != nil {
		return nil, err
	}
	return d, nil
}

// parseType parses an optionally var-qualified base type or domain.
func (p *parser) parseType() (*VarType, *Error) {
	t := &VarType{}
	if p.atKeyword("var") {
		t.IsVar = true
		p.advance()
	}
	switch {
	case p.atKeyword("bool"):
		p.advance()
		t.Kind = TypeBool
		return t, nil
	case p.atKeyword("int"):
		p.advance()
		t.Kind = TypeInt
		return t, nil
	case p.atKeyword("float"):
		p.advance()
		t.Kind = TypeFloat
		return t, nil
	case p.atKeyword("set"):
		p.advance()
		if err := p.expectKeyword("of"); err != nil {
			return nil, err
		}
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if inner.IsVar {
			return nil, parseErrorf(p.cur().at, "var set types are not supported")
		}
		t.Kind = TypeSetOfInt
		return t, nil
	case p.cur().typ == tokInt:
		lo := p.advance()
		if _, err := p.expect(tokDotDot); err != nil {
			return nil, err
		}
		hi, err := p.expect(tokInt)
		if err != nil {
			return nil, err
		}
		t.Kind = TypeIntRange
		t.Lo, t.Hi = lo.intVal, hi.intVal
		return t, nil
	case p.cur().typ == tokFloat:
		lo := p.advance()
		if _, err := p.expect(tokDotDot); err != nil {
			return nil, err
		}
		hi, err := p.expect(tokFloat)
		if err != nil {
			return nil, err
		}
		t.Kind = TypeFloatRange
		t.FLo, t.FHi = lo.floatVal, hi.floatVal
		return t, nil
	case p.cur().typ == tokLBrace:
		at := p.advance().at
		var vals []int
		for p.cur().typ != tokRBrace {
			v, err := p.expect(tokInt)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v.intVal)
			if p.cur().typ == tokComma {
				p.advance()
			}
		}
		p.advance() // }
		if len(vals) == 0 {
			return nil, parseErrorf(at, "empty set domain")
		}
		t.Kind = TypeIntSet
		t.Set = vals
		return t, nil
	}
	return nil, parseErrorf(p.cur().at, "expected a type, found %s", p.cur())
}

// parseAnnotations parses zero or more '::'-introduced annotations,
// returning their names. Annotation arguments are consumed and
// discarded.
func (p *parser) parseAnnotations() ([]string, *Error) {
	var names []string
	for p.cur().typ == tokDoubleColon {
		p.advance()
		name, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		names = append(names, name.text)
		if p.cur().typ == tokLParen {
			depth := 0
			for {
				switch p.cur().typ {
				case tokLParen, tokLBracket, tokLBrace:
					depth++
				case tokRParen, tokRBracket, tokRBrace:
					depth--
				case tokEOF:
					return nil, parseErrorf(p.cur().at, "unterminated annotation argument")
				}
				p.advance()
				if depth == 0 {
					break
				}
			}
		}
	}
	return names, nil
}

// parseExpr parses one expression: literal, identifier, array access,
// array literal, set literal or range.
func (p *parser) parseExpr() (Expr, *Error) {
	t := p.cur()
	switch t.typ {
	case tokInt:
		p.advance()
		if p.cur().typ == tokDotDot {
			p.advance()
			hi, err := p.expect(tokInt)
			if err != nil {
				return nil, err
			}
			return &RangeLit{Lo: t.intVal, Hi: hi.intVal, At: t.at}, nil
		}
		return &IntLit{Value: t.intVal, At: t.at}, nil
	case tokFloat:
		p.advance()
		return &FloatLit{Value: t.floatVal, At: t.at}, nil
	case tokString:
		p.advance()
		return &StringLit{Value: t.text, At: t.at}, nil
	case tokIdent:
		switch t.text {
		case "true":
			p.advance()
			return &BoolLit{Value: true, At: t.at}, nil
		case "false":
			p.advance()
			return &BoolLit{Value: false, At: t.at}, nil
		}
		p.advance()
		if p.cur().typ == tokLBracket {
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBracket); err != nil {
				return nil, err
			}
			return &ArrayAccess{Array: t.text, Index: idx, At: t.at}, nil
		}
		return &Ident{Name: t.text, At: t.at}, nil
	case tokLBracket:
		p.advance()
		var elems []Expr
		for p.cur().typ != tokRBracket {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.cur().typ == tokComma {
				p.advance()
			} else {
				break
			}
		}
		if _, err := p.expect(tokRBracket); err != nil {
			return nil, err
		}
		return &ArrayLit{Elems: elems, At: t.at}, nil
	case tokLBrace:
		p.advance()
		var elems []Expr
		for p.cur().typ != tokRBrace {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.cur().typ == tokComma {
				p.advance()
			} else {
				break
			}
		}
		if _, err := p.expect(tokRBrace); err != nil {
			return nil, err
		}
		return &SetLit{Elems: elems, At: t.at}, nil
	}
	return nil, parseErrorf(t.at, "expected an expression, found %s", t)
}
