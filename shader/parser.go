package shader

import "fmt"

// parser is a recursive-descent parser over the scanned token slice.
type parser struct {
	toks []token
	pos  int
}

func parse(toks []token) (*file, error) {
	p := &parser{toks: toks}
	var decls []stmt
	for p.current().kind != tokEOF {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		decls = append(decls, s)
	}
	return &file{Decls: decls}, nil
}

func (p *parser) current() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) check(kind tokenKind) bool { return p.current().kind == kind }

func (p *parser) accept(kind tokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.current()
	if t.kind != kind {
		return token{}, p.errorf("expected %s, found %s", kind, t.describe())
	}
	return p.advance(), nil
}

func (p *parser) errorf(format string, args ...any) error {
	t := p.current()
	return fmt.Errorf("line %d:%d: %s", t.line, t.col, fmt.Sprintf(format, args...))
}

func (p *parser) posOf(t token) position { return position{Line: t.line, Col: t.col} }

// semicolonAfter consumes an optional statement terminator.
func (p *parser) semicolonAfter() {
	p.accept(tokSemicolon)
}

func (p *parser) parseStmt() (stmt, error) {
	switch p.current().kind {
	case tokFunction:
		return p.parseFuncDecl()
	case tokLet, tokConst:
		return p.parseLet()
	case tokReturn:
		return p.parseReturn()
	case tokIf:
		return p.parseIf()
	default:
		t := p.current()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.semicolonAfter()
		return &exprStmt{position: p.posOf(t), X: x}, nil
	}
}

func (p *parser) parseFuncDecl() (stmt, error) {
	kw := p.advance() // 'function'
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var params []string
	for !p.check(tokRParen) {
		param, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		params = append(params, param.lexeme)
		if !p.accept(tokComma) {
			break
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &funcDecl{position: p.posOf(kw), Name: name.lexeme, Params: params, Body: body}, nil
}

func (p *parser) parseLet() (stmt, error) {
	kw := p.advance() // 'let' or 'const'
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.semicolonAfter()
	return &letStmt{
		position: p.posOf(kw),
		Name:     name.lexeme,
		Value:    value,
		Const:    kw.kind == tokConst,
	}, nil
}

func (p *parser) parseReturn() (stmt, error) {
	kw := p.advance()
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.semicolonAfter()
	return &returnStmt{position: p.posOf(kw), Value: value}, nil
}

func (p *parser) parseIf() (stmt, error) {
	kw := p.advance()
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var els []stmt
	if p.accept(tokElse) {
		if p.check(tokIf) {
			chained, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			els = []stmt{chained}
		} else {
			els, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}
	return &ifStmt{position: p.posOf(kw), Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) parseBlock() ([]stmt, error) {
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}
	var stmts []stmt
	for !p.check(tokRBrace) {
		if p.check(tokEOF) {
			return nil, p.errorf("unexpected end of source, expected '}'")
		}
		if p.check(tokFunction) {
			return nil, p.errorf("nested function declarations are not allowed")
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.advance() // '}'
	return stmts, nil
}

// Expression grammar, lowest precedence first:
// or → and → equality → comparison → term → factor → unary → postfix →
// primary.

func (p *parser) parseExpr() (expr, error) { return p.parseOr() }

func (p *parser) parseOr() (expr, error) {
	return p.parseBinaryLevel(p.parseAnd, tokOr)
}

func (p *parser) parseAnd() (expr, error) {
	return p.parseBinaryLevel(p.parseEquality, tokAnd)
}

func (p *parser) parseEquality() (expr, error) {
	return p.parseBinaryLevel(p.parseComparison, tokEq, tokNotEq)
}

func (p *parser) parseComparison() (expr, error) {
	return p.parseBinaryLevel(p.parseTerm, tokLess, tokLessEq, tokGreater, tokGreatEq)
}

func (p *parser) parseTerm() (expr, error) {
	return p.parseBinaryLevel(p.parseFactor, tokPlus, tokMinus)
}

func (p *parser) parseFactor() (expr, error) {
	return p.parseBinaryLevel(p.parseUnary, tokStar, tokSlash)
}

func (p *parser) parseBinaryLevel(next func() (expr, error), kinds ...tokenKind) (expr, error) {
	x, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, k := range kinds {
			if p.check(k) {
				op := p.advance()
				y, err := next()
				if err != nil {
					return nil, err
				}
				x = &binaryExpr{position: p.posOf(op), Op: op.kind, X: x, Y: y}
				matched = true
				break
			}
		}
		if !matched {
			return x, nil
		}
	}
}

func (p *parser) parseUnary() (expr, error) {
	if p.check(tokMinus) || p.check(tokNot) {
		op := p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryExpr{position: p.posOf(op), Op: op.kind, X: x}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles chained calls and member selections:
// Vector2(1, 2).add(half).length().
func (p *parser) parsePostfix() (expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(tokLParen):
			open := p.advance()
			var args []expr
			for !p.check(tokRParen) {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.accept(tokComma) {
					break
				}
			}
			if _, err := p.expect(tokRParen); err != nil {
				return nil, err
			}
			x = &callExpr{position: p.posOf(open), Callee: x, Args: args}
		case p.check(tokDot):
			p.advance()
			name, err := p.expect(tokIdent)
			if err != nil {
				return nil, err
			}
			x = &memberExpr{position: p.posOf(name), X: x, Name: name.lexeme}
		default:
			return x, nil
		}
	}
}

func (p *parser) parsePrimary() (expr, error) {
	t := p.current()
	switch t.kind {
	case tokNumber:
		p.advance()
		return &numberLit{position: p.posOf(t), Value: t.number}, nil
	case tokString:
		p.advance()
		return &stringLit{position: p.posOf(t), Value: t.lexeme}, nil
	case tokTrue, tokFalse:
		p.advance()
		return &boolLit{position: p.posOf(t), Value: t.kind == tokTrue}, nil
	case tokIdent:
		p.advance()
		return &identExpr{position: p.posOf(t), Name: t.lexeme}, nil
	case tokLParen:
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, p.errorf("unexpected %s", t.describe())
	}
}
