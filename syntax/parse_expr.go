package syntax

import (
	"tigerc/ast"
	"tigerc/report"
)

// parseExpr parses a full expression.
//
// expr := or-expr
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOrExpr()
}

// parseOrExpr parses a disjunction.
//
// or-expr := and-expr {'|' and-expr}
func (p *Parser) parseOrExpr() ast.Expr {
	left := p.parseAndExpr()

	for p.match(TOK_PIPE) {
		right := p.parseAndExpr()
		left = &ast.OpExpr{
			NodeBase: p.spanFrom(left.Span()),
			Op:       ast.OpOr,
			Left:     left,
			Right:    right,
		}
	}

	return left
}

// parseAndExpr parses a conjunction.
//
// and-expr := cmp-expr {'&' cmp-expr}
func (p *Parser) parseAndExpr() ast.Expr {
	left := p.parseCmpExpr()

	for p.match(TOK_AMP) {
		right := p.parseCmpExpr()
		left = &ast.OpExpr{
			NodeBase: p.spanFrom(left.Span()),
			Op:       ast.OpAnd,
			Left:     left,
			Right:    right,
		}
	}

	return left
}

// cmpOps maps comparison token kinds to their AST operators.
var cmpOps = map[int]int{
	TOK_EQ:   ast.OpEq,
	TOK_NEQ:  ast.OpNeq,
	TOK_LT:   ast.OpLt,
	TOK_GT:   ast.OpGt,
	TOK_LTEQ: ast.OpLe,
	TOK_GTEQ: ast.OpGe,
}

// parseCmpExpr parses a comparison.
//
// cmp-expr := add-expr {('=' | '<>' | '<' | '>' | '<=' | '>=') add-expr}
func (p *Parser) parseCmpExpr() ast.Expr {
	left := p.parseAddExpr()

	for p.gotOneOf(TOK_EQ, TOK_NEQ, TOK_LT, TOK_GT, TOK_LTEQ, TOK_GTEQ) {
		op := cmpOps[p.tok.Kind]
		p.next()

		right := p.parseAddExpr()
		left = &ast.OpExpr{
			NodeBase: p.spanFrom(left.Span()),
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}

	return left
}

// parseAddExpr parses an additive expression.
//
// add-expr := mul-expr {('+' | '-') mul-expr}
func (p *Parser) parseAddExpr() ast.Expr {
	left := p.parseMulExpr()

	for p.gotOneOf(TOK_PLUS, TOK_MINUS) {
		op := ast.OpPlus
		if p.got(TOK_MINUS) {
			op = ast.OpMinus
		}
		p.next()

		right := p.parseMulExpr()
		left = &ast.OpExpr{
			NodeBase: p.spanFrom(left.Span()),
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}

	return left
}

// parseMulExpr parses a multiplicative expression.
//
// mul-expr := unary-expr {('*' | '/') unary-expr}
func (p *Parser) parseMulExpr() ast.Expr {
	left := p.parseUnaryExpr()

	for p.gotOneOf(TOK_STAR, TOK_DIV) {
		op := ast.OpTimes
		if p.got(TOK_DIV) {
			op = ast.OpDivide
		}
		p.next()

		right := p.parseUnaryExpr()
		left = &ast.OpExpr{
			NodeBase: p.spanFrom(left.Span()),
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}

	return left
}

// parseUnaryExpr parses a unary expression.  Unary minus is sugar for
// `0 - e`.
//
// unary-expr := '-' unary-expr | atom-expr
func (p *Parser) parseUnaryExpr() ast.Expr {
	if p.got(TOK_MINUS) {
		start := p.tok.Span
		p.next()

		operand := p.parseUnaryExpr()
		return &ast.OpExpr{
			NodeBase: p.spanFrom(start),
			Op:       ast.OpMinus,
			Left:     &ast.IntExpr{NodeBase: ast.NewNodeBaseOn(start), Value: 0},
			Right:    operand,
		}
	}

	return p.parseAtomExpr()
}

// parseAtomExpr parses the atomic expression forms.
//
// atom-expr := 'nil' | INTLIT | STRINGLIT | '(' expr-seq ')' | if-expr
//            | while-expr | for-expr | 'break' | let-expr
//            | IDENT call-tail | IDENT record-tail | IDENT array-or-lvalue
func (p *Parser) parseAtomExpr() ast.Expr {
	start := p.tok.Span

	switch p.tok.Kind {
	case TOK_NIL:
		p.next()
		return &ast.NilExpr{NodeBase: p.spanFrom(start)}
	case TOK_INTLIT:
		tok := p.tok
		p.next()
		return &ast.IntExpr{NodeBase: p.spanFrom(start), Value: tok.IntValue}
	case TOK_STRINGLIT:
		tok := p.tok
		p.next()
		return &ast.StringExpr{NodeBase: p.spanFrom(start), Value: tok.Value}
	case TOK_IDENT:
		return p.parseIdentExpr()
	case TOK_LPAREN:
		return p.parseSeqExpr()
	case TOK_IF:
		return p.parseIfExpr()
	case TOK_WHILE:
		return p.parseWhileExpr()
	case TOK_FOR:
		return p.parseForExpr()
	case TOK_BREAK:
		p.next()
		return &ast.BreakExpr{NodeBase: p.spanFrom(start)}
	case TOK_LET:
		return p.parseLetExpr()
	default:
		p.reject()
		return nil
	}
}

// parseIdentExpr parses the expressions beginning with an identifier: calls,
// record creations, array creations, lvalues, and assignments.
//
// The array-creation/subscript ambiguity resolves without backtracking: the
// base of `id[e] of init` can only be a plain type identifier, so after
// parsing `id[e]` an `of` token decides the form.
func (p *Parser) parseIdentExpr() ast.Expr {
	start := p.tok.Span
	id := p.expect(TOK_IDENT)

	switch p.tok.Kind {
	case TOK_LPAREN:
		return p.parseCallExpr(start, id.Value)
	case TOK_LBRACE:
		return p.parseRecordExpr(start, id.Value)
	case TOK_LBRACKET:
		p.next()
		index := p.parseExpr()
		p.expect(TOK_RBRACKET)

		if p.match(TOK_OF) {
			init := p.parseExpr()
			return &ast.ArrayExpr{
				NodeBase: p.spanFrom(start),
				TypeID:   id.Value,
				Size:     index,
				Init:     init,
			}
		}

		base := &ast.VarExpr{
			NodeBase: ast.NewNodeBaseOn(start),
			Kind:     ast.SimpleVar,
			Name:     id.Value,
		}
		subscript := &ast.VarExpr{
			NodeBase: p.spanFrom(start),
			Kind:     ast.SubscriptVar,
			Var:      base,
			Index:    index,
		}
		return p.parseLvalueTail(start, subscript)
	default:
		simple := &ast.VarExpr{
			NodeBase: p.spanFrom(start),
			Kind:     ast.SimpleVar,
			Name:     id.Value,
		}
		return p.parseLvalueTail(start, simple)
	}
}

// parseLvalueTail parses the remainder of an lvalue and an optional trailing
// assignment.
//
// lvalue-tail := {'.' IDENT | '[' expr ']'} [':=' expr]
func (p *Parser) parseLvalueTail(start *report.TextSpan, lv *ast.VarExpr) ast.Expr {
	for {
		if p.match(TOK_DOT) {
			field := p.expect(TOK_IDENT)
			lv = &ast.VarExpr{
				NodeBase: p.spanFrom(start),
				Kind:     ast.FieldVar,
				Name:     field.Value,
				Var:      lv,
			}
		} else if p.match(TOK_LBRACKET) {
			index := p.parseExpr()
			p.expect(TOK_RBRACKET)
			lv = &ast.VarExpr{
				NodeBase: p.spanFrom(start),
				Kind:     ast.SubscriptVar,
				Var:      lv,
				Index:    index,
			}
		} else {
			break
		}
	}

	if p.match(TOK_ASSIGN) {
		value := p.parseExpr()
		return &ast.AssignExpr{
			NodeBase: p.spanFrom(start),
			Var:      lv,
			Expr:     value,
		}
	}

	return lv
}

// parseCallExpr parses a call's argument list.
//
// call-tail := '(' [expr {',' expr}] ')'
func (p *Parser) parseCallExpr(start *report.TextSpan, name string) ast.Expr {
	p.expect(TOK_LPAREN)

	var args []ast.Expr
	if !p.got(TOK_RPAREN) {
		for {
			args = append(args, p.parseExpr())
			if !p.match(TOK_COMMA) {
				break
			}
		}
	}

	p.expect(TOK_RPAREN)
	return &ast.CallExpr{NodeBase: p.spanFrom(start), Func: name, Args: args}
}

// parseRecordExpr parses a record creation's field list.
//
// record-tail := '{' [IDENT '=' expr {',' IDENT '=' expr}] '}'
func (p *Parser) parseRecordExpr(start *report.TextSpan, typeID string) ast.Expr {
	p.expect(TOK_LBRACE)

	var fields []ast.RecordField
	if !p.got(TOK_RBRACE) {
		for {
			name := p.expect(TOK_IDENT)
			p.expect(TOK_EQ)
			value := p.parseExpr()
			fields = append(fields, ast.RecordField{Name: name.Value, Value: value})

			if !p.match(TOK_COMMA) {
				break
			}
		}
	}

	p.expect(TOK_RBRACE)
	return &ast.RecordExpr{NodeBase: p.spanFrom(start), TypeID: typeID, Fields: fields}
}

// parseSeqExpr parses a parenthesized expression sequence.
//
// seq-expr := '(' [expr {';' expr}] ')'
func (p *Parser) parseSeqExpr() ast.Expr {
	start := p.tok.Span
	p.expect(TOK_LPAREN)

	var exprs []ast.Expr
	if !p.got(TOK_RPAREN) {
		for {
			exprs = append(exprs, p.parseExpr())
			if !p.match(TOK_SEMI) {
				break
			}
		}
	}

	p.expect(TOK_RPAREN)
	return &ast.SeqExpr{NodeBase: p.spanFrom(start), Exprs: exprs}
}

// parseIfExpr parses a conditional.
//
// if-expr := 'if' expr 'then' expr ['else' expr]
func (p *Parser) parseIfExpr() ast.Expr {
	start := p.tok.Span
	p.expect(TOK_IF)

	test := p.parseExpr()
	p.expect(TOK_THEN)
	then := p.parseExpr()

	var els ast.Expr
	if p.match(TOK_ELSE) {
		els = p.parseExpr()
	}

	return &ast.IfExpr{NodeBase: p.spanFrom(start), Test: test, Then: then, Else: els}
}

// parseWhileExpr parses a while loop.
//
// while-expr := 'while' expr 'do' expr
func (p *Parser) parseWhileExpr() ast.Expr {
	start := p.tok.Span
	p.expect(TOK_WHILE)

	test := p.parseExpr()
	p.expect(TOK_DO)
	body := p.parseExpr()

	return &ast.WhileExpr{NodeBase: p.spanFrom(start), Test: test, Body: body}
}

// parseForExpr parses a for loop.
//
// for-expr := 'for' IDENT ':=' expr 'to' expr 'do' expr
func (p *Parser) parseForExpr() ast.Expr {
	start := p.tok.Span
	p.expect(TOK_FOR)

	id := p.expect(TOK_IDENT)
	p.expect(TOK_ASSIGN)
	lo := p.parseExpr()
	p.expect(TOK_TO)
	hi := p.parseExpr()
	p.expect(TOK_DO)
	body := p.parseExpr()

	return &ast.ForExpr{
		NodeBase: p.spanFrom(start),
		Var:      id.Value,
		Lo:       lo,
		Hi:       hi,
		Body:     body,
	}
}

// parseLetExpr parses a let expression.
//
// let-expr := 'let' {decl} 'in' [expr {';' expr}] 'end'
func (p *Parser) parseLetExpr() ast.Expr {
	start := p.tok.Span
	p.expect(TOK_LET)

	var decls []ast.Decl
	for p.gotOneOf(TOK_TYPE, TOK_VAR, TOK_FUNCTION) {
		decls = append(decls, p.parseDecl())
	}

	p.expect(TOK_IN)

	var body []ast.Expr
	if !p.got(TOK_END) {
		for {
			body = append(body, p.parseExpr())
			if !p.match(TOK_SEMI) {
				break
			}
		}
	}

	p.expect(TOK_END)
	return &ast.LetExpr{NodeBase: p.spanFrom(start), Decls: decls, Body: body}
}
