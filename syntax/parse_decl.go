package syntax

import (
	"tigerc/ast"
)

// parseDecl parses a single declaration.
//
// decl := type-decl | var-decl | func-decl
func (p *Parser) parseDecl() ast.Decl {
	switch p.tok.Kind {
	case TOK_TYPE:
		return p.parseTypeDecl()
	case TOK_VAR:
		return p.parseVarDecl()
	case TOK_FUNCTION:
		return p.parseFuncDecl()
	default:
		p.reject()
		return nil
	}
}

// parseTypeDecl parses a type declaration.
//
// type-decl := 'type' IDENT '=' type-ast
func (p *Parser) parseTypeDecl() ast.Decl {
	start := p.tok.Span
	p.expect(TOK_TYPE)

	id := p.expect(TOK_IDENT)
	p.expect(TOK_EQ)
	typ := p.parseTypeAST()

	return &ast.TypeDecl{NodeBase: p.spanFrom(start), Name: id.Value, Type: typ}
}

// parseTypeAST parses the right-hand side of a type declaration.
//
// type-ast := IDENT | '{' [field-list] '}' | 'array' 'of' IDENT
func (p *Parser) parseTypeAST() ast.TypeAST {
	start := p.tok.Span

	switch p.tok.Kind {
	case TOK_LBRACE:
		p.next()

		var fields []*ast.Field
		if !p.got(TOK_RBRACE) {
			fields = p.parseFieldList()
		}

		p.expect(TOK_RBRACE)
		return &ast.RecordTypeAST{NodeBase: p.spanFrom(start), Fields: fields}
	case TOK_ARRAY:
		p.next()
		p.expect(TOK_OF)
		elem := p.expect(TOK_IDENT)
		return &ast.ArrayTypeAST{NodeBase: p.spanFrom(start), ElemID: elem.Value}
	default:
		id := p.expect(TOK_IDENT)
		return &ast.NameTypeAST{NodeBase: p.spanFrom(start), Name: id.Value}
	}
}

// parseVarDecl parses a variable declaration.
//
// var-decl := 'var' IDENT [':' IDENT] ':=' expr
func (p *Parser) parseVarDecl() ast.Decl {
	start := p.tok.Span
	p.expect(TOK_VAR)

	id := p.expect(TOK_IDENT)

	var typeID string
	if p.match(TOK_COLON) {
		typeID = p.expect(TOK_IDENT).Value
	}

	p.expect(TOK_ASSIGN)
	init := p.parseExpr()

	return &ast.VarDecl{
		NodeBase: p.spanFrom(start),
		Name:     id.Value,
		TypeID:   typeID,
		Init:     init,
	}
}

// parseFuncDecl parses a function declaration.
//
// func-decl := 'function' IDENT '(' [field-list] ')' [':' IDENT] '=' expr
func (p *Parser) parseFuncDecl() ast.Decl {
	start := p.tok.Span
	p.expect(TOK_FUNCTION)

	id := p.expect(TOK_IDENT)
	p.expect(TOK_LPAREN)

	var params []*ast.Field
	if !p.got(TOK_RPAREN) {
		params = p.parseFieldList()
	}

	p.expect(TOK_RPAREN)

	var resultID string
	if p.match(TOK_COLON) {
		resultID = p.expect(TOK_IDENT).Value
	}

	p.expect(TOK_EQ)
	body := p.parseExpr()

	return &ast.FuncDecl{
		NodeBase: p.spanFrom(start),
		Name:     id.Value,
		Params:   params,
		ResultID: resultID,
		Body:     body,
	}
}

// parseFieldList parses a nonempty field list shared by record types and
// parameter lists.
//
// field-list := IDENT ':' IDENT {',' IDENT ':' IDENT}
func (p *Parser) parseFieldList() []*ast.Field {
	var fields []*ast.Field
	for {
		name := p.expect(TOK_IDENT)
		p.expect(TOK_COLON)
		typeID := p.expect(TOK_IDENT)
		fields = append(fields, &ast.Field{Name: name.Value, TypeID: typeID.Value})

		if !p.match(TOK_COMMA) {
			break
		}
	}

	return fields
}
