package syntax

import (
	"tigerc/ast"
	"tigerc/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser for Tiger.  It moves over the token
// stream one token at a time: all parsing functions assume they begin with
// the parser positioned on the first token of their production and consume
// every token of it, leaving the parser on the next token.
type Parser struct {
	// lexer is the Lexer this parser pulls tokens from.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// prev is the most recently consumed token, used for end spans.
	prev *Token
}

// NewParser creates a new parser over the given source text.
func NewParser(src string) *Parser {
	return &Parser{lexer: NewLexer(src)}
}

// Parse parses a whole program: a single expression followed by the end of
// input.  Lexical and syntax errors are returned, not raised.
func (p *Parser) Parse() (expr ast.Expr, err error) {
	defer report.Catch(&err)

	p.next()
	expr = p.parseExpr()

	if !p.got(TOK_EOF) {
		p.reject()
	}

	return expr, nil
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	p.prev = p.tok
	p.tok = p.lexer.NextToken()
}

// got returns whether the parser is on a token of the given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotOneOf returns whether the parser's current token kind is one of the
// given kinds.
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// match consumes the current token and returns true if it is of the given
// kind; otherwise the parser does not move.
func (p *Parser) match(kind int) bool {
	if p.got(kind) {
		p.next()
		return true
	}

	return false
}

// expect asserts that the current token is of the given kind, consumes it,
// and returns it.  A mismatch rejects the token.
func (p *Parser) expect(kind int) *Token {
	if !p.got(kind) {
		p.reject()
	}

	tok := p.tok
	p.next()
	return tok
}

// reject raises a syntax error on the current token.
func (p *Parser) reject() {
	report.RaiseSyntax(p.tok.Span, "unexpected token: %s", tokenKindNames[p.tok.Kind])
}

// spanFrom builds a node base spanning from the given start span to the end
// of the previously consumed token.
func (p *Parser) spanFrom(start *report.TextSpan) ast.NodeBase {
	if p.prev == nil {
		return ast.NewNodeBaseOn(start)
	}

	return ast.NewNodeBaseOver(start, p.prev.Span)
}
