package syntax

import "tigerc/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token
	// kinds.
	Kind int

	// The string value of the token.  For string tokens the quotes are
	// trimmed and escapes resolved.
	Value string

	// The integer value of an INTLIT token.
	IntValue int

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_TYPE = iota
	TOK_VAR
	TOK_FUNCTION
	TOK_ARRAY
	TOK_IF
	TOK_THEN
	TOK_ELSE
	TOK_WHILE
	TOK_DO
	TOK_FOR
	TOK_TO
	TOK_LET
	TOK_IN
	TOK_END
	TOK_OF
	TOK_BREAK
	TOK_NIL

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_AMP
	TOK_PIPE

	TOK_ASSIGN

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_LBRACE
	TOK_RBRACE
	TOK_COMMA
	TOK_DOT
	TOK_SEMI
	TOK_COLON

	TOK_IDENT
	TOK_INTLIT
	TOK_STRINGLIT

	TOK_EOF
)

// tokenKindNames maps token kinds to the names used in error messages.
var tokenKindNames = map[int]string{
	TOK_TYPE:     "`type`",
	TOK_VAR:      "`var`",
	TOK_FUNCTION: "`function`",
	TOK_ARRAY:    "`array`",
	TOK_IF:       "`if`",
	TOK_THEN:     "`then`",
	TOK_ELSE:     "`else`",
	TOK_WHILE:    "`while`",
	TOK_DO:       "`do`",
	TOK_FOR:      "`for`",
	TOK_TO:       "`to`",
	TOK_LET:      "`let`",
	TOK_IN:       "`in`",
	TOK_END:      "`end`",
	TOK_OF:       "`of`",
	TOK_BREAK:    "`break`",
	TOK_NIL:      "`nil`",

	TOK_PLUS:  "`+`",
	TOK_MINUS: "`-`",
	TOK_STAR:  "`*`",
	TOK_DIV:   "`/`",

	TOK_EQ:   "`=`",
	TOK_NEQ:  "`<>`",
	TOK_LT:   "`<`",
	TOK_GT:   "`>`",
	TOK_LTEQ: "`<=`",
	TOK_GTEQ: "`>=`",

	TOK_AMP:  "`&`",
	TOK_PIPE: "`|`",

	TOK_ASSIGN: "`:=`",

	TOK_LPAREN:   "`(`",
	TOK_RPAREN:   "`)`",
	TOK_LBRACKET: "`[`",
	TOK_RBRACKET: "`]`",
	TOK_LBRACE:   "`{`",
	TOK_RBRACE:   "`}`",
	TOK_COMMA:    "`,`",
	TOK_DOT:      "`.`",
	TOK_SEMI:     "`;`",
	TOK_COLON:    "`:`",

	TOK_IDENT:     "identifier",
	TOK_INTLIT:    "integer literal",
	TOK_STRINGLIT: "string literal",

	TOK_EOF: "end of file",
}
