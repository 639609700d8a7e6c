package syntax

import (
	"strconv"
	"strings"

	"tigerc/report"
)

// Lexer is responsible for tokenizing Tiger source text.
type Lexer struct {
	src []rune
	pos int

	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer over the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:     []rune(src),
		tokBuff: &strings.Builder{},
		line:    1,
		col:     1,
	}
}

// Tokenize lexes the whole input, ending with an EOF token.  Lexical errors
// are raised and must be recovered by the caller with report.Catch.
func (l *Lexer) Tokenize() []*Token {
	var toks []*Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

// NextToken retrieves the next token from the input.  If the input has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() *Token {
	for {
		c := l.peek()
		if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok := l.lexCommentOrDiv(); tok != nil {
				return tok
			}
		case '"':
			return l.lexStringLit()
		default:
			if isDigit(c) {
				return l.lexIntLit()
			} else if isIdentStart(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	return &Token{Kind: TOK_EOF, Span: report.SpanAt(l.line, l.col)}
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation or
// operator token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	// Division is handled together with comment logic.

	"=":  TOK_EQ,
	"<>": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"&": TOK_AMP,
	"|": TOK_PIPE,

	":":  TOK_COLON,
	":=": TOK_ASSIGN,

	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"[": TOK_LBRACKET,
	"]": TOK_RBRACKET,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	",": TOK_COMMA,
	".": TOK_DOT,
	";": TOK_SEMI,
}

// lexPunctOrOper lexes a punctuation or operator symbol, taking the longest
// match.
func (l *Lexer) lexPunctOrOper() *Token {
	l.mark()
	l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		report.RaiseLexical(l.getSpan(), "unexpected character `%s`", l.tokBuff.String())
	}

	for {
		c := l.peek()
		if c == -1 {
			break
		}

		if longer, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = longer
		} else {
			break
		}
	}

	return l.makeToken(kind)
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token
// kind.
var keywordPatterns = map[string]int{
	"type":     TOK_TYPE,
	"var":      TOK_VAR,
	"function": TOK_FUNCTION,
	"array":    TOK_ARRAY,
	"if":       TOK_IF,
	"then":     TOK_THEN,
	"else":     TOK_ELSE,
	"while":    TOK_WHILE,
	"do":       TOK_DO,
	"for":      TOK_FOR,
	"to":       TOK_TO,
	"let":      TOK_LET,
	"in":       TOK_IN,
	"end":      TOK_END,
	"of":       TOK_OF,
	"break":    TOK_BREAK,
	"nil":      TOK_NIL,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()
	l.eat()

	for isIdentChar(l.peek()) {
		l.eat()
	}

	if kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		return l.makeToken(kind)
	}

	return l.makeToken(TOK_IDENT)
}

// lexIntLit lexes a non-negative decimal integer literal.
func (l *Lexer) lexIntLit() *Token {
	l.mark()
	l.eat()

	for isDigit(l.peek()) {
		l.eat()
	}

	tok := l.makeToken(TOK_INTLIT)

	value, err := strconv.Atoi(tok.Value)
	if err != nil {
		report.RaiseLexical(tok.Span, "integer literal out of range: %s", tok.Value)
	}

	tok.IntValue = value
	return tok
}

// lexStringLit lexes a quoted string literal, resolving escape sequences.
// The escapes \n, \t, \\ and \" are honored; any other \x yields x.
func (l *Lexer) lexStringLit() *Token {
	l.mark()
	l.skip() // opening quote

	for {
		c := l.peek()
		switch c {
		case -1, '\n':
			report.RaiseLexical(l.getSpan(), "unterminated string literal")
		case '"':
			l.skip()
			return l.makeToken(TOK_STRINGLIT)
		case '\\':
			l.skip()
			switch esc := l.peek(); esc {
			case -1:
				report.RaiseLexical(l.getSpan(), "unterminated string literal")
			case 'n':
				l.tokBuff.WriteRune('\n')
				l.skip()
			case 't':
				l.tokBuff.WriteRune('\t')
				l.skip()
			default:
				l.tokBuff.WriteRune(esc)
				l.skip()
			}
		default:
			l.eat()
		}
	}
}

// lexCommentOrDiv handles the ambiguity between the division operator and a
// block comment opener.  It returns nil when a comment was skipped.
func (l *Lexer) lexCommentOrDiv() *Token {
	l.mark()
	l.skip() // the slash

	if l.peek() != '*' {
		l.tokBuff.WriteRune('/')
		return l.makeToken(TOK_DIV)
	}

	l.skip() // the star

	// Block comments nest.
	depth := 1
	for depth > 0 {
		switch l.peek() {
		case -1:
			report.RaiseLexical(l.getSpan(), "unterminated comment")
		case '/':
			l.skip()
			if l.peek() == '*' {
				l.skip()
				depth++
			}
		case '*':
			l.skip()
			if l.peek() == '/' {
				l.skip()
				depth--
			}
		default:
			l.skip()
		}
	}

	l.tokBuff.Reset()
	return nil
}

// -----------------------------------------------------------------------------

// peek returns the rune the lexer is positioned on, or -1 at end of input.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return -1
	}

	return l.src[l.pos]
}

// eat consumes the current rune into the token buffer.
func (l *Lexer) eat() {
	l.tokBuff.WriteRune(l.peek())
	l.skip()
}

// skip consumes the current rune without buffering it.
func (l *Lexer) skip() {
	if l.pos >= len(l.src) {
		return
	}

	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	l.pos++
}

// mark records the token start position and clears the token buffer.
func (l *Lexer) mark() {
	l.tokBuff.Reset()
	l.startLine = l.line
	l.startCol = l.col
}

// getSpan returns the span from the marked position to the current one.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// makeToken produces a token of the given kind from the token buffer.
func (l *Lexer) makeToken(kind int) *Token {
	return &Token{
		Kind:  kind,
		Value: l.tokBuff.String(),
		Span:  l.getSpan(),
	}
}

// -----------------------------------------------------------------------------

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}
