package report

import "fmt"

// LexicalError is an error produced while tokenizing source text: an
// unexpected character, an unterminated string or comment.
type LexicalError struct {
	// The error message.
	Message string

	// The span over which the error occurs.  May be nil.
	Span *TextSpan
}

func (le *LexicalError) Error() string {
	if le.Span == nil {
		return fmt.Sprintf("Lexical error: %s", le.Message)
	}

	return fmt.Sprintf("Lexical error at line %d, column %d: %s", le.Span.StartLine, le.Span.StartCol, le.Message)
}

// SyntaxError is an error produced while parsing: an unexpected token.
type SyntaxError struct {
	Message string
	Span    *TextSpan
}

func (se *SyntaxError) Error() string {
	return "Syntax error"
}

// SemanticError is an error produced by semantic analysis: an undefined name,
// a type mismatch, a break outside a loop, and so on.
type SemanticError struct {
	Message string
	Span    *TextSpan
}

func (se *SemanticError) Error() string {
	line, col := 0, 0
	if se.Span != nil {
		line, col = se.Span.StartLine, se.Span.StartCol
	}

	return fmt.Sprintf("Semantic error at (%d, %d): %s", line, col, se.Message)
}

// -----------------------------------------------------------------------------

// RaiseLexical panics with a new lexical error.  The enclosing phase entry
// point must recover it with Catch.
func RaiseLexical(span *TextSpan, msg string, args ...interface{}) {
	panic(&LexicalError{Message: fmt.Sprintf(msg, args...), Span: span})
}

// RaiseSyntax panics with a new syntax error.
func RaiseSyntax(span *TextSpan, msg string, args ...interface{}) {
	panic(&SyntaxError{Message: fmt.Sprintf(msg, args...), Span: span})
}

// RaiseSemantic panics with a new semantic error.
func RaiseSemantic(span *TextSpan, msg string, args ...interface{}) {
	panic(&SemanticError{Message: fmt.Sprintf(msg, args...), Span: span})
}

// Catch converts a raised compile error back into an error return value.  It
// determines where errors raised within a phase stop bubbling and must always
// be deferred:
//
//	func (w *Walker) Walk(expr ast.Expr) (err error) {
//	    defer report.Catch(&err)
//	    ...
//	}
//
// Panics that are not compile errors are re-raised.
func Catch(err *error) {
	if x := recover(); x != nil {
		switch cerr := x.(type) {
		case *LexicalError:
			*err = cerr
		case *SyntaxError:
			*err = cerr
		case *SemanticError:
			*err = cerr
		default:
			panic(x)
		}
	}
}
