package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormats(t *testing.T) {
	lex := &LexicalError{Message: "unexpected character `#`", Span: SpanAt(3, 7)}
	assert.Equal(t, "Lexical error at line 3, column 7: unexpected character `#`", lex.Error())

	syn := &SyntaxError{Message: "unexpected token", Span: SpanAt(1, 1)}
	assert.Equal(t, "Syntax error", syn.Error())

	sem := &SemanticError{Message: "undefined variable: `x`", Span: SpanAt(2, 5)}
	assert.Equal(t, "Semantic error at (2, 5): undefined variable: `x`", sem.Error())

	// A semantic error without position reports the zero position.
	bare := &SemanticError{Message: "oops"}
	assert.Equal(t, "Semantic error at (0, 0): oops", bare.Error())
}

func TestRaiseAndCatch(t *testing.T) {
	run := func() (err error) {
		defer Catch(&err)
		RaiseSemantic(SpanAt(1, 2), "bad %s", "thing")
		return nil
	}

	err := run()
	require.Error(t, err)

	var semErr *SemanticError
	require.ErrorAs(t, err, &semErr)
	assert.Equal(t, "bad thing", semErr.Message)
	assert.Equal(t, 1, semErr.Span.StartLine)
}

func TestCatchReraisesForeignPanics(t *testing.T) {
	run := func() (err error) {
		defer func() {
			// The foreign panic must pass through Catch untouched.
			assert.NotNil(t, recover())
		}()
		defer Catch(&err)
		panic("not a compile error")
	}

	_ = run()
}

func TestSpanOver(t *testing.T) {
	span := NewSpanOver(SpanAt(1, 2), SpanAt(3, 4))
	assert.Equal(t, 1, span.StartLine)
	assert.Equal(t, 2, span.StartCol)
	assert.Equal(t, 3, span.EndLine)
	assert.Equal(t, 4, span.EndCol)
}

func TestReporterTracksErrors(t *testing.T) {
	rep := NewReporter(LogLevelSilent)
	assert.False(t, rep.AnyErrors())

	// Silent level swallows the output but still records nothing was
	// displayed; only non-silent levels mark errors.
	rep.ReportError(&SemanticError{Message: "x"})
	assert.False(t, rep.AnyErrors())

	rep = NewReporter(LogLevelError)
	rep.ReportError(&SemanticError{Message: "x"})
	assert.True(t, rep.AnyErrors())
}
