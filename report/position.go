package report

// TextSpan represents a range or "span" of source text.  It is used to mark
// the erroneous or otherwise significant source text of a Tiger program.
// Line/column numbers are one-indexed, matching the positions the driver
// prints.  The start is the first character of the text; the lexer sets the
// end to the position just past its last character.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// SpanAt returns a single-point text span at the given line and column.
func SpanAt(line, col int) *TextSpan {
	return &TextSpan{StartLine: line, StartCol: col, EndLine: line, EndCol: col}
}
