package syntax

// LineState is the carry-over from one line to the next.
// It is a plain comparable value so the scheduler can detect when an edit has healed.
type LineState uint8

// Line states.
const (
	StateNormal       LineState = iota
	StateTripleSingle           // inside an unterminated ''' string
	StateTripleDouble           // inside an unterminated """ string
)

// String returns a short name for the state.
func (s LineState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateTripleSingle:
		return "triple-single"
	case StateTripleDouble:
		return "triple-double"
	default:
		return "invalid"
	}
}

// Open reports whether a multi-line construct is still open.
func (s LineState) Open() bool {
	return s == StateTripleSingle || s == StateTripleDouble
}

// delimiter returns the closing delimiter for an open state.
func (s LineState) delimiter() string {
	switch s {
	case StateTripleSingle:
		return `'''`
	case StateTripleDouble:
		return `"""`
	default:
		return ""
	}
}

// stateForQuote returns the open state for a triple-quote character.
func stateForQuote(quote byte) LineState {
	if quote == '\'' {
		return StateTripleSingle
	}
	return StateTripleDouble
}
