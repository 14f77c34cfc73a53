package diag

import "fmt"

// Code identifies a diagnostic category. Stable values - do not renumber.
type Code uint16

const (
	// LexUnexpectedChar reports a byte the lexer cannot start a token with.
	LexUnexpectedChar Code = 1
	// LexUnterminatedString reports a string literal with no closing quote.
	LexUnterminatedString Code = 2
	// LexIntOverflow reports an integer literal outside the 32-bit range.
	LexIntOverflow Code = 3

	// ParseUnexpectedToken reports a token that no production accepts.
	ParseUnexpectedToken Code = 100
	// ParseExpectedToken reports a missing required token.
	ParseExpectedToken Code = 101
	// ParseExpectedExpr reports a missing expression.
	ParseExpectedExpr Code = 102
)

// ID returns the code in "LT0101" form.
func (c Code) ID() string {
	return fmt.Sprintf("LT%04d", uint16(c))
}
