package meval

import (
	"errors"
	"fmt"
	"strconv"
)

// Kinds of structural errors. A *SyntaxError unwraps to one of them, a
// *LexError unwraps to ErrInvalidCharacter.
var (
	ErrInvalidCharacter      = errors.New("invalid character")
	ErrInvalidSyntax         = errors.New("invalid syntax")
	ErrUnknownIdentifier     = errors.New("unknown identifier")
	ErrInvalidOperator       = errors.New("invalid operator")
	ErrUnexpectedOperator    = errors.New("unexpected operator")
	ErrMismatchedParenthesis = errors.New("mismatched parenthesis")
	ErrInsufficientOperands  = errors.New("insufficient operands")
	ErrInvalidExpression     = errors.New("invalid expression")
)

// ErrDivisionByZero is the kind of the *DomainError returned by / when the
// divisor is zero.
var ErrDivisionByZero = errors.New("division by zero")

// InputError is an error caused by malformed input. Every error Compile
// returns implements it.
type InputError interface {
	error
	// Pos returns the 1-based position of the offending token, or 0 when
	// the error is not tied to a single token.
	Pos() int
}

// LexError reports a character that starts no token.
type LexError struct {
	// Char is the offending character.
	Char rune
	// Col is its 1-based byte position.
	Col int
}

func (err *LexError) Error() string {
	return fmt.Sprintf("invalid character '%c' at pos %d", err.Char, err.Col)
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return ErrInvalidCharacter
}

// SyntaxError reports tokens that do not form an expression.
type SyntaxError struct {
	// Kind is one of the Err* sentinels of this package.
	Kind error
	// Col is the 1-based position of the token that caused the error, 0 if
	// none applies.
	Col int
	// Msg describes the error.
	Msg string
}

func newSyntaxError(kind error, col int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Kind: kind, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (err *SyntaxError) Error() string {
	if err.Col > 0 {
		return err.Msg + " at pos " + strconv.Itoa(err.Col)
	}
	return err.Msg
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

func (err *SyntaxError) Unwrap() error {
	return err.Kind
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
)

// DomainError is returned by an operator called with arguments outside
// its domain. Evaluate reports it as the result text instead of an error.
type DomainError struct {
	// Op is the symbol of the failing operator.
	Op string
	// Msg is the text Evaluate returns.
	Msg string
	// Kind identifies the failure, such as ErrDivisionByZero.
	Kind error
}

func (err *DomainError) Error() string {
	return err.Msg
}

func (err *DomainError) Unwrap() error {
	return err.Kind
}
