package decexpr

import (
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind classifies errors from this package by how callers should recover.
type Kind int8

const (
	// KindNone is the kind of nil and of errors not produced by this package.
	KindNone Kind = iota
	// Syntax errors are found while tokenizing, parsing, or validating, before
	// anything is evaluated. The expression can never be evaluated.
	Syntax
	// Semantic errors come from identifiers that are neither declared
	// variables nor numbers. They surface only when the branch of the
	// expression containing them is evaluated, but they mean the same thing
	// as syntax errors to callers.
	Semantic
	// Arithmetic errors, e.g. division by zero, depend on the values of
	// variables. The expression is valid but undefined at those values.
	Arithmetic
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case Arithmetic:
		return "arithmetic"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// KindOf returns the kind of err. It unwraps err as needed.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindNone
}

// Invalid reports whether err means the expression itself is invalid, as
// opposed to undefined for particular variable values.
func Invalid(err error) bool {
	switch KindOf(err) {
	case Syntax, Semantic:
		return true
	default:
		return false
	}
}

// InputError is an error with position information. Every syntax error that
// can be attributed to a token implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based column of the start of the token that caused
	// the error.
	Pos() int
}

// LexError indicates a run of operator characters that is not a registered
// operator.
type LexError struct {
	// Text is the unrecognized operator text.
	Text string
	// Col is the column of the first rune of Text.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int   { return err.Col }
func (err *LexError) Kind() Kind { return Syntax }

// BracketError indicates mismatched parentheses.
type BracketError struct {
	// Col is the position of the unmatched parenthesis, or of the end of
	// the input if the parenthesis was left open.
	Col int
	// Open is true if the error is an open parenthesis with no close.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "mismatched parentheses: ( with no )")
	}
	return errpos(err.Col, "mismatched parentheses: ) with no (")
}

func (err *BracketError) Pos() int   { return err.Col }
func (err *BracketError) Kind() Kind { return Syntax }

// SeparatorError indicates a comma outside a function argument list or a comma
// with no argument before it.
type SeparatorError struct {
	// Col is the position of the comma.
	Col int
	// Missing is true if the comma has no argument before it.
	Missing bool
}

func (err *SeparatorError) Error() string {
	if err.Missing {
		return errpos(err.Col, "missing argument before \",\"")
	}
	return errpos(err.Col, "\",\" outside of a function call")
}

func (err *SeparatorError) Pos() int   { return err.Col }
func (err *SeparatorError) Kind() Kind { return Syntax }

// MissingOperandError indicates an operator without enough operands.
type MissingOperandError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator symbol.
	Operator string
}

func (err *MissingOperandError) Error() string {
	return errpos(err.Col, "missing operand for operator "+strconv.Quote(err.Operator))
}

func (err *MissingOperandError) Pos() int   { return err.Col }
func (err *MissingOperandError) Kind() Kind { return Syntax }

// MissingOperatorError indicates a parenthesized term directly following a
// number, e.g. "2(3)".
type MissingOperatorError struct {
	// Col is the position of the open parenthesis.
	Col int
}

func (err *MissingOperatorError) Error() string {
	return errpos(err.Col, "missing operator before (")
}

func (err *MissingOperatorError) Pos() int   { return err.Col }
func (err *MissingOperatorError) Kind() Kind { return Syntax }

// OperatorError indicates a name left over after parsing that is neither an
// operator nor a function call, e.g. an undeclared variable outside of
// parentheses or a function name without an argument list.
type OperatorError struct {
	// Col is the position of the name.
	Col int
	// Name is the name.
	Name string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator or function "+strconv.Quote(err.Name))
}

func (err *OperatorError) Pos() int   { return err.Col }
func (err *OperatorError) Kind() Kind { return Syntax }

// CallError indicates a function call with the wrong number of arguments.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Want is the function's declared arity.
	Want int
	// Len is the number of arguments in the call, or -1 if the function
	// appeared without an argument list.
	Len int
}

func (err *CallError) Error() string {
	if err.Len < 0 {
		return errpos(err.Col, "function "+err.Func+" called without an argument list")
	}
	return errpos(err.Col, "function "+err.Func+" expects "+strconv.Itoa(err.Want)+" arguments, got "+strconv.Itoa(err.Len))
}

func (err *CallError) Pos() int   { return err.Col }
func (err *CallError) Kind() Kind { return Syntax }

// OperandError indicates an expression which leaves more than one value, e.g.
// "2 3".
type OperandError struct {
	// Len is the number of values left over.
	Len int
}

func (err *OperandError) Error() string {
	return "too many operands: " + strconv.Itoa(err.Len) + " values with no operator between them"
}

func (err *OperandError) Kind() Kind { return Syntax }

// ScopeError indicates function argument lists that were opened but never
// consumed by a call.
type ScopeError struct {
	// Open is the number of unhandled argument lists.
	Open int
}

func (err *ScopeError) Error() string {
	return "too many unhandled parameter lists: " + strconv.Itoa(err.Open)
}

func (err *ScopeError) Kind() Kind { return Syntax }

// EmptyExpressionError indicates an expression with no value.
type EmptyExpressionError struct{}

func (err *EmptyExpressionError) Error() string {
	return "empty expression"
}

func (err *EmptyExpressionError) Kind() Kind { return Syntax }

// NameError indicates an identifier that was evaluated but is neither a
// declared variable nor a number.
type NameError struct {
	// Name is the identifier.
	Name string
	// Col is its position.
	Col int
}

func (err *NameError) Error() string {
	return errpos(err.Col, "invalid variable: "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int   { return err.Col }
func (err *NameError) Kind() Kind { return Semantic }

// DomainError is returned when an operator or function is applied to
// arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X decimal.Decimal
	// Func is a name identifying the operator or function.
	Func string
	// Reason optionally describes the failure.
	Reason string
}

func (err DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Reason != "" {
		r += ": " + err.Reason
	}
	return r
}

func (err DomainError) Kind() Kind { return Arithmetic }

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*MissingOperandError)(nil)
	_ InputError = (*MissingOperatorError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*NameError)(nil)
)
