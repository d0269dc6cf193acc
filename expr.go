package decexpr

import (
	"io"
	"regexp"
	"slices"

	"github.com/shopspring/decimal"
)

// Expression is an infix arithmetic expression together with the operators,
// functions, and variables it is evaluated with. Each Expression owns its
// tables; changing one never affects another.
//
// An Expression is not safe for concurrent use. Use Clone to give each
// goroutine its own.
type Expression struct {
	// src is the current source text, after substitutions.
	src string
	// orig is the source text as given to New.
	orig string
	reg  registry
	// prog is the validated RPN form of src, or nil if it must be computed
	// again. It is never modified once computed, so clones share it.
	prog []lexToken
}

// New creates an expression with the built-in operators and functions and
// the constants e and PI. Parsing happens on the first call to Eval,
// Validate, or RPN.
func New(src string) *Expression {
	return &Expression{
		src:  src,
		orig: src,
		reg:  newRegistry(),
	}
}

// Clone creates a copy of e. Changes to the copy's variables, operators, or
// functions do not affect e, and vice versa.
func (e *Expression) Clone() *Expression {
	return &Expression{
		src:  e.src,
		orig: e.orig,
		reg:  e.reg.clone(),
		prog: e.prog,
	}
}

// String returns the current source text of the expression, including any
// substitutions made by SetString.
func (e *Expression) String() string {
	return e.src
}

// Original returns the source text the expression was created with.
func (e *Expression) Original() string {
	return e.orig
}

// AddOperator registers a binary operator, replacing any operator with the
// same symbol. If there was one, it is returned with replaced set to true.
func (e *Expression) AddOperator(symbol string, precedence int, leftAssoc bool, rule BinaryRule) (prev Operator, replaced bool) {
	k := fold(symbol)
	prev, replaced = e.reg.ops[k]
	e.reg.ops[k] = Operator{Symbol: symbol, Precedence: precedence, LeftAssoc: leftAssoc, Rule: rule}
	e.prog = nil
	return prev, replaced
}

// AddFunction registers a function, replacing any function with the same
// name, ignoring case. If there was one, it is returned with replaced set to
// true. arity may be VarArgs.
func (e *Expression) AddFunction(name string, arity int, rule Rule) (prev Function, replaced bool) {
	if arity < 0 {
		arity = VarArgs
	}
	k := fold(name)
	prev, replaced = e.reg.funcs[k]
	e.reg.funcs[k] = Function{Name: name, Arity: arity, Rule: rule}
	e.prog = nil
	return prev, replaced
}

// Set binds a variable to a value. Returns e for chaining.
func (e *Expression) Set(name string, value decimal.Decimal) *Expression {
	k := fold(name)
	if _, ok := e.reg.vars[k]; !ok {
		// Declared variables parse differently from other names.
		e.prog = nil
	}
	e.reg.vars[k] = variable{name: name, value: value}
	return e
}

// SetString binds a variable to a string. If value is a number, the variable
// is set to it. Otherwise, each whole-word occurrence of name in the source,
// ignoring case, is replaced with value in parentheses. Returns e for
// chaining.
func (e *Expression) SetString(name, value string) *Expression {
	if isNumber(value) {
		if x, err := decimal.NewFromString(value); err == nil {
			return e.Set(name, x)
		}
	}
	if name == "" {
		return e
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	e.src = re.ReplaceAllLiteralString(e.src, "("+value+")")
	e.prog = nil
	return e
}

// compile parses and validates the expression if it has changed since the
// last time.
func (e *Expression) compile() ([]lexToken, error) {
	if e.prog != nil {
		return e.prog, nil
	}
	prog, err := shuntingYard(e.src, e.reg)
	if err != nil {
		return nil, err
	}
	if err := validate(prog, e.reg); err != nil {
		return nil, err
	}
	e.prog = prog
	return prog, nil
}

// Validate parses the expression and checks its structure without evaluating
// it. The error, if any, is of kind Syntax.
func (e *Expression) Validate() error {
	_, err := e.compile()
	return err
}

// Eval evaluates the expression. The result has no trailing zeros after the
// decimal point. Use KindOf to distinguish an invalid expression from one
// that is undefined for the current variable values.
func (e *Expression) Eval() (decimal.Decimal, error) {
	prog, err := e.compile()
	if err != nil {
		return decimal.Zero, err
	}
	return run(prog, e.reg)
}

// RPN returns the expression in reverse Polish notation, with tokens
// separated by spaces. Function argument lists are marked by an open
// parenthesis before the first argument.
func (e *Expression) RPN() (string, error) {
	prog, err := e.compile()
	if err != nil {
		return "", err
	}
	return formatRPN(prog), nil
}

// Tokens returns the tokens of the current source text.
func (e *Expression) Tokens() ([]string, error) {
	var r []string
	err := e.scan(func(tok lexToken) { r = append(r, tok.text) })
	return r, err
}

// UsedVariables returns the names in the expression that are neither
// functions nor the constants e and PI, sorted and without duplicates. Names
// which differ only in case are reported once, as first written.
func (e *Expression) UsedVariables() ([]string, error) {
	seen := make(map[string]bool)
	var r []string
	err := e.scan(func(tok lexToken) {
		if tok.kind != tokenIdent || e.reg.isFunction(tok.text) {
			return
		}
		k := fold(tok.text)
		if seen[k] || slices.ContainsFunc(builtinConsts, func(c variable) bool { return fold(c.name) == k }) {
			return
		}
		seen[k] = true
		r = append(r, tok.text)
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(r)
	return r, nil
}

func (e *Expression) scan(f func(lexToken)) error {
	l := lex(e.src, e.reg.isOperator)
	for {
		tok, err := l.next()
		switch err {
		case nil:
			f(tok)
		case io.EOF:
			return nil
		default:
			return err
		}
	}
}

// DeclaredVariables returns the names of the variables bound in e, including
// the constants, sorted.
func (e *Expression) DeclaredVariables() []string {
	return names(e.reg.vars, func(v variable) string { return v.name })
}

// DeclaredOperators returns the symbols of the operators registered in e,
// sorted.
func (e *Expression) DeclaredOperators() []string {
	return names(e.reg.ops, func(op Operator) string { return op.Symbol })
}

// DeclaredFunctions returns the names of the functions registered in e,
// sorted.
func (e *Expression) DeclaredFunctions() []string {
	return names(e.reg.funcs, func(f Function) string { return f.Name })
}

// Variable returns the value bound to a variable, ignoring case.
func (e *Expression) Variable(name string) (decimal.Decimal, bool) {
	return e.reg.variable(name)
}
