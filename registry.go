package decexpr

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// BinaryRule computes the value of a binary operator applied to left and
// right operands.
type BinaryRule func(left, right decimal.Decimal) (decimal.Decimal, error)

// Rule computes the value of a function. args holds the evaluated arguments
// in source order; its length matches the function's arity unless the
// function is variadic.
type Rule func(args []decimal.Decimal) (decimal.Decimal, error)

// VarArgs is the arity of a function that accepts any number of arguments.
const VarArgs = -1

// Operator is a binary infix operator.
type Operator struct {
	// Symbol is the operator text, e.g. "+". Symbols should be made of
	// characters other than letters, digits, parentheses, commas, and
	// underscores.
	Symbol string
	// Precedence orders operators. Higher binds tighter.
	Precedence int
	// LeftAssoc is true for left-associative operators.
	LeftAssoc bool
	Rule      BinaryRule
}

// Function is a named prefix function.
type Function struct {
	// Name is the function name as it was declared.
	Name string
	// Arity is the number of arguments, or VarArgs.
	Arity int
	Rule  Rule
}

// Variadic returns whether f accepts any number of arguments.
func (f Function) Variadic() bool {
	return f.Arity < 0
}

type variable struct {
	name  string
	value decimal.Decimal
}

// registry holds the operators, functions, and variables of one expression.
// Function and variable names are case-insensitive; the declared spelling is
// kept for reporting.
type registry struct {
	ops   map[string]Operator
	funcs map[string]Function
	vars  map[string]variable
}

// newRegistry creates a registry holding the built-in operators, functions,
// and constants.
func newRegistry() registry {
	r := registry{
		ops:   make(map[string]Operator, len(builtinOps)),
		funcs: make(map[string]Function, len(builtinFuncs)),
		vars:  make(map[string]variable, len(builtinConsts)),
	}
	for _, op := range builtinOps {
		r.ops[fold(op.Symbol)] = op
	}
	for _, f := range builtinFuncs {
		r.funcs[fold(f.Name)] = f
	}
	for _, c := range builtinConsts {
		r.vars[fold(c.name)] = c
	}
	return r
}

func (r registry) clone() registry {
	return registry{
		ops:   maps.Clone(r.ops),
		funcs: maps.Clone(r.funcs),
		vars:  maps.Clone(r.vars),
	}
}

// fold gives the map key for a name.
func fold(name string) string {
	return strings.ToUpper(name)
}

func (r registry) operator(sym string) (Operator, bool) {
	op, ok := r.ops[fold(sym)]
	return op, ok
}

func (r registry) isOperator(sym string) bool {
	_, ok := r.ops[fold(sym)]
	return ok
}

func (r registry) function(name string) (Function, bool) {
	f, ok := r.funcs[fold(name)]
	return f, ok
}

func (r registry) isFunction(name string) bool {
	_, ok := r.funcs[fold(name)]
	return ok
}

func (r registry) isVariable(name string) bool {
	_, ok := r.vars[fold(name)]
	return ok
}

func (r registry) variable(name string) (decimal.Decimal, bool) {
	v, ok := r.vars[fold(name)]
	return v.value, ok
}

// names returns the declared names of the entries of m, sorted.
func names[V any](m map[string]V, name func(V) string) []string {
	s := make([]string, 0, len(m))
	for _, v := range m {
		s = append(s, name(v))
	}
	slices.Sort(s)
	return s
}
