package decexpr

import "github.com/shopspring/decimal"

// builtinOps are the operators every new Expression starts with.
var builtinOps = []Operator{
	{Symbol: "+", Precedence: 20, LeftAssoc: true, Rule: add},
	{Symbol: "-", Precedence: 20, LeftAssoc: true, Rule: sub},
	{Symbol: "*", Precedence: 30, LeftAssoc: true, Rule: mul},
	{Symbol: "/", Precedence: 30, LeftAssoc: true, Rule: quo},
	{Symbol: "^", Precedence: 40, LeftAssoc: false, Rule: pow},
}

// builtinFuncs are the functions every new Expression starts with.
// Trigonometric functions work in radians.
var builtinFuncs = []Function{
	{Name: "RANDOM", Arity: 0, Rule: Niladic(random)},
	{Name: "SIN", Arity: 1, Rule: Monadic(sin)},
	{Name: "COS", Arity: 1, Rule: Monadic(cos)},
	{Name: "TAN", Arity: 1, Rule: Monadic(tan)},
	{Name: "ASIN", Arity: 1, Rule: Monadic(asin)},
	{Name: "ACOS", Arity: 1, Rule: Monadic(acos)},
	{Name: "ATAN", Arity: 1, Rule: Monadic(atan)},
	{Name: "SINH", Arity: 1, Rule: Monadic(sinh)},
	{Name: "COSH", Arity: 1, Rule: Monadic(cosh)},
	{Name: "TANH", Arity: 1, Rule: Monadic(tanh)},
	{Name: "ABS", Arity: 1, Rule: Monadic(abs)},
	{Name: "LN", Arity: 1, Rule: Monadic(ln)},
	{Name: "LOG", Arity: 1, Rule: Monadic(log10)},
	{Name: "EXP", Arity: 1, Rule: Monadic(exp)},
	{Name: "SQRT", Arity: 1, Rule: Monadic(sqrt)},
}

// builtinConsts are the variables every new Expression starts with.
var builtinConsts = []variable{
	{name: "e", value: E},
	{name: "PI", value: Pi},
}

// Monadic wraps a function of one argument into a Rule for a function of
// arity 1. If f is called on an argument outside its domain, it should
// return a DomainError.
func Monadic(f func(x decimal.Decimal) (decimal.Decimal, error)) Rule {
	return func(args []decimal.Decimal) (decimal.Decimal, error) {
		return f(args[0])
	}
}

// Niladic wraps a function of zero arguments, generally one that computes a
// constant or a random value, into a Rule for a function of arity 0.
func Niladic(f func() decimal.Decimal) Rule {
	return func([]decimal.Decimal) (decimal.Decimal, error) {
		return f(), nil
	}
}
