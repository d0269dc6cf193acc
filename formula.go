package decexpr

import "github.com/shopspring/decimal"

// Func is a compiled formula of one variable. The error is nil, or of kind
// Arithmetic if the formula is undefined at x.
type Func func(x decimal.Decimal) (decimal.Decimal, error)

// trial is the value bound to the free variable when checking a formula.
var trial = decimal.NewFromInt(1)

// Compile compiles a formula with one free variable. The error is non-nil if
// src is invalid when the variable is bound, including when it uses any other
// undeclared name.
//
// The returned Func is safe for concurrent use. Each call evaluates a private
// copy of the expression.
func Compile(src, variable string) (Func, error) {
	proto := New(src).Set(variable, trial)
	if err := proto.Validate(); err != nil {
		return nil, err
	}
	if _, err := proto.Eval(); Invalid(err) {
		return nil, err
	}
	return func(x decimal.Decimal) (decimal.Decimal, error) {
		return proto.Clone().Set(variable, x).Eval()
	}, nil
}

// At evaluates f at x. The result is false if f is undefined there.
func (f Func) At(x decimal.Decimal) (decimal.Decimal, bool) {
	y, err := f(x)
	if err != nil {
		return decimal.Zero, false
	}
	return y, true
}

// Translate returns x ↦ f(x+dx) + dy.
func (f Func) Translate(dx, dy decimal.Decimal) Func {
	return func(x decimal.Decimal) (decimal.Decimal, error) {
		y, err := f(x.Add(dx))
		if err != nil {
			return decimal.Zero, err
		}
		return y.Add(dy), nil
	}
}

// Scale returns x ↦ k*f(x).
func (f Func) Scale(k decimal.Decimal) Func {
	return func(x decimal.Decimal) (decimal.Decimal, error) {
		y, err := f(x)
		if err != nil {
			return decimal.Zero, err
		}
		return y.Mul(k), nil
	}
}

// Stretch returns x ↦ f(x/k). The reciprocal of k is rounded to Scale places.
func (f Func) Stretch(k decimal.Decimal) Func {
	return func(x decimal.Decimal) (decimal.Decimal, error) {
		r, err := quo(one, k)
		if err != nil {
			return decimal.Zero, err
		}
		return f(x.Mul(r))
	}
}

// ReflectX returns x ↦ -f(x), the reflection of f across the x-axis.
func (f Func) ReflectX() Func {
	return f.Scale(decimal.NewFromInt(-1))
}

// ReflectY returns x ↦ f(-x), the reflection of f across the y-axis.
func (f Func) ReflectY() Func {
	return func(x decimal.Decimal) (decimal.Decimal, error) {
		return f(x.Neg())
	}
}

// Mul returns x ↦ f(x)*g(x).
func (f Func) Mul(g Func) Func {
	return func(x decimal.Decimal) (decimal.Decimal, error) {
		a, err := f(x)
		if err != nil {
			return decimal.Zero, err
		}
		b, err := g(x)
		if err != nil {
			return decimal.Zero, err
		}
		return a.Mul(b), nil
	}
}

// Limit is the step used by Differentiate.
var Limit = decimal.New(1, -10)

// Differentiate approximates the derivative of f by the forward difference
// (f(x+Limit) - f(x)) / Limit, rounded to Scale places.
func (f Func) Differentiate() Func {
	return func(x decimal.Decimal) (decimal.Decimal, error) {
		a, err := f(x.Add(Limit))
		if err != nil {
			return decimal.Zero, err
		}
		b, err := f(x)
		if err != nil {
			return decimal.Zero, err
		}
		return a.Sub(b).DivRound(Limit, Scale), nil
	}
}

// Slope returns t ↦ y'(t)/x'(t), the slope dy/dx of the parametric curve
// (x(t), y(t)). Both derivatives are taken as by Differentiate. The slope is
// undefined where x'(t) is zero.
func Slope(x, y Func) Func {
	dx, dy := x.Differentiate(), y.Differentiate()
	return func(t decimal.Decimal) (decimal.Decimal, error) {
		a, err := dy(t)
		if err != nil {
			return decimal.Zero, err
		}
		b, err := dx(t)
		if err != nil {
			return decimal.Zero, err
		}
		return quo(a, b)
	}
}
