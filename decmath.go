package decexpr

import (
	"math/big"
	"math/rand/v2"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

// Scale is the number of fractional digits kept by division, exponentiation,
// and the transcendental functions. Rounding is half away from zero.
const Scale = 30

const (
	// floatPrec is the binary precision of intermediate big.Float results,
	// roughly 57 decimal digits.
	floatPrec = 192
	// floatDigits is the number of significant digits taken from a
	// big.Float result before rounding to Scale.
	floatDigits = 40

	// sqrtDigits controls the Newton-Raphson square root: quotients keep
	// 2*sqrtDigits fractional digits and iteration stops once the square of
	// the estimate is within 10^-sqrtDigits of the argument.
	sqrtDigits        = 10
	sqrtMaxIterations = 1000

	// maxExponent is the largest integer part of an exponent that ^ accepts.
	maxExponent = 999999999
	// maxExpArg bounds arguments to EXP and the hyperbolic functions.
	maxExpArg = 10000

	// trigDigits is the number of fractional digits kept by the circular
	// functions before rounding to Scale.
	trigDigits = Scale + 15
)

var (
	one           = decimal.NewFromInt(1)
	two           = decimal.NewFromInt(2)
	sqrtTolerance = decimal.New(1, -sqrtDigits)
	trigTolerance = decimal.New(1, -trigDigits)

	// Pi has 100 places, so reduction modulo 2π keeps trigDigits places for
	// arguments below maxTrigArg.
	maxTrigArg  = decimal.New(1, 50)
	twoPi       = Pi.Add(Pi)
	halfPi      = Pi.Mul(decimal.New(5, -1))
	quarterPi   = Pi.Mul(decimal.New(25, -2))
	tanEighthPi = decimal.New(4142, -4)
)

// Pi is the value bound to PI in new expressions, to 100 places.
var Pi = decimal.RequireFromString("3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679")

// E is the value bound to e in new expressions, to 71 places.
var E = decimal.RequireFromString("2.71828182845904523536028747135266249775724709369995957496696762772407663")

// round limits x to Scale fractional digits.
func round(x decimal.Decimal) decimal.Decimal {
	if x.Exponent() < -Scale {
		return x.Round(Scale)
	}
	return x
}

// canonical strips trailing fractional zeros from x.
func canonical(x decimal.Decimal) decimal.Decimal {
	exp := x.Exponent()
	if exp >= 0 {
		return x
	}
	c := x.Coefficient()
	if c.Sign() == 0 {
		return decimal.Zero
	}
	var q, m big.Int
	ten := big.NewInt(10)
	for exp < 0 {
		q.QuoRem(c, ten, &m)
		if m.Sign() != 0 {
			break
		}
		c.Set(&q)
		exp++
	}
	return decimal.NewFromBigInt(c, exp)
}

func add(x, y decimal.Decimal) (decimal.Decimal, error) { return x.Add(y), nil }
func sub(x, y decimal.Decimal) (decimal.Decimal, error) { return x.Sub(y), nil }
func mul(x, y decimal.Decimal) (decimal.Decimal, error) { return x.Mul(y), nil }

func quo(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, DomainError{X: y, Func: "/", Reason: "division by zero"}
	}
	return x.DivRound(y, Scale), nil
}

// pow computes x^y. The integer part of y is applied exactly; the fractional
// part goes through a binary floating-point approximation of x^frac, so
// fractional powers are accurate to roughly floatDigits digits rather than
// Scale places.
func pow(x, y decimal.Decimal) (decimal.Decimal, error) {
	neg := y.Sign() < 0
	y = y.Abs()
	whole := y.Truncate(0)
	frac := y.Sub(whole)
	if whole.GreaterThan(decimal.NewFromInt(maxExponent)) {
		return decimal.Zero, DomainError{X: y, Func: "^", Reason: "exponent too large"}
	}
	r := one
	if n := whole.IntPart(); n > 0 {
		// PowInt32 fails only for 0^0.
		r, _ = x.PowInt32(int32(n))
	}
	if !frac.IsZero() {
		f, err := fracPow(x, frac)
		if err != nil {
			return decimal.Zero, err
		}
		r = r.Mul(f)
	}
	if neg {
		if r.IsZero() {
			return decimal.Zero, DomainError{X: x, Func: "^", Reason: "division by zero"}
		}
		return one.DivRound(r, Scale), nil
	}
	return round(r), nil
}

// fracPow computes x^y for 0 < y < 1.
func fracPow(x, y decimal.Decimal) (decimal.Decimal, error) {
	switch x.Sign() {
	case 0:
		return decimal.Zero, nil
	case -1:
		return decimal.Zero, DomainError{X: x, Func: "^", Reason: "fractional power of a negative number"}
	}
	r := new(big.Float).SetPrec(floatPrec)
	bigfloat.Pow(r, toFloat(x), toFloat(y))
	return fromFloat(r, "^", x)
}

// sqrt computes the square root of x by Newton-Raphson iteration.
func sqrt(x decimal.Decimal) (decimal.Decimal, error) {
	switch x.Sign() {
	case 0:
		return decimal.Zero, nil
	case -1:
		return decimal.Zero, DomainError{X: x, Func: "SQRT", Reason: "negative argument"}
	}
	// Start from a power of ten with half as many integer digits as x.
	xn := decimal.New(1, (int32(x.NumDigits())+x.Exponent())/2)
	var prev decimal.Decimal
	for range sqrtMaxIterations {
		fx := xn.Mul(xn).Sub(x)
		next := xn.Sub(fx.DivRound(xn.Mul(two), 2*sqrtDigits))
		if next.Mul(next).Sub(x).Abs().LessThan(sqrtTolerance) {
			return next, nil
		}
		// Quotient rounding can stall or cycle before reaching the tolerance
		// for large arguments.
		if next.Equal(xn) || next.Equal(prev) {
			return next, nil
		}
		prev, xn = xn, next
	}
	return decimal.Zero, DomainError{X: x, Func: "SQRT", Reason: "did not converge"}
}

func ln(x decimal.Decimal) (decimal.Decimal, error) {
	if x.Sign() <= 0 {
		return decimal.Zero, DomainError{X: x, Func: "LN"}
	}
	r := new(big.Float).SetPrec(floatPrec)
	bigfloat.Log(r, toFloat(x))
	return fromFloat(r, "LN", x)
}

func log10(x decimal.Decimal) (decimal.Decimal, error) {
	if x.Sign() <= 0 {
		return decimal.Zero, DomainError{X: x, Func: "LOG"}
	}
	r := new(big.Float).SetPrec(floatPrec)
	bigfloat.Log(r, toFloat(x))
	ten := new(big.Float).SetPrec(floatPrec).SetInt64(10)
	bigfloat.Log(ten, ten)
	return fromFloat(r.Quo(r, ten), "LOG", x)
}

// expFloat computes e^x and e^-x.
func expFloat(x decimal.Decimal, name string) (pos, neg *big.Float, err error) {
	if x.Abs().GreaterThan(decimal.NewFromInt(maxExpArg)) {
		return nil, nil, DomainError{X: x, Func: name, Reason: "overflow"}
	}
	pos = new(big.Float).SetPrec(floatPrec)
	bigfloat.Exp(pos, toFloat(x))
	neg = new(big.Float).SetPrec(floatPrec).SetInt64(1)
	neg.Quo(neg, pos)
	return pos, neg, nil
}

func exp(x decimal.Decimal) (decimal.Decimal, error) {
	if x.LessThan(decimal.NewFromInt(-maxExpArg)) {
		return decimal.Zero, nil
	}
	p, _, err := expFloat(x, "EXP")
	if err != nil {
		return decimal.Zero, err
	}
	return fromFloat(p, "EXP", x)
}

func sinh(x decimal.Decimal) (decimal.Decimal, error) {
	p, n, err := expFloat(x, "SINH")
	if err != nil {
		return decimal.Zero, err
	}
	p.Sub(p, n)
	return fromFloat(p.Quo(p, big.NewFloat(2)), "SINH", x)
}

func cosh(x decimal.Decimal) (decimal.Decimal, error) {
	p, n, err := expFloat(x, "COSH")
	if err != nil {
		return decimal.Zero, err
	}
	p.Add(p, n)
	return fromFloat(p.Quo(p, big.NewFloat(2)), "COSH", x)
}

func tanh(x decimal.Decimal) (decimal.Decimal, error) {
	// tanh is 1 to far more than Scale places well before exp overflows.
	if x.Abs().GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(int64(x.Sign())), nil
	}
	p, n, err := expFloat(x, "TANH")
	if err != nil {
		return decimal.Zero, err
	}
	num := new(big.Float).SetPrec(floatPrec).Sub(p, n)
	den := new(big.Float).SetPrec(floatPrec).Add(p, n)
	return fromFloat(num.Quo(num, den), "TANH", x)
}

// sin, cos, tan, and the inverse functions work at trigDigits places, reduce
// arguments modulo 2π using Pi, and round to Scale.
func sin(x decimal.Decimal) (decimal.Decimal, error) {
	r, err := reduceAngle(x, "SIN")
	if err != nil {
		return decimal.Zero, err
	}
	return round(sinSeries(r)), nil
}

func cos(x decimal.Decimal) (decimal.Decimal, error) {
	r, err := reduceAngle(x, "COS")
	if err != nil {
		return decimal.Zero, err
	}
	return round(cosSeries(r)), nil
}

func tan(x decimal.Decimal) (decimal.Decimal, error) {
	r, err := reduceAngle(x, "TAN")
	if err != nil {
		return decimal.Zero, err
	}
	c := cosSeries(r)
	if c.IsZero() {
		return decimal.Zero, DomainError{X: x, Func: "TAN"}
	}
	return sinSeries(r).DivRound(c, Scale), nil
}

func atan(x decimal.Decimal) (decimal.Decimal, error) { return round(atanSeries(x)), nil }

func asin(x decimal.Decimal) (decimal.Decimal, error) {
	r, err := asinSeries(x, "ASIN")
	if err != nil {
		return decimal.Zero, err
	}
	return round(r), nil
}

func acos(x decimal.Decimal) (decimal.Decimal, error) {
	r, err := asinSeries(x, "ACOS")
	if err != nil {
		return decimal.Zero, err
	}
	return round(halfPi.Sub(r)), nil
}

// reduceAngle returns x modulo 2π in [-π, π].
func reduceAngle(x decimal.Decimal, name string) (decimal.Decimal, error) {
	if x.Abs().GreaterThanOrEqual(maxTrigArg) {
		return decimal.Zero, DomainError{X: x, Func: name, Reason: "argument too large"}
	}
	k := x.DivRound(twoPi, trigDigits).Floor()
	r := x.Sub(k.Mul(twoPi)).Round(trigDigits)
	if r.GreaterThan(Pi) {
		r = r.Sub(twoPi).Round(trigDigits)
	}
	return r, nil
}

// sinSeries sums the Taylor series of sin at r, which must be in [-π, π].
func sinSeries(r decimal.Decimal) decimal.Decimal {
	r2 := r.Mul(r).Round(trigDigits)
	sum, term := r, r
	for n := int64(1); ; n++ {
		term = term.Mul(r2).DivRound(decimal.NewFromInt(2*n*(2*n+1)), trigDigits).Neg()
		if term.Abs().LessThan(trigTolerance) {
			return sum
		}
		sum = sum.Add(term)
	}
}

// cosSeries sums the Taylor series of cos at r, which must be in [-π, π].
func cosSeries(r decimal.Decimal) decimal.Decimal {
	r2 := r.Mul(r).Round(trigDigits)
	sum, term := one, one
	for n := int64(1); ; n++ {
		term = term.Mul(r2).DivRound(decimal.NewFromInt((2*n-1)*2*n), trigDigits).Neg()
		if term.Abs().LessThan(trigTolerance) {
			return sum
		}
		sum = sum.Add(term)
	}
}

// atanSeries computes atan(x) at trigDigits places. Arguments outside [-1, 1]
// use atan(x) = π/2 - atan(1/x), and those above tan(π/8) are shifted by π/4
// so the series converges quickly.
func atanSeries(x decimal.Decimal) decimal.Decimal {
	neg := x.Sign() < 0
	x = x.Abs()
	inv := x.GreaterThan(one)
	if inv {
		x = one.DivRound(x, trigDigits)
	}
	base := decimal.Zero
	if x.GreaterThan(tanEighthPi) {
		base = quarterPi
		x = x.Sub(one).DivRound(x.Add(one), trigDigits)
	}
	x2 := x.Mul(x).Round(trigDigits)
	sum, p := x, x
	for n := int64(1); ; n++ {
		p = p.Mul(x2).Round(trigDigits).Neg()
		term := p.DivRound(decimal.NewFromInt(2*n+1), trigDigits)
		if term.Abs().LessThan(trigTolerance) {
			break
		}
		sum = sum.Add(term)
	}
	r := base.Add(sum)
	if inv {
		r = halfPi.Sub(r)
	}
	if neg {
		r = r.Neg()
	}
	return r
}

// asinSeries computes asin(x) = atan(x/sqrt(1-x²)) at trigDigits places.
func asinSeries(x decimal.Decimal, name string) (decimal.Decimal, error) {
	t := one.Sub(x.Mul(x))
	switch t.Sign() {
	case -1:
		return decimal.Zero, DomainError{X: x, Func: name}
	case 0:
		if x.Sign() < 0 {
			return halfPi.Neg(), nil
		}
		return halfPi, nil
	}
	f := new(big.Float).SetPrec(floatPrec).Sqrt(toFloat(t))
	s, err := decimal.NewFromString(f.Text('g', trigDigits+10))
	if err != nil {
		return decimal.Zero, DomainError{X: x, Func: name, Reason: err.Error()}
	}
	return atanSeries(x.DivRound(s, trigDigits)), nil
}

func abs(x decimal.Decimal) (decimal.Decimal, error) { return x.Abs(), nil }

func random() decimal.Decimal {
	return decimal.NewFromFloat(rand.Float64())
}

func toFloat(x decimal.Decimal) *big.Float {
	// Decimal strings always parse.
	f, _ := new(big.Float).SetPrec(floatPrec).SetString(x.String())
	return f
}

func fromFloat(f *big.Float, name string, arg decimal.Decimal) (decimal.Decimal, error) {
	if f.IsInf() {
		return decimal.Zero, DomainError{X: arg, Func: name, Reason: "overflow"}
	}
	d, err := decimal.NewFromString(f.Text('g', floatDigits))
	if err != nil {
		return decimal.Zero, DomainError{X: arg, Func: name, Reason: err.Error()}
	}
	return round(d), nil
}
