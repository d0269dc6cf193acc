package decexpr_test

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/decexpr"
)

func ExampleEvalString() {
	fmt.Println(decexpr.EvalString("1+1/3"))
	fmt.Println(decexpr.EvalString("2^3^2"))
	fmt.Println(decexpr.EvalString("SQRT(-1)"))

	// Output:
	// 1.333333333333333333333333333333 <nil>
	// 512 <nil>
	// 0 -1 outside domain of SQRT: negative argument
}

func ExampleExpression_AddFunction() {
	count := func(args []decimal.Decimal) (decimal.Decimal, error) {
		return decimal.NewFromInt(int64(len(args))), nil
	}
	for _, src := range []string{"count()", "count(100)", "count(3, 2, 1)"} {
		e := decexpr.New(src)
		e.AddFunction("COUNT", decexpr.VarArgs, count)
		r, _ := e.Eval()
		rpn, _ := e.RPN()
		fmt.Println(r, rpn)
	}

	// Output:
	// 0 ( count
	// 1 ( 100 count
	// 3 ( 3 2 1 count
}

func ExampleMonadic() {
	e := decexpr.New("double(x) + 1").Set("x", decimal.RequireFromString("2.5"))
	e.AddFunction("DOUBLE", 1, decexpr.Monadic(func(x decimal.Decimal) (decimal.Decimal, error) {
		return x.Add(x), nil
	}))
	fmt.Println(e.Eval())

	// Output:
	// 6 <nil>
}

func ExampleNiladic() {
	e := decexpr.New("answer()/2")
	e.AddFunction("answer", 0, decexpr.Niladic(func() decimal.Decimal {
		return decimal.NewFromInt(42)
	}))
	fmt.Println(e.Eval())

	// Output:
	// 21 <nil>
}

func ExampleCompile() {
	f, err := decexpr.Compile("1/(x^2 - 1)", "x")
	if err != nil {
		panic(err)
	}
	for _, x := range []int64{0, 1, 2} {
		y, ok := f.At(decimal.NewFromInt(x))
		fmt.Println(x, y.StringFixed(4), ok)
	}

	// Output:
	// 0 -1.0000 true
	// 1 0.0000 false
	// 2 0.3333 true
}

func ExampleKindOf() {
	for _, src := range []string{"1+", "(y)", "1/0", "1"} {
		_, err := decexpr.EvalString(src)
		fmt.Println(decexpr.KindOf(err), decexpr.Invalid(err))
	}

	// Output:
	// syntax true
	// semantic true
	// arithmetic false
	// none false
}
