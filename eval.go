package decexpr

import (
	"slices"

	"github.com/shopspring/decimal"
)

// thunk is an operand which has not been computed yet. A nil thunk on the
// evaluation stack marks the start of a function's arguments.
type thunk func() (decimal.Decimal, error)

func constant(x decimal.Decimal) thunk {
	return func() (decimal.Decimal, error) { return x, nil }
}

func fail(err error) thunk {
	return func() (decimal.Decimal, error) { return decimal.Zero, err }
}

// run evaluates a validated program. Nothing is computed until the final
// thunk is forced, so a failing operand is only reported if the value that
// depends on it is needed.
func run(prog []lexToken, reg registry) (decimal.Decimal, error) {
	stack := make([]thunk, 0, len(prog))
	for _, tok := range prog {
		switch tok.kind {
		case tokenNum:
			x, err := decimal.NewFromString(tok.text)
			if err != nil {
				stack = append(stack, fail(&NameError{Name: tok.text, Col: tok.pos}))
				break
			}
			stack = append(stack, constant(x))
		case tokenOp:
			op, _ := reg.operator(tok.text)
			right, left := stack[len(stack)-1], stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, func() (decimal.Decimal, error) {
				l, err := left()
				if err != nil {
					return decimal.Zero, err
				}
				r, err := right()
				if err != nil {
					return decimal.Zero, err
				}
				return op.Rule(l, r)
			})
		case tokenOpen:
			stack = append(stack, nil)
		case tokenIdent:
			if x, ok := reg.variable(tok.text); ok {
				stack = append(stack, constant(x))
				break
			}
			f, ok := reg.function(tok.text)
			if !ok {
				stack = append(stack, fail(&NameError{Name: tok.text, Col: tok.pos}))
				break
			}
			k := len(stack)
			for k > 0 && stack[k-1] != nil {
				k--
			}
			args := slices.Clone(stack[k:])
			if k > 0 {
				// Drop the argument list marker.
				k--
			}
			stack = stack[:k]
			stack = append(stack, call(f, args))
		}
	}
	if len(stack) != 1 || stack[0] == nil {
		// validate rejects any program that could get here.
		return decimal.Zero, &OperandError{Len: len(stack)}
	}
	r, err := stack[0]()
	if err != nil {
		return decimal.Zero, err
	}
	return canonical(r), nil
}

func call(f Function, args []thunk) thunk {
	return func() (decimal.Decimal, error) {
		vals := make([]decimal.Decimal, len(args))
		for i, arg := range args {
			v, err := arg()
			if err != nil {
				return decimal.Zero, err
			}
			vals[i] = v
		}
		return f.Rule(vals)
	}
}

// EvalString is a shortcut to evaluate an expression with only the built-in
// operators, functions, and constants.
func EvalString(src string) (decimal.Decimal, error) {
	return New(src).Eval()
}
