package decexpr

import (
	"io"
	"strings"
)

// shuntingYard converts src to reverse Polish notation. Function argument
// lists are marked in the output by the open parenthesis that starts them, so
// the evaluator can find where a variadic call's arguments begin.
//
// Names which are neither declared variables nor functions are pushed on the
// operator stack. If a parenthesis later moves one to the output, the
// evaluator reports it; if it's left on the stack at the end, the result is an
// OperatorError.
func shuntingYard(src string, reg registry) ([]lexToken, error) {
	scan := lex(src, reg.isOperator)
	var out, stack []lexToken
	var prev lexToken
	// unwind moves operators from the stack to the output until an open
	// parenthesis is on top. The parenthesis stays.
	unwind := func() {
		for len(stack) > 0 && stack[len(stack)-1].kind != tokenOpen {
			out = append(out, stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}
	}
	for {
		tok, err := scan.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum:
			out = append(out, tok)
		case tokenIdent:
			if _, ok := reg.variable(tok.text); ok {
				out = append(out, tok)
				break
			}
			stack = append(stack, tok)
		case tokenSep:
			switch prev.kind {
			case tokenNone, tokenOp, tokenOpen, tokenSep:
				return nil, &SeparatorError{Col: tok.pos, Missing: true}
			}
			unwind()
			if len(stack) == 0 {
				return nil, &SeparatorError{Col: tok.pos}
			}
		case tokenOp:
			if prev.kind == tokenOpen || prev.kind == tokenSep {
				return nil, &MissingOperandError{Col: tok.pos, Operator: tok.text}
			}
			o1, _ := reg.operator(tok.text)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind != tokenOp {
					break
				}
				o2, _ := reg.operator(top.text)
				if !(o1.LeftAssoc && o1.Precedence <= o2.Precedence || o1.Precedence < o2.Precedence) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		case tokenOpen:
			switch prev.kind {
			case tokenNum:
				return nil, &MissingOperatorError{Col: tok.pos}
			case tokenIdent:
				if reg.isFunction(prev.text) {
					out = append(out, tok)
				}
			}
			stack = append(stack, tok)
		case tokenClose:
			if prev.kind == tokenOp {
				return nil, &MissingOperandError{Col: prev.pos, Operator: prev.text}
			}
			unwind()
			if len(stack) == 0 {
				return nil, &BracketError{Col: tok.pos}
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind == tokenIdent && reg.isFunction(top.text) {
					out = append(out, top)
					stack = stack[:len(stack)-1]
				}
			}
		}
		prev = tok
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch top.kind {
		case tokenOp:
			out = append(out, top)
		case tokenOpen:
			return nil, &BracketError{Col: top.pos, Open: true}
		default:
			return nil, &OperatorError{Col: top.pos, Name: top.text}
		}
	}
	return out, nil
}

// validate checks that prog computes exactly one value and that every function
// call has the right number of arguments.
func validate(prog []lexToken, reg registry) error {
	// Each element of scopes counts the values available in one argument
	// list. The first is the top level.
	scopes := []int{0}
	for _, tok := range prog {
		top := len(scopes) - 1
		switch tok.kind {
		case tokenOp:
			if scopes[top] < 2 {
				return &MissingOperandError{Col: tok.pos, Operator: tok.text}
			}
			scopes[top]--
		case tokenOpen:
			scopes = append(scopes, 0)
		case tokenIdent:
			if reg.isVariable(tok.text) {
				scopes[top]++
				break
			}
			f, ok := reg.function(tok.text)
			if !ok {
				// Undeclared names fail at evaluation.
				scopes[top]++
				break
			}
			n := scopes[top]
			scopes = scopes[:top]
			if len(scopes) == 0 {
				return &CallError{Col: tok.pos, Func: tok.text, Want: f.Arity, Len: -1}
			}
			if !f.Variadic() && n != f.Arity {
				return &CallError{Col: tok.pos, Func: tok.text, Want: f.Arity, Len: n}
			}
			scopes[top-1]++
		default:
			scopes[top]++
		}
	}
	switch n := scopes[len(scopes)-1]; {
	case len(scopes) > 1:
		return &ScopeError{Open: len(scopes) - 1}
	case n > 1:
		return &OperandError{Len: n}
	case n < 1:
		return &EmptyExpressionError{}
	}
	return nil
}

// formatRPN joins the text of the tokens in prog with spaces.
func formatRPN(prog []lexToken) string {
	var b strings.Builder
	for i, tok := range prog {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.text)
	}
	return b.String()
}
