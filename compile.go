package meval

import (
	"errors"
	"io"
	"strconv"
)

// postfixItem is a literal when op is nil.
type postfixItem struct {
	value float64
	op    *Operator
}

type outQueue struct {
	q []postfixItem
}

func (o *outQueue) pushValue(v float64) {
	o.q = append(o.q, postfixItem{value: v})
}

func (o *outQueue) pushOperator(op *Operator) {
	o.q = append(o.q, postfixItem{op: op})
}

type opStack struct {
	s []*Operator
}

func (o *opStack) unsafePop() *Operator {
	op := o.s[len(o.s)-1]
	o.s = o.s[0 : len(o.s)-1]
	return op
}

func (o *opStack) push(op *Operator) {
	o.s = append(o.s, op)
}

func (o *opStack) size() int {
	return len(o.s)
}

func (o *opStack) unsafeTop() *Operator {
	return o.s[len(o.s)-1]
}

// Option changes how an expression is compiled.
type Option func(*options)

type options struct {
	strict bool
}

// Strict makes an open parenthesis that is never closed an error. By
// default it is ignored.
func Strict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

func isConstant(t *Token) bool {
	if t == nil || t.Type != TokIdent {
		return false
	}
	_, ok := constants[t.Value]
	return ok
}

// canPop tells if the top of the stack is applied before incoming.
func canPop(stack *opStack, incoming *Operator) bool {
	if stack.size() == 0 {
		return false
	}
	top := stack.unsafeTop()
	if top.Kind == kindLeftParenthesis {
		return false
	}
	return top.Precedence > incoming.Precedence ||
		top.Precedence == incoming.Precedence && incoming.Assoc == LeftAssociative
}

func parseNumber(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
		// v is ±Inf or ±0
		return v, nil
	}
	return v, err
}

func buildPostfix(input string, opts options) (*outQueue, error) {
	l := NewLexer(input)

	output := &outQueue{}
	stack := opStack{}
	mult := operators["*"]
	var prev *Token

	for {
		t, err := l.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		col := t.Start() + 1

		switch t.Type {
		case TokNumber:
			if prev != nil && (prev.Type == TokNumber || isConstant(prev)) {
				return nil, newSyntaxError(ErrInvalidSyntax, col,
					"expected an operator or a function after %s but got %s instead", prev.Value, t.Value)
			}
			value, err := parseNumber(t.Value)
			if err != nil {
				return nil, newSyntaxError(ErrInvalidSyntax, col, "bad number syntax %q", t.Value)
			}
			output.pushValue(value)

		case TokIdent:
			if value, ok := constants[t.Value]; ok {
				output.pushValue(value)
				break
			}
			fn, ok := operators[t.Value]
			if !ok || !fn.IsFunction() {
				return nil, newSyntaxError(ErrUnknownIdentifier, col, "unknown identifier '%s'", t.Value)
			}
			// 2sin(x) is 2*sin(x)
			if prev != nil && prev.Type != TokOperator && prev.Type != TokLParen {
				stack.push(mult)
			}
			stack.push(fn)

		case TokOperator:
			op, ok := operators[t.Value]
			if !ok || op.IsFunction() {
				return nil, newSyntaxError(ErrInvalidOperator, col, "invalid operator %s", t.Value)
			}
			if prev == nil || prev.Type == TokOperator && prev.Value != "!" {
				if t.Value != "+" && t.Value != "-" {
					if prev == nil {
						return nil, newSyntaxError(ErrUnexpectedOperator, col,
							"did not expect operator %s at the start of expression", t.Value)
					}
					return nil, newSyntaxError(ErrUnexpectedOperator, col,
						"did not expect operator %s after %s", t.Value, prev.Value)
				}
				// unary sign: -x is 0-x
				output.pushValue(0)
			}
			for canPop(&stack, op) {
				output.pushOperator(stack.unsafePop())
			}
			stack.push(op)

		case TokLParen:
			// 2(3+4) is 2*(3+4)
			if prev != nil && (prev.Type == TokNumber || prev.Type == TokRParen || isConstant(prev)) {
				stack.push(mult)
			}
			stack.push(openParenthesis)

		case TokRParen:
			for stack.size() > 0 && stack.unsafeTop().Kind != kindLeftParenthesis {
				output.pushOperator(stack.unsafePop())
			}
			if stack.size() > 0 {
				stack.unsafePop()
			}
			// a function closes on the parenthesis following it
			if stack.size() > 0 && stack.unsafeTop().IsFunction() {
				output.pushOperator(stack.unsafePop())
			}
		}

		prev = &t
	}

	for stack.size() > 0 {
		op := stack.unsafePop()
		if op.Kind == kindLeftParenthesis {
			if opts.strict {
				return nil, newSyntaxError(ErrMismatchedParenthesis, 0, "mismatched parenthesis in %s", input)
			}
			continue
		}
		output.pushOperator(op)
	}

	return output, nil
}
