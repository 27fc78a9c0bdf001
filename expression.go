package meval

import (
	"math"
	"strings"
)

// An Expression is a compiled expression, stored in postfix order. It is
// immutable and can be evaluated any number of times, concurrently.
type Expression struct {
	input   string
	postfix []postfixItem
}

// Compile converts input into postfix order. Lexical and structural
// errors are reported here, except for operand count errors which only
// show up in Eval.
func Compile(input string, opts ...Option) (*Expression, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	out, err := buildPostfix(input, o)
	if err != nil {
		return nil, err
	}
	return &Expression{input: input, postfix: out.q}, nil
}

// Input returns the source the expression was compiled from.
func (e *Expression) Input() string {
	return e.input
}

// Eval reduces the expression to a single value. An operator called out
// of its domain yields a *DomainError.
func (e *Expression) Eval() (float64, error) {
	return reduce(e.postfix)
}

// String returns the expression in Reverse Polish notation, items
// separated by spaces.
func (e *Expression) String() string {
	items := make([]string, len(e.postfix))
	for i, it := range e.postfix {
		if it.op != nil {
			items[i] = it.op.Symbol
		} else {
			items[i] = FormatNumber(it.value)
		}
	}
	return strings.Join(items, " ")
}

func reduce(postfix []postfixItem) (float64, error) {
	values := make([]float64, 0, len(postfix))
	for _, it := range postfix {
		if it.op == nil {
			values = append(values, it.value)
			continue
		}
		n := it.op.Arity
		if len(values) < n {
			return math.NaN(), newSyntaxError(ErrInsufficientOperands, 0,
				"not enough operands for '%s', need %d but only %d provided", it.op.Symbol, n, len(values))
		}
		args := make([]float64, n)
		copy(args, values[len(values)-n:])
		values = values[:len(values)-n]

		res, err := it.op.Apply(args...)
		if err != nil {
			return math.NaN(), err
		}
		values = append(values, res)
	}

	if len(values) != 1 {
		return math.NaN(), newSyntaxError(ErrInvalidExpression, 0,
			"expected a single value at the end of evaluation, got %d", len(values))
	}
	return values[0], nil
}
