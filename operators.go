package meval

import (
	"fmt"
	"math"
	"sort"
)

// Associativity decides which of two operators of equal precedence is
// applied first.
type Associativity int

const (
	LeftAssociative Associativity = iota
	RightAssociative
)

func (a Associativity) String() string {
	if a == RightAssociative {
		return "right"
	}
	return "left"
}

// OperatorKind tells how an operator is written in an expression.
type OperatorKind int

const (
	KindInfix OperatorKind = iota
	KindPostfix
	KindFunction
	kindLeftParenthesis
)

func (k OperatorKind) String() string {
	switch k {
	case KindInfix:
		return "infix"
	case KindPostfix:
		return "postfix"
	case KindFunction:
		return "function"
	}
	return "parenthesis"
}

// evaluer computes an operator on exactly Arity operands, in the order
// they appear in the expression.
type evaluer func(args []float64) (float64, error)

// Operator describes an operator or a function of the table. The table
// hands out copies, so changing one has no effect on parsing.
type Operator struct {
	Symbol     string
	Arity      int
	Precedence int
	Assoc      Associativity
	Kind       OperatorKind
	evaluer    evaluer
}

// IsFunction reports whether the operator is a named function.
func (op Operator) IsFunction() bool {
	return op.Kind == KindFunction
}

// Apply computes the operator. It fails if len(args) differs from the
// arity, and with a *DomainError when the arguments are out of domain.
func (op Operator) Apply(args ...float64) (float64, error) {
	if op.evaluer == nil {
		return math.NaN(), fmt.Errorf("'%s' cannot be applied", op.Symbol)
	}
	if len(args) != op.Arity {
		return math.NaN(), fmt.Errorf("'%s' needs %d operands, got %d", op.Symbol, op.Arity, len(args))
	}
	return op.evaluer(args)
}

func (op Operator) String() string {
	return op.Symbol
}

// openParenthesis is only ever pushed on the operator stack.
var openParenthesis = &Operator{Symbol: "(", Kind: kindLeftParenthesis}

var operators = make(map[string]*Operator)

var constants = map[string]float64{
	"PI": math.Pi,
	"E":  math.E,
}

func register(op *Operator) {
	if _, ok := operators[op.Symbol]; ok {
		panic("Cannot register operator '" + op.Symbol + "' twice")
	}
	operators[op.Symbol] = op
}

func registerOperator(symbol string, precedence int, assoc Associativity, fn func(a, b float64) (float64, error)) {
	register(&Operator{
		Symbol:     symbol,
		Arity:      2,
		Precedence: precedence,
		Assoc:      assoc,
		Kind:       KindInfix,
		evaluer: func(args []float64) (float64, error) {
			return fn(args[0], args[1])
		},
	})
}

func registerPostfix(symbol string, precedence int, fn func(float64) float64) {
	register(&Operator{
		Symbol:     symbol,
		Arity:      1,
		Precedence: precedence,
		Kind:       KindPostfix,
		evaluer: func(args []float64) (float64, error) {
			return fn(args[0]), nil
		},
	})
}

func registerFunction(name string, fn func(float64) float64) {
	register(&Operator{
		Symbol: name,
		Arity:  1,
		Kind:   KindFunction,
		evaluer: func(args []float64) (float64, error) {
			return fn(args[0]), nil
		},
	})
}

func init() {
	registerOperator("+", 2, LeftAssociative, func(a, b float64) (float64, error) { return a + b, nil })
	registerOperator("-", 2, LeftAssociative, func(a, b float64) (float64, error) { return a - b, nil })
	registerOperator("*", 3, LeftAssociative, func(a, b float64) (float64, error) { return a * b, nil })
	registerOperator("/", 3, LeftAssociative, divide)
	registerOperator("^", 4, RightAssociative, func(a, b float64) (float64, error) { return math.Pow(a, b), nil })
	registerPostfix("!", 5, factorial)

	registerFunction("sin", math.Sin)
	registerFunction("cos", math.Cos)
	registerFunction("tan", math.Tan)
	registerFunction("ln", math.Log)
	registerFunction("log2", math.Log2)
	registerFunction("log10", math.Log10)
	registerFunction("sqrt", math.Sqrt)
	registerFunction("arcsin", math.Asin)
	registerFunction("arccos", math.Acos)
	registerFunction("arctan", math.Atan)
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return math.NaN(), &DomainError{Op: "/", Msg: "Cannot divide by zero", Kind: ErrDivisionByZero}
	}
	return a / b, nil
}

// factorial multiplies 1, 2, ... up to n. Non-integer n behaves like its
// floor, n < 1 and NaN give 1. The product stops growing once it reaches
// +Inf.
func factorial(n float64) float64 {
	value := 1.0
	for i := 1.0; i <= n; i++ {
		if math.IsInf(value, 1) {
			break
		}
		value *= i
	}
	return value
}

// LookupOperator returns the operator or function registered under
// symbol.
func LookupOperator(symbol string) (Operator, bool) {
	op, ok := operators[symbol]
	if !ok {
		return Operator{}, false
	}
	return *op, true
}

// IsOperator reports whether symbol is registered.
func IsOperator(symbol string) bool {
	_, ok := operators[symbol]
	return ok
}

// LookupConstant returns the value of a named constant.
func LookupConstant(name string) (float64, bool) {
	v, ok := constants[name]
	return v, ok
}

// Operators returns every registered operator and function, sorted by
// symbol.
func Operators() []Operator {
	res := make([]Operator, 0, len(operators))
	for _, op := range operators {
		res = append(res, *op)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Symbol < res[j].Symbol })
	return res
}

// Constants returns a copy of the named constants.
func Constants() map[string]float64 {
	res := make(map[string]float64, len(constants))
	for k, v := range constants {
		res[k] = v
	}
	return res
}
