package meval

import (
	"errors"
	"math"

	. "gopkg.in/check.v1"
)

type OperatorSuite struct{}

var _ = Suite(&OperatorSuite{})

type OperatorDef struct {
	symbol     string
	arity      int
	precedence int
	assoc      Associativity
	kind       OperatorKind
}

func (s *OperatorSuite) TestTableContent(c *C) {
	defs := []OperatorDef{
		{"+", 2, 2, LeftAssociative, KindInfix},
		{"-", 2, 2, LeftAssociative, KindInfix},
		{"*", 2, 3, LeftAssociative, KindInfix},
		{"/", 2, 3, LeftAssociative, KindInfix},
		{"^", 2, 4, RightAssociative, KindInfix},
		{"!", 1, 5, LeftAssociative, KindPostfix},
	}
	for _, name := range []string{"sin", "cos", "tan", "ln", "log2", "log10", "sqrt", "arcsin", "arccos", "arctan"} {
		defs = append(defs, OperatorDef{name, 1, 0, LeftAssociative, KindFunction})
	}

	for _, d := range defs {
		op, ok := LookupOperator(d.symbol)
		if c.Check(ok, Equals, true, Commentf("missing %s", d.symbol)) == false {
			continue
		}
		c.Check(op.Symbol, Equals, d.symbol)
		c.Check(op.Arity, Equals, d.arity, Commentf("arity of %s", d.symbol))
		c.Check(op.Precedence, Equals, d.precedence, Commentf("precedence of %s", d.symbol))
		c.Check(op.Assoc, Equals, d.assoc, Commentf("associativity of %s", d.symbol))
		c.Check(op.Kind, Equals, d.kind, Commentf("kind of %s", d.symbol))
		c.Check(op.IsFunction(), Equals, d.kind == KindFunction)
	}
	c.Check(Operators(), HasLen, len(defs))
}

func (s *OperatorSuite) TestUnknownSymbols(c *C) {
	for _, sym := range []string{"(", "%", "asin", "PI", "Sin", ""} {
		c.Check(IsOperator(sym), Equals, false, Commentf("%q", sym))
	}
}

func (s *OperatorSuite) TestOperatorsAreSorted(c *C) {
	ops := Operators()
	for i := 1; i < len(ops); i++ {
		c.Check(ops[i-1].Symbol < ops[i].Symbol, Equals, true)
	}
}

func (s *OperatorSuite) TestConstants(c *C) {
	v, ok := LookupConstant("PI")
	c.Check(ok, Equals, true)
	c.Check(v, Equals, math.Pi)
	v, ok = LookupConstant("E")
	c.Check(ok, Equals, true)
	c.Check(v, Equals, math.E)
	_, ok = LookupConstant("pi")
	c.Check(ok, Equals, false)

	consts := Constants()
	consts["PI"] = 3
	v, _ = LookupConstant("PI")
	c.Check(v, Equals, math.Pi)
}

type ApplyResult struct {
	symbol string
	args   []float64
	result float64
}

func (s *OperatorSuite) TestApply(c *C) {
	tests := []ApplyResult{
		{"+", []float64{1, 2}, 3},
		{"-", []float64{1, 2}, -1},
		{"*", []float64{1.5, 4}, 6},
		{"/", []float64{1, 4}, 0.25},
		{"^", []float64{2, 10}, 1024},
		{"!", []float64{0}, 1},
		{"!", []float64{5}, 120},
		{"!", []float64{5.5}, 120},
		{"!", []float64{-3}, 1},
		{"!", []float64{1000}, math.Inf(1)},
		{"!", []float64{math.Inf(1)}, math.Inf(1)},
		{"sqrt", []float64{16}, 4},
		{"log2", []float64{8}, 3},
		{"cos", []float64{0}, 1},
		{"arctan", []float64{0}, 0},
	}
	for _, t := range tests {
		op, ok := LookupOperator(t.symbol)
		c.Assert(ok, Equals, true)
		res, err := op.Apply(t.args...)
		c.Assert(err, IsNil)
		c.Check(res, Equals, t.result, Commentf("%s %v", t.symbol, t.args))
	}
}

func (s *OperatorSuite) TestDivisionByZeroIsADomainError(c *C) {
	op, _ := LookupOperator("/")
	_, err := op.Apply(1, 0)
	c.Assert(errors.Is(err, ErrDivisionByZero), Equals, true)
	c.Check(err, ErrorMatches, "Cannot divide by zero")

	var domainErr *DomainError
	c.Assert(errors.As(err, &domainErr), Equals, true)
	domainErr.Msg = "changed"
	res, err := Evaluate("5 / 0")
	c.Assert(err, IsNil)
	c.Check(res, Equals, "Cannot divide by zero")
}

func (s *OperatorSuite) TestTableIsReadOnly(c *C) {
	op, _ := LookupOperator("+")
	op.Precedence = 9
	for _, listed := range Operators() {
		listed.Precedence = 0
	}
	res, err := Evaluate("2 + 3 * 4")
	c.Assert(err, IsNil)
	c.Check(res, Equals, "14")

	op, _ = LookupOperator("+")
	c.Check(op.Precedence, Equals, 2)
	_, ok := LookupOperator("%")
	c.Check(ok, Equals, false)
}

func (s *OperatorSuite) TestOutOfDomainFunctionsGiveNaN(c *C) {
	for _, t := range []ApplyResult{{"ln", []float64{-1}, 0}, {"sqrt", []float64{-4}, 0}, {"arcsin", []float64{2}, 0}} {
		op, _ := LookupOperator(t.symbol)
		res, err := op.Apply(t.args...)
		c.Check(err, IsNil)
		c.Check(math.IsNaN(res), Equals, true, Commentf("%s %v", t.symbol, t.args))
	}
}

func (s *OperatorSuite) TestApplyChecksArity(c *C) {
	op, _ := LookupOperator("+")
	_, err := op.Apply(1)
	c.Check(err, ErrorMatches, "'\\+' needs 2 operands, got 1")

	_, err = openParenthesis.Apply()
	c.Check(err, ErrorMatches, "'\\(' cannot be applied")
}

func (s *OperatorSuite) TestRegisterTwicePanics(c *C) {
	c.Check(func() { registerFunction("sin", math.Sin) }, PanicMatches, "Cannot register operator 'sin' twice")
}
