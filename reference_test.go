package meval

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"math"
	"math/rand"
	"strconv"

	. "gopkg.in/check.v1"
)

// referenceEval evaluates src with exact constant arithmetic, reading it
// as a Go expression.
func referenceEval(src string) (float64, error) {
	node, err := parser.ParseExpr(src)
	if err != nil {
		return math.NaN(), err
	}
	v, err := constEval(node)
	if err != nil {
		return math.NaN(), err
	}
	f, _ := constant.Float64Val(constant.ToFloat(v))
	return f, nil
}

func constEval(n ast.Expr) (constant.Value, error) {
	switch n := n.(type) {
	case *ast.BasicLit:
		return constant.ToFloat(constant.MakeFromLiteral(n.Value, n.Kind, 0)), nil
	case *ast.ParenExpr:
		return constEval(n.X)
	case *ast.UnaryExpr:
		x, err := constEval(n.X)
		if err != nil {
			return nil, err
		}
		return constant.UnaryOp(n.Op, x, 0), nil
	case *ast.BinaryExpr:
		x, err := constEval(n.X)
		if err != nil {
			return nil, err
		}
		y, err := constEval(n.Y)
		if err != nil {
			return nil, err
		}
		if n.Op == token.QUO && constant.Sign(y) == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return constant.BinaryOp(x, n.Op, y), nil
	}
	return nil, fmt.Errorf("unsupported node %T", n)
}

func genLiteral(r *rand.Rand) string {
	return fmt.Sprintf("%d.%d", 1+r.Intn(9), r.Intn(10))
}

// genExpr builds a random expression of + - * / on positive literals.
// Divisors are always literals.
func genExpr(r *rand.Rand, depth int) string {
	if depth == 0 || r.Intn(4) == 0 {
		return genLiteral(r)
	}
	op := "+-*/"[r.Intn(4)]
	left := genExpr(r, depth-1)
	var right string
	if op == '/' || r.Intn(3) == 0 {
		right = genLiteral(r)
	} else {
		right = genExpr(r, depth-1)
	}
	res := left + " " + string(op) + " " + right
	if r.Intn(3) == 0 {
		res = "(" + res + ")"
	}
	return res
}

type ReferenceSuite struct{}

var _ = Suite(&ReferenceSuite{})

func (s *ReferenceSuite) TestMatchesReferenceEvaluator(c *C) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		src := genExpr(r, 4)
		want, err := referenceEval(src)
		c.Assert(err, IsNil, Commentf("reference failed on %q", src))

		res, err := Evaluate(src)
		if c.Check(err, IsNil, Commentf("%q", src)) == false {
			continue
		}
		got, err := strconv.ParseFloat(res, 64)
		c.Assert(err, IsNil, Commentf("%q gave %q", src, res))

		tolerance := 1e-6 + 1e-9*math.Abs(want)
		c.Check(math.Abs(got-want) <= tolerance, Equals, true,
			Commentf("%q: got %v, reference %v", src, got, want))
	}
}

func (s *ReferenceSuite) TestReferenceEvaluator(c *C) {
	v, err := referenceEval("100 * 5 / 10 * 2.5")
	c.Assert(err, IsNil)
	c.Check(v, Equals, 125.0)

	_, err = referenceEval("1 / (2 - 2)")
	c.Check(err, ErrorMatches, "division by zero")
}
