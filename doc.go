// Copyright 2014 Alexandre Tuleu
// Copyright 2026 The meval Authors
//
// This file is part of meval, which is derived from go-meval.
//
// meval is free software: you can redistribute it and/or modify it
// under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// meval is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public
// License along with meval.  If not, see
// <http://www.gnu.org/licenses/>.

/*
Package meval evaluates mathematical expressions written as text, with
float64 arithmetic.

Basics

Evaluate takes an expression and returns its value formatted as text:

	res, err := meval.Evaluate("2sin(PI/2) + 5!")
	// res == "122"

Syntax

Numbers are decimal, with an optional fractional part ("12", "2.5",
".5"). The binary operators are + - * / and ^ (power, right
associative); + and - can also be used as a sign, -x standing for
0-x. After another operator the sign is read the same way, so "2*-3"
is "2*0-3"; after an opening parenthesis it is binary. ! is the
postfix factorial. The functions sin, cos, tan, arcsin, arccos, arctan, ln,
log2, log10 and sqrt take one argument in parentheses. PI and E are
constants. A number, a constant or a closing parenthesis directly
followed by a function or an opening parenthesis is a multiplication:
"2(3+4)" is "2*(3+4)".

Errors

Malformed input is reported as an error implementing InputError, which
can be matched against the Err* kinds with errors.Is. Arithmetic that
fails, such as a division by zero, is not an error for Evaluate: the
failure message is returned as the result. Use Compile and
Expression.Eval to get it as a *DomainError instead.

Unclosed parentheses are ignored unless the Strict option is given.

*/
package meval
