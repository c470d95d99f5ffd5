// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_evaluate01(tst *testing.T) {

	chk.PrintTitle("evaluate01. sums, products, division")

	x := NewVar("x")
	y := NewVar("y")
	e := Sum(Product(Const(2), x), Negate(y)) // 2x - y
	b := Bindings{x: 3, y: 1}
	chk.Scalar(tst, "2x-y", 1e-15, e.Evaluate(b), 5)

	d := Quotient(e, Const(2))
	chk.Scalar(tst, "(2x-y)/2", 1e-15, d.Evaluate(b), 2.5)
}

func Test_isfunctionof01(tst *testing.T) {

	chk.PrintTitle("isfunctionof01. structural dependence")

	x := NewVar("x")
	y := NewVar("y")
	e := Product(x, SinOf(y))
	if !e.IsFunctionOf(x) {
		tst.Errorf("expected function of x")
	}
	if !e.IsFunctionOf(y) {
		tst.Errorf("expected function of y")
	}
	z := NewVar("z")
	if e.IsFunctionOf(z) {
		tst.Errorf("did not expect function of z")
	}
}

func Test_derivative01(tst *testing.T) {

	chk.PrintTitle("derivative01. product and quotient rules")

	x := NewVar("x")
	// d(x^2)/dx = 2x
	dx2 := Expand(D(Power(x, Const(2)), x))
	chk.Scalar(tst, "d(x^2)/dx @ x=3", 1e-13, dx2.Evaluate(Bindings{x: 3}), 6)

	// d(1/x)/dx = -1/x^2
	dinv := D(Quotient(Const(1), x), x)
	chk.Scalar(tst, "d(1/x)/dx @ x=2", 1e-13, dinv.Evaluate(Bindings{x: 2}), -0.25)
}

func Test_linearterm01(tst *testing.T) {

	chk.PrintTitle("linearterm01. per-term linearity test")

	x := NewVar("x")
	y := NewVar("y")
	unknowns := []Expr{x, y}

	if !IsLinearTerm(Product(x, y), unknowns) {
		tst.Errorf("x*y should be classified linear (linear in y alone)")
	}
	if IsLinearTerm(Power(x, Const(2)), unknowns) {
		tst.Errorf("x^2 should be classified non-linear")
	}
	if IsLinearTerm(ExpOf(x), unknowns) {
		tst.Errorf("exp(x) should be classified non-linear")
	}
	if !IsLinearTerm(Const(5), unknowns) {
		tst.Errorf("a constant term should be vacuously linear")
	}
}

func Test_solve01(tst *testing.T) {

	chk.PrintTitle("solve01. trivial single-unknown elimination")

	vin := NewVar("vin")
	vout := NewVar("vout")
	eqs := []Equation{{Lhs: Sub(vout, vin), Rhs: Const(0)}}
	arrows := Solve(eqs, []Expr{vout})
	if len(arrows) != 1 {
		tst.Errorf("expected 1 arrow, got %d", len(arrows))
		return
	}
	chk.Scalar(tst, "vout", 1e-15, arrows[0].Right.Evaluate(Bindings{vin: 2.5}), 2.5)
}
