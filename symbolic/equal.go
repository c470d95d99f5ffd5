// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// Equal reports whether a and b are the same expression structurally.
// Var identity is by pointer, never by name — two variables named the
// same way are still distinct unknowns.
func Equal(a, b Expr) bool {
	switch av := a.(type) {
	case *Var:
		bv, ok := b.(*Var)
		return ok && av == bv
	case Const:
		bv, ok := b.(Const)
		return ok && av == bv
	case *NegExpr:
		bv, ok := b.(*NegExpr)
		return ok && Equal(av.X, bv.X)
	case *AddExpr:
		bv, ok := b.(*AddExpr)
		if !ok || len(av.Terms) != len(bv.Terms) {
			return false
		}
		for i := range av.Terms {
			if !Equal(av.Terms[i], bv.Terms[i]) {
				return false
			}
		}
		return true
	case *MulExpr:
		bv, ok := b.(*MulExpr)
		if !ok || len(av.Factors) != len(bv.Factors) {
			return false
		}
		for i := range av.Factors {
			if !Equal(av.Factors[i], bv.Factors[i]) {
				return false
			}
		}
		return true
	case *DivExpr:
		bv, ok := b.(*DivExpr)
		return ok && Equal(av.Num, bv.Num) && Equal(av.Den, bv.Den)
	case *PowExpr:
		bv, ok := b.(*PowExpr)
		return ok && Equal(av.Base, bv.Base) && Equal(av.Exp, bv.Exp)
	case *SinExpr:
		bv, ok := b.(*SinExpr)
		return ok && Equal(av.X, bv.X)
	case *CosExpr:
		bv, ok := b.(*CosExpr)
		return ok && Equal(av.X, bv.X)
	case *ExpExpr:
		bv, ok := b.(*ExpExpr)
		return ok && Equal(av.X, bv.X)
	case *DerivExpr:
		bv, ok := b.(*DerivExpr)
		return ok && av.T == bv.T && Equal(av.Y, bv.Y)
	}
	return false
}

// Substitute rebuilds e replacing every subexpression structurally
// equal to x with repl. Used by the classifier to carry a solved
// unknown into the rest of the MNA.
//
// A *DerivExpr is never descended into: D(y, t) is tracked as one
// atomic unknown (see IsD/DOf), the same way a *Var is, so replacing y
// itself must not reach inside an unrelated derivative that happens to
// mention y — that derivative is a distinct unknown the classifier's
// stage 3 is responsible for, not this one.
func Substitute(e, x, repl Expr) Expr {
	if Equal(e, x) {
		return repl
	}
	switch v := e.(type) {
	case *Var, Const, *DerivExpr:
		return e
	case *NegExpr:
		return Negate(Substitute(v.X, x, repl))
	case *AddExpr:
		terms := make([]Expr, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = Substitute(t, x, repl)
		}
		return Sum(terms...)
	case *MulExpr:
		factors := make([]Expr, len(v.Factors))
		for i, f := range v.Factors {
			factors[i] = Substitute(f, x, repl)
		}
		return Product(factors...)
	case *DivExpr:
		return Quotient(Substitute(v.Num, x, repl), Substitute(v.Den, x, repl))
	case *PowExpr:
		return Power(Substitute(v.Base, x, repl), Substitute(v.Exp, x, repl))
	case *SinExpr:
		return SinOf(Substitute(v.X, x, repl))
	case *CosExpr:
		return CosOf(Substitute(v.X, x, repl))
	case *ExpExpr:
		return ExpOf(Substitute(v.X, x, repl))
	}
	return e
}
