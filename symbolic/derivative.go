// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

import "github.com/cpmech/gosl/chk"

// D differentiates e with respect to x, where x is an atomic
// expression — usually a *Var, occasionally a *DerivExpr (when the
// classifier differentiates with respect to a dy/dt unknown during
// stage 2's linear-in-x test or the Newton Jacobian). Compound x is
// not supported: no error is raised, but only a subexpression
// structurally equal to x is differentiated as x.
func D(e, x Expr) Expr {
	if Equal(e, x) {
		return Const(1)
	}
	if !e.IsFunctionOf(x) {
		return Const(0)
	}
	switch v := e.(type) {
	case *Var, Const, *DerivExpr:
		// A *Var or Const that is a function of x is equal to it, so
		// only a *DerivExpr reaches here: D(y,t) structurally mentions
		// y but is a distinct atomic unknown, so its partial is zero.
		return Const(0)
	case *NegExpr:
		return Negate(D(v.X, x))
	case *AddExpr:
		terms := make([]Expr, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = D(t, x)
		}
		return Sum(terms...)
	case *MulExpr:
		// generalized product rule: d(f1*f2*...*fn) = sum_i d(fi) * prod_{j!=i} fj
		var terms []Expr
		for i := range v.Factors {
			rest := make([]Expr, 0, len(v.Factors))
			rest = append(rest, D(v.Factors[i], x))
			for j, fj := range v.Factors {
				if j != i {
					rest = append(rest, fj)
				}
			}
			terms = append(terms, Product(rest...))
		}
		return Sum(terms...)
	case *DivExpr:
		// quotient rule
		dNum := Product(D(v.Num, x), v.Den)
		dDen := Product(v.Num, D(v.Den, x))
		return Quotient(Sub(dNum, dDen), Power(v.Den, Const(2)))
	case *PowExpr:
		c, ok := v.Exp.(Const)
		if !ok {
			chk.Panic("symbolic: D does not support non-constant exponents (%s)", v.String())
		}
		return Product(Const(float64(c)), Power(v.Base, Const(float64(c)-1)), D(v.Base, x))
	case *SinExpr:
		return Product(CosOf(v.X), D(v.X, x))
	case *CosExpr:
		return Negate(Product(SinOf(v.X), D(v.X, x)))
	case *ExpExpr:
		return Product(ExpOf(v.X), D(v.X, x))
	}
	chk.Panic("symbolic: D: unsupported expression type %T", e)
	return Const(0)
}
