// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// Expand distributes products over sums and flattens nested sums,
// so that Terms below returns a genuine list of additive monomials.
// Division and the transcendental functions are not distributed into
// — their arguments are expanded, but the node itself is left intact,
// which is sufficient for the affine circuit expressions this module
// classifies: the non-linear extraction pass only needs term-level
// structure, not a full polynomial normal form.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case *NegExpr:
		return negateExpanded(Expand(v.X))
	case *AddExpr:
		var terms []Expr
		for _, t := range v.Terms {
			terms = append(terms, Terms(Expand(t))...)
		}
		return Sum(terms...)
	case *MulExpr:
		factorTerms := make([][]Expr, len(v.Factors))
		for i, f := range v.Factors {
			factorTerms[i] = Terms(Expand(f))
		}
		var products []Expr
		var walk func(i int, acc []Expr)
		walk = func(i int, acc []Expr) {
			if i == len(factorTerms) {
				cp := make([]Expr, len(acc))
				copy(cp, acc)
				products = append(products, Product(cp...))
				return
			}
			for _, t := range factorTerms[i] {
				walk(i+1, append(acc, t))
			}
		}
		walk(0, nil)
		return Sum(products...)
	case *DivExpr:
		return Quotient(Expand(v.Num), Expand(v.Den))
	case *PowExpr:
		return Power(Expand(v.Base), v.Exp)
	case *SinExpr:
		return SinOf(Expand(v.X))
	case *CosExpr:
		return CosOf(Expand(v.X))
	case *ExpExpr:
		return ExpOf(Expand(v.X))
	case *DerivExpr:
		return Deriv(Expand(v.Y), v.T)
	default:
		return e
	}
}

// negateExpanded pushes a negation into an already-expanded sum,
// rather than leaving a NegExpr wrapping an AddExpr — so that Terms
// sees one negated term per original term.
func negateExpanded(e Expr) Expr {
	if add, ok := e.(*AddExpr); ok {
		terms := make([]Expr, len(add.Terms))
		for i, t := range add.Terms {
			terms[i] = negateExpanded(t)
		}
		return Sum(terms...)
	}
	return Negate(e)
}

// Terms returns e's top-level additive terms; a non-sum expression is
// its own single term.
func Terms(e Expr) []Expr {
	if add, ok := e.(*AddExpr); ok {
		return add.Terms
	}
	return []Expr{e}
}

// Residual normalizes an equation to "Σ terms = 0" by returning
// lhs - rhs.
func Residual(eq Equation) Expr { return Sub(eq.Lhs, eq.Rhs) }

// IsLinearTerm implements the stage-2 per-term linearity test: T is
// linear in x iff T/x is not a function of x, for some x among
// unknowns. Rather than forming a literal division (which IsFunctionOf
// cannot cancel without full polynomial simplification), the
// coefficient of x is recovered via differentiation: for a term that
// is genuinely a product "x * g(...)", D(T, x) == g(...), independent
// of x — exactly the condition a literal division test would check.
// A term mentioning none of unknowns is vacuously linear (degree 0).
func IsLinearTerm(term Expr, unknowns []Expr) bool {
	depends := false
	for _, u := range unknowns {
		if !term.IsFunctionOf(u) {
			continue
		}
		depends = true
		coeff := Expand(D(term, u))
		if !coeff.IsFunctionOf(u) {
			return true
		}
	}
	return !depends
}
