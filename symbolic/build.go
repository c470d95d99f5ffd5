// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// Sum builds a flattened, folded n-ary addition: nested AddExprs are
// flattened and zero terms are dropped, so that Expand never has to
// re-flatten its own output.
func Sum(terms ...Expr) Expr {
	var flat []Expr
	for _, t := range terms {
		if a, ok := t.(*AddExpr); ok {
			flat = append(flat, a.Terms...)
			continue
		}
		if c, ok := t.(Const); ok && c == 0 {
			continue
		}
		flat = append(flat, t)
	}
	switch len(flat) {
	case 0:
		return Const(0)
	case 1:
		return flat[0]
	default:
		return &AddExpr{Terms: flat}
	}
}

// Sub builds a - b.
func Sub(a, b Expr) Expr { return Sum(a, Negate(b)) }

// Product builds a flattened, folded n-ary product.
func Product(factors ...Expr) Expr {
	var flat []Expr
	for _, f := range factors {
		if m, ok := f.(*MulExpr); ok {
			flat = append(flat, m.Factors...)
			continue
		}
		if c, ok := f.(Const); ok {
			if c == 0 {
				return Const(0)
			}
			if c == 1 {
				continue
			}
		}
		flat = append(flat, f)
	}
	switch len(flat) {
	case 0:
		return Const(1)
	case 1:
		return flat[0]
	default:
		return &MulExpr{Factors: flat}
	}
}

// Negate builds -x, folding double negation and constants.
func Negate(x Expr) Expr {
	if c, ok := x.(Const); ok {
		return Const(-c)
	}
	if n, ok := x.(*NegExpr); ok {
		return n.X
	}
	return &NegExpr{X: x}
}

// Quotient builds num/den.
func Quotient(num, den Expr) Expr {
	if c, ok := den.(Const); ok && c == 1 {
		return num
	}
	return &DivExpr{Num: num, Den: den}
}

// Power builds base^exp.
func Power(base, exp Expr) Expr {
	if c, ok := exp.(Const); ok {
		if c == 1 {
			return base
		}
		if c == 0 {
			return Const(1)
		}
	}
	return &PowExpr{Base: base, Exp: exp}
}

// SinOf, CosOf, ExpOf build the corresponding unary functions.
func SinOf(x Expr) Expr { return &SinExpr{X: x} }
func CosOf(x Expr) Expr { return &CosExpr{X: x} }
func ExpOf(x Expr) Expr { return &ExpExpr{X: x} }
