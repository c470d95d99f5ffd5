// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package symbolic is a small computer-algebra facility: an expression
// tree with substitution, differentiation, expansion, and equation
// solving primitives — real, but intentionally modest, since the
// product of this repository is the MNA classifier and kernel builder
// that consume it, not a general-purpose CAS.
package symbolic

import (
	"strconv"

	"github.com/cpmech/gosl/chk"
)

// Expr is one node of the symbolic expression tree.
type Expr interface {
	// Evaluate computes this expression's value given bindings for
	// every Var and Deriv node it structurally references.
	Evaluate(b Bindings) float64
	// IsFunctionOf reports whether this expression depends on x,
	// where x is typically a *Var or a *DerivExpr.
	IsFunctionOf(x Expr) bool
	String() string
}

// Bindings maps atomic expressions (Vars, Derivs) to numeric values.
type Bindings map[Expr]float64

// Var is a named scalar unknown or input: a node voltage, a branch
// current, a parameter, or an external input signal.
type Var struct {
	Name string
}

// NewVar allocates a fresh named variable. Distinct calls with the
// same name are distinct variables — identity is by pointer.
func NewVar(name string) *Var { return &Var{Name: name} }

func (v *Var) Evaluate(b Bindings) float64 {
	if val, ok := b[v]; ok {
		return val
	}
	chk.Panic("symbolic: variable %q has no binding", v.Name)
	return 0
}

func (v *Var) IsFunctionOf(x Expr) bool { return Equal(v, x) }
func (v *Var) String() string           { return v.Name }

// Const is a literal numeric constant.
type Const float64

func (c Const) Evaluate(b Bindings) float64 { return float64(c) }
func (c Const) IsFunctionOf(x Expr) bool    { return Equal(c, x) }
func (c Const) String() string              { return strconv.FormatFloat(float64(c), 'g', -1, 64) }

// Zero and One are shared trivial constants.
var (
	Zero Expr = Const(0)
	One  Expr = Const(1)
)

// AddExpr is an n-ary sum. Build via Sum, which flattens and folds.
type AddExpr struct{ Terms []Expr }

func (a *AddExpr) Evaluate(b Bindings) float64 {
	sum := 0.0
	for _, t := range a.Terms {
		sum += t.Evaluate(b)
	}
	return sum
}
func (a *AddExpr) IsFunctionOf(x Expr) bool { return isFunctionOf(a, x, a.Terms...) }
func (a *AddExpr) String() string           { return joinOp(a.Terms, " + ") }

// MulExpr is an n-ary product. Build via Product, which flattens and folds.
type MulExpr struct{ Factors []Expr }

func (m *MulExpr) Evaluate(b Bindings) float64 {
	p := 1.0
	for _, f := range m.Factors {
		p *= f.Evaluate(b)
	}
	return p
}
func (m *MulExpr) IsFunctionOf(x Expr) bool { return isFunctionOf(m, x, m.Factors...) }
func (m *MulExpr) String() string           { return joinOp(m.Factors, " * ") }

// NegExpr is unary negation.
type NegExpr struct{ X Expr }

func (n *NegExpr) Evaluate(b Bindings) float64 { return -n.X.Evaluate(b) }
func (n *NegExpr) IsFunctionOf(x Expr) bool    { return isFunctionOf(n, x, n.X) }
func (n *NegExpr) String() string              { return "-(" + n.X.String() + ")" }

// DivExpr is division Num/Den.
type DivExpr struct{ Num, Den Expr }

func (d *DivExpr) Evaluate(b Bindings) float64 { return d.Num.Evaluate(b) / d.Den.Evaluate(b) }
func (d *DivExpr) IsFunctionOf(x Expr) bool    { return isFunctionOf(d, x, d.Num, d.Den) }
func (d *DivExpr) String() string              { return "(" + d.Num.String() + "/" + d.Den.String() + ")" }

// PowExpr is Base^Exp.
type PowExpr struct{ Base, Exp Expr }

func (p *PowExpr) Evaluate(b Bindings) float64 { return mathPow(p.Base.Evaluate(b), p.Exp.Evaluate(b)) }
func (p *PowExpr) IsFunctionOf(x Expr) bool    { return isFunctionOf(p, x, p.Base, p.Exp) }
func (p *PowExpr) String() string              { return "(" + p.Base.String() + "^" + p.Exp.String() + ")" }

// SinExpr, CosExpr, ExpExpr are unary transcendental functions.
type SinExpr struct{ X Expr }
type CosExpr struct{ X Expr }
type ExpExpr struct{ X Expr }

func (s *SinExpr) Evaluate(b Bindings) float64 { return mathSin(s.X.Evaluate(b)) }
func (s *SinExpr) IsFunctionOf(x Expr) bool    { return isFunctionOf(s, x, s.X) }
func (s *SinExpr) String() string              { return "sin(" + s.X.String() + ")" }

func (c *CosExpr) Evaluate(b Bindings) float64 { return mathCos(c.X.Evaluate(b)) }
func (c *CosExpr) IsFunctionOf(x Expr) bool    { return isFunctionOf(c, x, c.X) }
func (c *CosExpr) String() string              { return "cos(" + c.X.String() + ")" }

func (e *ExpExpr) Evaluate(b Bindings) float64 { return mathExp(e.X.Evaluate(b)) }
func (e *ExpExpr) IsFunctionOf(x Expr) bool    { return isFunctionOf(e, x, e.X) }
func (e *ExpExpr) String() string              { return "exp(" + e.X.String() + ")" }

// DerivExpr represents D(Y, T): the time-derivative of Y. It is
// treated as an atomic unknown by the classifier (IsD/DOf below) even
// though it structurally wraps Y.
type DerivExpr struct {
	Y Expr
	T *Var
}

// Deriv constructs the "is a derivative of" marker node. This is
// distinct from D, the differentiation operator below.
func Deriv(y Expr, t *Var) Expr { return &DerivExpr{Y: y, T: t} }

func (d *DerivExpr) Evaluate(b Bindings) float64 {
	if val, ok := b[d]; ok {
		return val
	}
	chk.Panic("symbolic: derivative %s has no binding", d.String())
	return 0
}
func (d *DerivExpr) IsFunctionOf(x Expr) bool { return isFunctionOf(d, x, d.Y) }
func (d *DerivExpr) String() string           { return "d(" + d.Y.String() + ")/d(" + d.T.Name + ")" }

// IsD reports whether e is a D(y,t) node.
func IsD(e Expr) bool {
	_, ok := e.(*DerivExpr)
	return ok
}

// DOf returns the underivative y of a D(y,t) node, and the time var.
func DOf(e Expr) (y Expr, t *Var) {
	d, ok := e.(*DerivExpr)
	if !ok {
		chk.Panic("symbolic: DOf called on non-derivative %s", e.String())
	}
	return d.Y, d.T
}

// isFunctionOf checks structural self-equality before recursing into
// children — shared by every compound node's IsFunctionOf method.
func isFunctionOf(self Expr, x Expr, children ...Expr) bool {
	if Equal(self, x) {
		return true
	}
	for _, c := range children {
		if c.IsFunctionOf(x) {
			return true
		}
	}
	return false
}

func joinOp(parts []Expr, sep string) string {
	s := "("
	for i, p := range parts {
		if i > 0 {
			s += sep
		}
		s += p.String()
	}
	return s + ")"
}
