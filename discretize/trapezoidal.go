// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package discretize applies trapezoidal integration to the
// differential unknowns the classifier isolates, turning an implicit
// ODE dy/dt = f(t,y) into a closed-form next-step expression for y: a
// small struct holding only the symbolic step variable h. The h/2
// coefficient is built symbolically inside NDSolve, so one Discretizer
// serves every step size; h's value is supplied at run time.
package discretize

import "github.com/cpmech/gomna/symbolic"

// Discretizer applies the trapezoidal rule
//
//	y = y0 + (h/2)(f(t,y) + f(t0,y0))
//
// given dy/dt = f(t,y), step h, and the previous sample (t0, y0,
// f(t0,y0)). This is the only integration rule implemented.
type Discretizer struct {
	H *symbolic.Var // symbolic step length, bound to a parameter at kernel build time
}

// New returns a trapezoidal discretizer parameterized by the symbolic
// step variable h.
func New(h *symbolic.Var) *Discretizer {
	return &Discretizer{H: h}
}

// DiffUnknown names one differential unknown: Y is the state variable,
// DyDt is D(Y, T), and Prev is the fresh symbol the runtime binds to
// Y's previous-step register.
type DiffUnknown struct {
	Y    symbolic.Expr
	DyDt symbolic.Expr
	Prev *symbolic.Var
}

// NDSolve discretizes dydt = rate (already isolated for a DiffUnknown
// by symbolic.Solve, with rate expressed in terms of Y, T, inputs and
// other already-solved unknowns) and returns the closed-form next-step
// binding y := (trapezoidal solution), by building the implicit
// equation
//
//	y - prev - (h/2)(rate(t,y) + rate(t0,prev))
//
// and isolating y with the same general linear solver the classifier
// uses for trivial elimination and linear closure — valid because by
// the time this runs, non-linear extraction has already pulled every
// non-linear term into f0, so rate is guaranteed linear in y.
//
// rate may still reference another reactive element's state directly —
// two capacitors coupled through a resistor, say, where each node's
// KCL equation mentions the other node's voltage. others lists every
// other differential unknown open at this point in a fixed order; each
// one's own Y is substituted by its Prev everywhere in rate before the
// implicit equation is built, so the equation solved here is always in
// the single unknown unk.Y. This couples the two states through their
// shared previous-step value rather than solving every reactive
// element's new-step value as one simultaneous linear system — one
// order of h less accurate on the coupling term than a true
// simultaneous trapezoidal step, but it keeps each element's implicit
// equation solvable on its own with the same one-equation, one-unknown
// Solve call used everywhere else in this package, and converges to
// the same answer as h shrinks (oversampling already drives h well
// below the circuit's time constants).
func (d *Discretizer) NDSolve(unk DiffUnknown, rate symbolic.Expr, others []DiffUnknown, t, t0 *symbolic.Var) (symbolic.Arrow, error) {
	for _, o := range others {
		rate = symbolic.Substitute(rate, o.Y, o.Prev)
	}
	rateOld := symbolic.Substitute(symbolic.Substitute(rate, t, t0), unk.Y, unk.Prev)
	half := symbolic.Quotient(d.H, symbolic.Const(2))
	implicit := symbolic.Sub(
		symbolic.Sub(unk.Y, unk.Prev),
		symbolic.Product(half, symbolic.Sum(rate, rateOld)),
	)
	arrows := symbolic.Solve([]symbolic.Equation{{Lhs: implicit, Rhs: symbolic.Const(0)}}, []symbolic.Expr{unk.Y})
	if len(arrows) != 1 {
		return symbolic.Arrow{}, ErrNotLinear{Y: unk.Y}
	}
	return arrows[0], nil
}

// ErrNotLinear is returned when the discretizer's implicit equation
// could not be closed-form solved for y — meaning the classifier
// handed stage 3 an equation stage 2 should have linearized first.
type ErrNotLinear struct {
	Y symbolic.Expr
}

func (e ErrNotLinear) Error() string {
	return "discretize: could not isolate " + e.Y.String() + " after trapezoidal substitution"
}
