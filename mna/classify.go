// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mna

import (
	"fmt"

	"github.com/cpmech/gomna/discretize"
	"github.com/cpmech/gomna/symbolic"
)

// Strata is the classifier's output: the decomposition a kernel
// builder compiles directly, one stage per field.
type Strata struct {
	T, T0 *symbolic.Var // current and previous-sample time
	H     *symbolic.Var // step size

	Trivial      []symbolic.Arrow              // stage 1: closed-form, no dependency on other unknowns
	F0           []symbolic.Arrow              // stage 2: extracted non-linear sub-expressions
	Differential []symbolic.Arrow              // stage 3: trapezoidal next-step bindings
	DiffPrev     map[symbolic.Expr]*symbolic.Var // y -> global holding y's previous-step value
	Linear       []symbolic.Arrow              // stage 4: closed-form after substituting stages 1-3
	Nonlinear    []symbolic.Equation           // stage 5: residual system handed to Newton
	Unknowns     []symbolic.Expr               // stage 5: unknowns Newton solves for
}

// Classify runs the five-stage pipeline over sys: trivial elimination,
// non-linear (f0) extraction, differential discretization, linear
// closure, and whatever residual system is left for Newton iteration.
// t and t0 are the symbolic current- and previous-sample time
// variables; h is the symbolic step size.
func Classify(sys *System, t, t0, h *symbolic.Var) (*Strata, error) {
	st := &Strata{T: t, T0: t0, H: h, DiffPrev: make(map[symbolic.Expr]*symbolic.Var)}

	trivial, eqs1, unk1 := symbolic.SolveRemainder(sys.Equations, sys.Unknowns)
	st.Trivial = trivial

	eqs2, err := extractNonlinear(st, eqs1, unk1)
	if err != nil {
		return nil, err
	}

	remaining, leftoverAlgebraic, err := resolveDifferential(st, eqs2, unk1, discretize.New(h), t, t0)
	if err != nil {
		return nil, err
	}

	return closeLinearAndResidual(st, remaining, leftoverAlgebraic)
}

// extractNonlinear implements stage 2: every residual's terms are
// tested against the still-open unknowns; any term that fails the
// per-term linearity test is folded into a fresh f0 variable, so that
// every later stage only ever sees linear equations.
func extractNonlinear(st *Strata, eqs1 []symbolic.Equation, unk1 []symbolic.Expr) ([]symbolic.Equation, error) {
	eqs2 := make([]symbolic.Equation, 0, len(eqs1))
	for i, eq := range eqs1 {
		res := symbolic.Expand(symbolic.Residual(eq))
		var linear, nonlinear []symbolic.Expr
		for _, term := range symbolic.Terms(res) {
			if symbolic.IsLinearTerm(term, unk1) {
				linear = append(linear, term)
			} else {
				nonlinear = append(nonlinear, term)
			}
		}
		if len(nonlinear) == 0 {
			eqs2 = append(eqs2, symbolic.Equation{Lhs: res, Rhs: symbolic.Const(0)})
			continue
		}
		f0 := symbolic.NewVar(fmt.Sprintf("f0_%d", i))
		st.F0 = append(st.F0, symbolic.Arrow{Left: f0, Right: symbolic.Sum(nonlinear...)})
		eqs2 = append(eqs2, symbolic.Equation{Lhs: symbolic.Sum(append(linear, symbolic.Expr(f0))...), Rhs: symbolic.Const(0)})
	}
	return eqs2, nil
}

// resolveDifferential implements stage 3: algebraic unknowns unrelated
// to any capacitor/inductor state are solved away first, then each
// dy/dt unknown is isolated in turn and handed to the discretizer,
// which returns a closed-form next-step binding for y.
func resolveDifferential(st *Strata, eqs2 []symbolic.Equation, unk1 []symbolic.Expr, disc *discretize.Discretizer, t, t0 *symbolic.Var) ([]symbolic.Equation, []symbolic.Expr, error) {
	var dydt, algebraic []symbolic.Expr
	for _, u := range unk1 {
		if symbolic.IsD(u) {
			dydt = append(dydt, u)
		} else {
			algebraic = append(algebraic, u)
		}
	}

	// Every differential unknown gets its previous-step global up
	// front, in dydt's own order, regardless of which one is
	// discretized first below: two reactive elements coupled through a
	// resistor (a two-stage RC ladder, say) each reference the other's
	// node voltage directly in their own KCL equation, and that
	// coupling has to resolve to the OTHER element's own Prev global —
	// not a bare, not-yet-registered node variable, and not that
	// element's own not-yet-computed new-step value.
	units := make([]discretize.DiffUnknown, len(dydt))
	for i, d := range dydt {
		y, _ := symbolic.DOf(d)
		units[i] = discretize.DiffUnknown{Y: y, DyDt: d, Prev: symbolic.NewVar(y.String() + "_prev")}
	}

	related := make(map[symbolic.Expr]bool)
	for _, u := range units {
		related[u.Y] = true
	}

	// An algebraic unknown some f0 binding depends on is reserved for
	// Newton (stage 5), even when it is unrelated to any differential
	// state — trivially eliminating it here would produce a Linear
	// arrow whose right-hand side circularly depends on the very f0
	// that still needs this unknown's converged value.
	nonlinearBound := make(map[symbolic.Expr]bool)
	for _, f0 := range st.F0 {
		for _, a := range algebraic {
			if f0.Right.IsFunctionOf(a) {
				nonlinearBound[a] = true
			}
		}
	}

	var unrelated []symbolic.Expr
	for _, a := range algebraic {
		if !related[a] && !nonlinearBound[a] {
			unrelated = append(unrelated, a)
		}
	}

	preArrows, eqs3, stillUnrelated := symbolic.SolveRemainder(eqs2, unrelated)
	st.Linear = append(st.Linear, preArrows...)

	remaining := eqs3
	resolved := make(map[symbolic.Expr]bool)
	for i, unit := range units {
		arrows, rest, _ := symbolic.SolveRemainder(remaining, []symbolic.Expr{unit.DyDt})
		if len(arrows) != 1 {
			return nil, nil, ConfigurationError{Reason: "could not isolate rate for " + unit.DyDt.String()}
		}
		others := make([]discretize.DiffUnknown, 0, len(units)-1)
		for j, u := range units {
			if j != i {
				others = append(others, u)
			}
		}
		arrow, err := disc.NDSolve(unit, arrows[0].Right, others, t, t0)
		if err != nil {
			return nil, nil, err
		}
		st.Differential = append(st.Differential, arrow)
		st.DiffPrev[unit.Y] = unit.Prev
		remaining = rest
		resolved[unit.Y] = true
	}

	// leftoverAlgebraic collects everything still open after this stage:
	// unknowns the pre-pass above couldn't close trivially, every
	// f0-bound unknown (reserved for Newton regardless of relation to
	// any differential state), and any related unknown (some dy/dt's
	// underivative) the loop above did not resolve. Every related
	// unknown the loop reaches is resolved, so in practice that last
	// case adds nothing.
	leftoverAlgebraic := append([]symbolic.Expr{}, stillUnrelated...)
	for _, a := range algebraic {
		if nonlinearBound[a] {
			leftoverAlgebraic = append(leftoverAlgebraic, a)
		} else if related[a] && !resolved[a] {
			leftoverAlgebraic = append(leftoverAlgebraic, a)
		}
	}

	return remaining, leftoverAlgebraic, nil
}

// closeLinearAndResidual implements stages 4 and 5: unknowns that
// appear in an f0 binding's right-hand side are reserved for Newton;
// everything else still open is attempted via one more Solve pass
// (stage 4), and whatever that pass cannot close becomes the residual
// system handed to NSolve by the kernel builder.
func closeLinearAndResidual(st *Strata, remaining []symbolic.Equation, leftoverAlgebraic []symbolic.Expr) (*Strata, error) {
	newtonBound := make(map[symbolic.Expr]bool)
	for _, f0 := range st.F0 {
		for _, u := range leftoverAlgebraic {
			if f0.Right.IsFunctionOf(u) {
				newtonBound[u] = true
			}
		}
	}
	var stage4Unknowns []symbolic.Expr
	for _, u := range leftoverAlgebraic {
		if !newtonBound[u] {
			stage4Unknowns = append(stage4Unknowns, u)
		}
	}

	linArrows, eqs5, unk5 := symbolic.SolveRemainder(remaining, stage4Unknowns)
	st.Linear = append(st.Linear, linArrows...)

	st.Nonlinear = eqs5
	st.Unknowns = append(unk5, newtonUnknownsOnly(leftoverAlgebraic, newtonBound)...)

	if len(st.Nonlinear) > 0 && len(st.Unknowns) == 0 {
		return nil, ConfigurationError{Reason: "unsolvable system: residual equations remain with no assigned unknown"}
	}
	if len(st.Nonlinear) != len(st.Unknowns) {
		return nil, ConfigurationError{Reason: "non-linear residual system is not square"}
	}
	return st, nil
}

func newtonUnknownsOnly(all []symbolic.Expr, marked map[symbolic.Expr]bool) []symbolic.Expr {
	var out []symbolic.Expr
	for _, u := range all {
		if marked[u] {
			out = append(out, u)
		}
	}
	return out
}
