// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// Solve returns as many closed-form solutions as it can derive for
// the given unknowns over the given system, by repeatedly picking an
// equation/unknown pair where the unknown's coefficient (its partial
// derivative) is free of that unknown and both the coefficient and the
// rest of the equation are free of every other still-unsolved unknown,
// isolating it, substituting the result into the remaining equations,
// and repeating until no further progress is made. Simultaneous
// equations that couple two open unknowns are left unsolved. This is the one
// primitive shared by the classifier's trivial elimination and linear
// closure passes.
//
// Order within a pass is insertion order, so repeated calls against
// the same input are deterministic.
func Solve(equations []Equation, unknowns []Expr) []Arrow {
	arrows, _, _ := solveFull(equations, unknowns)
	return arrows
}

func dependsOnOther(e Expr, unknowns []Expr, skip int) bool {
	for i, u := range unknowns {
		if i == skip {
			continue
		}
		if e.IsFunctionOf(u) {
			return true
		}
	}
	return false
}

func removeAndSubstituteEq(eqs []Equation, drop int, x, repl Expr) []Equation {
	out := make([]Equation, 0, len(eqs)-1)
	for i, eq := range eqs {
		if i == drop {
			continue
		}
		out = append(out, Equation{
			Lhs: Substitute(eq.Lhs, x, repl),
			Rhs: Substitute(eq.Rhs, x, repl),
		})
	}
	return out
}

func removeUnknown(unk []Expr, drop int) []Expr {
	out := make([]Expr, 0, len(unk)-1)
	for i, u := range unk {
		if i != drop {
			out = append(out, u)
		}
	}
	return out
}

// Remaining reports the equations and unknowns Solve could not close
// over — useful for the classifier to know what to hand to the next
// stage. It re-derives the same fixed point as Solve; callers that
// need both the arrows and the remainder should use SolveRemainder.
func Remaining(equations []Equation, unknowns []Expr) ([]Equation, []Expr) {
	_, eqs, unk := solveFull(equations, unknowns)
	return eqs, unk
}

// SolveRemainder is Solve plus the equations/unknowns left unsolved.
func SolveRemainder(equations []Equation, unknowns []Expr) (arrows []Arrow, eqs []Equation, unk []Expr) {
	return solveFull(equations, unknowns)
}

func solveFull(equations []Equation, unknowns []Expr) (arrows []Arrow, eqs []Equation, unk []Expr) {
	eqs = append([]Equation{}, equations...)
	unk = append([]Expr{}, unknowns...)
	for {
		progressed := false
		for ei := 0; ei < len(eqs) && !progressed; ei++ {
			res := Expand(Residual(eqs[ei]))
			for ui, u := range unk {
				if !res.IsFunctionOf(u) {
					continue
				}
				coeff := Expand(D(res, u))
				if coeff.IsFunctionOf(u) {
					continue
				}
				rest := Expand(Substitute(res, u, Const(0)))
				if dependsOnOther(rest, unk, ui) || dependsOnOther(coeff, unk, ui) {
					continue
				}
				solved := Quotient(Negate(rest), coeff)
				arrows = append(arrows, Arrow{Left: u, Right: solved})
				eqs = removeAndSubstituteEq(eqs, ei, u, solved)
				unk = removeUnknown(unk, ui)
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}
	return
}
