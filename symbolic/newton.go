// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// NewtonPlan is the symbolic output of NSolve: the residual vector and
// its Jacobian, both still in terms of Unknowns (read at run time from
// the previous-iteration register) and whatever other bound
// expressions (inputs, already-solved linear/differential locals) the
// residual equations reference.
//
// The kernel builder compiles Residuals and Jacobian once, then
// re-executes the same compiled programs every Newton iteration, so
// the emitted code has a fixed, predictable instruction mix regardless
// of how many iterations a given call runs.
type NewtonPlan struct {
	Unknowns  []Expr
	Residuals []Expr   // Residuals[i] for equations[i]
	Jacobian  [][]Expr // Jacobian[i][j] = d Residuals[i] / d Unknowns[j]
}

// NSolve builds the Newton plan for the given non-linear residual
// system over unknowns. It does not itself iterate — the caller (the
// kernel builder) re-evaluates the compiled plan a fixed number of
// times per sample.
func NSolve(equations []Equation, unknowns []Expr) NewtonPlan {
	plan := NewtonPlan{Unknowns: unknowns}
	plan.Residuals = make([]Expr, len(equations))
	plan.Jacobian = make([][]Expr, len(equations))
	for i, eq := range equations {
		r := Expand(Residual(eq))
		plan.Residuals[i] = r
		row := make([]Expr, len(unknowns))
		for j, u := range unknowns {
			row[j] = Expand(D(r, u))
		}
		plan.Jacobian[i] = row
	}
	return plan
}
