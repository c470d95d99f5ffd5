// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"github.com/cpmech/gomna/bytecode"
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// Spec names the inputs, outputs, and parameters a kernel must expose,
// in the order the caller will bind values to them.
type Spec struct {
	Inputs     []*symbolic.Var
	Params     []*symbolic.Var
	Outputs    map[string]symbolic.Expr
	OutputList []string // iteration order for Outputs, since map order is not stable
}

// Build compiles a classified Strata into a Kernel. It is the one
// place dead-code elimination (IsExpressionUsed) and the three-program
// split happen; everything downstream just replays the result.
func Build(st *mna.Strata, spec Spec) (*Kernel, error) {
	k := &Kernel{
		InputRefs:  make(map[string]bytecode.Ref),
		ParamRefs:  make(map[string]bytecode.Ref),
		OutputRefs: make(map[string]bytecode.Ref),
	}
	regs := symbolic.Registers{}

	k.Pre = bytecode.NewProgram(0)
	k.T = k.Pre.Alloc()
	regs[st.T] = k.T
	k.T0 = k.Pre.Alloc()
	regs[st.T0] = k.T0
	k.H = k.Pre.Alloc()
	regs[st.H] = k.H

	for _, in := range spec.Inputs {
		r := k.Pre.Alloc()
		regs[in] = r
		k.InputRefs[in.Name] = r
	}
	for _, p := range spec.Params {
		r := k.Pre.Alloc()
		regs[p] = r
		k.ParamRefs[p.Name] = r
	}

	// stable iteration over DiffPrev: strata construction order is
	// deterministic (components analyzed in netlist order), but a Go
	// map is not, so the caller's Spec does not depend on ranging over
	// it directly — PrevRefs is indexed by the same order as
	// st.Differential below, established once here.
	prevOf := make(map[symbolic.Expr]bytecode.Ref, len(st.DiffPrev))
	for _, arrow := range st.Differential {
		prev := st.DiffPrev[arrow.Left]
		r := k.Pre.Alloc()
		regs[prev] = r
		prevOf[arrow.Left] = r
		k.PrevRefs = append(k.PrevRefs, r)
	}

	for _, u := range st.Unknowns {
		r := k.Pre.Alloc()
		regs[u] = r
		k.Unknowns = append(k.Unknowns, r)
	}

	for _, arrow := range pruneTrivial(st, spec) {
		bindArrow(k.Pre, regs, arrow)
	}

	k.Iter = bytecode.NewProgram(k.Pre.NRegs)
	for _, arrow := range st.F0 {
		bindArrow(k.Iter, regs, arrow)
	}
	plan := symbolic.NSolve(st.Nonlinear, st.Unknowns)
	// NSolve differentiates with every f0 variable held fixed; the chain
	// rule through each f0 binding completes the Jacobian.
	for i, row := range plan.Jacobian {
		for j, u := range st.Unknowns {
			for _, f := range st.F0 {
				row[j] = symbolic.Sum(row[j], symbolic.Product(symbolic.D(plan.Residuals[i], f.Left), symbolic.D(f.Right, u)))
			}
		}
	}
	for _, r := range plan.Residuals {
		k.Residuals = append(k.Residuals, symbolic.Compile(k.Iter, r, regs))
	}
	for _, row := range plan.Jacobian {
		jrow := make([]bytecode.Ref, len(row))
		for j, d := range row {
			jrow[j] = symbolic.Compile(k.Iter, d, regs)
		}
		k.Jacobian = append(k.Jacobian, jrow)
	}

	k.Post = bytecode.NewProgram(k.Iter.NRegs)

	// Every new-step value is computed into its own fresh register
	// before any Prev slot is overwritten, and only then committed in a
	// second pass: binding and committing arrow-by-arrow would let a
	// later arrow that references an earlier arrow's own Prev (two
	// reactive elements coupled through a shared node) read the
	// earlier arrow's just-written new value instead of the true
	// previous-step value, corrupting trapezoidal old-state semantics
	// (spec's evaluate-all-then-commit rule).
	newVals := make([]bytecode.Ref, len(st.Differential))
	for i, arrow := range st.Differential {
		newVals[i] = bindArrow(k.Post, regs, arrow)
	}
	for i, arrow := range st.Differential {
		k.Post.EmitCopyInto(prevOf[arrow.Left], newVals[i])
	}
	for _, arrow := range st.Linear {
		bindArrow(k.Post, regs, arrow)
	}
	for _, name := range spec.OutputList {
		r := symbolic.Compile(k.Post, spec.Outputs[name], regs)
		k.OutputRefs[name] = r
	}

	k.NRegs = k.Post.NRegs
	return k, nil
}

// bindArrow compiles arrow.Right into prog and registers arrow.Left as
// already holding that value, so any later reference to arrow.Left —
// anywhere in any of the three programs, since they share regs —
// resolves to the same register instead of being recompiled or, if
// atomic and unregistered, rejected by Compile.
func bindArrow(prog *bytecode.Program, regs symbolic.Registers, arrow symbolic.Arrow) bytecode.Ref {
	r := symbolic.Compile(prog, arrow.Right, regs)
	regs[arrow.Left] = r
	return r
}
