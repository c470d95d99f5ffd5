// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel turns a classified mna.Strata into the three
// straight-line bytecode programs a sample loop replays: Pre (trivial
// elimination, seeded from this sample's inputs and the previous
// sample's state), Iter (the Newton residual/Jacobian block, replayed
// once per iteration), and Post (differential and linear closure,
// outputs, and the global-state commit for next sample). All three
// share one register file, so a value computed in Pre is visible to
// Iter and Post without copying (bytecode/program.go's "caller owns
// the register file's storage" contract).
package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gomna/bytecode"
)

// Kernel is one compiled circuit, specialized for a fixed set of
// input, output, and parameter names: kernels are cached by that
// signature, not rebuilt every call.
type Kernel struct {
	Pre, Iter, Post *bytecode.Program
	NRegs           int

	T, T0, H bytecode.Ref

	InputRefs  map[string]bytecode.Ref
	ParamRefs  map[string]bytecode.Ref
	OutputRefs map[string]bytecode.Ref

	// PrevRefs holds one register per differential state, in
	// declaration order: Post reads it as last sample's value, then
	// overwrites it in place with this sample's, so the same slot
	// serves both roles across the sample loop.
	PrevRefs []bytecode.Ref

	Unknowns  []bytecode.Ref   // Newton guess registers
	Residuals []bytecode.Ref   // Iter output: residual vector
	Jacobian  [][]bytecode.Ref // Iter output: dResiduals[i]/dUnknowns[j]
}

// NewRegisters allocates a fresh register file sized for this kernel,
// zeroed — the state every new simulation (or Reset) starts from.
func (k *Kernel) NewRegisters() []float64 {
	return make([]float64, k.NRegs)
}

// Step advances regs by one sample: h and t/t0 must already be set by
// the caller, along with every input and parameter register. It runs
// Pre once, the Newton block a fixed iterations times as a do-while
// loop — it always runs at least once when there are unknowns to
// solve, even for iterations == 0 — and Post once.
func (k *Kernel) Step(regs []float64, iterations int) error {
	k.Pre.Run(regs)
	if len(k.Unknowns) > 0 {
		n := len(k.Unknowns)
		jacFlat := make([]float64, n*n)
		residual := make([]float64, n)
		delta := mat.NewVecDense(n, nil)
		for it := 0; ; it++ {
			k.Iter.Run(regs)
			for i, r := range k.Residuals {
				residual[i] = regs[r]
			}
			for i, row := range k.Jacobian {
				for j, r := range row {
					jacFlat[i*n+j] = regs[r]
				}
			}
			A := mat.NewDense(n, n, jacFlat)
			b := mat.NewVecDense(n, residual)
			if err := delta.SolveVec(A, b); err != nil {
				return NewtonError{Iteration: it, Err: err}
			}
			for i, u := range k.Unknowns {
				regs[u] -= delta.AtVec(i)
			}
			if it+1 >= iterations {
				break
			}
		}
	}
	k.Post.Run(regs)
	return nil
}

// NewtonError reports that the per-iteration linear solve failed —
// typically a singular Jacobian.
type NewtonError struct {
	Iteration int
	Err       error
}

func (e NewtonError) Error() string {
	return fmt.Sprintf("kernel: Newton iteration %d: linear solve failed: %v", e.Iteration, e.Err)
}
