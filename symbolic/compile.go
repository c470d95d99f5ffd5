// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gomna/bytecode"
)

// Registers maps atomic expressions (Vars, Derivs, and pre-bound
// Consts) to the registers a Program already carries them in — inputs,
// globals, and parameters are registered once by the kernel builder
// before Compile ever walks an Arrow's right-hand side, realizing the
// "no dynamic map lookups at run time" design note: a Const not yet in
// Registers is baked into a fresh constant-load instruction (and
// registered), while an unregistered Var or derivative panics.
type Registers map[Expr]bytecode.Ref

// Compile emits e into prog, returning the register holding its
// value — realized as a flat bytecode program rather than machine
// code.
func Compile(prog *bytecode.Program, e Expr, regs Registers) bytecode.Ref {
	if r, ok := regs[e]; ok {
		return r
	}
	switch v := e.(type) {
	case *Var:
		chk.Panic("symbolic: compile: variable %q was not pre-registered", v.Name)
	case Const:
		r := prog.EmitConst(float64(v))
		regs[v] = r
		return r
	case *DerivExpr:
		chk.Panic("symbolic: compile: derivative %s was not pre-registered", v.String())
	case *NegExpr:
		a := Compile(prog, v.X, regs)
		return prog.Emit(bytecode.OpNeg, a, 0)
	case *AddExpr:
		acc := Compile(prog, v.Terms[0], regs)
		for _, t := range v.Terms[1:] {
			r := Compile(prog, t, regs)
			acc = prog.Emit(bytecode.OpAdd, acc, r)
		}
		return acc
	case *MulExpr:
		acc := Compile(prog, v.Factors[0], regs)
		for _, f := range v.Factors[1:] {
			r := Compile(prog, f, regs)
			acc = prog.Emit(bytecode.OpMul, acc, r)
		}
		return acc
	case *DivExpr:
		a := Compile(prog, v.Num, regs)
		b := Compile(prog, v.Den, regs)
		return prog.Emit(bytecode.OpDiv, a, b)
	case *PowExpr:
		a := Compile(prog, v.Base, regs)
		b := Compile(prog, v.Exp, regs)
		return prog.Emit(bytecode.OpPow, a, b)
	case *SinExpr:
		a := Compile(prog, v.X, regs)
		return prog.Emit(bytecode.OpSin, a, 0)
	case *CosExpr:
		a := Compile(prog, v.X, regs)
		return prog.Emit(bytecode.OpCos, a, 0)
	case *ExpExpr:
		a := Compile(prog, v.X, regs)
		return prog.Emit(bytecode.OpExp, a, 0)
	}
	chk.Panic("symbolic: compile: unsupported expression type %T", e)
	return 0
}
