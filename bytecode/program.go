// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bytecode implements the flat, interpretable instruction tape
// that the kernel builder emits into and the runtime driver executes.
//
// This is a tree-walking interpreter over flat bytecode, specialized per
// (inputs, outputs, parameters) signature. There are no branches or
// jumps — every Program is a straight-line dataflow block, built once
// at kernel-build time and replayed every sample. Control flow (the
// sample loop, the oversample loop, the Newton loop) lives one level
// up, in package kernel.
package bytecode

// Ref addresses one slot in a Program's register file.
type Ref int

// Op identifies one instruction.
type Op int

// Instruction set. Kept deliberately small: everything the symbolic
// layer can produce (Add, Mul, Neg, Div, Pow, Sin, Cos, Exp) reduces to
// these, plus Load/Copy for moving values between registers.
const (
	OpConst Op = iota
	OpCopy
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpPow
	OpSin
	OpCos
	OpExp
)

// Instr is one bytecode instruction: regs[Dst] = f(regs[A], regs[B]).
// Unary ops ignore B; OpConst ignores A and B and uses Imm.
type Instr struct {
	Op   Op
	Dst  Ref
	A, B Ref
	Imm  float64
}

// Program is a straight-line block of instructions over a register
// file of fixed width. NRegs includes every constant, input, local,
// and output slot the block touches; the caller owns the register
// file's storage (see kernel.Kernel) so that globals can be addressed
// by the same Ref space across multiple Programs.
type Program struct {
	Instrs []Instr
	NRegs  int
}

// NewProgram returns an empty program with nregs pre-sized registers
// already reserved (e.g. for globals and inputs shared with other
// programs in the same kernel).
func NewProgram(nregs int) *Program {
	return &Program{NRegs: nregs}
}

// Alloc reserves and returns a fresh register.
func (p *Program) Alloc() Ref {
	r := Ref(p.NRegs)
	p.NRegs++
	return r
}

// Emit appends one instruction and returns its destination register.
func (p *Program) Emit(op Op, a, b Ref) Ref {
	dst := p.Alloc()
	p.Instrs = append(p.Instrs, Instr{Op: op, Dst: dst, A: a, B: b})
	return dst
}

// EmitConst appends a constant-load instruction.
func (p *Program) EmitConst(v float64) Ref {
	dst := p.Alloc()
	p.Instrs = append(p.Instrs, Instr{Op: OpConst, Dst: dst, Imm: v})
	return dst
}

// EmitCopyInto appends regs[dst] = regs[src] into an existing register,
// used to commit a computed value into a caller-owned global slot.
func (p *Program) EmitCopyInto(dst, src Ref) {
	p.Instrs = append(p.Instrs, Instr{Op: OpCopy, Dst: dst, A: src})
}

// Run executes the program against regs, which must have length >=
// p.NRegs. Run never allocates: regs is reused sample after sample.
func (p *Program) Run(regs []float64) {
	for _, in := range p.Instrs {
		switch in.Op {
		case OpConst:
			regs[in.Dst] = in.Imm
		case OpCopy:
			regs[in.Dst] = regs[in.A]
		case OpAdd:
			regs[in.Dst] = regs[in.A] + regs[in.B]
		case OpSub:
			regs[in.Dst] = regs[in.A] - regs[in.B]
		case OpMul:
			regs[in.Dst] = regs[in.A] * regs[in.B]
		case OpDiv:
			regs[in.Dst] = regs[in.A] / regs[in.B]
		case OpNeg:
			regs[in.Dst] = -regs[in.A]
		case OpPow:
			regs[in.Dst] = pow(regs[in.A], regs[in.B])
		case OpSin:
			regs[in.Dst] = sin(regs[in.A])
		case OpCos:
			regs[in.Dst] = cos(regs[in.A])
		case OpExp:
			regs[in.Dst] = exp(regs[in.A])
		}
	}
}
