// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// OpAmp is an ideal operational amplifier in the "virtual short"
// approximation: infinite open-loop gain and input impedance, so the
// inverting and non-inverting inputs are forced equal and draw no
// current. It never stamps a current at Output — the amplifier is
// assumed to supply whatever current the rest of the circuit needs
// there, unconstrained by Kirchhoff current law, so Output is
// registered as a driven node rather than given a KCL equation.
// Voltage-follower and other feedback configurations emerge from how
// the caller wires Output back into Minus, not from anything this
// component does differently. The asymmetric 2-vs-3-terminal treatment
// some real op-amp families expose is not modeled; every op-amp here
// is the same ideal 3-terminal device.
type OpAmp struct {
	Plus, Minus, Output symbolic.Expr
}

// NewOpAmp returns an ideal op-amp.
func NewOpAmp(plus, minus, output symbolic.Expr) *OpAmp {
	return &OpAmp{Plus: plus, Minus: minus, Output: output}
}

func (c *OpAmp) Analyze(sys *mna.System, t *symbolic.Var) {
	sys.DriveNode(c.Output)
	sys.AddEquation(c.Minus, c.Plus)
}
