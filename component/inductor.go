// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// Inductor is an ideal two-terminal linear inductor: v = L di/dt.
// Unlike a capacitor, the branch current cannot be recovered from node
// voltages alone, so it is its own unknown.
type Inductor struct {
	A, B symbolic.Expr
	L    float64
}

// NewInductor returns an inductor of inductance l henries between a and b.
func NewInductor(a, b symbolic.Expr, l float64) *Inductor {
	return &Inductor{A: a, B: b, L: l}
}

func (c *Inductor) Analyze(sys *mna.System, t *symbolic.Var) {
	i := symbolic.NewVar(freshName("il"))
	sys.AddUnknown(i)
	di := symbolic.Deriv(i, t)
	sys.AddUnknown(di)
	sys.AddEquation(symbolic.Sub(c.A, c.B), symbolic.Product(symbolic.Const(c.L), di))
	sys.Stamp(c.A, i)
	sys.Stamp(c.B, symbolic.Negate(i))
}
