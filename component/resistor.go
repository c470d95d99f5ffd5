// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// Resistor is an ideal two-terminal linear resistor obeying Ohm's law.
type Resistor struct {
	A, B symbolic.Expr
	R    float64
}

// NewResistor returns a resistor of resistance r ohms between a and b.
func NewResistor(a, b symbolic.Expr, r float64) *Resistor {
	return &Resistor{A: a, B: b, R: r}
}

func (c *Resistor) Analyze(sys *mna.System, t *symbolic.Var) {
	i := symbolic.Quotient(symbolic.Sub(c.A, c.B), symbolic.Const(c.R))
	sys.Stamp(c.A, i)
	sys.Stamp(c.B, symbolic.Negate(i))
}
