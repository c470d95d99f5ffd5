// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// VoltageSource pins the voltage between Plus and Minus to Value,
// which may be a constant, a kernel input, or any symbolic expression
// built from one (e.g. an oscillator driven by the global time var).
type VoltageSource struct {
	Plus, Minus, Value symbolic.Expr
}

// NewVoltageSource returns an ideal voltage source.
func NewVoltageSource(plus, minus, value symbolic.Expr) *VoltageSource {
	return &VoltageSource{Plus: plus, Minus: minus, Value: value}
}

func (c *VoltageSource) Analyze(sys *mna.System, t *symbolic.Var) {
	i := symbolic.NewVar(freshName("ivs"))
	sys.AddUnknown(i)
	sys.AddEquation(symbolic.Sub(c.Plus, c.Minus), c.Value)
	sys.Stamp(c.Plus, i)
	sys.Stamp(c.Minus, symbolic.Negate(i))
}
