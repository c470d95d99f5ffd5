// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// Capacitor is an ideal two-terminal linear capacitor: i = C dv/dt.
type Capacitor struct {
	A, B symbolic.Expr
	C    float64
}

// NewCapacitor returns a capacitor of capacitance c farads between a and b.
func NewCapacitor(a, b symbolic.Expr, c float64) *Capacitor {
	return &Capacitor{A: a, B: b, C: c}
}

// Analyze declares D(v,t) — the time derivative of the branch voltage
// — as a fresh differential unknown; the classifier picks it up and
// discretizes it.
func (c *Capacitor) Analyze(sys *mna.System, t *symbolic.Var) {
	v := symbolic.Sub(c.A, c.B)
	dv := symbolic.Deriv(v, t)
	sys.AddUnknown(dv)
	i := symbolic.Product(symbolic.Const(c.C), dv)
	sys.Stamp(c.A, i)
	sys.Stamp(c.B, symbolic.Negate(i))
}
