// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// Shockley diode model defaults, in amperes and volts.
const (
	DefaultSaturationCurrent = 1e-14
	DefaultThermalVoltage    = 0.025852
)

// Diode is the Shockley large-signal model i = Is (e^(v/Vt) - 1). It
// stamps a genuinely non-linear current, which the classifier's
// non-linear extraction pass pulls into its own f0 binding.
type Diode struct {
	Anode, Cathode symbolic.Expr
	Is, Vt         float64
}

// NewDiode returns a diode with the given saturation current and
// thermal voltage.
func NewDiode(anode, cathode symbolic.Expr, is, vt float64) *Diode {
	return &Diode{Anode: anode, Cathode: cathode, Is: is, Vt: vt}
}

func (c *Diode) Analyze(sys *mna.System, t *symbolic.Var) {
	v := symbolic.Sub(c.Anode, c.Cathode)
	i := symbolic.Product(
		symbolic.Const(c.Is),
		symbolic.Sub(symbolic.ExpOf(symbolic.Quotient(v, symbolic.Const(c.Vt))), symbolic.Const(1)),
	)
	sys.Stamp(c.Anode, i)
	sys.Stamp(c.Cathode, symbolic.Negate(i))
}
