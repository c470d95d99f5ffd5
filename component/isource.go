// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// CurrentSource drives Value amperes from Minus to Plus. Unlike
// VoltageSource it needs no branch-current unknown: the current is
// already known, so it only ever contributes KCL stamps.
type CurrentSource struct {
	Plus, Minus, Value symbolic.Expr
}

// NewCurrentSource returns an ideal current source.
func NewCurrentSource(plus, minus, value symbolic.Expr) *CurrentSource {
	return &CurrentSource{Plus: plus, Minus: minus, Value: value}
}

func (c *CurrentSource) Analyze(sys *mna.System, t *symbolic.Var) {
	sys.Stamp(c.Plus, c.Value)
	sys.Stamp(c.Minus, symbolic.Negate(c.Value))
}
