// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package component is the circuit element library: each component
// knows how to stamp its contribution into an mna.System given the
// symbolic node variables its terminals are wired to. A small
// interface every concrete element implements, plus a name-keyed
// factory for building one from a netlist description.
package component

import (
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// Component is one circuit element. Analyze contributes whatever
// equations, unknowns, and node-current stamps the element needs to
// the shared system; it is called once per circuit, before the system
// is closed and handed to mna.Classify.
type Component interface {
	Analyze(sys *mna.System, t *symbolic.Var)
}

// Ground is the reference node: a literal zero, never tracked as an
// unknown. Every component that needs a local reference (e.g. an
// isolated floating element) may stamp against Ground instead of a
// *symbolic.Var; mna.System.Stamp silently discards it.
var Ground symbolic.Expr = symbolic.Const(0)
