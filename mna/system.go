// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mna implements the equation classifier & solver pipeline: it
// takes the raw list of MNA equations and unknowns a component library
// contributes and partitions them into the four strata a kernel can be
// built from (trivial, differential, linear, non-linear).
package mna

import "github.com/cpmech/gomna/symbolic"

// System accumulates the equations and unknowns every component's
// Analyze call contributes, plus Kirchhoff current-law stamps at each
// internal node — the nodal-assembly glue belonging to the component
// library, an external collaborator whose exact mechanics are opaque
// to this core.
type System struct {
	Equations []symbolic.Equation
	Unknowns  []symbolic.Expr

	nodeOrder []symbolic.Expr
	stamps    map[symbolic.Expr][]symbolic.Expr
	driven    map[symbolic.Expr]bool
}

// NewSystem returns an empty system.
func NewSystem() *System {
	return &System{stamps: make(map[symbolic.Expr][]symbolic.Expr), driven: make(map[symbolic.Expr]bool)}
}

// AddEquation appends lhs == rhs to the raw MNA.
func (s *System) AddEquation(lhs, rhs symbolic.Expr) {
	s.Equations = append(s.Equations, symbolic.Equation{Lhs: lhs, Rhs: rhs})
}

// AddUnknown declares x as one of the unknowns the classifier must
// place in exactly one stratum.
func (s *System) AddUnknown(x symbolic.Expr) {
	s.Unknowns = append(s.Unknowns, x)
}

// Stamp records that current flows out of node via one branch. Ground
// (a literal symbolic.Const) is never a KCL node and is ignored, same
// as a real netlist assembler skips the reference node.
func (s *System) Stamp(node, current symbolic.Expr) {
	if _, isConst := node.(symbolic.Const); isConst {
		return
	}
	if _, ok := s.stamps[node]; !ok {
		s.nodeOrder = append(s.nodeOrder, node)
	}
	s.stamps[node] = append(s.stamps[node], current)
}

// DriveNode registers node's voltage as an unknown whose value is
// governed by some other equation the caller already added (e.g. an
// op-amp's virtual-short constraint), not by Kirchhoff current law.
// Close skips building a KCL equation for any node marked this way,
// and skips it even if some other component later stamps current onto
// it — an ideal op-amp output sources or sinks whatever current its
// load demands, unconstrained by KCL.
func (s *System) DriveNode(node symbolic.Expr) {
	s.driven[node] = true
	s.AddUnknown(node)
}

// Close appends one KCL equation per stamped node (sum of currents
// leaving the node is zero) to the MNA and registers that node's
// voltage as an unknown the classifier must solve for — except any
// node in externallyDriven or previously passed to DriveNode, whose
// voltage is supplied from outside the circuit (a declared input) or
// by a component's own governing equation, and therefore needs
// neither a KCL equation nor a second unknown registration. Call once,
// after every component has been given a chance to Analyze.
func (s *System) Close(externallyDriven ...symbolic.Expr) {
	for _, v := range externallyDriven {
		s.driven[v] = true
	}
	for _, node := range s.nodeOrder {
		if s.driven[node] {
			continue
		}
		s.AddUnknown(node)
		s.AddEquation(symbolic.Sum(s.stamps[node]...), symbolic.Const(0))
	}
}
