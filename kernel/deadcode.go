// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// IsExpressionUsed reports whether target appears, structurally,
// somewhere within root.
func IsExpressionUsed(target, root symbolic.Expr) bool {
	return root.IsFunctionOf(target)
}

// pruneTrivial drops every stage-1 binding whose left-hand side is
// never referenced again — a ground reference or an unused passthrough
// a component stamped but no equation, output, or later stage actually
// reads. Because Solve only ever produces an acyclic substitution
// chain (each arrow's right-hand side can reference an earlier arrow's
// left-hand side, never its own), checking liveness once against every
// other stage's right-hand sides is sufficient: a trivial binding used
// only by another trivial binding is still found live, since that
// other binding's own right-hand side is itself one of the roots.
func pruneTrivial(st *mna.Strata, spec Spec) []symbolic.Arrow {
	var roots []symbolic.Expr
	for _, name := range spec.OutputList {
		roots = append(roots, spec.Outputs[name])
	}
	for _, a := range st.F0 {
		roots = append(roots, a.Right)
	}
	for _, a := range st.Differential {
		roots = append(roots, a.Right)
	}
	for _, a := range st.Linear {
		roots = append(roots, a.Right)
	}
	for _, eq := range st.Nonlinear {
		roots = append(roots, eq.Lhs)
	}
	for _, a := range st.Trivial {
		roots = append(roots, a.Right)
	}

	var live []symbolic.Arrow
	for _, a := range st.Trivial {
		used := false
		for _, r := range roots {
			if IsExpressionUsed(a.Left, r) {
				used = true
				break
			}
		}
		if used {
			live = append(live, a)
		}
	}
	return live
}
