// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mna

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gomna/symbolic"
)

// stampResistor mimics component.Resistor.Analyze without importing
// the component package (which itself imports mna), keeping these
// tests focused on the classifier's own contract.
func stampResistor(sys *System, a, b symbolic.Expr, r float64) {
	i := symbolic.Quotient(symbolic.Sub(a, b), symbolic.Const(r))
	sys.Stamp(a, i)
	sys.Stamp(b, symbolic.Negate(i))
}

func stampCapacitor(sys *System, a, b symbolic.Expr, c float64, t *symbolic.Var) {
	v := symbolic.Sub(a, b)
	dv := symbolic.Deriv(v, t)
	sys.AddUnknown(dv)
	i := symbolic.Product(symbolic.Const(c), dv)
	sys.Stamp(a, i)
	sys.Stamp(b, symbolic.Negate(i))
}

func stampDiode(sys *System, anode, cathode symbolic.Expr, is, vt float64) {
	v := symbolic.Sub(anode, cathode)
	i := symbolic.Product(
		symbolic.Const(is),
		symbolic.Sub(symbolic.ExpOf(symbolic.Quotient(v, symbolic.Const(vt))), symbolic.Const(1)),
	)
	sys.Stamp(anode, i)
	sys.Stamp(cathode, symbolic.Negate(i))
}

func Test_classify_resistor_divider(tst *testing.T) {

	chk.PrintTitle("classify_resistor_divider. a purely resistive node closes in stage 1")

	sys := NewSystem()
	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	t, t0, h := symbolic.NewVar("t"), symbolic.NewVar("t0"), symbolic.NewVar("h")

	stampResistor(sys, vin, vout, 1000)
	stampResistor(sys, vout, symbolic.Const(0), 2000)
	sys.Close(vin)

	st, err := Classify(sys, t, t0, h)
	if err != nil {
		tst.Errorf("Classify failed: %v", err)
		return
	}
	if len(st.Trivial) != 1 {
		tst.Errorf("expected 1 trivial binding, got %d", len(st.Trivial))
	}
	if len(st.F0) != 0 || len(st.Differential) != 0 || len(st.Nonlinear) != 0 {
		tst.Errorf("expected no non-linear or differential strata, got f0=%d diff=%d nl=%d",
			len(st.F0), len(st.Differential), len(st.Nonlinear))
	}
	if len(st.Unknowns) != 0 {
		tst.Errorf("expected no Newton unknowns, got %d", len(st.Unknowns))
	}
	if !symbolic.Equal(st.Trivial[0].Left, vout) {
		tst.Errorf("expected the trivial binding to close vout")
	}

	// vin=3V through 1k/2k divider: vout = 3 * 2000/3000 = 2V
	got := st.Trivial[0].Right.Evaluate(symbolic.Bindings{vin: 3})
	chk.Scalar(tst, "vout", 1e-12, got, 2)
}

func Test_classify_rc_lowpass(tst *testing.T) {

	chk.PrintTitle("classify_rc_lowpass. a capacitor node resolves through stage 3")

	sys := NewSystem()
	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	t, t0, h := symbolic.NewVar("t"), symbolic.NewVar("t0"), symbolic.NewVar("h")

	stampResistor(sys, vin, vout, 1000)
	stampCapacitor(sys, vout, symbolic.Const(0), 1e-6, t)
	sys.Close(vin)

	st, err := Classify(sys, t, t0, h)
	if err != nil {
		tst.Errorf("Classify failed: %v", err)
		return
	}
	if len(st.Trivial) != 0 {
		tst.Errorf("expected no trivial binding (vout depends on its own rate), got %d", len(st.Trivial))
	}
	if len(st.F0) != 0 {
		tst.Errorf("expected no non-linear extraction in a linear RC circuit, got %d", len(st.F0))
	}
	if len(st.Differential) != 1 {
		tst.Errorf("expected 1 differential binding, got %d", len(st.Differential))
	}
	if len(st.Nonlinear) != 0 || len(st.Unknowns) != 0 {
		tst.Errorf("expected no residual system, got nl=%d unk=%d", len(st.Nonlinear), len(st.Unknowns))
	}
	if len(st.Differential) == 1 && !symbolic.Equal(st.Differential[0].Left, vout) {
		tst.Errorf("expected the differential binding to close vout")
	}
	if _, ok := st.DiffPrev[vout]; !ok {
		tst.Errorf("expected a previous-step global registered for vout")
	}
}

func Test_classify_diode_rectifier(tst *testing.T) {

	chk.PrintTitle("classify_diode_rectifier. a diode's node voltage is reserved for Newton")

	sys := NewSystem()
	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	t, t0, h := symbolic.NewVar("t"), symbolic.NewVar("t0"), symbolic.NewVar("h")

	stampDiode(sys, vin, vout, 1e-14, 0.025852)
	stampResistor(sys, vout, symbolic.Const(0), 1000)
	sys.Close(vin)

	st, err := Classify(sys, t, t0, h)
	if err != nil {
		tst.Errorf("Classify failed: %v", err)
		return
	}
	if len(st.Trivial) != 0 {
		tst.Errorf("expected vout not to be closed trivially, got %d bindings", len(st.Trivial))
	}
	if len(st.F0) != 1 {
		tst.Errorf("expected exactly 1 f0 extraction for the diode's exponential, got %d", len(st.F0))
	}
	if len(st.Differential) != 0 {
		tst.Errorf("expected no differential states, got %d", len(st.Differential))
	}
	if len(st.Nonlinear) != 1 || len(st.Unknowns) != 1 {
		tst.Errorf("expected a 1x1 residual system, got nl=%d unk=%d", len(st.Nonlinear), len(st.Unknowns))
	}
	if len(st.Unknowns) == 1 && !symbolic.Equal(st.Unknowns[0], vout) {
		tst.Errorf("expected the sole Newton unknown to be vout")
	}
	if len(st.F0) == 1 && !st.F0[0].Right.IsFunctionOf(vout) {
		tst.Errorf("expected the extracted f0 term to still depend on vout")
	}
}

func Test_classify_unsolvable(tst *testing.T) {

	chk.PrintTitle("classify_unsolvable. two unknowns coupled by a single equation reports ConfigurationError")

	sys := NewSystem()
	t, t0, h := symbolic.NewVar("t"), symbolic.NewVar("t0"), symbolic.NewVar("h")

	x := symbolic.NewVar("x")
	y := symbolic.NewVar("y")
	sys.AddUnknown(x)
	sys.AddUnknown(y)
	sys.AddEquation(symbolic.Product(x, y), symbolic.Const(1))

	_, err := Classify(sys, t, t0, h)
	if err == nil {
		tst.Errorf("expected Classify to fail: 1 equation cannot determine 2 unknowns")
		return
	}
	if _, ok := err.(ConfigurationError); !ok {
		tst.Errorf("expected a ConfigurationError, got %T", err)
	}
}

func Test_system_close_excludes_driven(tst *testing.T) {

	chk.PrintTitle("system_close01. an externally driven node gets neither equation nor unknown")

	sys := NewSystem()
	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	stampResistor(sys, vin, vout, 100)
	sys.Close(vin)

	if len(sys.Unknowns) != 1 {
		tst.Errorf("expected exactly 1 unknown (vout), got %d", len(sys.Unknowns))
	}
	if len(sys.Equations) != 1 {
		tst.Errorf("expected exactly 1 KCL equation (vin excluded), got %d", len(sys.Equations))
	}
}
