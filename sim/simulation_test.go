// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gomna/component"
	"github.com/cpmech/gomna/symbolic"
)

func buildWireSim(tst *testing.T) *Simulation {
	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	r := component.NewResistor(vin, vout, 1e-6)
	s, err := New(Config{
		Components: []component.Component{r},
		Inputs:     map[string]*symbolic.Var{"vin": vin},
		Outputs:    map[string]symbolic.Expr{"vout": vout},
		SampleRate: 48000,
		Oversample: 1,
		Iterations: 1,
	})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	return s
}

func Test_sim_wire(tst *testing.T) {

	chk.PrintTitle("sim_wire. a near-zero resistance passes the input through unchanged")

	s := buildWireSim(tst)
	in := []float64{5, -3, 0.25, 17}
	out, err := s.Process(len(in), map[string][]float64{"vin": in}, nil, []string{"vout"})
	if err != nil {
		tst.Fatalf("Process failed: %v", err)
	}
	for i, v := range in {
		chk.Scalar(tst, "vout", 1e-9, out["vout"][i], v)
	}
}

// rcStep replays the closed-form trapezoidal update for a single RC
// low-pass state, matching discretize.Discretizer's NDSolve for
// dv/dt = (vin-v)/(r*c): v1 = (v0*(2rc-h) + 2*h*vin) / (2rc+h).
func rcStep(v0, vin, r, c, h float64) float64 {
	return (v0*(2*r*c-h) + 2*h*vin) / (2*r*c + h)
}

func Test_sim_rclowpass(tst *testing.T) {

	chk.PrintTitle("sim_rclowpass. multi-sample output matches the trapezoidal recurrence")

	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	const r, c = 1000.0, 1e-7
	res := component.NewResistor(vin, vout, r)
	cap := component.NewCapacitor(vout, component.Ground, c)
	s, err := New(Config{
		Components: []component.Component{res, cap},
		Inputs:     map[string]*symbolic.Var{"vin": vin},
		Outputs:    map[string]symbolic.Expr{"vout": vout},
		SampleRate: 48000,
		Oversample: 2,
		Iterations: 1,
	})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	const n = 5
	in := make([]float64, n)
	for i := range in {
		in[i] = 1.0
	}
	out, err := s.Process(n, map[string][]float64{"vin": in}, nil, []string{"vout"})
	if err != nil {
		tst.Fatalf("Process failed: %v", err)
	}

	hSub := 1.0 / (48000 * 2)
	want := 0.0
	for i := 0; i < n; i++ {
		want = rcStep(want, in[i], r, c, hSub) // sub-step 1
		want = rcStep(want, in[i], r, c, hSub) // sub-step 2
		chk.Scalar(tst, "vout", 1e-12, out["vout"][i], want)
	}
}

// ladderStep replays the closed-form trapezoidal update for a
// two-stage RC ladder (R1 vin->v1, C1 v1->gnd, R2 v1->v2, C2 v2->gnd)
// under the lagged-coupling scheme discretize.Discretizer.NDSolve
// applies when a differential unknown's rate references another
// differential unknown's own state directly: v1's implicit equation
// is solved treating v2's previous-step value as a parameter, and
// v2's treating v1's previous-step value the same way, so both land
// on their shared previous sample rather than one seeing the other's
// just-committed new value.
func ladderStep(v1, v2, vin, r1, r2, c1, c2, h float64) (float64, float64) {
	k1 := h / (2 * c1)
	rate1old := (vin-v1)/r1 - (v1-v2)/r2
	v1new := (v1 + k1*(vin/r1+v2/r2+rate1old)) / (1 + k1*(1/r1+1/r2))
	m := h / (2 * r2 * c2)
	v2new := (v2*(1-m) + 2*m*v1) / (1 + m)
	return v1new, v2new
}

func Test_sim_coupled_rc_ladder(tst *testing.T) {

	chk.PrintTitle("sim_coupled_rc_ladder. two capacitors coupled through a shared node build and step without corrupting old-state semantics")

	vin := symbolic.NewVar("vin")
	v1 := symbolic.NewVar("v1")
	v2 := symbolic.NewVar("v2")
	const r1, r2, c1, c2 = 1000.0, 2000.0, 1e-7, 2e-7

	res1 := component.NewResistor(vin, v1, r1)
	cap1 := component.NewCapacitor(v1, component.Ground, c1)
	res2 := component.NewResistor(v1, v2, r2)
	cap2 := component.NewCapacitor(v2, component.Ground, c2)

	s, err := New(Config{
		Components: []component.Component{res1, cap1, res2, cap2},
		Inputs:     map[string]*symbolic.Var{"vin": vin},
		Outputs:    map[string]symbolic.Expr{"v1": v1, "v2": v2},
		SampleRate: 48000,
		Oversample: 2,
		Iterations: 1,
	})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	const n = 5
	in := []float64{1, 1, 0.5, -0.2, 2}
	out, err := s.Process(n, map[string][]float64{"vin": in}, nil, []string{"v1", "v2"})
	if err != nil {
		tst.Fatalf("Process failed: %v", err)
	}

	hSub := 1.0 / (48000 * 2)
	wantV1, wantV2 := 0.0, 0.0
	prevIn := in[0]
	for i := 0; i < n; i++ {
		mid := prevIn + 0.5*(in[i]-prevIn) // input linearly interpolated halfway into the sample
		prevIn = in[i]
		wantV1, wantV2 = ladderStep(wantV1, wantV2, mid, r1, r2, c1, c2, hSub)   // sub-step 1
		wantV1, wantV2 = ladderStep(wantV1, wantV2, in[i], r1, r2, c1, c2, hSub) // sub-step 2
		chk.Scalar(tst, "v1", 1e-9, out["v1"][i], wantV1)
		chk.Scalar(tst, "v2", 1e-9, out["v2"][i], wantV2)
	}
}

func Test_sim_follower(tst *testing.T) {

	chk.PrintTitle("sim_follower. an unloaded op-amp follower tracks its input exactly")

	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	op := component.NewOpAmp(vin, vout, vout)
	s, err := New(Config{
		Components: []component.Component{op},
		Inputs:     map[string]*symbolic.Var{"vin": vin},
		Outputs:    map[string]symbolic.Expr{"vout": vout},
		SampleRate: 48000,
		Oversample: 1,
		Iterations: 1,
	})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	in := []float64{0.1, 0.2, -0.5, 3.3}
	out, err := s.Process(len(in), map[string][]float64{"vin": in}, nil, []string{"vout"})
	if err != nil {
		tst.Fatalf("Process failed: %v", err)
	}
	for i, v := range in {
		chk.Scalar(tst, "vout", 1e-9, out["vout"][i], v)
	}
}

func Test_sim_rectifier(tst *testing.T) {

	chk.PrintTitle("sim_rectifier. a diode half-wave rectifier converges each sample")

	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	d := component.NewDiode(vin, vout, component.DefaultSaturationCurrent, component.DefaultThermalVoltage)
	r := component.NewResistor(vout, component.Ground, 10000)
	s, err := New(Config{
		Components: []component.Component{d, r},
		Inputs:     map[string]*symbolic.Var{"vin": vin},
		Outputs:    map[string]symbolic.Expr{"vout": vout},
		SampleRate: 48000,
		Oversample: 8,
		Iterations: 20,
	})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	in := []float64{-1, 1, -1, 1, 0.5}
	out, err := s.Process(len(in), map[string][]float64{"vin": in}, nil, []string{"vout"})
	if err != nil {
		tst.Fatalf("Process failed: %v", err)
	}
	for i, vin := range in {
		vout := out["vout"][i]
		iDiode := component.DefaultSaturationCurrent * (math.Exp((vin-vout)/component.DefaultThermalVoltage) - 1)
		iRes := vout / 10000
		chk.Scalar(tst, "diode current == resistor current", 1e-9, iDiode, iRes)
		if vout > math.Max(vin, 0) {
			tst.Errorf("sample %d: expected vout <= max(vin, 0), got vout=%v vin=%v", i, vout, vin)
		}
	}
}

func Test_sim_reset(tst *testing.T) {

	chk.PrintTitle("sim_reset. Reset reproduces a fresh simulation's output exactly")

	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	res := component.NewResistor(vin, vout, 1000)
	cap := component.NewCapacitor(vout, component.Ground, 1e-7)
	s, err := New(Config{
		Components: []component.Component{res, cap},
		Inputs:     map[string]*symbolic.Var{"vin": vin},
		Outputs:    map[string]symbolic.Expr{"vout": vout},
		SampleRate: 48000,
		Oversample: 2,
		Iterations: 1,
	})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}

	in := []float64{1, 1, 0.5, -0.2, 2}
	out1, err := s.Process(len(in), map[string][]float64{"vin": in}, nil, []string{"vout"})
	if err != nil {
		tst.Fatalf("Process failed: %v", err)
	}

	s.Reset()
	out2, err := s.Process(len(in), map[string][]float64{"vin": in}, nil, []string{"vout"})
	if err != nil {
		tst.Fatalf("Process failed after Reset: %v", err)
	}

	for i := range in {
		chk.Scalar(tst, "vout after reset", 1e-15, out2["vout"][i], out1["vout"][i])
	}
}

func Test_sim_streaming_consistency(tst *testing.T) {

	chk.PrintTitle("sim_streaming. splitting one block into two consecutive calls agrees with processing it whole")

	buildSim := func(tst *testing.T) (*Simulation, *Simulation) {
		newOne := func() *Simulation {
			vin := symbolic.NewVar("vin")
			vout := symbolic.NewVar("vout")
			res := component.NewResistor(vin, vout, 1000)
			cap := component.NewCapacitor(vout, component.Ground, 1e-7)
			s, err := New(Config{
				Components: []component.Component{res, cap},
				Inputs:     map[string]*symbolic.Var{"vin": vin},
				Outputs:    map[string]symbolic.Expr{"vout": vout},
				SampleRate: 48000,
				Oversample: 2,
				Iterations: 1,
			})
			if err != nil {
				tst.Fatalf("New failed: %v", err)
			}
			return s
		}
		return newOne(), newOne()
	}

	whole, split := buildSim(tst)
	in := []float64{1, 1, 0.5, -0.2, 2, 0.7, -1}

	outWhole, err := whole.Process(len(in), map[string][]float64{"vin": in}, nil, []string{"vout"})
	if err != nil {
		tst.Fatalf("Process (whole) failed: %v", err)
	}

	half := len(in) / 2
	out1, err := split.Process(half, map[string][]float64{"vin": in[:half]}, nil, []string{"vout"})
	if err != nil {
		tst.Fatalf("Process (first half) failed: %v", err)
	}
	out2, err := split.Process(len(in)-half, map[string][]float64{"vin": in[half:]}, nil, []string{"vout"})
	if err != nil {
		tst.Fatalf("Process (second half) failed: %v", err)
	}
	outSplit := append(append([]float64{}, out1["vout"]...), out2["vout"]...)

	for i := range in {
		chk.Scalar(tst, "vout", 1e-15, outSplit[i], outWhole["vout"][i])
	}
}

func Test_sim_process_errors(tst *testing.T) {

	chk.PrintTitle("sim_process_errors. Process validates inputs and outputs before building a kernel")

	s := buildWireSim(tst)

	_, err := s.Process(2, map[string][]float64{"nope": {1, 2}}, nil, []string{"vout"})
	if _, ok := err.(UnknownInput); !ok {
		tst.Errorf("expected UnknownInput, got %v (%T)", err, err)
	}

	_, err = s.Process(2, map[string][]float64{"vin": {1}}, nil, []string{"vout"})
	if _, ok := err.(LengthMismatch); !ok {
		tst.Errorf("expected LengthMismatch, got %v (%T)", err, err)
	}

	_, err = s.Process(2, nil, nil, []string{"vout"})
	if _, ok := err.(LengthMismatch); !ok {
		tst.Errorf("expected LengthMismatch for a missing input, got %v (%T)", err, err)
	}

	_, err = s.Process(2, map[string][]float64{"vin": {1, 2}}, nil, []string{"nope"})
	if _, ok := err.(UnknownOutput); !ok {
		tst.Errorf("expected UnknownOutput, got %v (%T)", err, err)
	}
}

func Test_sim_check_divergence_no_false_positive(tst *testing.T) {

	chk.PrintTitle("sim_check_divergence. a healthy circuit never reports Diverged")

	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	res := component.NewResistor(vin, vout, 1000)
	cap := component.NewCapacitor(vout, component.Ground, 1e-7)
	s, err := New(Config{
		Components:      []component.Component{res, cap},
		Inputs:          map[string]*symbolic.Var{"vin": vin},
		Outputs:         map[string]symbolic.Expr{"vout": vout},
		SampleRate:      48000,
		Oversample:      2,
		Iterations:      1,
		CheckDivergence: true,
	})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	in := []float64{1, 0.5, -0.3, 2}
	if _, err := s.Process(len(in), map[string][]float64{"vin": in}, nil, []string{"vout"}); err != nil {
		tst.Errorf("expected no divergence on a healthy circuit, got %v", err)
	}
}

func Test_sim_kernel_cache_reuse(tst *testing.T) {

	chk.PrintTitle("sim_kernel_cache. requesting the same output selection twice reuses the cached kernel")

	s := buildWireSim(tst)
	in := []float64{1, 2, 3}
	if _, err := s.Process(len(in), map[string][]float64{"vin": in}, nil, []string{"vout"}); err != nil {
		tst.Fatalf("Process failed: %v", err)
	}
	if n := s.cache.Len(); n != 1 {
		tst.Errorf("expected 1 cached kernel after one signature, got %d", n)
	}
	if _, err := s.Process(len(in), map[string][]float64{"vin": in}, nil, []string{"vout"}); err != nil {
		tst.Fatalf("second Process failed: %v", err)
	}
	if n := s.cache.Len(); n != 1 {
		tst.Errorf("expected the same signature to reuse the cached kernel, got %d entries", n)
	}
}
