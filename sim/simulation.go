// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim is the runtime driver: it owns a fixed circuit's
// classified strata, the persistent state that survives across calls
// (differential previous-step values, the Newton unknowns' last
// converged guess, and elapsed time), and the kernel cache that
// Process compiles against — one long-lived object built once from a
// fixed problem description, then driven step by step.
package sim

import (
	"sync/atomic"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gomna/component"
	"github.com/cpmech/gomna/kernel"
	"github.com/cpmech/gomna/mna"
	"github.com/cpmech/gomna/symbolic"
)

// Config describes the fixed circuit a Simulation runs. Inputs,
// Params, and Outputs are the full, permanent interface the circuit
// exposes — which subset of Outputs a given Process call reads is the
// only thing that varies call to call (see kernel.Signature).
type Config struct {
	Components []component.Component
	Inputs     map[string]*symbolic.Var
	Params     map[string]*symbolic.Var
	Outputs    map[string]symbolic.Expr

	SampleRate float64 // Hz
	Oversample int      // internal sub-steps per external sample; 1 disables oversampling
	Iterations int      // Newton iterations per internal step
	Verbose    bool

	// CheckDivergence enables a NaN/Inf scan over every output buffer a
	// Process call produces, returning Diverged instead of silently
	// handing the caller a poisoned buffer. Off by default: the scan
	// costs one pass per output per call, and most callers (a realtime
	// audio loop) would rather drop a bad sample than pay for it.
	CheckDivergence bool
}

// Simulation is one fixed circuit, ready to Process sample blocks.
type Simulation struct {
	cfg      Config
	st       *mna.Strata
	t, t0, h *symbolic.Var
	cache    *kernel.Cache

	time     float64
	prevVals []float64 // aligned with st.Differential
	unkVals  []float64 // aligned with st.Unknowns

	busy atomic.Bool // Process is not reentrant; a second concurrent call is a programmer error
}

// New analyzes cfg.Components into an mna.System, classifies it, and
// returns a Simulation ready for Process. Classification happens once;
// every later Process call reuses (or, on a new output signature,
// extends) the kernel cache.
func New(cfg Config) (*Simulation, error) {
	if cfg.Oversample < 1 {
		cfg.Oversample = 1
	}
	sys := mna.NewSystem()
	t := symbolic.NewVar("t")
	t0 := symbolic.NewVar("t0")
	h := symbolic.NewVar("h")
	for _, c := range cfg.Components {
		c.Analyze(sys, t)
	}
	driven := make([]symbolic.Expr, 0, len(cfg.Inputs))
	for _, v := range cfg.Inputs {
		driven = append(driven, v)
	}
	sys.Close(driven...)

	st, err := mna.Classify(sys, t, t0, h)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:      cfg,
		st:       st,
		t:        t,
		t0:       t0,
		h:        h,
		cache:    kernel.NewCache(),
		prevVals: make([]float64, len(st.Differential)),
		unkVals:  make([]float64, len(st.Unknowns)),
	}
	s.logConstruction()
	return s, nil
}

// Reset restores every differential state, Newton guess, and the
// elapsed-time clock to zero, matching a freshly constructed
// Simulation. Compiled kernels are left in the cache — they carry no
// state of their own, so there is nothing to invalidate.
func (s *Simulation) Reset() {
	for i := range s.prevVals {
		s.prevVals[i] = 0
	}
	for i := range s.unkVals {
		s.unkVals[i] = 0
	}
	s.time = 0
}

func (s *Simulation) logConstruction() {
	if !s.cfg.Verbose {
		return
	}
	io.Pf("> gomna: %d components, %d trivial, %d differential, %d non-linear unknowns\n",
		len(s.cfg.Components), len(s.st.Trivial), len(s.st.Differential), len(s.st.Unknowns))
	io.PfGreen("> gomna: kernel ready (sample rate=%v Hz, oversample=%d, iterations=%d)\n",
		s.cfg.SampleRate, s.cfg.Oversample, s.cfg.Iterations)
}
