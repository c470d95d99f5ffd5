// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gomna/kernel"
	"github.com/cpmech/gomna/symbolic"
)

// Process runs n samples through the circuit. inputs must supply a
// slice of exactly n values for every declared input; params
// supplies any subset of the declared parameters (the register file is
// allocated afresh on every call, so an omitted parameter reads zero
// for this call, whatever was bound to it before). outputNames selects which of the
// declared outputs to return; requesting a smaller set than last time
// compiles (and caches) a leaner kernel.
func (s *Simulation) Process(n int, inputs map[string][]float64, params map[string]float64, outputNames []string) (map[string][]float64, error) {
	if !s.busy.CompareAndSwap(false, true) {
		chk.Panic("sim: concurrent Process call on the same Simulation")
	}
	defer s.busy.Store(false)

	for name := range inputs {
		if _, ok := s.cfg.Inputs[name]; !ok {
			return nil, UnknownInput{Name: name}
		}
	}
	for name := range s.cfg.Inputs {
		samples, ok := inputs[name]
		if !ok {
			return nil, LengthMismatch{Name: name, Got: 0, Want: n}
		}
		if len(samples) != n {
			return nil, LengthMismatch{Name: name, Got: len(samples), Want: n}
		}
	}
	for _, name := range outputNames {
		if _, ok := s.cfg.Outputs[name]; !ok {
			return nil, UnknownOutput{Name: name}
		}
	}

	k, err := s.kernelFor(outputNames)
	if err != nil {
		return nil, err
	}

	regs := k.NewRegisters()
	for i, r := range k.PrevRefs {
		regs[r] = s.prevVals[i]
	}
	for i, r := range k.Unknowns {
		regs[r] = s.unkVals[i]
	}
	for name, ref := range k.ParamRefs {
		if v, ok := params[name]; ok {
			regs[ref] = v
		}
	}

	results := make(map[string][]float64, len(outputNames))
	for _, name := range outputNames {
		results[name] = make([]float64, n)
	}

	hSub := 1.0 / (s.cfg.SampleRate * float64(s.cfg.Oversample))
	for i := 0; i < n; i++ {
		for sub := 1; sub <= s.cfg.Oversample; sub++ {
			frac := float64(sub) / float64(s.cfg.Oversample)
			for name, ref := range k.InputRefs {
				samples := inputs[name]
				prev := firstOr(samples, i-1, i)
				cur := samples[i]
				regs[ref] = prev + frac*(cur-prev)
			}
			regs[k.T0] = s.time
			regs[k.T] = s.time + hSub
			regs[k.H] = hSub
			if err := k.Step(regs, s.cfg.Iterations); err != nil {
				return nil, err
			}
			s.time += hSub
		}
		for _, name := range outputNames {
			results[name][i] = regs[k.OutputRefs[name]]
		}
	}

	for i, r := range k.PrevRefs {
		s.prevVals[i] = regs[r]
	}
	for i, r := range k.Unknowns {
		s.unkVals[i] = regs[r]
	}

	if s.cfg.CheckDivergence {
		for _, name := range outputNames {
			for i, v := range results[name] {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, Diverged{Output: name, Sample: i}
				}
			}
		}
	}
	return results, nil
}

// firstOr returns samples[idx] if idx is in range, else samples[fallback].
// Used to hold the first sample's value for the fractional sub-steps
// leading into it, since there is no sample before index 0.
func firstOr(samples []float64, idx, fallback int) float64 {
	if idx < 0 {
		return samples[fallback]
	}
	return samples[idx]
}

// kernelFor returns the cached kernel for this output selection,
// building one if this is the first time it has been requested.
func (s *Simulation) kernelFor(outputNames []string) (*kernel.Kernel, error) {
	inputNames := sortedKeys(s.cfg.Inputs)
	paramNames := sortedKeys(s.cfg.Params)
	sig := kernel.MakeSignature(inputNames, outputNames, paramNames)
	if k, ok := s.cache.Get(sig); ok {
		return k, nil
	}

	spec := kernel.Spec{OutputList: append([]string{}, outputNames...), Outputs: s.cfg.Outputs}
	for _, name := range inputNames {
		spec.Inputs = append(spec.Inputs, s.cfg.Inputs[name])
	}
	for _, name := range paramNames {
		spec.Params = append(spec.Params, s.cfg.Params[name])
	}

	k, err := kernel.Build(s.st, spec)
	if err != nil {
		return nil, BuildFailure{Err: err}
	}
	s.cache.Put(sig, k)
	return k, nil
}

func sortedKeys(m map[string]*symbolic.Var) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
