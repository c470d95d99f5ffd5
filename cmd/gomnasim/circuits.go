// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gomna/component"
	"github.com/cpmech/gomna/sim"
	"github.com/cpmech/gomna/symbolic"
)

// circuitBuilder returns a ready Config for one of the built-in demo
// circuits; ground is component.Ground, never a tracked node.
type circuitBuilder func() sim.Config

var circuits = map[string]circuitBuilder{
	"wire":      buildWire,
	"rclowpass": buildRCLowPass,
	"follower":  buildOpAmpFollower,
	"rectifier": buildDiodeRectifier,
}

func buildWire() sim.Config {
	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	r := component.NewResistor(vin, vout, 1e-6) // near-zero resistance: vout tracks vin
	return sim.Config{
		Components: []component.Component{r},
		Inputs:     map[string]*symbolic.Var{"vin": vin},
		Outputs:    map[string]symbolic.Expr{"vout": vout},
		SampleRate: 48000,
		Oversample: 1,
		Iterations: 1,
	}
}

func buildRCLowPass() sim.Config {
	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	r := component.NewResistor(vin, vout, 1000)
	c := component.NewCapacitor(vout, component.Ground, 1e-7)
	return sim.Config{
		Components: []component.Component{r, c},
		Inputs:     map[string]*symbolic.Var{"vin": vin},
		Outputs:    map[string]symbolic.Expr{"vout": vout},
		SampleRate: 48000,
		Oversample: 2,
		Iterations: 1,
	}
}

func buildOpAmpFollower() sim.Config {
	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	op := component.NewOpAmp(vin, vout, vout)
	return sim.Config{
		Components: []component.Component{op},
		Inputs:     map[string]*symbolic.Var{"vin": vin},
		Outputs:    map[string]symbolic.Expr{"vout": vout},
		SampleRate: 48000,
		Oversample: 1,
		Iterations: 1,
	}
}

func buildDiodeRectifier() sim.Config {
	vin := symbolic.NewVar("vin")
	vout := symbolic.NewVar("vout")
	d := component.NewDiode(vin, vout, component.DefaultSaturationCurrent, component.DefaultThermalVoltage)
	r := component.NewResistor(vout, component.Ground, 10000)
	return sim.Config{
		Components: []component.Component{d, r},
		Inputs:     map[string]*symbolic.Var{"vin": vin},
		Outputs:    map[string]symbolic.Expr{"vout": vout},
		SampleRate: 48000,
		Oversample: 8,
		Iterations: 6,
	}
}
