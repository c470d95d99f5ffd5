// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gomna/symbolic"
)

// AllocatorType builds a Component from its parameter map and the
// symbolic node variables its terminals are wired to, in the order
// the kind documents (e.g. a resistor takes [positive, negative]).
type AllocatorType func(params map[string]float64, terminals []symbolic.Expr) Component

// New builds a component of the given kind from the factory.
func New(kind string, params map[string]float64, terminals []symbolic.Expr) (Component, error) {
	fcn, ok := allocators[kind]
	if !ok {
		return nil, chk.Err("component: no allocator registered for kind %q", kind)
	}
	c := fcn(params, terminals)
	if c == nil {
		return nil, chk.Err("component: allocator for kind %q returned nil", kind)
	}
	return c, nil
}

// SetAllocator registers fcn as the allocator for kind. Re-registering
// an existing kind is a programmer error.
func SetAllocator(kind string, fcn AllocatorType) {
	if _, ok := allocators[kind]; ok {
		chk.Panic("component: allocator for kind %q already registered", kind)
	}
	allocators[kind] = fcn
}

// GetAllocator returns the allocator registered for kind.
func GetAllocator(kind string) AllocatorType {
	if fcn, ok := allocators[kind]; ok {
		return fcn
	}
	chk.Panic("component: no allocator registered for kind %q", kind)
	return nil
}

var allocators = make(map[string]AllocatorType)

func init() {
	SetAllocator("resistor", func(p map[string]float64, t []symbolic.Expr) Component {
		return NewResistor(t[0], t[1], p["r"])
	})
	SetAllocator("capacitor", func(p map[string]float64, t []symbolic.Expr) Component {
		return NewCapacitor(t[0], t[1], p["c"])
	})
	SetAllocator("inductor", func(p map[string]float64, t []symbolic.Expr) Component {
		return NewInductor(t[0], t[1], p["l"])
	})
	SetAllocator("vsource", func(p map[string]float64, t []symbolic.Expr) Component {
		return NewVoltageSource(t[0], t[1], t[2])
	})
	SetAllocator("isource", func(p map[string]float64, t []symbolic.Expr) Component {
		return NewCurrentSource(t[0], t[1], t[2])
	})
	SetAllocator("diode", func(p map[string]float64, t []symbolic.Expr) Component {
		is, vt := p["is"], p["vt"]
		if is == 0 {
			is = DefaultSaturationCurrent
		}
		if vt == 0 {
			vt = DefaultThermalVoltage
		}
		return NewDiode(t[0], t[1], is, vt)
	})
	SetAllocator("opamp", func(p map[string]float64, t []symbolic.Expr) Component {
		return NewOpAmp(t[0], t[1], t[2])
	})
}
