// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"sort"
	"strings"
)

// Signature identifies a kernel by the one thing that determines its
// shape: which inputs, outputs, and parameters a call names — kernels
// are cached by that triple, not rebuilt on every call with the same
// circuit.
type Signature string

// MakeSignature builds a Signature from unordered name sets; order in
// the input slices does not matter, only membership, since Signature
// is a cache key, not a binding order (the Kernel's own
// InputRefs/ParamRefs/OutputRefs maps carry that).
func MakeSignature(inputs, outputs, params []string) Signature {
	var b strings.Builder
	for _, group := range [][]string{inputs, outputs, params} {
		sorted := append([]string{}, group...)
		sort.Strings(sorted)
		b.WriteString(strings.Join(sorted, ","))
		b.WriteByte('|')
	}
	return Signature(b.String())
}

// Cache holds one compiled Kernel per Signature, so a simulation that
// repeatedly calls Process with the same inputs/outputs/parameters
// never recompiles — building a kernel is comparatively expensive, so
// it happens at most once per distinct signature.
type Cache struct {
	kernels map[Signature]*Kernel
}

// NewCache returns an empty kernel cache.
func NewCache() *Cache {
	return &Cache{kernels: make(map[Signature]*Kernel)}
}

// Get returns the cached kernel for sig, if any.
func (c *Cache) Get(sig Signature) (*Kernel, bool) {
	k, ok := c.kernels[sig]
	return k, ok
}

// Put stores k under sig, overwriting any previous entry.
func (c *Cache) Put(sig Signature, k *Kernel) {
	c.kernels[sig] = k
}

// Len reports how many distinct signatures are currently cached.
func (c *Cache) Len() int {
	return len(c.kernels)
}

// Reset clears every cached kernel. A compiled Kernel carries no
// simulation state of its own — only register layout — so
// sim.Simulation.Reset does not need this; it exists for tests that
// want to force a rebuild.
func (c *Cache) Reset() {
	c.kernels = make(map[Signature]*Kernel)
}
