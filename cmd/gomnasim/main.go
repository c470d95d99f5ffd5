// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gomnasim runs one of a handful of built-in demo circuits
// against a synthesized sine input and prints the resulting samples,
// as a smoke test for the kernel pipeline end to end.
package main

import (
	"flag"
	"fmt"
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gomna/sim"
)

func main() {
	circuit := flag.String("circuit", "rclowpass", "demo circuit to run")
	n := flag.Int("n", 64, "number of samples")
	freq := flag.Float64("freq", 1000, "input sine frequency, Hz")
	verbose := flag.Bool("v", false, "verbose kernel construction log")
	flag.Parse()

	io.PfWhite("\ngomna -- a time-domain circuit simulator core\n\n")

	build, ok := circuits[*circuit]
	if !ok {
		names := make([]string, 0, len(circuits))
		for name := range circuits {
			names = append(names, name)
		}
		sort.Strings(names)
		chk.Panic("unknown circuit %q; available: %v", *circuit, names)
	}

	cfg := build()
	cfg.Verbose = *verbose
	s, err := sim.New(cfg)
	if err != nil {
		chk.Panic("failed to build simulation: %v", err)
	}

	vin := make([]float64, *n)
	for i := range vin {
		vin[i] = math.Sin(2 * math.Pi * (*freq) * float64(i) / cfg.SampleRate)
	}

	results, err := s.Process(*n, map[string][]float64{"vin": vin}, nil, []string{"vout"})
	if err != nil {
		chk.Panic("process failed: %v", err)
	}

	io.Pf("> circuit=%q samples=%d\n", *circuit, *n)
	vout := results["vout"]
	stride := *n / 8
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < *n; i += stride {
		fmt.Printf("  t=%8.5f  vin=% .5f  vout=% .5f\n", float64(i)/cfg.SampleRate, vin[i], vout[i])
	}
}
