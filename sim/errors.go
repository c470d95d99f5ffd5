// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "fmt"

// UnknownOutput is returned when Process is asked for an output name
// the circuit never declared.
type UnknownOutput struct {
	Name string
}

func (e UnknownOutput) Error() string {
	return fmt.Sprintf("sim: unknown output %q", e.Name)
}

// UnknownInput is returned when Process is given a sample buffer for
// an input name the circuit never declared.
type UnknownInput struct {
	Name string
}

func (e UnknownInput) Error() string {
	return fmt.Sprintf("sim: unknown input %q", e.Name)
}

// LengthMismatch is returned when an input sample buffer's length
// does not match the requested sample count.
type LengthMismatch struct {
	Name     string
	Got, Want int
}

func (e LengthMismatch) Error() string {
	return fmt.Sprintf("sim: input %q has %d samples, want %d", e.Name, e.Got, e.Want)
}

// Diverged is returned when CheckDivergence is enabled and an output
// buffer from a Process call contains a NaN or an infinity — typically
// a Newton iteration that failed to converge within its iteration
// budget, or a trapezoidal step taken with too large an h.
type Diverged struct {
	Output string
	Sample int
}

func (e Diverged) Error() string {
	return fmt.Sprintf("sim: output %q diverged (NaN or Inf) at sample %d", e.Output, e.Sample)
}

// BuildFailure wraps an error from compiling a kernel for a new output
// signature, encountered lazily inside Process.
type BuildFailure struct {
	Err error
}

func (e BuildFailure) Error() string {
	return fmt.Sprintf("sim: failed to build kernel: %v", e.Err)
}

func (e BuildFailure) Unwrap() error { return e.Err }
