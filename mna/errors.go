// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mna

// ConfigurationError reports that Classify could not decompose a
// system into the four strata — an unsolvable or under-determined
// netlist, not a bug in the classifier itself.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string { return "mna: " + e.Reason }
