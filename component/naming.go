// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import "fmt"

// nextID names the fresh branch-current and auxiliary unknowns
// components introduce during Analyze. A circuit is built once, in a
// fixed order, so the sequence is deterministic across runs and
// reproduces identical results after a Reset.
var nextID int

func freshName(prefix string) string {
	nextID++
	return fmt.Sprintf("%s%d", prefix, nextID)
}
