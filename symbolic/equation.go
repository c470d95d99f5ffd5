// Copyright 2016 The Gomna Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// Equation is lhs == rhs.
type Equation struct {
	Lhs, Rhs Expr
}

// Arrow is an assignment/solved-form binding left := right.
type Arrow struct {
	Left, Right Expr
}
