package bytecode

import "math"

// thin wrappers kept in one place so Program.Run reads as a dispatch
// table rather than a math-import scatter.
func pow(a, b float64) float64 { return math.Pow(a, b) }
func sin(a float64) float64    { return math.Sin(a) }
func cos(a float64) float64    { return math.Cos(a) }
func exp(a float64) float64    { return math.Exp(a) }
