package symbolic

import "math"

func mathPow(a, b float64) float64 { return math.Pow(a, b) }
func mathSin(a float64) float64    { return math.Sin(a) }
func mathCos(a float64) float64    { return math.Cos(a) }
func mathExp(a float64) float64    { return math.Exp(a) }
